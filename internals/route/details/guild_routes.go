package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ActivityTypeRoutes "guildku_backend/internals/features/activities/activity_types/route"
	SessionRoutes "guildku_backend/internals/features/activities/sessions/route"
	MemberRoutes "guildku_backend/internals/features/members/route"
	ParseRoutes "guildku_backend/internals/features/parses/route"
	ParticipationRoutes "guildku_backend/internals/features/participations/route"
	LeaderboardRoutes "guildku_backend/internals/features/reports/leaderboard/route"
)

// GuildPublicRoutes endpoint tanpa login (webhook workflow).
func GuildPublicRoutes(app *fiber.App, db *gorm.DB) {
	ParseRoutes.ParseCallbackRoutes(app, db)
}

// GuildAdminRoutes seluruh endpoint pengelolaan guild (JWT wajib).
func GuildAdminRoutes(r fiber.Router, db *gorm.DB) {
	MemberRoutes.MemberAdminRoutes(r, db)
	ActivityTypeRoutes.ActivityTypeAdminRoutes(r, db)
	SessionRoutes.SessionAdminRoutes(r, db)
	ParticipationRoutes.ParticipationAdminRoutes(r, db)
	ParseRoutes.ParseAdminRoutes(r, db)
	LeaderboardRoutes.LeaderboardAdminRoutes(r, db)
}
