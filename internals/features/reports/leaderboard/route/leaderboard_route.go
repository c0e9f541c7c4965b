package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	leaderboardCtrl "guildku_backend/internals/features/reports/leaderboard/controller"
)

// LeaderboardAdminRoutes laporan agregat (butuh JWT admin).
func LeaderboardAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := leaderboardCtrl.NewLeaderboardController(db)

	reports := r.Group("/reports")
	reports.Get("/leaderboard", ctrl.Get)
}
