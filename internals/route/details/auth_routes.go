package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	AuthRoutes "guildku_backend/internals/features/users/auth/route"
)

func UserAuthRoutes(app *fiber.App, db *gorm.DB) {
	AuthRoutes.AuthRoutes(app, db)
}
