package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authCtrl "guildku_backend/internals/features/users/auth/controller"
	"guildku_backend/internals/middlewares"
	authMw "guildku_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authCtrl.NewAuthController(db)

	public := app.Group("/api/v1/auth")
	public.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)

	private := app.Group("/api/v1/auth", authMw.AuthMiddleware(db))
	private.Get("/profile", ctrl.Profile)
}
