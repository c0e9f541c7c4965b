package middlewares

import (
	"github.com/gofiber/fiber/v2"

	requestLogger "guildku_backend/internals/middlewares/logger"
)

// SetupMiddlewares pasang middleware dasar dengan urutan yang benar:
// recovery paling luar, lalu CORS, logger, dan limiter global.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(requestLogger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
