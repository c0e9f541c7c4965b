package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMw "guildku_backend/internals/middlewares/auth"
	routeDetails "guildku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.UserAuthRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC routes (webhook)...")
	routeDetails.GuildPublicRoutes(app, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (JWT)...")
	admin := app.Group("/api/a", authMw.AuthMiddleware(db))

	log.Println("[INFO] Mounting Guild routes...")
	routeDetails.GuildAdminRoutes(admin, db)
}
