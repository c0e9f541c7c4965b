package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessionCtrl "guildku_backend/internals/features/activities/sessions/controller"
)

// SessionAdminRoutes endpoint sesi aktivitas (butuh JWT admin).
func SessionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := sessionCtrl.NewSessionController(db)

	sessions := r.Group("/sessions")
	sessions.Get("/", ctrl.List)
	sessions.Post("/", ctrl.Create)
	sessions.Get("/:id", ctrl.GetByID)
	sessions.Put("/:id", ctrl.Update)
	sessions.Delete("/:id", ctrl.Delete)
}
