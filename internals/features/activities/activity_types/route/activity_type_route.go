package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	typeCtrl "guildku_backend/internals/features/activities/activity_types/controller"
)

// ActivityTypeAdminRoutes endpoint jenis aktivitas (butuh JWT admin).
func ActivityTypeAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := typeCtrl.NewActivityTypeController(db)

	types := r.Group("/activity-types")
	types.Get("/", ctrl.List)
	types.Post("/", ctrl.Create)
	types.Put("/:id", ctrl.Update)
	types.Delete("/:id", ctrl.Delete)
}
