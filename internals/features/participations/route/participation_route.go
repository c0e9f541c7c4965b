package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	participationCtrl "guildku_backend/internals/features/participations/controller"
)

// ParticipationAdminRoutes ledger nested di bawah session (butuh JWT admin).
func ParticipationAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := participationCtrl.NewParticipationController(db)

	ledger := r.Group("/sessions/:id/participations")
	ledger.Get("/", ctrl.ListBySession)
	ledger.Post("/bulk-upsert", ctrl.BulkUpsert)
	ledger.Delete("/:pid", ctrl.Delete)
}
