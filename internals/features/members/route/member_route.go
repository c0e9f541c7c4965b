package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	memberCtrl "guildku_backend/internals/features/members/controller"
)

// MemberAdminRoutes endpoint pengelolaan anggota (butuh JWT admin).
func MemberAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := memberCtrl.NewMemberController(db)

	members := r.Group("/members")
	members.Get("/", ctrl.List)
	members.Post("/", ctrl.Create)
	members.Get("/:id", ctrl.GetByID)
	members.Put("/:id", ctrl.Update)
	members.Get("/:id/participations", ctrl.ListParticipations)
}
