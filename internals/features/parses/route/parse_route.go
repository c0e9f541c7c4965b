package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	parseCtrl "guildku_backend/internals/features/parses/controller"
	"guildku_backend/internals/middlewares"
)

// ParseAdminRoutes endpoint parse job + reconcile (butuh JWT admin).
func ParseAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := parseCtrl.NewParseController(db)

	r.Post("/sessions/:id/parses", middlewares.ParseCreateRateLimiter(), ctrl.Create)
	r.Get("/sessions/:id/parses", ctrl.ListBySession)

	parses := r.Group("/parses")
	parses.Post("/:id/cancel", ctrl.Cancel)
	parses.Get("/:id/reconcile", ctrl.ReconcilePreview)
	parses.Post("/:id/reconcile", ctrl.ReconcileCommit)
}

// ParseCallbackRoutes webhook dari workflow eksternal, tanpa JWT.
// Path-nya masuk daftar skip di auth middleware.
func ParseCallbackRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := parseCtrl.NewParseController(db)
	app.Post("/api/v1/parses/callback", ctrl.Callback)
}
