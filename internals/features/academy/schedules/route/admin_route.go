package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schedCtrl "akademiku_backend/internals/features/academy/schedules/controller"
)

func ClassScheduleAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := schedCtrl.NewClassScheduleController(db)

	g := r.Group("/class-schedules")
	g.Post("/", ctrl.Create) // save = proyeksi langsung
	g.Get("/", ctrl.List)
	g.Post("/resync", ctrl.Resync) // sebelum "/:id" supaya tidak ketangkap param
	g.Get("/:id", ctrl.GetByID)
	g.Patch("/:id", ctrl.Patch)
	g.Post("/:id/deactivate", ctrl.Deactivate)
	g.Delete("/:id", ctrl.Delete)
}
