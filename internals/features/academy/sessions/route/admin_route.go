package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sesCtrl "akademiku_backend/internals/features/academy/sessions/controller"
)

func ClassSessionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := sesCtrl.NewClassSessionController(db)

	g := r.Group("/class-sessions")
	g.Get("/agenda", ctrl.AgendaByDate)
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
	g.Patch("/:id/reschedule", ctrl.Reschedule)
	g.Patch("/:id/cancel", ctrl.Cancel)
	g.Post("/:id/finalize", ctrl.Finalize)
	g.Get("/:id/attendance", ctrl.ListAttendance)

	hw := r.Group("/homeworks")
	hw.Get("/", ctrl.ListHomeworks)
	hw.Patch("/:id/done", ctrl.MarkHomeworkDone)
}
