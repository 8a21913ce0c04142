package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	stuCtrl "akademiku_backend/internals/features/academy/students/controller"
)

func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := stuCtrl.NewStudentController(db)

	g := r.Group("/students")
	g.Post("/", ctrl.Create)
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
	g.Patch("/:id", ctrl.Patch) // termasuk active <-> break
	g.Delete("/:id", ctrl.Delete)
}
