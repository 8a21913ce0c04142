package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gCtrl "akademiku_backend/internals/features/academy/groups/controller"
)

func GroupAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := gCtrl.NewGroupController(db)

	g := r.Group("/groups")
	g.Post("/", ctrl.Create)
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
	g.Patch("/:id", ctrl.Patch)
	g.Delete("/:id", ctrl.Delete)

	// keanggotaan
	g.Get("/:id/members", ctrl.ListMembers)
	g.Post("/:id/members", ctrl.AddMember)
	g.Delete("/:id/members/:student_id", ctrl.RemoveMember)
}
