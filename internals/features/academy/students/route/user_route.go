package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	stuCtrl "akademiku_backend/internals/features/academy/students/controller"
)

// StudentPortalRoutes: endpoint baca-saja untuk siswa (scope dari JWT)
func StudentPortalRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := stuCtrl.NewStudentPortalController(db)

	r.Get("/me", ctrl.Overview)
	r.Get("/attendance", ctrl.AttendanceHistory)
}
