// file: internals/route/details/academy_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	groupRoute "akademiku_backend/internals/features/academy/groups/route"
	schedRoute "akademiku_backend/internals/features/academy/schedules/route"
	sesRoute "akademiku_backend/internals/features/academy/sessions/route"
	stuRoute "akademiku_backend/internals/features/academy/students/route"
)

// AcademyAdminRoutes: seluruh fitur akademik untuk operator (/api/a)
func AcademyAdminRoutes(admin fiber.Router, db *gorm.DB) {
	stuRoute.StudentAdminRoutes(admin, db)
	groupRoute.GroupAdminRoutes(admin, db)
	schedRoute.ClassScheduleAdminRoutes(admin, db)
	sesRoute.ClassSessionAdminRoutes(admin, db)
}

// AcademyPortalRoutes: endpoint siswa (/api/u)
func AcademyPortalRoutes(portal fiber.Router, db *gorm.DB) {
	stuRoute.StudentPortalRoutes(portal, db)
}
