// file: internals/route/details/finance_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	payRoute "akademiku_backend/internals/features/finance/payments/route"
)

// FinanceAdminRoutes: tagihan SPP untuk operator (/api/a)
func FinanceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	payRoute.PaymentAdminRoutes(admin, db)
}

// FinanceWebhookRoutes: endpoint publik Midtrans (/api)
func FinanceWebhookRoutes(public fiber.Router, db *gorm.DB) {
	payRoute.PaymentWebhookRoutes(public, db)
}
