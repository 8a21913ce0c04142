package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	payCtrl "akademiku_backend/internals/features/finance/payments/controller"
)

func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := payCtrl.NewPaymentController(db)

	g := r.Group("/payments")
	g.Post("/", ctrl.CreatePayment)
	g.Get("/", ctrl.List)
}

// PaymentWebhookRoutes: endpoint publik yang dipanggil Midtrans
func PaymentWebhookRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := payCtrl.NewPaymentController(db)

	g := r.Group("/payments")
	g.Get("/webhook", ctrl.MidtransWebhookPing)
	g.Post("/webhook", ctrl.MidtransWebhook)
}
