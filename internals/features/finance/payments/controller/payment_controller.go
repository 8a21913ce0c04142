// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	stumodel "akademiku_backend/internals/features/academy/students/model"
	"akademiku_backend/internals/features/finance/payments/dto"
	"akademiku_backend/internals/features/finance/payments/model"
	paymentService "akademiku_backend/internals/features/finance/payments/service"
	helper "akademiku_backend/internals/helpers"
)

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

var validate = validator.New()

func (ctrl *PaymentController) MidtransWebhookPing(c *fiber.Ctx) error {
	log.Println("✅ Midtrans ping (GET) received")
	return c.Status(fiber.StatusOK).SendString("OK")
}

/* ===================== CREATE (Snap checkout) ===================== */
// POST /api/a/payments
func (ctrl *PaymentController) CreatePayment(c *fiber.Ctx) error {
	var body dto.CreatePaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var st stumodel.StudentModel
	if err := ctrl.DB.Where("student_id = ?", body.StudentID).Take(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	amount := st.StudentFeeAmount
	if body.Amount != nil {
		amount = *body.Amount
	}
	if amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nominal tagihan belum diset untuk siswa ini")
	}

	orderID := fmt.Sprintf("SPP-%d", time.Now().UnixNano())

	// 1) Insert row pending
	payment := model.PaymentModel{
		PaymentStudentID: st.StudentID,
		PaymentAmount:    amount,
		PaymentStatus:    model.PaymentStatusPending,
		PaymentOrderID:   orderID,
		PaymentGateway:   "midtrans",
	}
	if err := ctrl.DB.Create(&payment).Error; err != nil {
		log.Println("[ERROR] Failed to create payment:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan tagihan")
	}

	// 2) Snap token
	email := ""
	if body.Email != nil {
		email = *body.Email
	}
	token, redirectURL, err := paymentService.GenerateSnapToken(payment, st.StudentName, email)
	if err != nil {
		log.Println("[ERROR] GenerateSnapToken failed:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat token pembayaran")
	}

	// 3) Update token
	if err := ctrl.DB.Model(&payment).Update("payment_token", &token).Error; err != nil {
		log.Println("[ERROR] Failed to update token:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui token pembayaran")
	}

	return helper.JsonCreated(c, "OK", dto.SnapCheckoutResponse{
		OrderID:     orderID,
		SnapToken:   token,
		RedirectURL: redirectURL,
	})
}

/* ===================== WEBHOOK ===================== */
// POST /api/payments/webhook (tanpa auth — dipanggil Midtrans)
func (ctrl *PaymentController) MidtransWebhook(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid webhook payload")
	}

	if err := paymentService.HandlePaymentStatusWebhook(ctrl.DB, body); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

/* ===================== LIST ===================== */
// GET /api/a/payments?student_id=&status=
func (ctrl *PaymentController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PaymentModel{})
	if s := c.Query("student_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("payment_student_id = ?", id)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("payment_status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.PaymentModel
	if err := q.Order("payment_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.FromPaymentModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
