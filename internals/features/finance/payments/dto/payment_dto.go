// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "akademiku_backend/internals/features/finance/payments/model"
)

// CreatePaymentRequest: buat tagihan SPP untuk siswa. Amount opsional —
// default mengikuti student_fee_amount.
type CreatePaymentRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Amount    *int      `json:"amount" validate:"omitempty,gt=0"`
	Email     *string   `json:"email" validate:"omitempty,email"`
}

type PaymentResponse struct {
	PaymentID        uuid.UUID  `json:"payment_id"`
	PaymentStudentID uuid.UUID  `json:"payment_student_id"`
	PaymentAmount    int        `json:"payment_amount"`
	PaymentStatus    string     `json:"payment_status"`
	PaymentOrderID   string     `json:"payment_order_id"`
	PaymentMethod    *string    `json:"payment_method,omitempty"`
	PaymentPaidAt    *time.Time `json:"payment_paid_at,omitempty"`
	PaymentCreatedAt time.Time  `json:"payment_created_at"`
}

func FromPaymentModel(mdl m.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:        mdl.PaymentID,
		PaymentStudentID: mdl.PaymentStudentID,
		PaymentAmount:    mdl.PaymentAmount,
		PaymentStatus:    mdl.PaymentStatus,
		PaymentOrderID:   mdl.PaymentOrderID,
		PaymentMethod:    mdl.PaymentMethod,
		PaymentPaidAt:    mdl.PaymentPaidAt,
		PaymentCreatedAt: mdl.PaymentCreatedAt,
	}
}

func FromPaymentModels(rows []m.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromPaymentModel(r))
	}
	return out
}

// SnapCheckoutResponse: hasil create — dipakai frontend untuk buka Snap
type SnapCheckoutResponse struct {
	OrderID     string `json:"order_id"`
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
}
