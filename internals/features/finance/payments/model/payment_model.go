// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Constants ===================== */

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusExpired  = "expired"
	PaymentStatusCanceled = "canceled"
)

/* ===================== Model ===================== */

// PaymentModel: tagihan SPP satu siklus untuk satu siswa, dibayar via
// Midtrans Snap. order_id unik dipakai webhook untuk lookup.
type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"type:uuid;primaryKey;column:payment_id" json:"payment_id"`

	PaymentStudentID uuid.UUID `gorm:"type:uuid;not null;column:payment_student_id;index" json:"payment_student_id"`

	PaymentAmount  int    `gorm:"not null;check:payment_amount > 0;column:payment_amount" json:"payment_amount"`
	PaymentStatus  string `gorm:"type:varchar(20);default:'pending';column:payment_status" json:"payment_status"`
	PaymentOrderID string `gorm:"type:varchar(100);not null;unique;column:payment_order_id" json:"payment_order_id"`

	PaymentToken   *string `gorm:"type:text;column:payment_token" json:"payment_token,omitempty"`
	PaymentGateway string  `gorm:"type:varchar(50);default:'midtrans';column:payment_gateway" json:"payment_gateway"`
	PaymentMethod  *string `gorm:"type:varchar(50);column:payment_method" json:"payment_method,omitempty"`

	PaymentPaidAt *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`

	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"payment_deleted_at,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

func (p *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}
