// file: internals/features/finance/payments/service/webhook.go
package service

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"akademiku_backend/internals/features/academy/students/model"
	paymentModel "akademiku_backend/internals/features/finance/payments/model"
	"akademiku_backend/internals/helpers/cachebox"
)

// HandlePaymentStatusWebhook dipanggil saat menerima notifikasi dari Midtrans.
// capture/settlement = konfirmasi bayar → siklus tagihan siswa di-reset.
func HandlePaymentStatusWebhook(db *gorm.DB, body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)

	if !ok1 || !ok2 {
		log.Println("[ERROR] Payload webhook tidak lengkap:", body)
		return fmt.Errorf("invalid payload")
	}

	log.Println("📄 Order ID:", orderID)
	log.Println("📌 Transaction Status:", status)

	var payment paymentModel.PaymentModel
	if err := db.Where("payment_order_id = ?", orderID).First(&payment).Error; err != nil {
		log.Println("[ERROR] Payment tidak ditemukan:", err)
		return fmt.Errorf("payment with order_id %s not found", orderID)
	}

	switch status {
	case "capture", "settlement":
		// idempotent: notifikasi bisa terkirim lebih dari sekali
		if payment.PaymentStatus == paymentModel.PaymentStatusPaid {
			log.Println("[INFO] Payment sudah paid, notifikasi duplikat diabaikan:", orderID)
			return nil
		}
		now := time.Now()
		payment.PaymentStatus = paymentModel.PaymentStatusPaid
		payment.PaymentPaidAt = &now
		if m, ok := body["payment_type"].(string); ok && m != "" {
			payment.PaymentMethod = &m
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&payment).Error; err != nil {
				return err
			}
			// reset siklus: hitungan hadir kembali 0, status fee kembali paid
			return tx.Model(&model.StudentModel{}).
				Where("student_id = ?", payment.PaymentStudentID).
				Updates(map[string]interface{}{
					"student_classes_attended": 0,
					"student_fee_status":       model.FeePaid,
				}).Error
		}); err != nil {
			log.Println("[ERROR] Gagal memproses pembayaran:", err)
			return err
		}
		cachebox.Default.Invalidate(cachebox.KeyStudents)
		return nil

	case "expire":
		payment.PaymentStatus = paymentModel.PaymentStatusExpired
	case "cancel", "deny":
		payment.PaymentStatus = paymentModel.PaymentStatusCanceled
	default:
		log.Println("[INFO] Status tidak diproses:", status)
		return nil
	}

	if err := db.Save(&payment).Error; err != nil {
		log.Println("[ERROR] Gagal menyimpan status payment:", err)
		return err
	}
	return nil
}
