// file: internals/features/finance/payments/service/webhook_test.go
package service

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	stumodel "akademiku_backend/internals/features/academy/students/model"
	"akademiku_backend/internals/features/finance/payments/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&stumodel.StudentModel{}, &model.PaymentModel{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedDueStudentWithPayment(t *testing.T, db *gorm.DB) (stumodel.StudentModel, model.PaymentModel) {
	t.Helper()
	st := stumodel.StudentModel{
		StudentName:                "Citra",
		StudentStatus:              stumodel.StudentActive,
		StudentFeeStatus:           stumodel.FeeDue,
		StudentFeeAmount:           400000,
		StudentTotalClassesAllowed: 8,
		StudentClassesAttended:     8,
	}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	p := model.PaymentModel{
		PaymentStudentID: st.StudentID,
		PaymentAmount:    st.StudentFeeAmount,
		PaymentStatus:    model.PaymentStatusPending,
		PaymentOrderID:   "SPP-TEST-1",
		PaymentGateway:   "midtrans",
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return st, p
}

func TestWebhookSettlementResetsBillingCycle(t *testing.T) {
	db := newTestDB(t)
	st, p := seedDueStudentWithPayment(t, db)

	err := HandlePaymentStatusWebhook(db, map[string]interface{}{
		"order_id":           p.PaymentOrderID,
		"transaction_status": "settlement",
		"payment_type":       "gopay",
	})
	if err != nil {
		t.Fatalf("webhook: %v", err)
	}

	var pay model.PaymentModel
	db.Where("payment_order_id = ?", p.PaymentOrderID).Take(&pay)
	if pay.PaymentStatus != model.PaymentStatusPaid || pay.PaymentPaidAt == nil {
		t.Fatalf("payment not marked paid: %+v", pay)
	}
	if pay.PaymentMethod == nil || *pay.PaymentMethod != "gopay" {
		t.Fatalf("payment method not captured: %v", pay.PaymentMethod)
	}

	var got stumodel.StudentModel
	db.Where("student_id = ?", st.StudentID).Take(&got)
	if got.StudentClassesAttended != 0 {
		t.Fatalf("classes attended = %d, want 0 (siklus reset)", got.StudentClassesAttended)
	}
	if got.StudentFeeStatus != stumodel.FeePaid {
		t.Fatalf("fee status = %s, want paid", got.StudentFeeStatus)
	}
}

func TestWebhookDuplicateSettlementIdempotent(t *testing.T) {
	db := newTestDB(t)
	st, p := seedDueStudentWithPayment(t, db)

	body := map[string]interface{}{
		"order_id":           p.PaymentOrderID,
		"transaction_status": "settlement",
	}
	if err := HandlePaymentStatusWebhook(db, body); err != nil {
		t.Fatalf("first webhook: %v", err)
	}

	// siswa sempat hadir lagi di siklus baru
	if err := db.Model(&stumodel.StudentModel{}).
		Where("student_id = ?", st.StudentID).
		Update("student_classes_attended", 3).Error; err != nil {
		t.Fatalf("advance cycle: %v", err)
	}

	// notifikasi dobel tidak boleh mereset ulang
	if err := HandlePaymentStatusWebhook(db, body); err != nil {
		t.Fatalf("duplicate webhook: %v", err)
	}
	var got stumodel.StudentModel
	db.Where("student_id = ?", st.StudentID).Take(&got)
	if got.StudentClassesAttended != 3 {
		t.Fatalf("duplicate webhook reset the cycle: attended = %d", got.StudentClassesAttended)
	}
}

func TestWebhookExpireLeavesStudentAlone(t *testing.T) {
	db := newTestDB(t)
	st, p := seedDueStudentWithPayment(t, db)

	err := HandlePaymentStatusWebhook(db, map[string]interface{}{
		"order_id":           p.PaymentOrderID,
		"transaction_status": "expire",
	})
	if err != nil {
		t.Fatalf("webhook: %v", err)
	}

	var pay model.PaymentModel
	db.Where("payment_order_id = ?", p.PaymentOrderID).Take(&pay)
	if pay.PaymentStatus != model.PaymentStatusExpired {
		t.Fatalf("payment status = %s, want expired", pay.PaymentStatus)
	}

	var got stumodel.StudentModel
	db.Where("student_id = ?", st.StudentID).Take(&got)
	if got.StudentFeeStatus != stumodel.FeeDue || got.StudentClassesAttended != 8 {
		t.Fatalf("expire mutated student: %+v", got)
	}
}

func TestWebhookRejectsBadPayload(t *testing.T) {
	db := newTestDB(t)

	if err := HandlePaymentStatusWebhook(db, map[string]interface{}{"order_id": "X"}); err == nil {
		t.Fatal("missing transaction_status should fail")
	}
	if err := HandlePaymentStatusWebhook(db, map[string]interface{}{
		"order_id":           "UNKNOWN",
		"transaction_status": "settlement",
	}); err == nil {
		t.Fatal("unknown order_id should fail")
	}
}
