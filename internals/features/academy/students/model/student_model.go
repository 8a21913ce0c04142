// file: internals/features/academy/students/model/student_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Enum
========================= */

type StudentStatus string

const (
	StudentActive StudentStatus = "active"
	StudentBreak  StudentStatus = "break" // siswa cuti: tidak ikut proyeksi jadwal
)

type FeeStatus string

const (
	FeePaid    FeeStatus = "paid"
	FeeDue     FeeStatus = "due"
	FeeBlocked FeeStatus = "blocked"
)

/* =========================
   Model: StudentModel
========================= */

type StudentModel struct {
	StudentID uuid.UUID `gorm:"type:uuid;primaryKey;column:student_id" json:"student_id"`

	StudentName  string  `gorm:"not null;column:student_name" json:"student_name"`
	StudentPhone *string `gorm:"column:student_phone" json:"student_phone,omitempty"`

	StudentStatus StudentStatus `gorm:"type:varchar(10);not null;default:'active';column:student_status;index" json:"student_status"`

	// Siklus tagihan: classes_attended hanya naik selama satu siklus;
	// reset ke 0 hanya lewat konfirmasi pembayaran (fitur finance/payments).
	StudentFeeAmount           int       `gorm:"not null;default:0;column:student_fee_amount" json:"student_fee_amount"`
	StudentTotalClassesAllowed int       `gorm:"not null;default:8;column:student_total_classes_allowed" json:"student_total_classes_allowed"`
	StudentClassesAttended     int       `gorm:"not null;default:0;column:student_classes_attended" json:"student_classes_attended"`
	StudentFeeStatus           FeeStatus `gorm:"type:varchar(10);not null;default:'paid';column:student_fee_status" json:"student_fee_status"`

	// Kurikulum
	StudentAssignedTopics    datatypes.JSON `gorm:"column:student_assigned_topics" json:"student_assigned_topics,omitempty"`
	StudentCurrentTopicIndex int            `gorm:"not null;default:0;column:student_current_topic_index" json:"student_current_topic_index"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

func (s *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if s.StudentID == uuid.Nil {
		s.StudentID = uuid.New()
	}
	return nil
}

// Topics: decode daftar topik terurut (JSONB). Gagal decode dianggap kosong.
func (s *StudentModel) Topics() []string {
	if len(s.StudentAssignedTopics) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(s.StudentAssignedTopics, &out); err != nil {
		return nil
	}
	return out
}

// SetTopics: encode daftar topik terurut ke kolom JSONB
func (s *StudentModel) SetTopics(topics []string) {
	if len(topics) == 0 {
		s.StudentAssignedTopics = nil
		return
	}
	if b, err := json.Marshal(topics); err == nil {
		s.StudentAssignedTopics = datatypes.JSON(b)
	}
}

// RemainingClasses: sisa jatah kelas pada siklus berjalan (boleh negatif)
func (s *StudentModel) RemainingClasses() int {
	return s.StudentTotalClassesAllowed - s.StudentClassesAttended
}
