// file: internals/features/academy/sessions/model/attendance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecordModel: hasil kehadiran per (sesi, siswa). PK deterministik
// (lihat AttendanceRecordID) sekaligus jadi kunci anti-dobel-kredit saat
// finalize diulang.
type AttendanceRecordModel struct {
	AttendanceRecordID uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_record_id" json:"attendance_record_id"`

	AttendanceRecordSessionID uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_session_id;index" json:"attendance_record_session_id"`
	AttendanceRecordStudentID uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_student_id;index" json:"attendance_record_student_id"`

	AttendanceRecordPresent bool `gorm:"not null;column:attendance_record_present" json:"attendance_record_present"`

	// Snapshot topik sesi saat finalize
	AttendanceRecordTopic string `gorm:"column:attendance_record_topic" json:"attendance_record_topic"`

	AttendanceRecordCreatedAt time.Time `gorm:"column:attendance_record_created_at;autoCreateTime" json:"attendance_record_created_at"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }

/* =========================
   Enum & Model: Homework
========================= */

type HomeworkStatus string

const (
	HomeworkPending HomeworkStatus = "pending"
	HomeworkDone    HomeworkStatus = "done"
)

// HomeworkModel: PR opsional hasil finalize, hanya untuk siswa hadir dengan
// pesan/link non-kosong.
type HomeworkModel struct {
	HomeworkID uuid.UUID `gorm:"type:uuid;primaryKey;column:homework_id" json:"homework_id"`

	HomeworkSessionID uuid.UUID `gorm:"type:uuid;not null;column:homework_session_id;index" json:"homework_session_id"`
	HomeworkStudentID uuid.UUID `gorm:"type:uuid;not null;column:homework_student_id;index" json:"homework_student_id"`

	HomeworkMessage string  `gorm:"column:homework_message" json:"homework_message"`
	HomeworkLink    *string `gorm:"column:homework_link" json:"homework_link,omitempty"`

	HomeworkDueAt  time.Time      `gorm:"not null;column:homework_due_at" json:"homework_due_at"`
	HomeworkStatus HomeworkStatus `gorm:"type:varchar(10);not null;default:'pending';column:homework_status" json:"homework_status"`

	HomeworkCreatedAt time.Time `gorm:"column:homework_created_at;autoCreateTime" json:"homework_created_at"`
	HomeworkUpdatedAt time.Time `gorm:"column:homework_updated_at;autoUpdateTime" json:"homework_updated_at"`
}

func (HomeworkModel) TableName() string { return "homeworks" }
