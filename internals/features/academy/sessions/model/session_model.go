// file: internals/features/academy/sessions/model/session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* =========================
   Enum
========================= */

type SessionStatus string

const (
	SessionUpcoming  SessionStatus = "upcoming"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// DefaultTopic: placeholder topik sesi sebelum operator mengisinya
const DefaultTopic = "Materi belum ditentukan"

// Namespace UUIDv5 untuk id deterministik. Jangan diubah: id sesi dan
// kehadiran lama diturunkan dari nilai-nilai ini.
var (
	sessionNamespace    = uuid.MustParse("7c9f2a4e-1b3d-4e5f-8a60-92d14c08b7aa")
	attendanceNamespace = uuid.MustParse("4d81c6f0-9a2b-4c7d-b3e5-5f0a78e1c244")
	homeworkNamespace   = uuid.MustParse("b2f4e8d6-3c5a-47b9-9d10-6e82a4f0c933")
)

// SessionID: id deterministik dari (ruleID, waktu mulai) — proyeksi ulang
// untuk rule+slot yang sama selalu menghasilkan id identik (idempotent).
func SessionID(scheduleID uuid.UUID, startsAt time.Time) uuid.UUID {
	return uuid.NewSHA1(sessionNamespace, []byte(scheduleID.String()+"|"+startsAt.UTC().Format(time.RFC3339)))
}

// AttendanceRecordID: id deterministik dari (sessionID, studentID)
func AttendanceRecordID(sessionID, studentID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(attendanceNamespace, []byte(sessionID.String()+"|"+studentID.String()))
}

// HomeworkID: id deterministik dari (sessionID, studentID)
func HomeworkID(sessionID, studentID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(homeworkNamespace, []byte(sessionID.String()+"|"+studentID.String()))
}

/* =========================
   Model: ClassSessionModel
========================= */

// ClassSessionModel: satu kemunculan kelas hasil proyeksi rule.
// Sengaja TANPA soft delete: retraksi harus benar-benar menghapus baris
// supaya regenerasi dengan PK deterministik tidak bentrok dengan baris mati.
type ClassSessionModel struct {
	ClassSessionID uuid.UUID `gorm:"type:uuid;primaryKey;column:class_session_id" json:"class_session_id"`

	// Back-reference ke rule (weak reference, dipakai untuk retraksi)
	ClassSessionScheduleID *uuid.UUID `gorm:"type:uuid;column:class_session_schedule_id;index;uniqueIndex:uq_class_sessions_slot" json:"class_session_schedule_id,omitempty"`

	// Target didenormalisasi dari rule saat proyeksi
	ClassSessionStudentID *uuid.UUID `gorm:"type:uuid;column:class_session_student_id;index" json:"class_session_student_id,omitempty"`
	ClassSessionGroupID   *uuid.UUID `gorm:"type:uuid;column:class_session_group_id;index" json:"class_session_group_id,omitempty"`

	ClassSessionStartsAt time.Time `gorm:"not null;column:class_session_starts_at;index;uniqueIndex:uq_class_sessions_slot" json:"class_session_starts_at"`
	ClassSessionEndsAt   time.Time `gorm:"not null;column:class_session_ends_at" json:"class_session_ends_at"`

	ClassSessionStatus SessionStatus `gorm:"type:varchar(10);not null;default:'upcoming';column:class_session_status;index" json:"class_session_status"`
	ClassSessionTopic  string        `gorm:"not null;column:class_session_topic" json:"class_session_topic"`

	ClassSessionCreatedAt time.Time `gorm:"column:class_session_created_at;autoCreateTime" json:"class_session_created_at"`
	ClassSessionUpdatedAt time.Time `gorm:"column:class_session_updated_at;autoUpdateTime" json:"class_session_updated_at"`
}

func (ClassSessionModel) TableName() string { return "class_sessions" }

// IsGroup: sesi grup atau individu
func (s *ClassSessionModel) IsGroup() bool { return s.ClassSessionGroupID != nil }
