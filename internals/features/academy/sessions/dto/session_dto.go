// file: internals/features/academy/sessions/dto/session_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "akademiku_backend/internals/features/academy/sessions/model"
	svc "akademiku_backend/internals/features/academy/sessions/service"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type RescheduleSessionRequest struct {
	ClassSessionStartsAt time.Time `json:"class_session_starts_at" validate:"required"`
	ClassSessionEndsAt   time.Time `json:"class_session_ends_at" validate:"required"`
}

// FinalizeSessionRequest: hasil kehadiran per siswa. Daftar boleh parsial.
type FinalizeSessionRequest struct {
	Results []FinalizeResultItem `json:"results" validate:"required,min=1,dive"`
}

type FinalizeResultItem struct {
	StudentID       uuid.UUID `json:"student_id" validate:"required"`
	Present         bool      `json:"present"`
	HomeworkMessage *string   `json:"homework_message" validate:"omitempty,max=2000"`
	HomeworkLink    *string   `json:"homework_link" validate:"omitempty,url"`
}

func (r *FinalizeSessionRequest) ToServiceResults() []svc.StudentResult {
	out := make([]svc.StudentResult, 0, len(r.Results))
	for _, it := range r.Results {
		res := svc.StudentResult{
			StudentID: it.StudentID,
			Present:   it.Present,
		}
		if it.HomeworkMessage != nil || it.HomeworkLink != nil {
			hw := &svc.HomeworkInput{}
			if it.HomeworkMessage != nil {
				hw.Message = *it.HomeworkMessage
			}
			if it.HomeworkLink != nil {
				hw.Link = *it.HomeworkLink
			}
			res.Homework = hw
		}
		out = append(out, res)
	}
	return out
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type ClassSessionResponse struct {
	ClassSessionID         uuid.UUID       `json:"class_session_id"`
	ClassSessionScheduleID *uuid.UUID      `json:"class_session_schedule_id,omitempty"`
	ClassSessionStudentID  *uuid.UUID      `json:"class_session_student_id,omitempty"`
	ClassSessionGroupID    *uuid.UUID      `json:"class_session_group_id,omitempty"`
	ClassSessionStartsAt   time.Time       `json:"class_session_starts_at"`
	ClassSessionEndsAt     time.Time       `json:"class_session_ends_at"`
	ClassSessionStatus     m.SessionStatus `json:"class_session_status"`
	ClassSessionTopic      string          `json:"class_session_topic"`
}

func FromClassSessionModel(mdl m.ClassSessionModel) ClassSessionResponse {
	return ClassSessionResponse{
		ClassSessionID:         mdl.ClassSessionID,
		ClassSessionScheduleID: mdl.ClassSessionScheduleID,
		ClassSessionStudentID:  mdl.ClassSessionStudentID,
		ClassSessionGroupID:    mdl.ClassSessionGroupID,
		ClassSessionStartsAt:   mdl.ClassSessionStartsAt,
		ClassSessionEndsAt:     mdl.ClassSessionEndsAt,
		ClassSessionStatus:     mdl.ClassSessionStatus,
		ClassSessionTopic:      mdl.ClassSessionTopic,
	}
}

func FromClassSessionModels(rows []m.ClassSessionModel) []ClassSessionResponse {
	out := make([]ClassSessionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromClassSessionModel(r))
	}
	return out
}

type AttendanceRecordResponse struct {
	AttendanceRecordID        uuid.UUID `json:"attendance_record_id"`
	AttendanceRecordSessionID uuid.UUID `json:"attendance_record_session_id"`
	AttendanceRecordStudentID uuid.UUID `json:"attendance_record_student_id"`
	AttendanceRecordPresent   bool      `json:"attendance_record_present"`
	AttendanceRecordTopic     string    `json:"attendance_record_topic"`
	AttendanceRecordCreatedAt time.Time `json:"attendance_record_created_at"`
}

func FromAttendanceRecordModel(mdl m.AttendanceRecordModel) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		AttendanceRecordID:        mdl.AttendanceRecordID,
		AttendanceRecordSessionID: mdl.AttendanceRecordSessionID,
		AttendanceRecordStudentID: mdl.AttendanceRecordStudentID,
		AttendanceRecordPresent:   mdl.AttendanceRecordPresent,
		AttendanceRecordTopic:     mdl.AttendanceRecordTopic,
		AttendanceRecordCreatedAt: mdl.AttendanceRecordCreatedAt,
	}
}

type HomeworkResponse struct {
	HomeworkID        uuid.UUID        `json:"homework_id"`
	HomeworkSessionID uuid.UUID        `json:"homework_session_id"`
	HomeworkStudentID uuid.UUID        `json:"homework_student_id"`
	HomeworkMessage   string           `json:"homework_message"`
	HomeworkLink      *string          `json:"homework_link,omitempty"`
	HomeworkDueAt     time.Time        `json:"homework_due_at"`
	HomeworkStatus    m.HomeworkStatus `json:"homework_status"`
}

func FromHomeworkModel(mdl m.HomeworkModel) HomeworkResponse {
	return HomeworkResponse{
		HomeworkID:        mdl.HomeworkID,
		HomeworkSessionID: mdl.HomeworkSessionID,
		HomeworkStudentID: mdl.HomeworkStudentID,
		HomeworkMessage:   mdl.HomeworkMessage,
		HomeworkLink:      mdl.HomeworkLink,
		HomeworkDueAt:     mdl.HomeworkDueAt,
		HomeworkStatus:    mdl.HomeworkStatus,
	}
}
