// file: internals/features/academy/schedules/dto/schedule_dto.go
package dto

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"

	m "akademiku_backend/internals/features/academy/schedules/model"
	"akademiku_backend/internals/helpers/dbtime"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateClassScheduleRequest struct {
	// Tepat satu dari student_id / group_id
	ClassScheduleStudentID *uuid.UUID `json:"class_schedule_student_id" validate:"omitempty"`
	ClassScheduleGroupID   *uuid.UUID `json:"class_schedule_group_id" validate:"omitempty"`

	// 0=Minggu..6=Sabtu
	ClassScheduleDays []int64 `json:"class_schedule_days" validate:"required,min=1,dive,min=0,max=6"`

	ClassScheduleStartTime dbtime.Tod `json:"class_schedule_start_time"`
	ClassScheduleEndTime   dbtime.Tod `json:"class_schedule_end_time"`

	ClassScheduleStartDate string `json:"class_schedule_start_date" validate:"required,datetime=2006-01-02"`

	ClassScheduleIsActive *bool `json:"class_schedule_is_active" validate:"omitempty"`
}

// Validate: aturan yang tidak tertangkap tag validator
func (r *CreateClassScheduleRequest) Validate() error {
	if (r.ClassScheduleStudentID == nil) == (r.ClassScheduleGroupID == nil) {
		return fiber.NewError(fiber.StatusBadRequest, "Target jadwal harus tepat satu: student_id atau group_id")
	}
	if !r.ClassScheduleEndTime.AfterTod(r.ClassScheduleStartTime) {
		return fiber.NewError(fiber.StatusBadRequest, "end_time harus setelah start_time")
	}
	return nil
}

func (r *CreateClassScheduleRequest) ToModel() (m.ClassScheduleModel, error) {
	startDate, err := time.ParseInLocation("2006-01-02", r.ClassScheduleStartDate, time.Local)
	if err != nil {
		return m.ClassScheduleModel{}, fiber.NewError(fiber.StatusBadRequest, "start_date invalid (YYYY-MM-DD)")
	}
	active := true
	if r.ClassScheduleIsActive != nil {
		active = *r.ClassScheduleIsActive
	}
	return m.ClassScheduleModel{
		ClassScheduleStudentID: r.ClassScheduleStudentID,
		ClassScheduleGroupID:   r.ClassScheduleGroupID,
		ClassScheduleDays:      pq.Int64Array(r.ClassScheduleDays),
		ClassScheduleStartTime: r.ClassScheduleStartTime,
		ClassScheduleEndTime:   r.ClassScheduleEndTime,
		ClassScheduleStartDate: startDate,
		ClassScheduleIsActive:  active,
	}, nil
}

// Update (partial)
type UpdateClassScheduleRequest struct {
	ClassScheduleDays      []int64     `json:"class_schedule_days" validate:"omitempty,min=1,dive,min=0,max=6"`
	ClassScheduleStartTime *dbtime.Tod `json:"class_schedule_start_time" validate:"omitempty"`
	ClassScheduleEndTime   *dbtime.Tod `json:"class_schedule_end_time" validate:"omitempty"`
	ClassScheduleStartDate *string     `json:"class_schedule_start_date" validate:"omitempty,datetime=2006-01-02"`
	ClassScheduleIsActive  *bool       `json:"class_schedule_is_active" validate:"omitempty"`
}

// Apply: terapkan field yang dikirim saja, lalu cek invariant hasil akhirnya
func (r *UpdateClassScheduleRequest) Apply(sched *m.ClassScheduleModel) error {
	if len(r.ClassScheduleDays) > 0 {
		sched.ClassScheduleDays = pq.Int64Array(r.ClassScheduleDays)
	}
	if r.ClassScheduleStartTime != nil {
		sched.ClassScheduleStartTime = *r.ClassScheduleStartTime
	}
	if r.ClassScheduleEndTime != nil {
		sched.ClassScheduleEndTime = *r.ClassScheduleEndTime
	}
	if r.ClassScheduleStartDate != nil {
		startDate, err := time.ParseInLocation("2006-01-02", *r.ClassScheduleStartDate, time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_date invalid (YYYY-MM-DD)")
		}
		sched.ClassScheduleStartDate = startDate
	}
	if r.ClassScheduleIsActive != nil {
		sched.ClassScheduleIsActive = *r.ClassScheduleIsActive
	}

	if sched.ClassScheduleIsActive && len(sched.ClassScheduleDays) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Jadwal aktif butuh minimal satu hari")
	}
	if !sched.ClassScheduleEndTime.AfterTod(sched.ClassScheduleStartTime) {
		return fiber.NewError(fiber.StatusBadRequest, "end_time harus setelah start_time")
	}
	return nil
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type ClassScheduleResponse struct {
	ClassScheduleID        uuid.UUID  `json:"class_schedule_id"`
	ClassScheduleStudentID *uuid.UUID `json:"class_schedule_student_id,omitempty"`
	ClassScheduleGroupID   *uuid.UUID `json:"class_schedule_group_id,omitempty"`
	ClassScheduleDays      []int64    `json:"class_schedule_days"`
	ClassScheduleStartTime string     `json:"class_schedule_start_time"`
	ClassScheduleEndTime   string     `json:"class_schedule_end_time"`
	ClassScheduleStartDate string     `json:"class_schedule_start_date"`
	ClassScheduleIsActive  bool       `json:"class_schedule_is_active"`
	ClassScheduleCreatedAt time.Time  `json:"class_schedule_created_at"`
	ClassScheduleUpdatedAt time.Time  `json:"class_schedule_updated_at"`
}

func FromClassScheduleModel(mdl m.ClassScheduleModel) ClassScheduleResponse {
	return ClassScheduleResponse{
		ClassScheduleID:        mdl.ClassScheduleID,
		ClassScheduleStudentID: mdl.ClassScheduleStudentID,
		ClassScheduleGroupID:   mdl.ClassScheduleGroupID,
		ClassScheduleDays:      []int64(mdl.ClassScheduleDays),
		ClassScheduleStartTime: mdl.ClassScheduleStartTime.Format("15:04"),
		ClassScheduleEndTime:   mdl.ClassScheduleEndTime.Format("15:04"),
		ClassScheduleStartDate: mdl.ClassScheduleStartDate.Format("2006-01-02"),
		ClassScheduleIsActive:  mdl.ClassScheduleIsActive,
		ClassScheduleCreatedAt: mdl.ClassScheduleCreatedAt,
		ClassScheduleUpdatedAt: mdl.ClassScheduleUpdatedAt,
	}
}
