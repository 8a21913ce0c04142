// file: internals/features/academy/schedules/model/schedule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"akademiku_backend/internals/helpers/dbtime"
)

// ClassScheduleModel: aturan berulang mingguan (recurrence rule).
// Target tepat satu dari {student_id, group_id}; rule non-aktif tidak
// menghasilkan sesi baru dan sesi mendatangnya ditarik.
type ClassScheduleModel struct {
	ClassScheduleID uuid.UUID `gorm:"type:uuid;primaryKey;column:class_schedule_id" json:"class_schedule_id"`

	// Target (mutually exclusive)
	ClassScheduleStudentID *uuid.UUID `gorm:"type:uuid;column:class_schedule_student_id;index" json:"class_schedule_student_id,omitempty"`
	ClassScheduleGroupID   *uuid.UUID `gorm:"type:uuid;column:class_schedule_group_id;index" json:"class_schedule_group_id,omitempty"`

	// Pola mingguan: 0=Minggu..6=Sabtu
	ClassScheduleDays      pq.Int64Array `gorm:"type:int[];not null;column:class_schedule_days" json:"class_schedule_days"`
	ClassScheduleStartTime dbtime.Tod    `gorm:"type:time;not null;column:class_schedule_start_time" json:"class_schedule_start_time"`
	ClassScheduleEndTime   dbtime.Tod    `gorm:"type:time;not null;column:class_schedule_end_time" json:"class_schedule_end_time"`

	// Mulai berlaku
	ClassScheduleStartDate time.Time `gorm:"type:date;not null;column:class_schedule_start_date" json:"class_schedule_start_date"`

	ClassScheduleIsActive bool `gorm:"not null;default:true;column:class_schedule_is_active;index" json:"class_schedule_is_active"`

	ClassScheduleCreatedAt time.Time      `gorm:"column:class_schedule_created_at;autoCreateTime" json:"class_schedule_created_at"`
	ClassScheduleUpdatedAt time.Time      `gorm:"column:class_schedule_updated_at;autoUpdateTime" json:"class_schedule_updated_at"`
	ClassScheduleDeletedAt gorm.DeletedAt `gorm:"column:class_schedule_deleted_at;index" json:"class_schedule_deleted_at,omitempty"`
}

func (ClassScheduleModel) TableName() string { return "class_schedules" }

func (cs *ClassScheduleModel) BeforeCreate(tx *gorm.DB) error {
	if cs.ClassScheduleID == uuid.Nil {
		cs.ClassScheduleID = uuid.New()
	}
	return nil
}

// DaySet: himpunan weekday untuk walk harian projector
func (cs *ClassScheduleModel) DaySet() map[time.Weekday]bool {
	out := make(map[time.Weekday]bool, len(cs.ClassScheduleDays))
	for _, d := range cs.ClassScheduleDays {
		if d >= 0 && d <= 6 {
			out[time.Weekday(d)] = true
		}
	}
	return out
}
