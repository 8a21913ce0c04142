// file: internals/features/academy/students/dto/student_dto.go
package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "akademiku_backend/internals/features/academy/students/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateStudentRequest struct {
	StudentName  string  `json:"student_name" validate:"required,max=120"`
	StudentPhone *string `json:"student_phone" validate:"omitempty,max=30"`

	StudentFeeAmount           int `json:"student_fee_amount" validate:"omitempty,min=0"`
	StudentTotalClassesAllowed int `json:"student_total_classes_allowed" validate:"omitempty,min=1"`

	StudentAssignedTopics []string `json:"student_assigned_topics" validate:"omitempty,dive,max=200"`
}

func (r *CreateStudentRequest) ToModel() m.StudentModel {
	mdl := m.StudentModel{
		StudentName:                r.StudentName,
		StudentPhone:               r.StudentPhone,
		StudentStatus:              m.StudentActive,
		StudentFeeAmount:           r.StudentFeeAmount,
		StudentTotalClassesAllowed: r.StudentTotalClassesAllowed,
		StudentFeeStatus:           m.FeePaid,
	}
	if mdl.StudentTotalClassesAllowed == 0 {
		mdl.StudentTotalClassesAllowed = 8
	}
	if len(r.StudentAssignedTopics) > 0 {
		if b, err := json.Marshal(r.StudentAssignedTopics); err == nil {
			mdl.StudentAssignedTopics = datatypes.JSON(b)
		}
	}
	return mdl
}

// Update (partial). Perubahan status memicu proyeksi ulang di controller.
type UpdateStudentRequest struct {
	StudentName  *string `json:"student_name" validate:"omitempty,max=120"`
	StudentPhone *string `json:"student_phone" validate:"omitempty,max=30"`

	StudentStatus *m.StudentStatus `json:"student_status" validate:"omitempty,oneof=active break"`

	StudentFeeAmount           *int `json:"student_fee_amount" validate:"omitempty,min=0"`
	StudentTotalClassesAllowed *int `json:"student_total_classes_allowed" validate:"omitempty,min=1"`

	StudentAssignedTopics []string `json:"student_assigned_topics" validate:"omitempty,dive,max=200"`
}

func (r *UpdateStudentRequest) Apply(st *m.StudentModel) {
	if r.StudentName != nil {
		st.StudentName = *r.StudentName
	}
	if r.StudentPhone != nil {
		st.StudentPhone = r.StudentPhone
	}
	if r.StudentStatus != nil {
		st.StudentStatus = *r.StudentStatus
	}
	if r.StudentFeeAmount != nil {
		st.StudentFeeAmount = *r.StudentFeeAmount
	}
	if r.StudentTotalClassesAllowed != nil {
		st.StudentTotalClassesAllowed = *r.StudentTotalClassesAllowed
	}
	if r.StudentAssignedTopics != nil {
		if b, err := json.Marshal(r.StudentAssignedTopics); err == nil {
			st.StudentAssignedTopics = datatypes.JSON(b)
		}
	}
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type StudentResponse struct {
	StudentID     uuid.UUID       `json:"student_id"`
	StudentName   string          `json:"student_name"`
	StudentPhone  *string         `json:"student_phone,omitempty"`
	StudentStatus m.StudentStatus `json:"student_status"`

	StudentFeeAmount           int         `json:"student_fee_amount"`
	StudentTotalClassesAllowed int         `json:"student_total_classes_allowed"`
	StudentClassesAttended     int         `json:"student_classes_attended"`
	StudentRemainingClasses    int         `json:"student_remaining_classes"`
	StudentFeeStatus           m.FeeStatus `json:"student_fee_status"`

	StudentAssignedTopics    []string `json:"student_assigned_topics,omitempty"`
	StudentCurrentTopicIndex int      `json:"student_current_topic_index"`

	StudentCreatedAt time.Time `json:"student_created_at"`
	StudentUpdatedAt time.Time `json:"student_updated_at"`
}

func FromStudentModel(mdl m.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:                  mdl.StudentID,
		StudentName:                mdl.StudentName,
		StudentPhone:               mdl.StudentPhone,
		StudentStatus:              mdl.StudentStatus,
		StudentFeeAmount:           mdl.StudentFeeAmount,
		StudentTotalClassesAllowed: mdl.StudentTotalClassesAllowed,
		StudentClassesAttended:     mdl.StudentClassesAttended,
		StudentRemainingClasses:    mdl.RemainingClasses(),
		StudentFeeStatus:           mdl.StudentFeeStatus,
		StudentAssignedTopics:      mdl.Topics(),
		StudentCurrentTopicIndex:   mdl.StudentCurrentTopicIndex,
		StudentCreatedAt:           mdl.StudentCreatedAt,
		StudentUpdatedAt:           mdl.StudentUpdatedAt,
	}
}

func FromStudentModels(rows []m.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromStudentModel(r))
	}
	return out
}
