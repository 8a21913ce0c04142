// file: internals/features/academy/groups/model/group_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupModel struct {
	GroupID uuid.UUID `gorm:"type:uuid;primaryKey;column:group_id" json:"group_id"`

	GroupName        string  `gorm:"not null;column:group_name" json:"group_name"`
	GroupDescription *string `gorm:"column:group_description" json:"group_description,omitempty"`

	GroupCreatedAt time.Time      `gorm:"column:group_created_at;autoCreateTime" json:"group_created_at"`
	GroupUpdatedAt time.Time      `gorm:"column:group_updated_at;autoUpdateTime" json:"group_updated_at"`
	GroupDeletedAt gorm.DeletedAt `gorm:"column:group_deleted_at;index" json:"group_deleted_at,omitempty"`
}

func (GroupModel) TableName() string { return "groups" }

func (g *GroupModel) BeforeCreate(tx *gorm.DB) error {
	if g.GroupID == uuid.Nil {
		g.GroupID = uuid.New()
	}
	return nil
}

/* =========================
   Keanggotaan grup
========================= */

type GroupStudentModel struct {
	GroupStudentID uuid.UUID `gorm:"type:uuid;primaryKey;column:group_student_id" json:"group_student_id"`

	GroupStudentGroupID   uuid.UUID `gorm:"type:uuid;not null;column:group_student_group_id;uniqueIndex:uq_group_students_member;index" json:"group_student_group_id"`
	GroupStudentStudentID uuid.UUID `gorm:"type:uuid;not null;column:group_student_student_id;uniqueIndex:uq_group_students_member;index" json:"group_student_student_id"`

	GroupStudentJoinedAt time.Time `gorm:"column:group_student_joined_at;autoCreateTime" json:"group_student_joined_at"`
}

func (GroupStudentModel) TableName() string { return "group_students" }

func (m *GroupStudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.GroupStudentID == uuid.Nil {
		m.GroupStudentID = uuid.New()
	}
	return nil
}
