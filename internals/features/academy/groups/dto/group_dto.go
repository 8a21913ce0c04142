// file: internals/features/academy/groups/dto/group_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "akademiku_backend/internals/features/academy/groups/model"
)

type CreateGroupRequest struct {
	GroupName        string  `json:"group_name" validate:"required,max=120"`
	GroupDescription *string `json:"group_description" validate:"omitempty,max=500"`
}

func (r *CreateGroupRequest) ToModel() m.GroupModel {
	return m.GroupModel{
		GroupName:        r.GroupName,
		GroupDescription: r.GroupDescription,
	}
}

type UpdateGroupRequest struct {
	GroupName        *string `json:"group_name" validate:"omitempty,max=120"`
	GroupDescription *string `json:"group_description" validate:"omitempty,max=500"`
}

func (r *UpdateGroupRequest) Apply(g *m.GroupModel) {
	if r.GroupName != nil {
		g.GroupName = *r.GroupName
	}
	if r.GroupDescription != nil {
		g.GroupDescription = r.GroupDescription
	}
}

type AddGroupMemberRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
}

type GroupResponse struct {
	GroupID          uuid.UUID `json:"group_id"`
	GroupName        string    `json:"group_name"`
	GroupDescription *string   `json:"group_description,omitempty"`
	GroupCreatedAt   time.Time `json:"group_created_at"`
	GroupUpdatedAt   time.Time `json:"group_updated_at"`
}

func FromGroupModel(mdl m.GroupModel) GroupResponse {
	return GroupResponse{
		GroupID:          mdl.GroupID,
		GroupName:        mdl.GroupName,
		GroupDescription: mdl.GroupDescription,
		GroupCreatedAt:   mdl.GroupCreatedAt,
		GroupUpdatedAt:   mdl.GroupUpdatedAt,
	}
}

func FromGroupModels(rows []m.GroupModel) []GroupResponse {
	out := make([]GroupResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromGroupModel(r))
	}
	return out
}
