package dto

import "time"

// CreateFormResponseRequest payload for submissions.
type CreateFormResponseRequest struct {
	FormID int64          `json:"form_id"`
	Data   map[string]any `json:"data"`
}

// UpdateFormResponseRequest payload for PATCH. Absent fields are not applied.
type UpdateFormResponseRequest struct {
	Status         *string `json:"status"`
	AssignedUserID *int64  `json:"assigned_user_id"`
}

// FormResponseView is the serialized form response shape.
type FormResponseView struct {
	ID             int64          `json:"id"`
	FormID         int64          `json:"form_id"`
	Data           map[string]any `json:"data"`
	Status         string         `json:"status"`
	CreatedByID    int64          `json:"created_by_id"`
	AssignedUserID *int64         `json:"assigned_user_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
