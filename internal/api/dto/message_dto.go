package dto

import "time"

// CreateMessageRequest payload for posting a thread comment.
type CreateMessageRequest struct {
	Body     string `json:"body"`
	ParentID *int64 `json:"parent_id"`
}

// MessageView is the serialized message shape.
type MessageView struct {
	ID             int64     `json:"id"`
	FormResponseID int64     `json:"form_response_id"`
	AuthorID       int64     `json:"author_id"`
	Body           string    `json:"body"`
	ParentID       *int64    `json:"parent_id"`
	CreatedAt      time.Time `json:"created_at"`
}
