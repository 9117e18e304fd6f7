package dto

import "time"

// NotificationView is the serialized notification shape.
type NotificationView struct {
	ID             int64     `json:"id"`
	FormResponseID *int64    `json:"form_response_id"`
	Message        string    `json:"message"`
	Kind           string    `json:"kind"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// NotificationSummaryView pairs the unread count with the full list, newest
// first.
type NotificationSummaryView struct {
	UnreadCount int                `json:"unread_count"`
	Items       []NotificationView `json:"items"`
}
