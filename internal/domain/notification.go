package domain

import "time"

// NotificationKind enumerates the events a notification can stem from.
type NotificationKind string

const (
	NotificationKindAssignment   NotificationKind = "assignment"
	NotificationKindStatusChange NotificationKind = "status_change"
	NotificationKindMessage      NotificationKind = "message"
)

// Notification is one per-recipient record of a fan-out event. The read flag
// only ever flips false to true.
type Notification struct {
	ID             int64
	UserID         int64
	FormResponseID *int64
	Message        string
	Kind           NotificationKind
	IsRead         bool
	CreatedAt      time.Time
}
