package domain

import "time"

// Message captures one comment in a form response thread. Messages are
// immutable once created. ParentID, when set, references the message being
// replied to; the reference is stored as-is and not validated against the
// thread.
type Message struct {
	ID             int64
	FormResponseID int64
	AuthorID       int64
	Body           string
	ParentID       *int64
	CreatedAt      time.Time
}
