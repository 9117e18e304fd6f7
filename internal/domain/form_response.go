package domain

import "time"

// ResponseStatus enumerates lifecycle states for form responses.
type ResponseStatus string

const (
	ResponseStatusOpen       ResponseStatus = "open"
	ResponseStatusInProgress ResponseStatus = "in_progress"
	ResponseStatusCompleted  ResponseStatus = "completed"
)

// Valid reports whether the status is a member of the enum.
func (s ResponseStatus) Valid() bool {
	switch s {
	case ResponseStatusOpen, ResponseStatusInProgress, ResponseStatusCompleted:
		return true
	}
	return false
}

// FormResponse is the aggregate for one submission of a form. The answer
// payload is opaque to this service; only status and assignee are mutated
// after creation, and only through the store's update path.
type FormResponse struct {
	ID             int64
	FormID         int64
	Data           map[string]any
	Status         ResponseStatus
	CreatedByID    int64
	AssignedUserID *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
