package domain

import "time"

// User models a person who creates, works on, and discusses form responses.
// Only the admin flag is mutable after creation.
type User struct {
	ID           int64
	Email        string
	FullName     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
