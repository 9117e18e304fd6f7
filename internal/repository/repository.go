// Package repository defines the persistence contract for the response store.
// Two backends implement it: an in-memory store (the default) and a
// Postgres-backed store selected when a DSN is configured. Identifiers are
// unique and monotonically increasing within each collection regardless of
// backend.
package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/form-response-service/internal/domain"
)

// ErrNotFound is returned when a record id resolves to nothing. Both backends
// normalize their miss condition to this error.
var ErrNotFound = errors.New("record not found")

// UserRepository defines persistence access for users. Users are immutable
// after creation except the admin flag.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error
}

// FormResponseRepository owns form response records. Update persists the
// record as given and refreshes UpdatedAt.
type FormResponseRepository interface {
	Create(ctx context.Context, response *domain.FormResponse) error
	GetByID(ctx context.Context, id int64) (*domain.FormResponse, error)
	Update(ctx context.Context, response *domain.FormResponse) error
}

// MessageRepository owns thread messages. ListByResponse returns messages
// ordered ascending by creation time, tie-broken by id.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListByResponse(ctx context.Context, responseID int64) ([]domain.Message, error)
}

// NotificationRepository owns notification records. ListByUser returns the
// user's notifications newest first. MarkRead flips the read flag and reports
// whether a record owned by userID existed.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) (bool, error)
}
