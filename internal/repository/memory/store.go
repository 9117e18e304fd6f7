// Package memory provides the in-memory response store. It is the default
// backend: all entity maps live here, and identifier allocation is serialized
// by a single mutex with one counter per collection.
package memory

import (
	"sync"
	"time"

	"github.com/spec-kit/form-response-service/internal/domain"
)

// Store owns every entity map. Services never hold entity references into the
// store; reads return copies and writes go through repository methods.
type Store struct {
	mu sync.Mutex

	users         map[int64]*domain.User
	responses     map[int64]*domain.FormResponse
	messages      map[int64]*domain.Message
	notifications map[int64]*domain.Notification

	nextUserID         int64
	nextResponseID     int64
	nextMessageID      int64
	nextNotificationID int64

	now func() time.Time
}

// NewStore initializes an empty store.
func NewStore() *Store {
	return &Store{
		users:         make(map[int64]*domain.User),
		responses:     make(map[int64]*domain.FormResponse),
		messages:      make(map[int64]*domain.Message),
		notifications: make(map[int64]*domain.Notification),
		now:           time.Now,
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

// Responses returns the form response repository view of the store.
func (s *Store) Responses() *FormResponseRepository {
	return &FormResponseRepository{store: s}
}

// Messages returns the message repository view of the store.
func (s *Store) Messages() *MessageRepository {
	return &MessageRepository{store: s}
}

// Notifications returns the notification repository view of the store.
func (s *Store) Notifications() *NotificationRepository {
	return &NotificationRepository{store: s}
}

// timestamps never move backward, even if the wall clock does.
func (s *Store) tick(last time.Time) time.Time {
	t := s.now()
	if t.Before(last) {
		return last
	}
	return t
}
