package memory

import (
	"context"
	"sort"

	"github.com/spec-kit/form-response-service/internal/domain"
)

// NotificationRepository is the in-memory implementation of
// repository.NotificationRepository.
type NotificationRepository struct {
	store *Store
}

func (r *NotificationRepository) Create(_ context.Context, notification *domain.Notification) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextNotificationID++
	notification.ID = s.nextNotificationID
	notification.CreatedAt = s.now()

	s.notifications[notification.ID] = cloneNotification(notification)
	return nil
}

func (r *NotificationRepository) ListByUser(_ context.Context, userID int64) ([]domain.Notification, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Notification, 0)
	for _, notification := range s.notifications {
		if notification.UserID == userID {
			result = append(result, *cloneNotification(notification))
		}
	}
	// newest first
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, id, userID int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	notification, ok := s.notifications[id]
	if !ok || notification.UserID != userID {
		return false, nil
	}
	notification.IsRead = true
	return true, nil
}

func cloneNotification(notification *domain.Notification) *domain.Notification {
	copied := *notification
	if notification.FormResponseID != nil {
		responseID := *notification.FormResponseID
		copied.FormResponseID = &responseID
	}
	return &copied
}
