package memory

import (
	"context"
	"sort"

	"github.com/spec-kit/form-response-service/internal/domain"
)

// MessageRepository is the in-memory implementation of
// repository.MessageRepository.
type MessageRepository struct {
	store *Store
}

func (r *MessageRepository) Create(_ context.Context, message *domain.Message) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextMessageID++
	message.ID = s.nextMessageID
	message.CreatedAt = s.now()

	s.messages[message.ID] = cloneMessage(message)
	return nil
}

func (r *MessageRepository) ListByResponse(_ context.Context, responseID int64) ([]domain.Message, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Message, 0)
	for _, message := range s.messages {
		if message.FormResponseID == responseID {
			result = append(result, *cloneMessage(message))
		}
	}
	// creation time ascending; id order breaks ties between equal timestamps
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func cloneMessage(message *domain.Message) *domain.Message {
	copied := *message
	if message.ParentID != nil {
		parent := *message.ParentID
		copied.ParentID = &parent
	}
	return &copied
}
