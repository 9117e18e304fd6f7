package memory

import (
	"context"

	"github.com/spec-kit/form-response-service/internal/domain"
	"github.com/spec-kit/form-response-service/internal/repository"
)

// FormResponseRepository is the in-memory implementation of
// repository.FormResponseRepository.
type FormResponseRepository struct {
	store *Store
}

func (r *FormResponseRepository) Create(_ context.Context, response *domain.FormResponse) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextResponseID++
	response.ID = s.nextResponseID
	response.CreatedAt = s.now()
	response.UpdatedAt = response.CreatedAt

	s.responses[response.ID] = cloneResponse(response)
	return nil
}

func (r *FormResponseRepository) GetByID(_ context.Context, id int64) (*domain.FormResponse, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	response, ok := s.responses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneResponse(response), nil
}

func (r *FormResponseRepository) Update(_ context.Context, response *domain.FormResponse) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.responses[response.ID]
	if !ok {
		return repository.ErrNotFound
	}

	response.CreatedAt = stored.CreatedAt
	response.UpdatedAt = s.tick(stored.UpdatedAt)
	s.responses[response.ID] = cloneResponse(response)
	return nil
}

func cloneResponse(response *domain.FormResponse) *domain.FormResponse {
	copied := *response
	if response.Data != nil {
		copied.Data = make(map[string]any, len(response.Data))
		for key, value := range response.Data {
			copied.Data[key] = value
		}
	}
	if response.AssignedUserID != nil {
		assignee := *response.AssignedUserID
		copied.AssignedUserID = &assignee
	}
	return &copied
}
