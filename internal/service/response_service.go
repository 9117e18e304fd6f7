package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/form-response-service/internal/auth"
	"github.com/spec-kit/form-response-service/internal/domain"
	"github.com/spec-kit/form-response-service/internal/events"
	"github.com/spec-kit/form-response-service/internal/repository"
	apperrors "github.com/spec-kit/form-response-service/pkg/errorutil"
)

// ResponseService coordinates form response workflows. All status and
// assignee writes pass through Update, so enum and assignee validation
// cannot be bypassed.
type ResponseService struct {
	responses  repository.FormResponseRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// ResponseDependencies bundles requirements for the response service.
type ResponseDependencies struct {
	ResponseRepo repository.FormResponseRepository
	UserRepo     repository.UserRepository
	Dispatcher   events.Dispatcher
}

// ResponseCreateInput describes a form submission payload.
type ResponseCreateInput struct {
	FormID int64
	Data   map[string]any
}

// ResponsePatch carries the fields a PATCH may set. Nil fields are left
// untouched; status-only, assignee-only, and combined patches are all legal.
type ResponsePatch struct {
	Status         *domain.ResponseStatus
	AssignedUserID *int64
}

// NewResponseService constructs the service.
func NewResponseService(deps ResponseDependencies) *ResponseService {
	return &ResponseService{
		responses:  deps.ResponseRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create records a new form response for the creator. New responses start
// open and unassigned.
func (s *ResponseService) Create(ctx context.Context, creatorID int64, input ResponseCreateInput) (*domain.FormResponse, error) {
	data := input.Data
	if data == nil {
		data = map[string]any{}
	}
	response := &domain.FormResponse{
		FormID:      input.FormID,
		Data:        data,
		Status:      domain.ResponseStatusOpen,
		CreatedByID: creatorID,
	}
	if err := s.responses.Create(ctx, response); err != nil {
		return nil, apperrors.MapError(err)
	}
	return response, nil
}

// Get fetches a form response the requester is allowed to view.
func (s *ResponseService) Get(ctx context.Context, requester *domain.User, id int64) (*domain.FormResponse, error) {
	response, err := s.responses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("form response", map[string]any{"form_response_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if !auth.CanView(requester, response) {
		return nil, apperrors.NewForbidden("not authorized")
	}
	return response, nil
}

// Update applies a validated patch. Only admins and the creator may edit; an
// assignee alone cannot. The whole patch is validated before anything is
// applied, so a rejected field leaves the record untouched. Notification
// fan-out runs after the write and never rolls it back.
func (s *ResponseService) Update(ctx context.Context, actor *domain.User, id int64, patch ResponsePatch) (*domain.FormResponse, error) {
	response, err := s.responses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("form response", map[string]any{"form_response_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if !auth.CanEdit(actor, response) {
		return nil, apperrors.NewForbidden("not authorized")
	}

	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperrors.NewInvalidStatus(string(*patch.Status))
	}
	if patch.AssignedUserID != nil {
		if _, err := s.users.GetByID(ctx, *patch.AssignedUserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewUnknownAssignee(*patch.AssignedUserID)
			}
			return nil, apperrors.MapError(err)
		}
	}

	oldStatus := response.Status
	oldAssignee := response.AssignedUserID
	if patch.Status != nil {
		response.Status = *patch.Status
	}
	if patch.AssignedUserID != nil {
		assignee := *patch.AssignedUserID
		response.AssignedUserID = &assignee
	}

	if err := s.responses.Update(ctx, response); err != nil {
		return nil, apperrors.MapError(err)
	}

	// status first, then assignment. The status event carries the pre-patch
	// assignee: a user assigned in the same patch hears only about the
	// assignment, and the user being replaced still hears about the status.
	if patch.Status != nil {
		s.publishEvent(ctx, events.Event{
			Type:           events.EventResponseStatusChanged,
			FormResponseID: response.ID,
			ActorID:        actor.ID,
			Payload: events.StatusChangedPayload{
				OldStatus:      string(oldStatus),
				NewStatus:      string(response.Status),
				AssignedUserID: oldAssignee,
			},
		})
	}
	if patch.AssignedUserID != nil {
		s.publishEvent(ctx, events.Event{
			Type:           events.EventResponseAssigned,
			FormResponseID: response.ID,
			ActorID:        actor.ID,
			Payload: events.AssignedPayload{
				AssignedUserID: *patch.AssignedUserID,
			},
		})
	}
	return response, nil
}

func (s *ResponseService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
