package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/form-response-service/internal/broadcast"
	"github.com/spec-kit/form-response-service/internal/config"
	"github.com/spec-kit/form-response-service/internal/domain"
	"github.com/spec-kit/form-response-service/internal/events"
	"github.com/spec-kit/form-response-service/internal/repository/memory"
	apperrors "github.com/spec-kit/form-response-service/pkg/errorutil"
)

// fixture wires the services against the in-memory store with the real
// dispatcher, so side effects observed in tests are the production paths.
type fixture struct {
	store         *memory.Store
	queue         *broadcast.MemoryQueue
	responses     *ResponseService
	chat          *ChatService
	notifications *NotificationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher(logger)
	queue := broadcast.NewMemoryQueue()

	notifications := NewNotificationService(NotificationDependencies{
		NotificationRepo: store.Notifications(),
		ResponseRepo:     store.Responses(),
		MessageRepo:      store.Messages(),
		UserRepo:         store.Users(),
		Dispatcher:       dispatcher,
	}, logger, config.NotificationConfig{})
	notifications.RegisterHandlers()

	responses := NewResponseService(ResponseDependencies{
		ResponseRepo: store.Responses(),
		UserRepo:     store.Users(),
		Dispatcher:   dispatcher,
	})
	chat := NewChatService(ChatDependencies{
		MessageRepo: store.Messages(),
		Dispatcher:  dispatcher,
		Queue:       queue,
		Logger:      logger,
	})

	return &fixture{
		store:         store,
		queue:         queue,
		responses:     responses,
		chat:          chat,
		notifications: notifications,
	}
}

func (f *fixture) addUser(t *testing.T, name string, admin bool) *domain.User {
	t.Helper()
	user := &domain.User{Email: name + "@example.com", FullName: name, IsAdmin: admin}
	if err := f.store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func (f *fixture) createResponse(t *testing.T, creator *domain.User) *domain.FormResponse {
	t.Helper()
	response, err := f.responses.Create(context.Background(), creator.ID, ResponseCreateInput{
		FormID: 1,
		Data:   map[string]any{"answer": "yes"},
	})
	if err != nil {
		t.Fatalf("create response: %v", err)
	}
	return response
}

func (f *fixture) listNotifications(t *testing.T, userID int64) []domain.Notification {
	t.Helper()
	listed, err := f.store.Notifications().ListByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	return listed
}

func statusPtr(s domain.ResponseStatus) *domain.ResponseStatus { return &s }

func int64Ptr(v int64) *int64 { return &v }

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if domainErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, domainErr.Code, err)
	}
}
