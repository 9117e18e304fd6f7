package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/spec-kit/form-response-service/internal/broadcast"
	"github.com/spec-kit/form-response-service/internal/domain"
)

func TestThreadFanOutReachesPriorAuthors(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)
	assignee := f.addUser(t, "assignee", false)
	first := f.addUser(t, "first-commenter", true)
	second := f.addUser(t, "second-commenter", true)
	response := f.createResponse(t, creator)
	ctx := context.Background()

	if _, err := f.responses.Update(ctx, creator, response.ID, ResponsePatch{AssignedUserID: int64Ptr(assignee.ID)}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	opening, err := f.chat.CreateMessage(ctx, response.ID, first.ID, "opening comment", nil)
	if err != nil {
		t.Fatalf("first message: %v", err)
	}
	if _, err := f.chat.CreateMessage(ctx, response.ID, second.ID, "a reply", &opening.ID); err != nil {
		t.Fatalf("second message: %v", err)
	}

	countMessages := func(userID int64) int {
		count := 0
		for _, n := range f.listNotifications(t, userID) {
			if n.Kind == domain.NotificationKindMessage {
				count++
			}
		}
		return count
	}

	// creator and assignee hear about both messages
	if got := countMessages(creator.ID); got != 2 {
		t.Fatalf("creator has %d message notifications, want 2", got)
	}
	if got := countMessages(assignee.ID); got != 2 {
		t.Fatalf("assignee has %d message notifications, want 2", got)
	}
	// the first author is a prior participant for the reply only
	if got := countMessages(first.ID); got != 1 {
		t.Fatalf("first commenter has %d message notifications, want 1", got)
	}
	// nobody is notified of their own message
	if got := countMessages(second.ID); got != 0 {
		t.Fatalf("reply author has %d message notifications, want 0", got)
	}
}

func TestListMessagesKeepsThreadOrder(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)
	response := f.createResponse(t, creator)
	ctx := context.Background()

	parent, err := f.chat.CreateMessage(ctx, response.ID, creator.ID, "first", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.chat.CreateMessage(ctx, response.ID, creator.ID, "second", &parent.ID); err != nil {
		t.Fatalf("create: %v", err)
	}

	listed, err := f.chat.ListMessages(ctx, response.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(listed))
	}
	if listed[0].Body != "first" || listed[1].Body != "second" {
		t.Fatalf("thread out of order: %q then %q", listed[0].Body, listed[1].Body)
	}
	if listed[1].ParentID == nil || *listed[1].ParentID != parent.ID {
		t.Fatalf("reply lost its parent: %+v", listed[1].ParentID)
	}
}

func TestMessageEnqueuedForBroadcast(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)
	response := f.createResponse(t, creator)
	ctx := context.Background()

	message, err := f.chat.CreateMessage(ctx, response.ID, creator.ID, "hello there", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	drained, err := f.queue.Drain(ctx, response.ID)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(drained) != 1 {
		t.Fatalf("expected 1 broadcast event, got %d", len(drained))
	}
	event := drained[0]
	if event.Event != broadcast.EventMessageCreated {
		t.Fatalf("event kind %q", event.Event)
	}
	if event.Message.ID != message.ID || event.Message.Body != "hello there" || event.Message.AuthorID != creator.ID {
		t.Fatalf("broadcast payload mismatch: %+v", event.Message)
	}
}

type failingQueue struct{}

func (failingQueue) Enqueue(context.Context, int64, broadcast.Event) error {
	return errors.New("queue unavailable")
}

func (failingQueue) Drain(context.Context, int64) ([]broadcast.Event, error) {
	return nil, errors.New("queue unavailable")
}

func TestEnqueueFailureDoesNotUndoMessage(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)
	response := f.createResponse(t, creator)
	f.chat.queue = failingQueue{}
	ctx := context.Background()

	message, err := f.chat.CreateMessage(ctx, response.ID, creator.ID, "still here", nil)
	if err != nil {
		t.Fatalf("create returned error on enqueue failure: %v", err)
	}

	listed, err := f.chat.ListMessages(ctx, response.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != message.ID {
		t.Fatalf("message not persisted despite enqueue failure: %+v", listed)
	}
}

func TestMessageBodyStoredVerbatim(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)
	response := f.createResponse(t, creator)
	ctx := context.Background()

	if _, err := f.chat.CreateMessage(ctx, response.ID, creator.ID, "  padded  ", nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	listed, err := f.chat.ListMessages(ctx, response.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].Body != "  padded  " {
		t.Fatalf("body not stored as received: %+v", listed)
	}
}

func TestPreviewKeepsRuneBoundaries(t *testing.T) {
	long := strings.Repeat("é", 50)
	preview := stringPreview(long, 10)

	if !utf8.ValidString(preview) {
		t.Fatalf("preview is not valid UTF-8: %q", preview)
	}
	if preview != strings.Repeat("é", 7)+"..." {
		t.Fatalf("unexpected preview: %q", preview)
	}

	if got := stringPreview("short", 10); got != "short" {
		t.Fatalf("short body altered: %q", got)
	}
	if got := stringPreview("  trimmed  ", 10); got != "trimmed" {
		t.Fatalf("preview not trimmed: %q", got)
	}
}
