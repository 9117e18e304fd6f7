package broadcast

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/spec-kit/form-response-service/internal/domain"
)

func testEvent(id int64, body string) Event {
	return Event{
		Event: EventMessageCreated,
		Message: MessagePayload{
			ID:             id,
			FormResponseID: 1,
			AuthorID:       1,
			Body:           body,
			CreatedAt:      time.Now().UTC().Format(time.RFC3339Nano),
		},
	}
}

func TestDrainReturnsEventsInEnqueueOrder(t *testing.T) {
	queue := NewMemoryQueue()
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		if err := queue.Enqueue(ctx, 10, testEvent(i, fmt.Sprintf("m%d", i))); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	drained, err := queue.Drain(ctx, 10)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(drained) != 5 {
		t.Fatalf("expected 5 events, got %d", len(drained))
	}
	for i, event := range drained {
		if event.Message.ID != int64(i+1) {
			t.Fatalf("event %d out of order: got message id %d", i, event.Message.ID)
		}
	}
}

func TestDrainEmptiesTheQueue(t *testing.T) {
	queue := NewMemoryQueue()
	ctx := context.Background()

	if err := queue.Enqueue(ctx, 3, testEvent(1, "only")); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	first, err := queue.Drain(ctx, 3)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 event, got %d", len(first))
	}

	second, err := queue.Drain(ctx, 3)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("second drain returned %d events, want 0", len(second))
	}
}

func TestQueuesAreIsolatedPerResponse(t *testing.T) {
	queue := NewMemoryQueue()
	ctx := context.Background()

	if err := queue.Enqueue(ctx, 1, testEvent(1, "a")); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := queue.Enqueue(ctx, 2, testEvent(2, "b")); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	drained, err := queue.Drain(ctx, 1)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(drained) != 1 || drained[0].Message.Body != "a" {
		t.Fatalf("unexpected drain for response 1: %+v", drained)
	}

	other, err := queue.Drain(ctx, 2)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(other) != 1 || other[0].Message.Body != "b" {
		t.Fatalf("drain crossed responses: %+v", other)
	}
}

func TestMessageCreatedEnvelope(t *testing.T) {
	parent := int64(4)
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	event := MessageCreated(&domain.Message{
		ID:             8,
		FormResponseID: 2,
		AuthorID:       5,
		Body:           "reply",
		ParentID:       &parent,
		CreatedAt:      created,
	})

	if event.Event != EventMessageCreated {
		t.Fatalf("unexpected event kind %q", event.Event)
	}
	if event.Message.ID != 8 || event.Message.FormResponseID != 2 || event.Message.AuthorID != 5 {
		t.Fatalf("identifiers not carried: %+v", event.Message)
	}
	if event.Message.ParentID == nil || *event.Message.ParentID != parent {
		t.Fatalf("parent id not carried: %+v", event.Message.ParentID)
	}
	if event.Message.CreatedAt != created.Format(time.RFC3339Nano) {
		t.Fatalf("created_at not RFC 3339: %q", event.Message.CreatedAt)
	}
}
