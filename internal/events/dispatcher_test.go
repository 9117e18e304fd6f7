package events

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishLogsHandlerFailureAndContinues(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	dispatcher := NewInMemoryDispatcher(zap.New(core))

	var laterRan bool
	dispatcher.Subscribe(EventResponseAssigned, func(context.Context, Event) error {
		return errors.New("handler down")
	})
	dispatcher.Subscribe(EventResponseAssigned, func(context.Context, Event) error {
		laterRan = true
		return nil
	})

	event := Event{ID: "evt-1", Type: EventResponseAssigned, FormResponseID: 7}
	if err := dispatcher.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !laterRan {
		t.Fatal("later handler skipped after an earlier failure")
	}

	entries := logs.FilterMessage("event handler failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 failure log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["event_type"] != string(EventResponseAssigned) || fields["event_id"] != "evt-1" {
		t.Fatalf("failure log missing event identity: %v", fields)
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(nil)
	if err := dispatcher.Publish(context.Background(), Event{Type: EventResponseMessageAdded}); err != nil {
		t.Fatalf("publish: %v", err)
	}
}
