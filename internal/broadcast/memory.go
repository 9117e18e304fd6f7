package broadcast

import (
	"context"
	"sync"
)

// MemoryQueue is the default in-process queue. Sequences are unbounded; a
// deployment without a draining consumer should cap depth or switch to the
// redis backend.
type MemoryQueue struct {
	mu     sync.Mutex
	events map[int64][]Event
}

// NewMemoryQueue initializes an empty queue.
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{events: make(map[int64][]Event)}
}

func (q *MemoryQueue) Enqueue(_ context.Context, responseID int64, event Event) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events[responseID] = append(q.events[responseID], event)
	return nil
}

func (q *MemoryQueue) Drain(_ context.Context, responseID int64) ([]Event, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	buffered := q.events[responseID]
	delete(q.events, responseID)

	result := make([]Event, len(buffered))
	copy(result, buffered)
	return result, nil
}
