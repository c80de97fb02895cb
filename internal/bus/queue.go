package bus

import "context"

// Queue decouples the chat transport from the event coordinator using a
// buffered Go channel.
type Queue struct {
	Events chan *Event
}

// NewQueue creates a new event queue with a buffered channel.
func NewQueue() *Queue {
	return &Queue{
		Events: make(chan *Event, 64),
	}
}

// Publish enqueues an inbound event from the transport. It drops the event if
// ctx is cancelled before the coordinator drains the queue.
func (q *Queue) Publish(ctx context.Context, ev *Event) {
	select {
	case q.Events <- ev:
	case <-ctx.Done():
	}
}
