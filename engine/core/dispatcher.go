package core

import (
	"sync"

	"github.com/spaghettifunk/stratum/engine/containers"
)

// EventDispatcher is the process-wide FIFO of pending events.
// QueueEvent may be called from any goroutine. DequeueEvent and IsEmpty
// belong to the run loop, which is the only consumer.
type EventDispatcher struct {
	mu     sync.Mutex
	queue  *containers.Queue[Event]
	closed bool
}

func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{
		queue: containers.NewQueue[Event](64),
	}
}

// QueueEvent appends the event to the tail of the queue. The dispatcher takes
// ownership of it; events queued after Close are dropped.
func (d *EventDispatcher) QueueEvent(event Event) {
	if event == nil {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		LogDebug("event dispatcher closed, dropping %s", event.Kind())
		return
	}
	d.queue.Enqueue(event)
	d.mu.Unlock()
}

// DequeueEvent removes the head of the queue. Callers must check IsEmpty first;
// an empty queue returns ErrEventQueueEmpty.
func (d *EventDispatcher) DequeueEvent() (Event, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	event, err := d.queue.Dequeue()
	if err != nil {
		return nil, ErrEventQueueEmpty
	}
	return event, nil
}

// IsEmpty is a snapshot; a producer may queue right after it returns.
func (d *EventDispatcher) IsEmpty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queue.IsEmpty()
}

func (d *EventDispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queue.Len()
}

// Close discards every undelivered event. Only the first call has an effect.
func (d *EventDispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	dropped := d.queue.Clear()
	d.mu.Unlock()

	if dropped > 0 {
		LogWarn("event dispatcher closed with %d undelivered events", dropped)
	}
	LogDebug("Event dispatcher shut down.")
}
