package core

import (
	"errors"
	"sync"
	"testing"
)

func TestEventDispatcher_FIFO(t *testing.T) {
	d := NewEventDispatcher()
	d.QueueEvent(WindowResizeEvent{Width: 0, Height: 0})
	d.QueueEvent(KeyPressedEvent{KeyCode: KEY_A, RepeatCount: 1})
	d.QueueEvent(WindowCloseEvent{})

	want := []EventKind{EventWindowResize, EventKeyPressed, EventWindowClose}
	for i, kind := range want {
		if d.IsEmpty() {
			t.Fatalf("queue empty after %d events", i)
		}
		ev, err := d.DequeueEvent()
		if err != nil {
			t.Fatalf("DequeueEvent() failed: %v", err)
		}
		if ev.Kind() != kind {
			t.Errorf("event %d: got %s, want %s", i, ev.Kind(), kind)
		}
	}
	if !d.IsEmpty() {
		t.Error("expected dispatcher to be empty")
	}
}

func TestEventDispatcher_DequeueEmpty(t *testing.T) {
	d := NewEventDispatcher()
	ev, err := d.DequeueEvent()
	if !errors.Is(err, ErrEventQueueEmpty) {
		t.Errorf("expected ErrEventQueueEmpty, got %v", err)
	}
	if ev != nil {
		t.Errorf("expected nil event, got %v", ev)
	}
}

func TestEventDispatcher_IsEmptyIdempotent(t *testing.T) {
	d := NewEventDispatcher()
	d.QueueEvent(WindowCloseEvent{})
	for i := 0; i < 5; i++ {
		if d.IsEmpty() {
			t.Fatal("IsEmpty() changed state")
		}
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}
}

func TestEventDispatcher_IgnoresNil(t *testing.T) {
	d := NewEventDispatcher()
	d.QueueEvent(nil)
	if !d.IsEmpty() {
		t.Error("nil event should not be queued")
	}
}

// Each producer must be observed in its own enqueue order.
func TestEventDispatcher_ConcurrentProducers(t *testing.T) {
	const producers = 8
	const perProducer = 500

	d := NewEventDispatcher()
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				// producer index and sequence share the entity id
				d.QueueEvent(EntitySwapEvent{EntityID: uint32(p*perProducer + i)})
			}
		}(p)
	}
	wg.Wait()

	last := make([]int, producers)
	for i := range last {
		last[i] = -1
	}
	total := 0
	for !d.IsEmpty() {
		ev, err := d.DequeueEvent()
		if err != nil {
			t.Fatalf("DequeueEvent() failed: %v", err)
		}
		swap, ok := ev.(EntitySwapEvent)
		if !ok {
			t.Fatalf("unexpected event %T", ev)
		}
		p := int(swap.EntityID) / perProducer
		seq := int(swap.EntityID) % perProducer
		if seq <= last[p] {
			t.Fatalf("producer %d reordered: %d after %d", p, seq, last[p])
		}
		last[p] = seq
		total++
	}
	if total != producers*perProducer {
		t.Errorf("drained %d events, want %d", total, producers*perProducer)
	}
}

func TestEventDispatcher_Close(t *testing.T) {
	d := NewEventDispatcher()
	d.QueueEvent(WindowCloseEvent{})
	d.Close()
	if !d.IsEmpty() {
		t.Error("expected Close() to discard pending events")
	}
	d.QueueEvent(WindowCloseEvent{})
	if !d.IsEmpty() {
		t.Error("expected events queued after Close() to be dropped")
	}
	// second close is a no-op
	d.Close()
}
