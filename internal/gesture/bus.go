package gesture

import (
	"slices"
	"sync"
)

// Kind distinguishes pointer motion from release.
type Kind int

const (
	Move Kind = iota
	Up
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// Event is one pointer event in viewport units.
type Event struct {
	Kind Kind
	X    float64
}

// Handler receives published events.
type Handler func(Event)

// Bus is a process-wide pointer event source. Handlers may subscribe or
// unsubscribe, themselves included, while an event is being dispatched.
type Bus struct {
	mu       sync.Mutex
	next     uint64
	handlers map[uint64]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[uint64]Handler)}
}

// Subscribe registers h until the returned subscription is cancelled.
func (b *Bus) Subscribe(h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := b.next
	b.handlers[id] = h
	return &Subscription{bus: b, id: id}
}

// Publish delivers e to the handlers registered when Publish was called, in
// subscription order. A handler removed during dispatch is skipped.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	ids := make([]uint64, 0, len(b.handlers))
	for id := range b.handlers {
		ids = append(ids, id)
	}
	b.mu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		b.mu.Lock()
		h, ok := b.handlers[id]
		b.mu.Unlock()
		if ok {
			h(e)
		}
	}
}

// Len is the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	delete(b.handlers, id)
	b.mu.Unlock()
}

// Subscription is a handle on one registered handler.
type Subscription struct {
	once sync.Once
	bus  *Bus
	id   uint64
}

// Cancel unregisters the handler. Calling it more than once is a no-op.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(func() { s.bus.remove(s.id) })
}

