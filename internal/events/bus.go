package events

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotSubscribed is returned when a Subscription is cancelled twice.
var ErrNotSubscribed = errors.New("events: subscription already cancelled")

// Handler receives a published event.
type Handler func(Event)

// Subscription is one registered Handler. Unsubscribe must be called exactly once.
type Subscription struct {
	id      string
	kind    Kind
	handler Handler
	bus     *Bus
	active  bool
}

// ID returns the unique subscription id.
func (s *Subscription) ID() string { return s.id }

// Kind returns the event kind the subscription listens to.
func (s *Subscription) Kind() Kind { return s.kind }

// Active reports whether the subscription still receives events.
func (s *Subscription) Active() bool {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	return s.active
}

// Unsubscribe removes the handler. A second call returns ErrNotSubscribed.
func (s *Subscription) Unsubscribe() error {
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()

	if !s.active {
		return ErrNotSubscribed
	}
	s.active = false
	b.handlers[s.kind] = slices.DeleteFunc(b.handlers[s.kind], func(o *Subscription) bool {
		return o == s
	})
	b.log.Debug("unsubscribed", zap.String("id", s.id), zap.Stringer("kind", s.kind))
	return nil
}

// Bus is a synchronous in-process event bus. Handlers run on the publisher's
// goroutine in subscription order.
type Bus struct {
	mu       sync.Mutex
	handlers map[Kind][]*Subscription
	log      *zap.Logger
}

// NewBus creates an empty bus.
func NewBus(log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{
		handlers: make(map[Kind][]*Subscription),
		log:      log,
	}
}

// Subscribe registers h for events of the given kind.
func (b *Bus) Subscribe(kind Kind, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := &Subscription{
		id:      uuid.NewString(),
		kind:    kind,
		handler: h,
		bus:     b,
		active:  true,
	}
	b.handlers[kind] = append(b.handlers[kind], s)
	b.log.Debug("subscribed", zap.String("id", s.id), zap.Stringer("kind", kind))
	return s
}

// Publish delivers e to every active handler of its kind and returns how many
// handlers ran.
func (b *Bus) Publish(e Event) int {
	b.mu.Lock()
	subs := slices.Clone(b.handlers[e.Kind()])
	b.mu.Unlock()

	for _, s := range subs {
		s.handler(e)
	}
	return len(subs)
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, subs := range b.handlers {
		n += len(subs)
	}
	return n
}
