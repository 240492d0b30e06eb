// Package bus provides the two messaging channels the player core is built
// on: an asynchronous fire-and-forget notification bus with per-subscriber
// ordered delivery, and a synchronous request/response bus for control
// decisions that must complete before the caller proceeds.
package bus

import (
	"log/slog"
	"sync"

	"github.com/code-bunny/aural-player/internal/domain"
)

// Subscription is the handle returned by Subscribe, used for teardown.
type Subscription struct {
	kind    domain.EventKind
	id      uint64
	handler func(domain.Event)
	queue   *Queue
}

// NotificationBus delivers events to any number of subscribers per event
// kind. Publish never waits for handlers: each subscriber's handler is
// submitted to that subscriber's registered queue. For a single published
// event, subscribers are serviced in subscription order; a message already
// handed to a subscriber's queue is not retracted by Unsubscribe.
type NotificationBus struct {
	mu     sync.RWMutex
	subs   map[domain.EventKind][]*Subscription
	nextID uint64
	logger *slog.Logger
}

// NewNotificationBus creates an empty notification bus.
func NewNotificationBus(logger *slog.Logger) *NotificationBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationBus{
		subs:   make(map[domain.EventKind][]*Subscription),
		logger: logger,
	}
}

// Subscribe registers handler for events of the given kind. The handler
// runs on q; a nil q gets a dedicated serial queue. The returned handle
// unsubscribes via Unsubscribe.
func (b *NotificationBus) Subscribe(kind domain.EventKind, handler func(domain.Event), q *Queue) *Subscription {
	if q == nil {
		q = NewQueue()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	sub := &Subscription{kind: kind, id: b.nextID, handler: handler, queue: q}
	b.subs[kind] = append(b.subs[kind], sub)
	return sub
}

// Unsubscribe removes a subscription. Deliveries already submitted to the
// subscriber's queue still run.
func (b *NotificationBus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[sub.kind]
	for i, s := range subs {
		if s.id == sub.id {
			b.subs[sub.kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to every current subscriber of its kind, in
// subscription order, without waiting for any handler to run.
func (b *NotificationBus) Publish(event domain.Event) {
	b.mu.RLock()
	subs := b.subs[event.Kind()]
	b.mu.RUnlock()

	if len(subs) == 0 {
		b.logger.Debug("event had no subscribers", "kind", event.Kind().String())
		return
	}
	for _, sub := range subs {
		handler := sub.handler
		sub.queue.Submit(func() { handler(event) })
	}
	b.logger.Debug("published event", "kind", event.Kind().String(), "subscribers", len(subs))
}

// RequestBus is the synchronous channel: exactly one active handler per
// request kind, invoked on the publisher's goroutine.
type RequestBus struct {
	mu       sync.RWMutex
	handlers map[domain.RequestKind]func(domain.Request) any
	logger   *slog.Logger
}

// NewRequestBus creates an empty request bus.
func NewRequestBus(logger *slog.Logger) *RequestBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestBus{
		handlers: make(map[domain.RequestKind]func(domain.Request) any),
		logger:   logger,
	}
}

// Handle installs the handler for a request kind, replacing any previous
// one.
func (b *RequestBus) Handle(kind domain.RequestKind, handler func(domain.Request) any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = handler
}

// Unhandle removes the handler for a request kind.
func (b *RequestBus) Unhandle(kind domain.RequestKind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers, kind)
}

// Publish invokes the registered handler on the caller's goroutine and
// returns its response. With no handler installed it returns (nil, false).
func (b *RequestBus) Publish(req domain.Request) (any, bool) {
	b.mu.RLock()
	handler, ok := b.handlers[req.RequestKind()]
	b.mu.RUnlock()
	if !ok {
		b.logger.Debug("request had no handler", "kind", int(req.RequestKind()))
		return nil, false
	}
	return handler(req), true
}
