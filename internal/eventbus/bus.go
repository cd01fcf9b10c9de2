// Package eventbus provides an in-process publish/subscribe channel for domain events.
//
// Subscribers register for one event type and receive events synchronously,
// in the order they subscribed.
package eventbus

import (
	"slices"
	"sync"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Subscriber receives published events.
type Subscriber interface {
	HandleEvent(e domain.Event)
}

// SubscriberFunc adapts a plain function to Subscriber.
type SubscriberFunc func(e domain.Event)

// HandleEvent calls f(e).
func (f SubscriberFunc) HandleEvent(e domain.Event) {
	f(e)
}

// Subscription identifies one registration and is used to unsubscribe.
type Subscription struct {
	Type domain.EventType
	id   uint64
}

type registration struct {
	sub Subscriber
	id  uint64
}

// Bus is a registry of subscribers keyed by event type.
type Bus struct {
	subs   map[domain.EventType][]registration
	nextID uint64
	mu     sync.RWMutex
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[domain.EventType][]registration)}
}

// Subscribe registers s for events of type t.
func (b *Bus) Subscribe(t domain.EventType, s Subscriber) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[t] = append(b.subs[t], registration{id: b.nextID, sub: s})
	return Subscription{Type: t, id: b.nextID}
}

// SubscribeAll registers s for every event type the store emits.
func (b *Bus) SubscribeAll(s Subscriber) []Subscription {
	types := domain.AllEventTypes()
	out := make([]Subscription, 0, len(types))
	for _, t := range types {
		out = append(out, b.Subscribe(t, s))
	}
	return out
}

// Unsubscribe removes a registration. It reports whether it was found.
func (b *Bus) Unsubscribe(sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.subs[sub.Type]
	i := slices.IndexFunc(regs, func(r registration) bool { return r.id == sub.id })
	if i < 0 {
		return false
	}
	b.subs[sub.Type] = slices.Delete(slices.Clone(regs), i, i+1)
	return true
}

// Publish delivers e to the current subscribers of its type, in subscription order.
func (b *Bus) Publish(e domain.Event) {
	b.mu.RLock()
	regs := b.subs[e.Type()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.sub.HandleEvent(e)
	}
}

// Len returns the number of subscribers for t.
func (b *Bus) Len(t domain.EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[t])
}
