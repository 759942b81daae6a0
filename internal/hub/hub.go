// Package hub fans out broadcast envelopes to connected dashboard
// sessions, partitioned server-side by owner scope.
package hub

import (
	"log"
	"sync"

	"emotispell/internal/models"
)

// subscriberBuffer bounds the per-connection send queue. A dashboard
// that falls further behind than this misses events and must re-pull
// state; there is no redelivery.
const subscriberBuffer = 16

// Subscriber is one live dashboard connection.
type Subscriber struct {
	scope    string
	operator bool
	events   chan models.Envelope
}

// Events is the stream of envelopes for this connection. The channel is
// closed when the subscriber is removed from the hub.
func (s *Subscriber) Events() <-chan models.Envelope {
	return s.events
}

// Hub is the connection registry mapping owner scope to live dashboard
// subscribers. Connect/disconnect and publish race, so every access
// goes through the lock.
type Hub struct {
	mu        sync.RWMutex
	scopes    map[string]map[*Subscriber]struct{}
	operators map[*Subscriber]struct{}
}

// New creates an empty hub
func New() *Hub {
	return &Hub{
		scopes:    make(map[string]map[*Subscriber]struct{}),
		operators: make(map[*Subscriber]struct{}),
	}
}

// Subscribe registers a dashboard connection for one owner scope.
// Operator connections receive envelopes for every scope.
func (h *Hub) Subscribe(scope string, operator bool) *Subscriber {
	sub := &Subscriber{
		scope:    scope,
		operator: operator,
		events:   make(chan models.Envelope, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if operator {
		h.operators[sub] = struct{}{}
		return sub
	}
	if h.scopes[scope] == nil {
		h.scopes[scope] = make(map[*Subscriber]struct{})
	}
	h.scopes[scope][sub] = struct{}{}
	return sub
}

// Unsubscribe removes a connection and closes its event stream.
// Safe to call once per subscriber; in-flight publishes are unaffected.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub.operator {
		if _, ok := h.operators[sub]; !ok {
			return
		}
		delete(h.operators, sub)
	} else {
		set, ok := h.scopes[sub.scope]
		if !ok {
			return
		}
		if _, ok := set[sub]; !ok {
			return
		}
		delete(set, sub)
		if len(set) == 0 {
			delete(h.scopes, sub.scope)
		}
	}
	close(sub.events)
}

// Publish delivers the envelope to every subscriber entitled to the
// envelope's owner scope. Delivery is best-effort: a subscriber with a
// full buffer is skipped, never waited on.
func (h *Hub) Publish(envelope models.Envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.scopes[envelope.OwnerID] {
		h.send(sub, envelope)
	}
	for sub := range h.operators {
		h.send(sub, envelope)
	}
}

func (h *Hub) send(sub *Subscriber, envelope models.Envelope) {
	select {
	case sub.events <- envelope:
	default:
		log.Printf("hub: dropping %s event for slow subscriber in scope %s", envelope.Kind, sub.scope)
	}
}

// SubscriberCount reports how many connections are live for a scope.
func (h *Hub) SubscriberCount(scope string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.scopes[scope])
}
