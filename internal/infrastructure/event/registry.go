package event

import (
	"slices"
	"sync"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// subscription is one handler and the event types it receives. A nil type
// set means every event.
type subscription struct {
	handler shared.EventHandler
	types   map[string]struct{}
}

func (s subscription) matches(eventType string) bool {
	if s.types == nil {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// HandlerRegistry keeps handler subscriptions in registration order
type HandlerRegistry struct {
	mu   sync.RWMutex
	subs []subscription
}

// NewHandlerRegistry creates an empty registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

// Register subscribes handler to eventTypes, or to everything when none are
// given. Registering the same handler again widens its subscription.
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(handler)
	if i < 0 {
		r.subs = append(r.subs, subscription{handler: handler, types: map[string]struct{}{}})
		i = len(r.subs) - 1
	}
	if len(eventTypes) == 0 {
		r.subs[i].types = nil
		return
	}
	if r.subs[i].types == nil {
		return
	}
	for _, t := range eventTypes {
		r.subs[i].types[t] = struct{}{}
	}
}

// Unregister removes handler entirely
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.index(handler); i >= 0 {
		r.subs = slices.Delete(r.subs, i, i+1)
	}
}

// GetHandlers returns the handlers subscribed to eventType, each once
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shared.EventHandler, 0, len(r.subs))
	for _, s := range r.subs {
		if s.matches(eventType) {
			out = append(out, s.handler)
		}
	}
	return out
}

// Len returns the number of subscribed handlers
func (r *HandlerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

func (r *HandlerRegistry) index(handler shared.EventHandler) int {
	for i, s := range r.subs {
		if s.handler == handler {
			return i
		}
	}
	return -1
}
