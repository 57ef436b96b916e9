package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is something that happened to an aggregate
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
}

// BaseDomainEvent implements DomainEvent; concrete events embed it and add
// their payload fields
type BaseDomainEvent struct {
	ID            uuid.UUID `json:"id"`
	Type          string    `json:"type"`
	At            time.Time `json:"occurred_at"`
	Aggregate     uuid.UUID `json:"aggregate_id"`
	AggregateKind string    `json:"aggregate_type"`
}

// NewBaseDomainEvent builds the common part of an event raised now
func NewBaseDomainEvent(eventType, aggregateKind string, aggregateID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		ID:            uuid.New(),
		Type:          eventType,
		At:            time.Now().UTC(),
		Aggregate:     aggregateID,
		AggregateKind: aggregateKind,
	}
}

func (e *BaseDomainEvent) EventID() uuid.UUID     { return e.ID }
func (e *BaseDomainEvent) EventType() string      { return e.Type }
func (e *BaseDomainEvent) OccurredAt() time.Time  { return e.At }
func (e *BaseDomainEvent) AggregateID() uuid.UUID { return e.Aggregate }
func (e *BaseDomainEvent) AggregateType() string  { return e.AggregateKind }

// EventHandler reacts to domain events
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the types the handler wants; empty means all of them
	EventTypes() []string
}

// EventPublisher hands events to whoever is subscribed
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus is an EventPublisher with subscription management and a lifecycle
type EventBus interface {
	EventPublisher
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// IdempotencyStore remembers which event IDs a handler has already claimed
type IdempotencyStore interface {
	// MarkProcessed claims eventID for ttl and reports false when another
	// delivery claimed it first
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
	IsProcessed(ctx context.Context, eventID string) (bool, error)
	Close() error
}
