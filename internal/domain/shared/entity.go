package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and timestamps every persisted record has
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity stamps a fresh ID and the current UTC time
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch moves UpdatedAt to at
func (e *BaseEntity) Touch(at time.Time) {
	e.UpdatedAt = at
}

// BaseAggregateRoot adds an optimistic lock version and a buffer of events
// raised since the aggregate was loaded. Repositories publish the buffer
// after a successful commit.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
	pending []DomainEvent
}

// NewBaseAggregateRoot starts a new aggregate at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// IncrementVersion bumps the version after a conditional update succeeded
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent buffers an event for publication
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// PendingEvents returns the buffered events in the order they were raised
func (a *BaseAggregateRoot) PendingEvents() []DomainEvent {
	return a.pending
}

// ClearEvents drops the buffer once it has been handed to a publisher
func (a *BaseAggregateRoot) ClearEvents() {
	a.pending = nil
}
