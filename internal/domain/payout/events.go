package payout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// AggregateTypePayout is the aggregate type of payout events
const AggregateTypePayout = "Payout"

// Event types
const (
	EventTypePayoutGenerated = "PayoutGenerated"
	EventTypePayoutSettled   = "PayoutSettled"
	EventTypePayoutFailed    = "PayoutFailed"
)

// PayoutEvent carries the fields vendor notifications need
type PayoutEvent struct {
	shared.BaseDomainEvent
	PayoutID  uuid.UUID       `json:"payout_id"`
	VendorID  uuid.UUID       `json:"vendor_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    Method          `json:"method"`
	Period    string          `json:"period"`
	Reference string          `json:"reference,omitempty"`
	Reason    string          `json:"reason,omitempty"`
}

func newPayoutEvent(eventType string, p *Payout) *PayoutEvent {
	return &PayoutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypePayout, p.ID),
		PayoutID:        p.ID,
		VendorID:        p.VendorID,
		Amount:          p.NetPayoutAmount,
		Method:          p.Method,
		Period:          p.Period.String(),
		Reference:       p.SettlementReference,
		Reason:          p.FailureReason,
	}
}

// NewPayoutGeneratedEvent creates a PayoutGenerated event
func NewPayoutGeneratedEvent(p *Payout) *PayoutEvent {
	return newPayoutEvent(EventTypePayoutGenerated, p)
}

// NewPayoutSettledEvent creates a PayoutSettled event
func NewPayoutSettledEvent(p *Payout) *PayoutEvent {
	return newPayoutEvent(EventTypePayoutSettled, p)
}

// NewPayoutFailedEvent creates a PayoutFailed event
func NewPayoutFailedEvent(p *Payout) *PayoutEvent {
	return newPayoutEvent(EventTypePayoutFailed, p)
}
