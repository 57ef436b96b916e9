package payout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementRequest is what a rail needs to move money to a vendor
type SettlementRequest struct {
	PayoutID uuid.UUID
	VendorID uuid.UUID
	Amount   decimal.Decimal
	Method   Method
	Details  Details
	// IdempotencyKey lets the rail drop a duplicate submission of the same payout
	IdempotencyKey string
}

// SettlementResult is a rail's acknowledgement of a transfer
type SettlementResult struct {
	Reference               string
	EstimatedProcessingTime time.Time
}

// SettlementStrategy settles payouts over one rail
type SettlementStrategy interface {
	Method() Method
	Settle(ctx context.Context, req SettlementRequest) (SettlementResult, error)
}

// NewSettlementRequest builds the rail request of a payout
func NewSettlementRequest(p *Payout) SettlementRequest {
	return SettlementRequest{
		PayoutID:       p.ID,
		VendorID:       p.VendorID,
		Amount:         p.NetPayoutAmount,
		Method:         p.Method,
		Details:        p.Details,
		IdempotencyKey: "payout-" + p.ID.String(),
	}
}
