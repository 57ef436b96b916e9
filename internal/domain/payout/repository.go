package payout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// Repository persists payouts and their audit trail
type Repository interface {
	// Create inserts a pending payout with its generation audit entry. A
	// second non-failed payout for the same vendor and period is rejected
	// with a conflict error.
	Create(ctx context.Context, p *Payout, entry AuditEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payout, error)
	// FindActiveForPeriod returns the non-failed payout covering exactly the period
	FindActiveForPeriod(ctx context.Context, vendorID uuid.UUID, period Period) (*Payout, error)
	// FindCovering returns a non-failed payout whose period contains the day of at
	FindCovering(ctx context.Context, vendorID uuid.UUID, at time.Time) (*Payout, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payout, int64, error)
	// Transition saves p if its stored status still equals from, and appends
	// entry, in one transaction. A lost race is a conflict error.
	Transition(ctx context.Context, p *Payout, from Status, entry AuditEntry) error
	AuditTrail(ctx context.Context, payoutID uuid.UUID) ([]AuditEntry, error)
}

// AdjustmentRepository persists adjustments. Rows are append-only.
type AdjustmentRepository interface {
	Create(ctx context.Context, a *Adjustment) error
	// SumInPeriod totals adjustments dated in [from, to)
	SumInPeriod(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]Adjustment, error)
}
