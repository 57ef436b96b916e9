package commission

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists commissions. There is no update: rows are append-only.
type Repository interface {
	// Create inserts a commission; a reused transaction id is shared.ErrAlreadyExists
	Create(ctx context.Context, c *Commission) error
	FindByTransactionID(ctx context.Context, transactionID string) (*Commission, error)
	// FindInPeriod lists commissions with transaction_date in [from, to)
	FindInPeriod(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]Commission, error)
	// SumInPeriod totals commissions with transaction_date in [from, to)
	SumInPeriod(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (Totals, error)
}

// RateRepository persists vendor commission rates
type RateRepository interface {
	FindActive(ctx context.Context, vendorID uuid.UUID) (*Rate, error)
	// Activate deactivates any current rate and stores r as the active one
	Activate(ctx context.Context, r *Rate) error
}
