package payout

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// Adjustment is a signed manual correction to a vendor's earnings, counted in
// the period containing its date. Adjustments are append-only.
type Adjustment struct {
	ID             uuid.UUID
	VendorID       uuid.UUID
	Amount         decimal.Decimal
	Reason         string
	AdjustmentDate time.Time
	CreatedBy      string
	CreatedAt      time.Time
}

// NewAdjustment validates and creates an adjustment
func NewAdjustment(vendorID uuid.UUID, amount decimal.Decimal, reason string, date time.Time, createdBy string) (*Adjustment, error) {
	var errs []shared.FieldError
	if amount.IsZero() {
		errs = append(errs, shared.FieldError{Field: "amount", Code: "out_of_range", Message: "amount must not be zero"})
	}
	if strings.TrimSpace(reason) == "" {
		errs = append(errs, shared.FieldError{Field: "reason", Code: "required", Message: "reason is required"})
	}
	if date.IsZero() {
		errs = append(errs, shared.FieldError{Field: "adjustment_date", Code: "required", Message: "adjustment_date is required"})
	}
	if len(errs) > 0 {
		return nil, shared.NewValidationError("invalid adjustment", errs...)
	}
	return &Adjustment{
		ID:             uuid.New(),
		VendorID:       vendorID,
		Amount:         amount.Round(2),
		Reason:         strings.TrimSpace(reason),
		AdjustmentDate: date.UTC(),
		CreatedBy:      createdBy,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
