package commission

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// Commission is the platform's share of one sale. Rows are immutable once
// written; corrections go through payout adjustments.
type Commission struct {
	ID               uuid.UUID
	VendorID         uuid.UUID
	TransactionID    string
	GrossAmount      decimal.Decimal
	CommissionRate   decimal.Decimal
	CommissionAmount decimal.Decimal
	PlatformFee      decimal.Decimal
	NetCommission    decimal.Decimal
	TransactionDate  time.Time
	CreatedAt        time.Time
}

// NewCommission records the breakdown of a sale
func NewCommission(vendorID uuid.UUID, transactionID string, b Breakdown, transactionDate time.Time) (*Commission, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, shared.NewValidationError("invalid commission",
			shared.FieldError{Field: "transaction_id", Code: "required", Message: "transaction_id is required"})
	}
	if transactionDate.IsZero() {
		return nil, shared.NewValidationError("invalid commission",
			shared.FieldError{Field: "transaction_date", Code: "required", Message: "transaction_date is required"})
	}
	return &Commission{
		ID:               uuid.New(),
		VendorID:         vendorID,
		TransactionID:    transactionID,
		GrossAmount:      b.Gross,
		CommissionRate:   b.Rate,
		CommissionAmount: b.Commission,
		PlatformFee:      b.PlatformFee,
		NetCommission:    b.Net,
		TransactionDate:  transactionDate.UTC(),
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// Rate is a vendor-specific commission rate. Only one rate per vendor is
// active at a time.
type Rate struct {
	ID            uuid.UUID
	VendorID      uuid.UUID
	Rate          decimal.Decimal
	EffectiveFrom time.Time
	IsActive      bool
	CreatedAt     time.Time
}

// NewRate creates an active rate
func NewRate(vendorID uuid.UUID, rate decimal.Decimal, effectiveFrom time.Time) (*Rate, error) {
	if err := validateRate(rate); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if effectiveFrom.IsZero() {
		effectiveFrom = now
	}
	return &Rate{
		ID:            uuid.New(),
		VendorID:      vendorID,
		Rate:          rate,
		EffectiveFrom: effectiveFrom,
		IsActive:      true,
		CreatedAt:     now,
	}, nil
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return shared.NewValidationError("invalid commission rate",
			shared.FieldError{Field: "rate", Code: "out_of_range", Message: "rate must be between 0 and 1"})
	}
	return nil
}

// Totals are the sums over a vendor's commissions in a period
type Totals struct {
	Count           int64
	GrossAmount     decimal.Decimal
	CommissionTotal decimal.Decimal
	PlatformFees    decimal.Decimal
	NetCommissions  decimal.Decimal
}
