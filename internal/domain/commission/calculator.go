package commission

import (
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// MoneyPlaces is the rounding precision of BDT amounts (poisha)
const MoneyPlaces = 2

var (
	// DefaultRate applies to vendors without a negotiated rate
	DefaultRate = decimal.RequireFromString("0.10")
	// DefaultPlatformFeeRate is charged on the gross amount of every sale
	DefaultPlatformFeeRate = decimal.RequireFromString("0.01")
)

// Breakdown is the split of one sale
type Breakdown struct {
	Gross       decimal.Decimal
	Rate        decimal.Decimal
	Commission  decimal.Decimal
	PlatformFee decimal.Decimal
	Net         decimal.Decimal
}

// Calculator splits gross sale amounts into commission, fee and vendor net
type Calculator struct {
	defaultRate     decimal.Decimal
	platformFeeRate decimal.Decimal
}

// NewCalculator creates a calculator with the given rates. A zero platform
// fee rate means no fee is charged.
func NewCalculator(defaultRate, platformFeeRate decimal.Decimal) Calculator {
	return Calculator{defaultRate: defaultRate, platformFeeRate: platformFeeRate}
}

// DefaultCalculator uses DefaultRate and DefaultPlatformFeeRate
func DefaultCalculator() Calculator {
	return NewCalculator(DefaultRate, DefaultPlatformFeeRate)
}

// DefaultRate returns the rate used when a vendor has none
func (c Calculator) DefaultRate() decimal.Decimal {
	return c.defaultRate
}

// ResolveRate picks the vendor's active rate, else the default
func (c Calculator) ResolveRate(active *Rate) decimal.Decimal {
	if active != nil && active.IsActive {
		return active.Rate
	}
	return c.defaultRate
}

// Calculate splits gross at rate. Net is derived by subtraction so the three
// parts always add back up to gross.
func (c Calculator) Calculate(gross, rate decimal.Decimal) (Breakdown, error) {
	if !gross.IsPositive() {
		return Breakdown{}, shared.NewValidationError("invalid sale amount",
			shared.FieldError{Field: "gross_amount", Code: "out_of_range", Message: "gross_amount must be positive"})
	}
	if err := validateRate(rate); err != nil {
		return Breakdown{}, err
	}
	gross = gross.Round(MoneyPlaces)
	commission := gross.Mul(rate).Round(MoneyPlaces)
	fee := gross.Mul(c.platformFeeRate).Round(MoneyPlaces)
	return Breakdown{
		Gross:       gross,
		Rate:        rate,
		Commission:  commission,
		PlatformFee: fee,
		Net:         gross.Sub(commission).Sub(fee),
	}, nil
}
