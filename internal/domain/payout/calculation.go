package payout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/commission"
)

// DefaultWithholdingTaxRate is the tax withheld from net commissions
var DefaultWithholdingTaxRate = decimal.RequireFromString("0.05")

// Calculation is the derived payout figure for a vendor and period
type Calculation struct {
	VendorID         uuid.UUID
	Period           Period
	CommissionCount  int64
	TotalGross       decimal.Decimal
	TotalCommission  decimal.Decimal
	TotalPlatformFee decimal.Decimal
	NetCommissions   decimal.Decimal
	TaxRate          decimal.Decimal
	TaxDeduction     decimal.Decimal
	AdjustmentsTotal decimal.Decimal
	NetPayoutAmount  decimal.Decimal
}

// Aggregate derives the payout for a period from commission and adjustment
// totals. It is pure; the payout amount is clamped at zero, never negative.
func Aggregate(vendorID uuid.UUID, period Period, totals commission.Totals, adjustments, taxRate decimal.Decimal) Calculation {
	places := int32(commission.MoneyPlaces)
	net := totals.NetCommissions.Round(places)
	tax := net.Mul(taxRate).Round(places)
	if tax.IsNegative() {
		tax = decimal.Zero
	}
	adjustments = adjustments.Round(places)
	amount := net.Sub(tax).Add(adjustments)
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return Calculation{
		VendorID:         vendorID,
		Period:           period,
		CommissionCount:  totals.Count,
		TotalGross:       totals.GrossAmount.Round(places),
		TotalCommission:  totals.CommissionTotal.Round(places),
		TotalPlatformFee: totals.PlatformFees.Round(places),
		NetCommissions:   net,
		TaxRate:          taxRate,
		TaxDeduction:     tax,
		AdjustmentsTotal: adjustments,
		NetPayoutAmount:  amount,
	}
}
