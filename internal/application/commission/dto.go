package commission

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/commission"
)

// RecordCommissionRequest records the platform's share of one sale
type RecordCommissionRequest struct {
	TransactionID   string          `json:"transaction_id" binding:"required,min=1,max=100"`
	GrossAmount     decimal.Decimal `json:"gross_amount"`
	TransactionDate time.Time       `json:"transaction_date" binding:"required"`
}

// SetRateRequest sets a vendor's negotiated commission rate
type SetRateRequest struct {
	Rate          *decimal.Decimal `json:"rate" binding:"required"`
	EffectiveFrom *time.Time        `json:"effective_from"`
}

// PeriodQuery selects a range of calendar days, both ends inclusive
type PeriodQuery struct {
	PeriodStart string `form:"period_start" binding:"required,datetime=2006-01-02"`
	PeriodEnd   string `form:"period_end" binding:"required,datetime=2006-01-02"`
}

// CommissionResponse represents a commission in API responses
type CommissionResponse struct {
	ID               uuid.UUID       `json:"id"`
	VendorID         uuid.UUID       `json:"vendor_id"`
	TransactionID    string          `json:"transaction_id"`
	GrossAmount      decimal.Decimal `json:"gross_amount"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	PlatformFee      decimal.Decimal `json:"platform_fee"`
	NetCommission    decimal.Decimal `json:"net_commission"`
	TransactionDate  time.Time       `json:"transaction_date"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TotalsResponse sums a vendor's commissions in a period
type TotalsResponse struct {
	Count           int64           `json:"count"`
	GrossAmount     decimal.Decimal `json:"gross_amount"`
	CommissionTotal decimal.Decimal `json:"commission_total"`
	PlatformFees    decimal.Decimal `json:"platform_fees"`
	NetCommissions  decimal.Decimal `json:"net_commissions"`
}

// CommissionListResponse lists a period's commissions with their totals
type CommissionListResponse struct {
	PeriodStart string               `json:"period_start"`
	PeriodEnd   string               `json:"period_end"`
	Items       []CommissionResponse `json:"items"`
	Totals      TotalsResponse       `json:"totals"`
}

// RateResponse represents a vendor commission rate
type RateResponse struct {
	ID            uuid.UUID       `json:"id"`
	VendorID      uuid.UUID       `json:"vendor_id"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveFrom time.Time       `json:"effective_from"`
	IsActive      bool            `json:"is_active"`
}

// ToCommissionResponse converts a domain commission to a response
func ToCommissionResponse(c *commission.Commission) CommissionResponse {
	return CommissionResponse{
		ID:               c.ID,
		VendorID:         c.VendorID,
		TransactionID:    c.TransactionID,
		GrossAmount:      c.GrossAmount,
		CommissionRate:   c.CommissionRate,
		CommissionAmount: c.CommissionAmount,
		PlatformFee:      c.PlatformFee,
		NetCommission:    c.NetCommission,
		TransactionDate:  c.TransactionDate,
		CreatedAt:        c.CreatedAt,
	}
}

// ToRateResponse converts a domain rate to a response
func ToRateResponse(r *commission.Rate) RateResponse {
	return RateResponse{
		ID:            r.ID,
		VendorID:      r.VendorID,
		Rate:          r.Rate,
		EffectiveFrom: r.EffectiveFrom,
		IsActive:      r.IsActive,
	}
}

func toTotalsResponse(t commission.Totals) TotalsResponse {
	places := int32(commission.MoneyPlaces)
	return TotalsResponse{
		Count:           t.Count,
		GrossAmount:     t.GrossAmount.Round(places),
		CommissionTotal: t.CommissionTotal.Round(places),
		PlatformFees:    t.PlatformFees.Round(places),
		NetCommissions:  t.NetCommissions.Round(places),
	}
}
