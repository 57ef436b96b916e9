package payout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/payout"
)

// PeriodQuery selects a range of calendar days, both ends inclusive
type PeriodQuery struct {
	PeriodStart string `form:"period_start" binding:"required,datetime=2006-01-02"`
	PeriodEnd   string `form:"period_end" binding:"required,datetime=2006-01-02"`
}

// GeneratePayoutRequest creates a pending payout for a period
type GeneratePayoutRequest struct {
	PeriodStart   string            `json:"period_start" binding:"required,datetime=2006-01-02"`
	PeriodEnd     string            `json:"period_end" binding:"required,datetime=2006-01-02"`
	PayoutMethod  string            `json:"payout_method" binding:"required,oneof=bank_transfer mobile_banking check"`
	PayoutDetails map[string]string `json:"payout_details" binding:"required"`
}

// AdjustmentRequest records a signed correction to a vendor's earnings
type AdjustmentRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	Reason         string          `json:"reason" binding:"required,min=3,max=500"`
	AdjustmentDate string          `json:"adjustment_date" binding:"omitempty,datetime=2006-01-02"`
}

// PayoutListFilter represents payout list query parameters
type PayoutListFilter struct {
	VendorID string `form:"vendor_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=pending processing completed failed"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CalculationResponse is a payout preview for a period
type CalculationResponse struct {
	VendorID         uuid.UUID       `json:"vendor_id"`
	PeriodStart      string          `json:"period_start"`
	PeriodEnd        string          `json:"period_end"`
	CommissionCount  int64           `json:"commission_count"`
	TotalGross       decimal.Decimal `json:"total_gross"`
	TotalCommission  decimal.Decimal `json:"total_commission"`
	TotalPlatformFee decimal.Decimal `json:"total_platform_fee"`
	NetCommissions   decimal.Decimal `json:"net_commissions"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	TaxDeduction     decimal.Decimal `json:"tax_deduction"`
	AdjustmentsTotal decimal.Decimal `json:"adjustments_total"`
	NetPayoutAmount  decimal.Decimal `json:"net_payout_amount"`
}

// PayoutResponse represents a payout in API responses. Account numbers in
// the details are masked.
type PayoutResponse struct {
	CalculationResponse
	ID                      uuid.UUID         `json:"id"`
	Status                  string            `json:"status"`
	PayoutMethod            string            `json:"payout_method"`
	PayoutDetails           map[string]string `json:"payout_details"`
	SettlementReference     string            `json:"settlement_reference,omitempty"`
	EstimatedProcessingTime *time.Time        `json:"estimated_processing_time,omitempty"`
	ProcessingStartedAt     *time.Time        `json:"processing_started_at,omitempty"`
	CompletedAt             *time.Time        `json:"completed_at,omitempty"`
	FailedAt                *time.Time        `json:"failed_at,omitempty"`
	FailureReason           string            `json:"failure_reason,omitempty"`
	CreatedAt               time.Time         `json:"created_at"`
	UpdatedAt               time.Time         `json:"updated_at"`
	Version                 int               `json:"version"`
}

// ProcessResult is the outcome of one settlement attempt. A failed
// settlement is a result, not an error.
type ProcessResult struct {
	PayoutID                uuid.UUID  `json:"payout_id"`
	Status                  string     `json:"status"`
	SettlementReference     string     `json:"settlement_reference,omitempty"`
	EstimatedProcessingTime *time.Time `json:"estimated_processing_time,omitempty"`
	FailureReason           string     `json:"failure_reason,omitempty"`
	ProcessedAt             time.Time  `json:"processed_at"`
}

// AuditEntryResponse is one line of a payout's audit trail
type AuditEntryResponse struct {
	ID         uuid.UUID      `json:"id"`
	Action     string         `json:"action"`
	Actor      string         `json:"actor"`
	FromStatus string         `json:"from_status,omitempty"`
	ToStatus   string         `json:"to_status"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// AdjustmentResponse represents an adjustment in API responses
type AdjustmentResponse struct {
	ID             uuid.UUID       `json:"id"`
	VendorID       uuid.UUID       `json:"vendor_id"`
	Amount         decimal.Decimal `json:"amount"`
	Reason         string          `json:"reason"`
	AdjustmentDate string          `json:"adjustment_date"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToCalculationResponse converts a calculation to a response
func ToCalculationResponse(c payout.Calculation) CalculationResponse {
	return CalculationResponse{
		VendorID:         c.VendorID,
		PeriodStart:      c.Period.Start.Format(payout.DateLayout),
		PeriodEnd:        c.Period.End.Format(payout.DateLayout),
		CommissionCount:  c.CommissionCount,
		TotalGross:       c.TotalGross,
		TotalCommission:  c.TotalCommission,
		TotalPlatformFee: c.TotalPlatformFee,
		NetCommissions:   c.NetCommissions,
		TaxRate:          c.TaxRate,
		TaxDeduction:     c.TaxDeduction,
		AdjustmentsTotal: c.AdjustmentsTotal,
		NetPayoutAmount:  c.NetPayoutAmount,
	}
}

// ToPayoutResponse converts a domain payout to a response
func ToPayoutResponse(p *payout.Payout) PayoutResponse {
	return PayoutResponse{
		CalculationResponse: ToCalculationResponse(payout.Calculation{
			VendorID:         p.VendorID,
			Period:           p.Period,
			CommissionCount:  p.CommissionCount,
			TotalGross:       p.TotalGross,
			TotalCommission:  p.TotalCommission,
			TotalPlatformFee: p.TotalPlatformFee,
			NetCommissions:   p.NetCommissions,
			TaxRate:          p.TaxRate,
			TaxDeduction:     p.TaxDeduction,
			AdjustmentsTotal: p.AdjustmentsTotal,
			NetPayoutAmount:  p.NetPayoutAmount,
		}),
		ID:                      p.ID,
		Status:                  string(p.Status),
		PayoutMethod:            string(p.Method),
		PayoutDetails:           p.Details.Masked(),
		SettlementReference:     p.SettlementReference,
		EstimatedProcessingTime: p.EstimatedProcessingTime,
		ProcessingStartedAt:     p.ProcessingStartedAt,
		CompletedAt:             p.CompletedAt,
		FailedAt:                p.FailedAt,
		FailureReason:           p.FailureReason,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
		Version:                 p.Version,
	}
}

// ToAuditEntryResponses converts an audit trail
func ToAuditEntryResponses(entries []payout.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = AuditEntryResponse{
			ID:         e.ID,
			Action:     e.Action,
			Actor:      e.Actor,
			FromStatus: string(e.FromStatus),
			ToStatus:   string(e.ToStatus),
			Details:    e.Details,
			CreatedAt:  e.CreatedAt,
		}
	}
	return out
}

// ToAdjustmentResponse converts a domain adjustment to a response
func ToAdjustmentResponse(a *payout.Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:             a.ID,
		VendorID:       a.VendorID,
		Amount:         a.Amount,
		Reason:         a.Reason,
		AdjustmentDate: a.AdjustmentDate.Format(payout.DateLayout),
		CreatedBy:      a.CreatedBy,
		CreatedAt:      a.CreatedAt,
	}
}
