package payout

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// Status is the lifecycle state of a payout
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Payout is a vendor settlement for one period. The money figures are frozen
// at generation; only the status fields move afterwards.
type Payout struct {
	shared.BaseAggregateRoot
	VendorID                uuid.UUID
	Period                  Period
	CommissionCount         int64
	TotalGross              decimal.Decimal
	TotalCommission         decimal.Decimal
	TotalPlatformFee        decimal.Decimal
	NetCommissions          decimal.Decimal
	TaxRate                 decimal.Decimal
	TaxDeduction            decimal.Decimal
	AdjustmentsTotal        decimal.Decimal
	NetPayoutAmount         decimal.Decimal
	Status                  Status
	Method                  Method
	Details                 Details
	SettlementReference     string
	EstimatedProcessingTime *time.Time
	ProcessingStartedAt     *time.Time
	CompletedAt             *time.Time
	FailedAt                *time.Time
	FailureReason           string
}

// NewPayout creates a pending payout from a calculation
func NewPayout(calc Calculation, method Method, details Details) (*Payout, error) {
	if err := ValidateDetails(method, details); err != nil {
		return nil, err
	}
	if !calc.NetPayoutAmount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("nothing to pay out for vendor %s in %s", calc.VendorID, calc.Period))
	}
	p := &Payout{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VendorID:          calc.VendorID,
		Period:            calc.Period,
		CommissionCount:   calc.CommissionCount,
		TotalGross:        calc.TotalGross,
		TotalCommission:   calc.TotalCommission,
		TotalPlatformFee:  calc.TotalPlatformFee,
		NetCommissions:    calc.NetCommissions,
		TaxRate:           calc.TaxRate,
		TaxDeduction:      calc.TaxDeduction,
		AdjustmentsTotal:  calc.AdjustmentsTotal,
		NetPayoutAmount:   calc.NetPayoutAmount,
		Status:            StatusPending,
		Method:            method,
		Details:           normalizeDetails(method, details),
	}
	p.AddDomainEvent(NewPayoutGeneratedEvent(p))
	return p, nil
}

func normalizeDetails(m Method, details Details) Details {
	out := make(Details, len(details))
	for k, v := range details {
		out[k] = strings.TrimSpace(v)
	}
	if m == MethodMobileBanking {
		out["provider"] = strings.ToLower(out["provider"])
	}
	return out
}

// StartProcessing moves a pending payout to processing
func (p *Payout) StartProcessing(now time.Time) error {
	if p.Status != StatusPending {
		return p.conflict("processed")
	}
	p.Status = StatusProcessing
	p.ProcessingStartedAt = &now
	p.Touch(now)
	return nil
}

// Complete records a successful settlement
func (p *Payout) Complete(reference string, eta *time.Time, now time.Time) error {
	if p.Status != StatusProcessing {
		return p.conflict("completed")
	}
	p.Status = StatusCompleted
	p.SettlementReference = reference
	p.EstimatedProcessingTime = eta
	p.CompletedAt = &now
	p.Touch(now)
	p.AddDomainEvent(NewPayoutSettledEvent(p))
	return nil
}

// Fail records a failed settlement
func (p *Payout) Fail(reason string, now time.Time) error {
	if p.Status != StatusProcessing {
		return p.conflict("failed")
	}
	p.Status = StatusFailed
	p.FailureReason = reason
	p.FailedAt = &now
	p.Touch(now)
	p.AddDomainEvent(NewPayoutFailedEvent(p))
	return nil
}

func (p *Payout) conflict(action string) error {
	return shared.NewConflictError("payout %s is %s and cannot be %s", p.ID, p.Status, action)
}
