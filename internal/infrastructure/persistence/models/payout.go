package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/payout"
)

// PayoutModel is the persistence model for the Payout aggregate. The partial
// unique index allows a new payout for a period only after earlier ones failed.
type PayoutModel struct {
	AggregateModel
	VendorID                uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_payouts_vendor_period_active,priority:1,where:status <> 'failed'"`
	PeriodStart             time.Time       `gorm:"type:date;not null;uniqueIndex:idx_payouts_vendor_period_active,priority:2"`
	PeriodEnd               time.Time       `gorm:"type:date;not null;uniqueIndex:idx_payouts_vendor_period_active,priority:3"`
	CommissionCount         int64           `gorm:"not null;default:0"`
	TotalGross              decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalCommission         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPlatformFee        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NetCommissions          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxRate                 decimal.Decimal `gorm:"type:decimal(6,4);not null"`
	TaxDeduction            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AdjustmentsTotal        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NetPayoutAmount         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status                  payout.Status   `gorm:"type:varchar(20);not null;index"`
	PayoutMethod            payout.Method   `gorm:"type:varchar(20);not null"`
	PayoutDetails           string          `gorm:"type:jsonb"`
	SettlementReference     string          `gorm:"type:varchar(100)"`
	EstimatedProcessingTime *time.Time
	ProcessingStartedAt     *time.Time
	CompletedAt             *time.Time
	FailedAt                *time.Time
	FailureReason           string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PayoutModel) TableName() string {
	return "payouts"
}

// ToDomain converts the persistence model to a domain Payout
func (m *PayoutModel) ToDomain() *payout.Payout {
	p := &payout.Payout{
		BaseAggregateRoot:       m.ToDomainAggregateRoot(),
		VendorID:                m.VendorID,
		Period:                  payout.Period{Start: m.PeriodStart.UTC(), End: m.PeriodEnd.UTC()},
		CommissionCount:         m.CommissionCount,
		TotalGross:              m.TotalGross,
		TotalCommission:         m.TotalCommission,
		TotalPlatformFee:        m.TotalPlatformFee,
		NetCommissions:          m.NetCommissions,
		TaxRate:                 m.TaxRate,
		TaxDeduction:            m.TaxDeduction,
		AdjustmentsTotal:        m.AdjustmentsTotal,
		NetPayoutAmount:         m.NetPayoutAmount,
		Status:                  m.Status,
		Method:                  m.PayoutMethod,
		Details:                 payout.Details{},
		SettlementReference:     m.SettlementReference,
		EstimatedProcessingTime: m.EstimatedProcessingTime,
		ProcessingStartedAt:     m.ProcessingStartedAt,
		CompletedAt:             m.CompletedAt,
		FailedAt:                m.FailedAt,
		FailureReason:           m.FailureReason,
	}
	decodeJSON(m.PayoutDetails, &p.Details)
	return p
}

// PayoutModelFromDomain creates a persistence model from a domain Payout
func PayoutModelFromDomain(p *payout.Payout) *PayoutModel {
	m := &PayoutModel{
		VendorID:                p.VendorID,
		PeriodStart:             p.Period.Start,
		PeriodEnd:               p.Period.End,
		CommissionCount:         p.CommissionCount,
		TotalGross:              p.TotalGross,
		TotalCommission:         p.TotalCommission,
		TotalPlatformFee:        p.TotalPlatformFee,
		NetCommissions:          p.NetCommissions,
		TaxRate:                 p.TaxRate,
		TaxDeduction:            p.TaxDeduction,
		AdjustmentsTotal:        p.AdjustmentsTotal,
		NetPayoutAmount:         p.NetPayoutAmount,
		Status:                  p.Status,
		PayoutMethod:            p.Method,
		PayoutDetails:           encodeJSON(p.Details),
		SettlementReference:     p.SettlementReference,
		EstimatedProcessingTime: p.EstimatedProcessingTime,
		ProcessingStartedAt:     p.ProcessingStartedAt,
		CompletedAt:             p.CompletedAt,
		FailedAt:                p.FailedAt,
		FailureReason:           p.FailureReason,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// PayoutAdjustmentModel is the persistence model for adjustments. Insert only.
type PayoutAdjustmentModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	VendorID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_adjustments_vendor_date,priority:1"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason         string          `gorm:"type:text;not null"`
	AdjustmentDate time.Time       `gorm:"not null;index:idx_adjustments_vendor_date,priority:2"`
	CreatedBy      string          `gorm:"type:varchar(100);not null"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PayoutAdjustmentModel) TableName() string {
	return "payout_adjustments"
}

// ToDomain converts the persistence model to a domain Adjustment
func (m *PayoutAdjustmentModel) ToDomain() *payout.Adjustment {
	return &payout.Adjustment{
		ID:             m.ID,
		VendorID:       m.VendorID,
		Amount:         m.Amount,
		Reason:         m.Reason,
		AdjustmentDate: m.AdjustmentDate,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}

// PayoutAdjustmentModelFromDomain creates a persistence model from a domain Adjustment
func PayoutAdjustmentModelFromDomain(a *payout.Adjustment) *PayoutAdjustmentModel {
	return &PayoutAdjustmentModel{
		ID:             a.ID,
		VendorID:       a.VendorID,
		Amount:         a.Amount,
		Reason:         a.Reason,
		AdjustmentDate: a.AdjustmentDate,
		CreatedBy:      a.CreatedBy,
		CreatedAt:      a.CreatedAt,
	}
}

// PayoutAuditModel is the persistence model for payout audit entries. Insert only.
type PayoutAuditModel struct {
	ID         uuid.UUID     `gorm:"type:uuid;primary_key"`
	PayoutID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	VendorID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	Action     string        `gorm:"type:varchar(50);not null"`
	Actor      string        `gorm:"type:varchar(100);not null"`
	FromStatus payout.Status `gorm:"type:varchar(20)"`
	ToStatus   payout.Status `gorm:"type:varchar(20);not null"`
	Details    string        `gorm:"type:jsonb"`
	CreatedAt  time.Time     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PayoutAuditModel) TableName() string {
	return "payout_audit_log"
}

// ToDomain converts the persistence model to a domain AuditEntry
func (m *PayoutAuditModel) ToDomain() payout.AuditEntry {
	e := payout.AuditEntry{
		ID:         m.ID,
		PayoutID:   m.PayoutID,
		VendorID:   m.VendorID,
		Action:     m.Action,
		Actor:      m.Actor,
		FromStatus: m.FromStatus,
		ToStatus:   m.ToStatus,
		Details:    map[string]any{},
		CreatedAt:  m.CreatedAt,
	}
	decodeJSON(m.Details, &e.Details)
	return e
}

// PayoutAuditModelFromDomain creates a persistence model from a domain AuditEntry
func PayoutAuditModelFromDomain(e payout.AuditEntry) *PayoutAuditModel {
	return &PayoutAuditModel{
		ID:         e.ID,
		PayoutID:   e.PayoutID,
		VendorID:   e.VendorID,
		Action:     e.Action,
		Actor:      e.Actor,
		FromStatus: e.FromStatus,
		ToStatus:   e.ToStatus,
		Details:    encodeJSON(e.Details),
		CreatedAt:  e.CreatedAt,
	}
}
