package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/commission"
)

// CommissionModel is the persistence model for commissions. Insert only.
type CommissionModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	VendorID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_commissions_vendor_date,priority:1"`
	TransactionID    string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_commissions_transaction"`
	GrossAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CommissionRate   decimal.Decimal `gorm:"type:decimal(6,4);not null"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PlatformFee      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NetCommission    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TransactionDate  time.Time       `gorm:"not null;index:idx_commissions_vendor_date,priority:2"`
	CreatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CommissionModel) TableName() string {
	return "commissions"
}

// ToDomain converts the persistence model to a domain Commission
func (m *CommissionModel) ToDomain() *commission.Commission {
	return &commission.Commission{
		ID:               m.ID,
		VendorID:         m.VendorID,
		TransactionID:    m.TransactionID,
		GrossAmount:      m.GrossAmount,
		CommissionRate:   m.CommissionRate,
		CommissionAmount: m.CommissionAmount,
		PlatformFee:      m.PlatformFee,
		NetCommission:    m.NetCommission,
		TransactionDate:  m.TransactionDate,
		CreatedAt:        m.CreatedAt,
	}
}

// CommissionModelFromDomain creates a persistence model from a domain Commission
func CommissionModelFromDomain(c *commission.Commission) *CommissionModel {
	return &CommissionModel{
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

// CommissionRateModel is the persistence model for vendor commission rates
type CommissionRateModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	VendorID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Rate          decimal.Decimal `gorm:"type:decimal(6,4);not null"`
	EffectiveFrom time.Time       `gorm:"not null"`
	IsActive      bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CommissionRateModel) TableName() string {
	return "vendor_commission_rates"
}

// ToDomain converts the persistence model to a domain Rate
func (m *CommissionRateModel) ToDomain() *commission.Rate {
	return &commission.Rate{
		ID:            m.ID,
		VendorID:      m.VendorID,
		Rate:          m.Rate,
		EffectiveFrom: m.EffectiveFrom,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
	}
}

// CommissionRateModelFromDomain creates a persistence model from a domain Rate
func CommissionRateModelFromDomain(r *commission.Rate) *CommissionRateModel {
	return &CommissionRateModel{
		ID:            r.ID,
		VendorID:      r.VendorID,
		Rate:          r.Rate,
		EffectiveFrom: r.EffectiveFrom,
		IsActive:      r.IsActive,
		CreatedAt:     r.CreatedAt,
	}
}
