package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/vendor"
)

// VendorModel is the persistence model for the Vendor aggregate
type VendorModel struct {
	AggregateModel
	BusinessName     string        `gorm:"type:varchar(200);not null"`
	OwnerName        string        `gorm:"type:varchar(200);not null"`
	Email            string        `gorm:"type:varchar(200);not null;uniqueIndex:idx_vendors_email"`
	Phone            string        `gorm:"type:varchar(20);not null;index"`
	Region           string        `gorm:"type:varchar(50);not null;index"`
	District         string        `gorm:"type:varchar(100)"`
	Locale           string        `gorm:"type:varchar(10);not null;default:'bn-BD'"`
	Status           vendor.Status `gorm:"type:varchar(30);not null;index"`
	StatusReason     string        `gorm:"type:text"`
	RegistrationStep int           `gorm:"not null;default:1"`
	VerifiedAt       *time.Time
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor
func (m *VendorModel) ToDomain() *vendor.Vendor {
	return &vendor.Vendor{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BusinessName:      m.BusinessName,
		OwnerName:         m.OwnerName,
		Email:             m.Email,
		Phone:             m.Phone,
		Region:            m.Region,
		District:          m.District,
		Locale:            m.Locale,
		Status:            m.Status,
		StatusReason:      m.StatusReason,
		RegistrationStep:  m.RegistrationStep,
		VerifiedAt:        m.VerifiedAt,
	}
}

// VendorModelFromDomain creates a persistence model from a domain Vendor
func VendorModelFromDomain(v *vendor.Vendor) *VendorModel {
	m := &VendorModel{
		BusinessName:     v.BusinessName,
		OwnerName:        v.OwnerName,
		Email:            v.Email,
		Phone:            v.Phone,
		Region:           v.Region,
		District:         v.District,
		Locale:           v.Locale,
		Status:           v.Status,
		StatusReason:     v.StatusReason,
		RegistrationStep: v.RegistrationStep,
		VerifiedAt:       v.VerifiedAt,
	}
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	return m
}

// StoreModel is the persistence model for vendor stores
type StoreModel struct {
	BaseModel
	VendorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Slug      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_stores_slug"`
	IsDefault bool      `gorm:"not null;default:false"`
	IsActive  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store
func (m *StoreModel) ToDomain() *vendor.Store {
	return &vendor.Store{
		BaseEntity: m.BaseModel.ToDomain(),
		VendorID:   m.VendorID,
		Name:       m.Name,
		Slug:       m.Slug,
		IsDefault:  m.IsDefault,
		IsActive:   m.IsActive,
	}
}

// StoreModelFromDomain creates a persistence model from a domain Store
func StoreModelFromDomain(s *vendor.Store) *StoreModel {
	m := &StoreModel{
		VendorID:  s.VendorID,
		Name:      s.Name,
		Slug:      s.Slug,
		IsDefault: s.IsDefault,
		IsActive:  s.IsActive,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// VendorPerformanceModel holds the tier of an approved vendor
type VendorPerformanceModel struct {
	VendorID         uuid.UUID   `gorm:"type:uuid;primary_key"`
	Tier             vendor.Tier `gorm:"type:varchar(20);not null"`
	PerformanceScore int         `gorm:"not null"`
	AssignedAt       time.Time   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VendorPerformanceModel) TableName() string {
	return "vendor_performance"
}

// ToDomain converts the persistence model to a domain Performance
func (m *VendorPerformanceModel) ToDomain() *vendor.Performance {
	return &vendor.Performance{
		VendorID:   m.VendorID,
		Tier:       m.Tier,
		Score:      m.PerformanceScore,
		AssignedAt: m.AssignedAt,
	}
}

// VendorPerformanceModelFromDomain creates a persistence model from a domain Performance
func VendorPerformanceModelFromDomain(p vendor.Performance) *VendorPerformanceModel {
	return &VendorPerformanceModel{
		VendorID:         p.VendorID,
		Tier:             p.Tier,
		PerformanceScore: p.Score,
		AssignedAt:       p.AssignedAt,
	}
}
