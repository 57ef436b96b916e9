package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/kyc"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// KYCDocumentModel is the persistence model for KYC documents
type KYCDocumentModel struct {
	BaseModel
	VendorID           uuid.UUID              `gorm:"type:uuid;not null;index"`
	DocumentType       kyc.DocumentType       `gorm:"type:varchar(30);not null"`
	DocumentNumber     string                 `gorm:"type:varchar(50);not null"`
	FileKey            string                 `gorm:"type:varchar(500)"`
	VerificationStatus kyc.VerificationStatus `gorm:"type:varchar(20);not null;index"`
	Metadata           string                 `gorm:"type:jsonb"`
	ValidationScore    int                    `gorm:"not null;default:0"`
	ValidationErrors   string                 `gorm:"type:jsonb"`
	VerifiedAt         *time.Time
	ReviewedBy         string `gorm:"type:varchar(100)"`
	RejectionReason    string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (KYCDocumentModel) TableName() string {
	return "kyc_documents"
}

// ToDomain converts the persistence model to a domain Document
func (m *KYCDocumentModel) ToDomain() *kyc.Document {
	doc := &kyc.Document{
		BaseEntity:      m.BaseModel.ToDomain(),
		VendorID:        m.VendorID,
		Type:            m.DocumentType,
		Number:          m.DocumentNumber,
		FileKey:         m.FileKey,
		Status:          m.VerificationStatus,
		Metadata:        map[string]string{},
		ValidationScore: m.ValidationScore,
		VerifiedAt:      m.VerifiedAt,
		ReviewedBy:      m.ReviewedBy,
		RejectionReason: m.RejectionReason,
	}
	decodeJSON(m.Metadata, &doc.Metadata)
	var errs []shared.FieldError
	decodeJSON(m.ValidationErrors, &errs)
	doc.ValidationErrors = errs
	return doc
}

// KYCDocumentModelFromDomain creates a persistence model from a domain Document
func KYCDocumentModelFromDomain(d *kyc.Document) *KYCDocumentModel {
	errs := d.ValidationErrors
	if errs == nil {
		errs = []shared.FieldError{}
	}
	m := &KYCDocumentModel{
		VendorID:           d.VendorID,
		DocumentType:       d.Type,
		DocumentNumber:     d.Number,
		FileKey:            d.FileKey,
		VerificationStatus: d.Status,
		Metadata:           encodeJSON(d.Metadata),
		ValidationScore:    d.ValidationScore,
		ValidationErrors:   encodeJSON(errs),
		VerifiedAt:         d.VerifiedAt,
		ReviewedBy:         d.ReviewedBy,
		RejectionReason:    d.RejectionReason,
	}
	m.FromDomainBaseEntity(d.BaseEntity)
	return m
}
