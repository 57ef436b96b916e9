package kyc

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// DocumentType is a kind of KYC document accepted in Bangladesh
type DocumentType string

const (
	DocumentTypeTradeLicense   DocumentType = "trade_license"
	DocumentTypeTINCertificate DocumentType = "tin_certificate"
	DocumentTypeBankStatement  DocumentType = "bank_statement"
	DocumentTypeNationalID     DocumentType = "national_id"
)

// DocumentTypes lists every accepted document type
var DocumentTypes = []DocumentType{
	DocumentTypeTradeLicense,
	DocumentTypeTINCertificate,
	DocumentTypeBankStatement,
	DocumentTypeNationalID,
}

// IsValid reports whether t is a known document type
func (t DocumentType) IsValid() bool {
	_, ok := rules[t]
	return ok
}

// VerificationStatus is the review state of a document
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// ReviewerSystem is recorded as the reviewer of auto-verified documents
const ReviewerSystem = "system"

// Document is an uploaded KYC document. Documents that fail validation are
// never persisted, so a stored Document always passed validation once.
type Document struct {
	shared.BaseEntity
	VendorID         uuid.UUID
	Type             DocumentType
	Number           string
	FileKey          string
	Status           VerificationStatus
	Metadata         map[string]string
	ValidationScore  int
	ValidationErrors []shared.FieldError
	VerifiedAt       *time.Time
	ReviewedBy       string
	RejectionReason  string
}

// NewDocument builds a document from a validation result. It returns the
// result's errors as a ValidationError when the document is invalid.
func NewDocument(vendorID uuid.UUID, docType DocumentType, number, fileKey string, metadata map[string]string, result Result, now time.Time) (*Document, error) {
	if !result.IsValid {
		return nil, shared.NewValidationError("document failed validation", result.Errors...)
	}
	doc := &Document{
		BaseEntity:      shared.NewBaseEntity(),
		VendorID:        vendorID,
		Type:            docType,
		Number:          strings.TrimSpace(number),
		FileKey:         fileKey,
		Status:          VerificationPending,
		Metadata:        metadata,
		ValidationScore: result.ValidationScore,
	}
	if result.AutoVerify {
		doc.markVerified(ReviewerSystem, now)
	}
	return doc, nil
}

// IsVerified reports whether the document has been verified
func (d *Document) IsVerified() bool {
	return d.Status == VerificationVerified
}

// Verify marks a pending document as verified by reviewer
func (d *Document) Verify(reviewer string, now time.Time) error {
	if d.Status != VerificationPending {
		return shared.NewConflictError("document %s is already %s", d.ID, d.Status)
	}
	d.markVerified(reviewer, now)
	return nil
}

// Reject marks a pending document as rejected
func (d *Document) Reject(reviewer, reason string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return shared.NewValidationError("rejection requires a reason",
			shared.FieldError{Field: "reason", Code: "required", Message: "reason is required"})
	}
	if d.Status != VerificationPending {
		return shared.NewConflictError("document %s is already %s", d.ID, d.Status)
	}
	d.Status = VerificationRejected
	d.ReviewedBy = reviewer
	d.RejectionReason = reason
	d.Touch(now)
	return nil
}

func (d *Document) markVerified(reviewer string, now time.Time) {
	d.Status = VerificationVerified
	d.VerifiedAt = &now
	d.ReviewedBy = reviewer
	d.Touch(now)
}
