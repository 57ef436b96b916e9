package kyc

import (
	"time"

	"github.com/google/uuid"
	onboardingapp "github.com/vendorhub/backend/internal/application/onboarding"
	"github.com/vendorhub/backend/internal/domain/kyc"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// UploadDocumentRequest submits a KYC document for validation
type UploadDocumentRequest struct {
	DocumentType   string            `json:"document_type" binding:"required,oneof=trade_license tin_certificate bank_statement national_id"`
	DocumentNumber string            `json:"document_number" binding:"required,max=50"`
	FileKey        string            `json:"file_key" binding:"max=500"`
	Metadata       map[string]string `json:"metadata"`
}

// UploadURLRequest asks for a presigned URL for the raw document file
type UploadURLRequest struct {
	DocumentType string `json:"document_type" binding:"required,oneof=trade_license tin_certificate bank_statement national_id"`
	FileName     string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType  string `json:"content_type" binding:"required"`
}

// ReviewRequest is a manual review decision
type ReviewRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// UploadURLResponse carries a presigned upload URL
type UploadURLResponse struct {
	FileKey   string    `json:"file_key"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DocumentResponse represents a KYC document in API responses
type DocumentResponse struct {
	ID                 uuid.UUID         `json:"id"`
	VendorID           uuid.UUID         `json:"vendor_id"`
	DocumentType       string            `json:"document_type"`
	DocumentNumber     string            `json:"document_number"`
	FileKey            string            `json:"file_key,omitempty"`
	VerificationStatus string            `json:"verification_status"`
	Metadata           map[string]string `json:"metadata,omitempty"`
	ValidationScore    int               `json:"validation_score"`
	VerifiedAt         *time.Time        `json:"verified_at,omitempty"`
	ReviewedBy         string            `json:"reviewed_by,omitempty"`
	RejectionReason    string            `json:"rejection_reason,omitempty"`
	DownloadURL        string            `json:"download_url,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// ValidationResponse is the validator's verdict on an uploaded document
type ValidationResponse struct {
	IsValid         bool                `json:"is_valid"`
	Errors          []shared.FieldError `json:"errors"`
	ValidationScore int                 `json:"validation_score"`
	AutoVerify      bool                `json:"auto_verify"`
}

// UploadResponse is a stored document with its validation and the
// workflow after any step it completed
type UploadResponse struct {
	Document   DocumentResponse                `json:"document"`
	Validation ValidationResponse              `json:"validation"`
	Workflow   *onboardingapp.WorkflowResponse `json:"workflow,omitempty"`
}

// ReviewResponse is a reviewed document with the resulting workflow
type ReviewResponse struct {
	Document DocumentResponse                `json:"document"`
	Workflow *onboardingapp.WorkflowResponse `json:"workflow,omitempty"`
}

// ToDocumentResponse converts a domain document to a response
func ToDocumentResponse(d *kyc.Document) DocumentResponse {
	return DocumentResponse{
		ID:                 d.ID,
		VendorID:           d.VendorID,
		DocumentType:       string(d.Type),
		DocumentNumber:     d.Number,
		FileKey:            d.FileKey,
		VerificationStatus: string(d.Status),
		Metadata:           d.Metadata,
		ValidationScore:    d.ValidationScore,
		VerifiedAt:         d.VerifiedAt,
		ReviewedBy:         d.ReviewedBy,
		RejectionReason:    d.RejectionReason,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// ToDocumentResponses converts a slice of documents
func ToDocumentResponses(docs []kyc.Document) []DocumentResponse {
	responses := make([]DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = ToDocumentResponse(&docs[i])
	}
	return responses
}

func toValidationResponse(r kyc.Result) ValidationResponse {
	errs := r.Errors
	if errs == nil {
		errs = []shared.FieldError{}
	}
	return ValidationResponse{
		IsValid:         r.IsValid,
		Errors:          errs,
		ValidationScore: r.ValidationScore,
		AutoVerify:      r.AutoVerify,
	}
}
