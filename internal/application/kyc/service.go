package kyc

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	onboardingapp "github.com/vendorhub/backend/internal/application/onboarding"
	"github.com/vendorhub/backend/internal/domain/kyc"
	"github.com/vendorhub/backend/internal/domain/onboarding"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/vendor"
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AllowedContentTypes are the file types accepted for KYC scans
var AllowedContentTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// ObjectStorage presigns direct client uploads and downloads of raw files
type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// StepCompleter completes the workflow step a verified document satisfies
type StepCompleter interface {
	DocumentVerified(ctx context.Context, vendorID uuid.UUID, docType kyc.DocumentType) (onboarding.Workflow, error)
}

// DocumentServiceConfig holds the service's dependencies
type DocumentServiceConfig struct {
	Documents         kyc.DocumentRepository
	Vendors           vendor.Repository
	Tracker           StepCompleter
	Storage           ObjectStorage
	Validator         kyc.Validator
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
	Logger            *zap.Logger
	// BusinessMetrics counts document outcomes; nil disables recording
	BusinessMetrics *telemetry.BusinessMetrics
}

// DocumentService validates, stores and reviews KYC documents
type DocumentService struct {
	documents         kyc.DocumentRepository
	vendors           vendor.Repository
	tracker           StepCompleter
	storage           ObjectStorage
	validator         kyc.Validator
	uploadURLExpiry   time.Duration
	downloadURLExpiry time.Duration
	metrics           *telemetry.BusinessMetrics
	logger            *zap.Logger
	now               func() time.Time
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(cfg DocumentServiceConfig) *DocumentService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validator := cfg.Validator
	if validator.Threshold() <= 0 {
		validator = kyc.NewValidator(0)
	}
	uploadExpiry := cfg.UploadURLExpiry
	if uploadExpiry <= 0 {
		uploadExpiry = 15 * time.Minute
	}
	downloadExpiry := cfg.DownloadURLExpiry
	if downloadExpiry <= 0 {
		downloadExpiry = time.Hour
	}
	return &DocumentService{
		documents:         cfg.Documents,
		vendors:           cfg.Vendors,
		tracker:           cfg.Tracker,
		storage:           cfg.Storage,
		validator:         validator,
		uploadURLExpiry:   uploadExpiry,
		downloadURLExpiry: downloadExpiry,
		metrics:           cfg.BusinessMetrics,
		logger:            logger,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// StorageKeyPrefix is the key prefix all of a vendor's KYC files live under
func StorageKeyPrefix(vendorID uuid.UUID) string {
	return "kyc/" + vendorID.String() + "/"
}

// PresignUpload returns a presigned URL the client uploads the raw file to
func (s *DocumentService) PresignUpload(ctx context.Context, vendorID uuid.UUID, req UploadURLRequest) (*UploadURLResponse, error) {
	if _, err := s.openVendor(ctx, vendorID); err != nil {
		return nil, err
	}
	ext, ok := AllowedContentTypes[strings.ToLower(req.ContentType)]
	if !ok {
		return nil, shared.NewValidationError("unsupported file type",
			shared.FieldError{Field: "content_type", Code: "invalid_value", Message: "content_type must be application/pdf, image/jpeg or image/png"})
	}
	if s.storage == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "object storage is not configured")
	}

	key := fmt.Sprintf("%s%s/%s%s", StorageKeyPrefix(vendorID), req.DocumentType, uuid.New().String(), ext)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, strings.ToLower(req.ContentType), s.uploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign kyc upload: %w", err)
	}
	return &UploadURLResponse{FileKey: key, UploadURL: url, ExpiresAt: expiresAt}, nil
}

// Upload validates a document and stores it if valid. A document whose
// score reaches the threshold is verified immediately and completes its
// workflow step. Invalid documents are not stored.
func (s *DocumentService) Upload(ctx context.Context, vendorID uuid.UUID, req UploadDocumentRequest) (*UploadResponse, error) {
	if _, err := s.openVendor(ctx, vendorID); err != nil {
		return nil, err
	}
	if err := s.checkFileKey(ctx, vendorID, req.FileKey); err != nil {
		return nil, err
	}

	now := s.now()
	docType := kyc.DocumentType(req.DocumentType)
	result := s.validator.Validate(docType, req.DocumentNumber, req.Metadata, now)
	doc, err := kyc.NewDocument(vendorID, docType, req.DocumentNumber, req.FileKey, req.Metadata, result, now)
	if err != nil {
		s.logger.Info("kyc document rejected by validation",
			zap.String("vendor_id", vendorID.String()),
			zap.String("document_type", req.DocumentType),
			zap.Int("score", result.ValidationScore),
			zap.Int("errors", len(result.Errors)),
		)
		s.recordOutcome(ctx, docType, OutcomeInvalid)
		return nil, err
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, err
	}
	s.recordOutcome(ctx, docType, string(doc.Status))

	s.logger.Info("kyc document stored",
		zap.String("vendor_id", vendorID.String()),
		zap.String("document_id", doc.ID.String()),
		zap.String("document_type", string(docType)),
		zap.Int("score", result.ValidationScore),
		zap.Bool("auto_verified", doc.IsVerified()),
	)

	resp := &UploadResponse{
		Document:   ToDocumentResponse(doc),
		Validation: toValidationResponse(result),
	}
	if doc.IsVerified() {
		wf, err := s.completeStep(ctx, doc)
		if err != nil {
			return nil, err
		}
		resp.Workflow = wf
	}
	return resp, nil
}

// List returns a vendor's documents, newest first
func (s *DocumentService) List(ctx context.Context, vendorID uuid.UUID) ([]DocumentResponse, error) {
	if _, err := s.vendors.FindByID(ctx, vendorID); err != nil {
		return nil, err
	}
	docs, err := s.documents.FindByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return ToDocumentResponses(docs), nil
}

// GetByID returns a document with a presigned download URL for its file
func (s *DocumentService) GetByID(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToDocumentResponse(doc)
	if doc.FileKey != "" && s.storage != nil {
		url, _, err := s.storage.GenerateDownloadURL(ctx, doc.FileKey, s.downloadURLExpiry)
		if err != nil {
			s.logger.Warn("failed to presign kyc download",
				zap.String("document_id", doc.ID.String()),
				zap.Error(err))
		} else {
			resp.DownloadURL = url
		}
	}
	return &resp, nil
}

// Verify records a reviewer's approval and completes the document's step
func (s *DocumentService) Verify(ctx context.Context, id uuid.UUID, reviewer string) (*ReviewResponse, error) {
	doc, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.openVendor(ctx, doc.VendorID); err != nil {
		return nil, err
	}
	if err := doc.Verify(reviewerOrDefault(reviewer), s.now()); err != nil {
		return nil, err
	}
	if err := s.documents.UpdateReview(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Info("kyc document verified",
		zap.String("document_id", doc.ID.String()),
		zap.String("reviewer", doc.ReviewedBy))
	s.recordOutcome(ctx, doc.Type, string(doc.Status))

	wf, err := s.completeStep(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &ReviewResponse{Document: ToDocumentResponse(doc), Workflow: wf}, nil
}

// Reject records a reviewer's refusal. The vendor can upload a new document.
func (s *DocumentService) Reject(ctx context.Context, id uuid.UUID, reviewer string, req ReviewRequest) (*ReviewResponse, error) {
	doc, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := doc.Reject(reviewerOrDefault(reviewer), req.Reason, s.now()); err != nil {
		return nil, err
	}
	if err := s.documents.UpdateReview(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Info("kyc document rejected",
		zap.String("document_id", doc.ID.String()),
		zap.String("reviewer", doc.ReviewedBy))
	s.recordOutcome(ctx, doc.Type, string(doc.Status))
	return &ReviewResponse{Document: ToDocumentResponse(doc)}, nil
}

// OutcomeInvalid labels uploads refused by validation, which are never stored
const OutcomeInvalid = "invalid"

func (s *DocumentService) recordOutcome(ctx context.Context, docType kyc.DocumentType, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordKYCDocument(ctx, string(docType), outcome)
	}
}

func (s *DocumentService) completeStep(ctx context.Context, doc *kyc.Document) (*onboardingapp.WorkflowResponse, error) {
	if s.tracker == nil {
		return nil, nil
	}
	w, err := s.tracker.DocumentVerified(ctx, doc.VendorID, doc.Type)
	if err != nil {
		return nil, err
	}
	resp := onboardingapp.ToWorkflowResponse(w)
	return &resp, nil
}

// openVendor loads a vendor that may still submit documents
func (s *DocumentService) openVendor(ctx context.Context, vendorID uuid.UUID) (*vendor.Vendor, error) {
	v, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if v.Status == vendor.StatusRejected || v.Status == vendor.StatusSuspended {
		return nil, shared.NewConflictError("vendor %s is %s and cannot submit documents", v.ID, v.Status)
	}
	return v, nil
}

// checkFileKey accepts an empty key, otherwise the key must sit under the
// vendor's prefix and the object must exist
func (s *DocumentService) checkFileKey(ctx context.Context, vendorID uuid.UUID, key string) error {
	if key == "" {
		return nil
	}
	if !strings.HasPrefix(path.Clean(key), StorageKeyPrefix(vendorID)) {
		return shared.NewValidationError("invalid file key",
			shared.FieldError{Field: "file_key", Code: "invalid_value", Message: "file_key does not belong to this vendor"})
	}
	if s.storage == nil {
		return nil
	}
	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		return fmt.Errorf("check kyc file: %w", err)
	}
	if !exists {
		return shared.NewValidationError("invalid file key",
			shared.FieldError{Field: "file_key", Code: "not_found", Message: "no file has been uploaded under file_key"})
	}
	return nil
}

func reviewerOrDefault(reviewer string) string {
	if strings.TrimSpace(reviewer) == "" {
		return "admin"
	}
	return reviewer
}
