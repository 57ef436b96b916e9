package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/kyc"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormKYCDocumentRepository implements kyc.DocumentRepository using GORM
type GormKYCDocumentRepository struct {
	db *gorm.DB
}

// NewGormKYCDocumentRepository creates a new GormKYCDocumentRepository
func NewGormKYCDocumentRepository(db *gorm.DB) *GormKYCDocumentRepository {
	return &GormKYCDocumentRepository{db: db}
}

// Create inserts a document
func (r *GormKYCDocumentRepository) Create(ctx context.Context, doc *kyc.Document) error {
	return r.db.WithContext(ctx).Create(models.KYCDocumentModelFromDomain(doc)).Error
}

// FindByID finds a document by ID
func (r *GormKYCDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*kyc.Document, error) {
	var model models.KYCDocumentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateNotFound(err, "kyc document", id)
	}
	return model.ToDomain(), nil
}

// FindByVendor lists a vendor's documents, newest first
func (r *GormKYCDocumentRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]kyc.Document, error) {
	var rows []models.KYCDocumentModel
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	docs := make([]kyc.Document, len(rows))
	for i := range rows {
		docs[i] = *rows[i].ToDomain()
	}
	return docs, nil
}

// UpdateReview saves a review decision if the document is still pending
func (r *GormKYCDocumentRepository) UpdateReview(ctx context.Context, doc *kyc.Document) error {
	result := r.db.WithContext(ctx).Model(&models.KYCDocumentModel{}).
		Where("id = ? AND verification_status = ?", doc.ID, kyc.VerificationPending).
		Updates(map[string]any{
			"verification_status": doc.Status,
			"verified_at":         doc.VerifiedAt,
			"reviewed_by":         doc.ReviewedBy,
			"rejection_reason":    doc.RejectionReason,
			"updated_at":          doc.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewConflictError("kyc document %s has already been reviewed", doc.ID)
	}
	return nil
}

var _ kyc.DocumentRepository = (*GormKYCDocumentRepository)(nil)
