package kyc

import (
	"context"

	"github.com/google/uuid"
)

// DocumentRepository persists KYC documents
type DocumentRepository interface {
	Create(ctx context.Context, doc *Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]Document, error)
	// UpdateReview saves a review decision, only if the document is still pending
	UpdateReview(ctx context.Context, doc *Document) error
}
