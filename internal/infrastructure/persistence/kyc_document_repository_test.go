package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/kyc"
	"github.com/vendorhub/backend/internal/domain/shared"
)

func TestGormKYCDocumentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormKYCDocumentRepository(db)
	ctx := context.Background()
	v := registerTestVendor(t, NewGormVendorRepository(db), "kyc@example.com")
	now := time.Now().UTC()

	metadata := map[string]string{
		"taxpayer_name": "Abdur Rahman",
		"tax_circle":    "Circle-12",
		"tax_zone":      "Zone-3",
	}
	pending := kyc.Result{IsValid: true, ValidationScore: 90}
	doc, err := kyc.NewDocument(v.ID, kyc.DocumentTypeTINCertificate, "123456789012", "kyc/tin.pdf", metadata, pending, now)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, doc))

	t.Run("round trips metadata and score", func(t *testing.T) {
		found, err := repo.FindByID(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, kyc.VerificationPending, found.Status)
		assert.Equal(t, metadata, found.Metadata)
		assert.Equal(t, 90, found.ValidationScore)
		assert.Equal(t, "kyc/tin.pdf", found.FileKey)
	})

	t.Run("lists vendor documents", func(t *testing.T) {
		docs, err := repo.FindByVendor(ctx, v.ID)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, doc.ID, docs[0].ID)
	})

	t.Run("review is saved once", func(t *testing.T) {
		require.NoError(t, doc.Verify("reviewer-7", now))
		require.NoError(t, repo.UpdateReview(ctx, doc))

		found, err := repo.FindByID(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, kyc.VerificationVerified, found.Status)
		assert.Equal(t, "reviewer-7", found.ReviewedBy)
		assert.NotNil(t, found.VerifiedAt)

		err = repo.UpdateReview(ctx, doc)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("unknown document is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, v.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
