package kyc

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/shared"
)

var validationClock = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func tradeLicenseMetadata() map[string]string {
	return map[string]string{
		"business_name": "Rahman Traders",
		"owner_name":    "Abdur Rahman",
		"issue_date":    "2025-07-01",
		"expiry_date":   "2026-06-30",
	}
}

func TestValidator_TradeLicense(t *testing.T) {
	v := NewValidator(85)

	t.Run("complete licence auto verifies", func(t *testing.T) {
		r := v.Validate(DocumentTypeTradeLicense, "DHK2024001", tradeLicenseMetadata(), validationClock)

		assert.True(t, r.IsValid)
		assert.Empty(t, r.Errors)
		assert.Equal(t, 135, r.ValidationScore)
		assert.True(t, r.AutoVerify)
	})

	t.Run("short number is a format error", func(t *testing.T) {
		r := v.Validate(DocumentTypeTradeLicense, "AB12", tradeLicenseMetadata(), validationClock)

		assert.False(t, r.IsValid)
		assert.False(t, r.AutoVerify)
		require.Len(t, r.Errors, 1)
		assert.Equal(t, "document_number", r.Errors[0].Field)
		assert.Equal(t, ErrCodeFormat, r.Errors[0].Code)
		assert.Equal(t, 105, r.ValidationScore)
	})

	t.Run("expired licence", func(t *testing.T) {
		meta := tradeLicenseMetadata()
		meta["expiry_date"] = "2026-03-01"

		r := v.Validate(DocumentTypeTradeLicense, "DHK2024001", meta, validationClock)

		assert.False(t, r.IsValid)
		require.Len(t, r.Errors, 1)
		assert.Equal(t, ErrCodeExpired, r.Errors[0].Code)
		assert.Equal(t, 110, r.ValidationScore)
	})

	t.Run("unparseable expiry", func(t *testing.T) {
		meta := tradeLicenseMetadata()
		meta["expiry_date"] = "30/06/2026"

		r := v.Validate(DocumentTypeTradeLicense, "DHK2024001", meta, validationClock)

		require.Len(t, r.Errors, 1)
		assert.Equal(t, ErrCodeInvalidDate, r.Errors[0].Code)
	})

	t.Run("missing fields each reported", func(t *testing.T) {
		r := v.Validate(DocumentTypeTradeLicense, "DHK2024001", map[string]string{"business_name": "  "}, validationClock)

		assert.False(t, r.IsValid)
		assert.Len(t, r.Errors, 4)
		assert.Equal(t, 30, r.ValidationScore)
	})
}

func TestValidator_OtherTypes(t *testing.T) {
	v := NewValidator(0)

	tests := []struct {
		name     string
		docType  DocumentType
		number   string
		metadata map[string]string
		valid    bool
		score    int
	}{
		{
			name:    "tin certificate",
			docType: DocumentTypeTINCertificate,
			number:  "123456789012",
			metadata: map[string]string{
				"taxpayer_name": "Abdur Rahman", "tax_circle": "Circle-54", "tax_zone": "Zone-3",
			},
			valid: true,
			score: 90,
		},
		{
			name:    "tin with eleven digits",
			docType: DocumentTypeTINCertificate,
			number:  "12345678901",
			metadata: map[string]string{
				"taxpayer_name": "Abdur Rahman", "tax_circle": "Circle-54", "tax_zone": "Zone-3",
			},
			valid: false,
			score: 60,
		},
		{
			name:    "bank statement",
			docType: DocumentTypeBankStatement,
			number:  "1501202345678",
			metadata: map[string]string{
				"account_name": "Rahman Traders", "bank_name": "BRAC Bank",
				"branch_name": "Gulshan", "statement_date": "2026-02-28",
			},
			valid: true,
			score: 110,
		},
		{
			name:    "seventeen digit national id",
			docType: DocumentTypeNationalID,
			number:  "19901234567890123",
			metadata: map[string]string{
				"full_name": "Abdur Rahman", "date_of_birth": "1990-01-15", "father_name": "Abdul Karim",
			},
			valid: true,
			score: 90,
		},
		{
			name:    "eleven digit national id",
			docType: DocumentTypeNationalID,
			number:  "12345678901",
			metadata: map[string]string{
				"full_name": "Abdur Rahman", "date_of_birth": "1990-01-15", "father_name": "Abdul Karim",
			},
			valid: false,
			score: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := v.Validate(tt.docType, tt.number, tt.metadata, validationClock)
			assert.Equal(t, tt.valid, r.IsValid)
			assert.Equal(t, tt.score, r.ValidationScore)
			assert.Equal(t, tt.valid, r.AutoVerify)
		})
	}
}

func TestValidator_Threshold(t *testing.T) {
	meta := map[string]string{"taxpayer_name": "A", "tax_circle": "B", "tax_zone": "C"}

	r := NewValidator(95).Validate(DocumentTypeTINCertificate, "123456789012", meta, validationClock)

	assert.True(t, r.IsValid)
	assert.Equal(t, 90, r.ValidationScore)
	assert.False(t, r.AutoVerify, "valid documents under the threshold wait for review")
}

func TestValidator_UnknownType(t *testing.T) {
	r := NewValidator(85).Validate(DocumentType("passport"), "X", nil, validationClock)

	assert.False(t, r.IsValid)
	assert.Equal(t, 0, r.ValidationScore)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, ErrCodeUnsupported, r.Errors[0].Code)
}

func TestMaxScore(t *testing.T) {
	assert.Equal(t, 135, MaxScore(DocumentTypeTradeLicense))
	assert.Equal(t, 90, MaxScore(DocumentTypeTINCertificate))
	assert.Equal(t, 0, MaxScore(DocumentType("passport")))
}

func TestNewDocument(t *testing.T) {
	vendorID := uuid.New()
	v := NewValidator(85)

	t.Run("invalid result is refused", func(t *testing.T) {
		r := v.Validate(DocumentTypeTradeLicense, "AB12", tradeLicenseMetadata(), validationClock)

		doc, err := NewDocument(vendorID, DocumentTypeTradeLicense, "AB12", "", tradeLicenseMetadata(), r, validationClock)

		assert.Nil(t, doc)
		var ve *shared.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "document_number", ve.Fields[0].Field)
	})

	t.Run("auto verified document", func(t *testing.T) {
		r := v.Validate(DocumentTypeTradeLicense, "DHK2024001", tradeLicenseMetadata(), validationClock)

		doc, err := NewDocument(vendorID, DocumentTypeTradeLicense, "DHK2024001", "kyc/x.pdf", tradeLicenseMetadata(), r, validationClock)

		require.NoError(t, err)
		assert.True(t, doc.IsVerified())
		assert.Equal(t, ReviewerSystem, doc.ReviewedBy)
		require.NotNil(t, doc.VerifiedAt)
	})

	t.Run("manual review", func(t *testing.T) {
		r := NewValidator(100).Validate(DocumentTypeTradeLicense, "DHK2024001", tradeLicenseMetadata(), validationClock)
		doc, err := NewDocument(vendorID, DocumentTypeTradeLicense, "DHK2024001", "", tradeLicenseMetadata(), r, validationClock)
		require.NoError(t, err)
		assert.Equal(t, VerificationPending, doc.Status)

		require.Error(t, doc.Reject("reviewer-1", " ", validationClock))
		require.NoError(t, doc.Verify("reviewer-1", validationClock))
		assert.True(t, doc.IsVerified())

		err = doc.Verify("reviewer-2", validationClock)
		assert.Equal(t, shared.CodeConflict, shared.ErrorCode(err))
	})
}
