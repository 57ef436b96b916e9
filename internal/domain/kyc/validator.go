package kyc

import (
	"fmt"
	"strings"
	"time"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// DefaultAutoVerifyThreshold is the score at or above which a valid document
// is verified without manual review
const DefaultAutoVerifyThreshold = 85

// Field error codes
const (
	ErrCodeRequired    = "required"
	ErrCodeFormat      = "invalid_format"
	ErrCodeExpired     = "expired"
	ErrCodeInvalidDate = "invalid_date"
	ErrCodeUnsupported = "unsupported_type"
)

// Result is the outcome of validating one document
type Result struct {
	IsValid         bool                `json:"is_valid"`
	Errors          []shared.FieldError `json:"errors"`
	ValidationScore int                 `json:"validation_score"`
	AutoVerify      bool                `json:"auto_verify"`
}

// Validator checks KYC documents against the static rule table. It is pure:
// the same input and clock always give the same result.
type Validator struct {
	threshold int
}

// NewValidator creates a validator; a non-positive threshold uses the default
func NewValidator(threshold int) Validator {
	if threshold <= 0 {
		threshold = DefaultAutoVerifyThreshold
	}
	return Validator{threshold: threshold}
}

// Threshold returns the auto-verify threshold
func (v Validator) Threshold() int {
	return v.threshold
}

// Validate checks a document number and its metadata
func (v Validator) Validate(docType DocumentType, number string, metadata map[string]string, now time.Time) Result {
	rule, ok := rules[docType]
	if !ok {
		return Result{
			Errors: []shared.FieldError{{
				Field:   "document_type",
				Code:    ErrCodeUnsupported,
				Message: fmt.Sprintf("unsupported document type %q", docType),
			}},
		}
	}

	var (
		errs  []shared.FieldError
		score int
	)

	for _, field := range rule.RequiredFields {
		if strings.TrimSpace(metadata[field]) == "" {
			errs = append(errs, shared.FieldError{
				Field:   field,
				Code:    ErrCodeRequired,
				Message: fmt.Sprintf("%s is required", field),
			})
			continue
		}
		score += WeightRequiredField
	}

	if rule.NumberPattern.MatchString(strings.TrimSpace(number)) {
		score += WeightNumberFormat
	} else {
		errs = append(errs, shared.FieldError{
			Field:   "document_number",
			Code:    ErrCodeFormat,
			Message: fmt.Sprintf("%s number must be %s", docType, rule.NumberHint),
		})
	}

	if rule.ExpiryField != "" {
		if raw := strings.TrimSpace(metadata[rule.ExpiryField]); raw != "" {
			expiry, err := time.Parse(DateLayout, raw)
			switch {
			case err != nil:
				errs = append(errs, shared.FieldError{
					Field:   rule.ExpiryField,
					Code:    ErrCodeInvalidDate,
					Message: fmt.Sprintf("%s must be a date in YYYY-MM-DD format", rule.ExpiryField),
				})
			case !expiry.After(now):
				errs = append(errs, shared.FieldError{
					Field:   rule.ExpiryField,
					Code:    ErrCodeExpired,
					Message: fmt.Sprintf("document expired on %s", raw),
				})
			default:
				score += WeightFutureExpiry
			}
		}
	}

	valid := len(errs) == 0
	return Result{
		IsValid:         valid,
		Errors:          errs,
		ValidationScore: score,
		AutoVerify:      valid && score >= v.threshold,
	}
}
