package kyc

import "regexp"

// Score weights. A document whose rule has no expiry check tops out at
// 20*len(fields)+30, which is why the auto-verify threshold is configurable.
const (
	WeightRequiredField = 20
	WeightNumberFormat  = 30
	WeightFutureExpiry  = 25
)

// DateLayout is the layout of date-valued metadata fields
const DateLayout = "2006-01-02"

// Rule describes how one document type is validated
type Rule struct {
	RequiredFields []string
	NumberPattern  *regexp.Regexp
	NumberHint     string
	// ExpiryField names the metadata field holding the expiry date, if any
	ExpiryField string
}

var rules = map[DocumentType]Rule{
	DocumentTypeTradeLicense: {
		RequiredFields: []string{"business_name", "owner_name", "issue_date", "expiry_date"},
		NumberPattern:  regexp.MustCompile(`^[A-Za-z0-9]{8,12}$`),
		NumberHint:     "8 to 12 letters or digits",
		ExpiryField:    "expiry_date",
	},
	DocumentTypeTINCertificate: {
		RequiredFields: []string{"taxpayer_name", "tax_circle", "tax_zone"},
		NumberPattern:  regexp.MustCompile(`^[0-9]{12}$`),
		NumberHint:     "12 digits",
	},
	DocumentTypeBankStatement: {
		RequiredFields: []string{"account_name", "bank_name", "branch_name", "statement_date"},
		NumberPattern:  regexp.MustCompile(`^[0-9]{10,17}$`),
		NumberHint:     "10 to 17 digit account number",
	},
	DocumentTypeNationalID: {
		RequiredFields: []string{"full_name", "date_of_birth", "father_name"},
		NumberPattern:  regexp.MustCompile(`^([0-9]{10}|[0-9]{13}|[0-9]{17})$`),
		NumberHint:     "10, 13 or 17 digits",
	},
}

// MaxScore is the best score a document of type t can reach
func MaxScore(t DocumentType) int {
	r, ok := rules[t]
	if !ok {
		return 0
	}
	score := WeightRequiredField*len(r.RequiredFields) + WeightNumberFormat
	if r.ExpiryField != "" {
		score += WeightFutureExpiry
	}
	return score
}
