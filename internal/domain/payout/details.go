package payout

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// Method is a settlement rail
type Method string

const (
	MethodBankTransfer  Method = "bank_transfer"
	MethodMobileBanking Method = "mobile_banking"
	MethodCheck         Method = "check"
)

// Methods lists every supported payout method
var Methods = []Method{MethodBankTransfer, MethodMobileBanking, MethodCheck}

// IsValid reports whether m is a supported method
func (m Method) IsValid() bool {
	for _, known := range Methods {
		if m == known {
			return true
		}
	}
	return false
}

// Mobile financial service providers
const (
	ProviderBKash  = "bkash"
	ProviderNagad  = "nagad"
	ProviderRocket = "rocket"
)

var (
	accountNumberPattern = regexp.MustCompile(`^[0-9]{10,17}$`)
	routingNumberPattern = regexp.MustCompile(`^[0-9]{9}$`)
	walletPattern        = regexp.MustCompile(`^01[3-9][0-9]{8}$`)
)

// Details are the method-specific destination of a payout
type Details map[string]string

// ValidateDetails checks that details are complete for the method
func ValidateDetails(m Method, details Details) error {
	var errs []shared.FieldError
	need := func(field string) bool {
		if strings.TrimSpace(details[field]) == "" {
			errs = append(errs, shared.FieldError{
				Field:   "payout_details." + field,
				Code:    "required",
				Message: fmt.Sprintf("%s is required for %s", field, m),
			})
			return false
		}
		return true
	}
	format := func(field string, re *regexp.Regexp, hint string) {
		if need(field) && !re.MatchString(strings.TrimSpace(details[field])) {
			errs = append(errs, shared.FieldError{
				Field:   "payout_details." + field,
				Code:    "invalid_format",
				Message: fmt.Sprintf("%s must be %s", field, hint),
			})
		}
	}

	switch m {
	case MethodBankTransfer:
		need("account_name")
		need("bank_name")
		format("account_number", accountNumberPattern, "10 to 17 digits")
		format("routing_number", routingNumberPattern, "9 digits")
	case MethodMobileBanking:
		if need("provider") {
			switch strings.ToLower(details["provider"]) {
			case ProviderBKash, ProviderNagad, ProviderRocket:
			default:
				errs = append(errs, shared.FieldError{
					Field:   "payout_details.provider",
					Code:    "invalid_value",
					Message: "provider must be one of bkash, nagad, rocket",
				})
			}
		}
		format("wallet_number", walletPattern, "an 11 digit mobile number starting with 01")
	case MethodCheck:
		need("payee_name")
		need("mailing_address")
	default:
		errs = append(errs, shared.FieldError{
			Field:   "payout_method",
			Code:    "invalid_value",
			Message: "payout_method must be one of bank_transfer, mobile_banking, check",
		})
	}

	if len(errs) > 0 {
		return shared.NewValidationError("invalid payout details", errs...)
	}
	return nil
}

// Masked returns a copy of details with account identifiers masked for logs
// and notifications
func (d Details) Masked() Details {
	out := make(Details, len(d))
	for k, v := range d {
		switch k {
		case "account_number", "wallet_number", "routing_number":
			out[k] = mask(v)
		default:
			out[k] = v
		}
	}
	return out
}

func mask(v string) string {
	if len(v) <= 4 {
		return strings.Repeat("*", len(v))
	}
	return strings.Repeat("*", len(v)-4) + v[len(v)-4:]
}
