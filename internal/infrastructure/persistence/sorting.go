package persistence

import (
	"strings"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// sortColumns whitelists the columns a list endpoint may order by. Anything
// else in a filter falls back to created_at so user input never reaches the
// ORDER BY clause unchecked.
type sortColumns map[string]struct{}

func newSortColumns(columns ...string) sortColumns {
	s := sortColumns{"id": {}, "created_at": {}, "updated_at": {}}
	for _, c := range columns {
		s[c] = struct{}{}
	}
	return s
}

var (
	vendorSortColumns = newSortColumns("business_name", "email", "region", "status", "verified_at")
	payoutSortColumns = newSortColumns("period_start", "period_end", "net_payout_amount", "status", "payout_method", "completed_at")
)

const defaultSortColumn = "created_at"

func (s sortColumns) column(requested string) string {
	requested = strings.TrimSpace(requested)
	if _, ok := s[requested]; ok {
		return requested
	}
	return defaultSortColumn
}

func sortDirection(requested string) string {
	if strings.EqualFold(strings.TrimSpace(requested), "asc") {
		return "ASC"
	}
	return "DESC"
}

// orderClause renders the ORDER BY expression of a list filter
func orderClause(f shared.Filter, allowed sortColumns) string {
	return allowed.column(f.OrderBy) + " " + sortDirection(f.OrderDir)
}
