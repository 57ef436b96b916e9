package payout

import (
	"time"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// DateLayout is the wire format of period bounds
const DateLayout = "2006-01-02"

// Period is a range of calendar days, inclusive at both ends
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod truncates both bounds to UTC dates and checks their order
func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: truncateDate(start), End: truncateDate(end)}
	if start.IsZero() || end.IsZero() {
		return Period{}, shared.NewValidationError("invalid payout period",
			shared.FieldError{Field: "period", Code: "required", Message: "period_start and period_end are required"})
	}
	if p.End.Before(p.Start) {
		return Period{}, shared.NewValidationError("invalid payout period",
			shared.FieldError{Field: "period_end", Code: "out_of_range", Message: "period_end must not be before period_start"})
	}
	return p, nil
}

// ParsePeriod parses YYYY-MM-DD bounds
func ParsePeriod(start, end string) (Period, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return Period{}, shared.NewValidationError("invalid payout period",
			shared.FieldError{Field: "period_start", Code: "invalid_date", Message: "period_start must be YYYY-MM-DD"})
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return Period{}, shared.NewValidationError("invalid payout period",
			shared.FieldError{Field: "period_end", Code: "invalid_date", Message: "period_end must be YYYY-MM-DD"})
	}
	return NewPeriod(s, e)
}

// QueryBounds returns the half-open instant range [from, to) covering every
// moment of every day in the period
func (p Period) QueryBounds() (from, to time.Time) {
	return p.Start, p.End.AddDate(0, 0, 1)
}

// Contains reports whether t falls on a day of the period
func (p Period) Contains(t time.Time) bool {
	from, to := p.QueryBounds()
	t = t.UTC()
	return !t.Before(from) && t.Before(to)
}

// String renders the period as start..end
func (p Period) String() string {
	return p.Start.Format(DateLayout) + ".." + p.End.Format(DateLayout)
}

func truncateDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
