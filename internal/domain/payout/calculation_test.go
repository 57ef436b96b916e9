package payout

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/commission"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func januaryPeriod(t *testing.T) Period {
	t.Helper()
	p, err := ParsePeriod("2026-01-01", "2026-01-31")
	require.NoError(t, err)
	return p
}

func TestAggregate(t *testing.T) {
	vendorID := uuid.New()
	period := januaryPeriod(t)

	t.Run("single sale with bonus adjustment", func(t *testing.T) {
		totals := commission.Totals{
			Count:           1,
			GrossAmount:     dec("1000"),
			CommissionTotal: dec("100"),
			PlatformFees:    dec("10"),
			NetCommissions:  dec("890"),
		}

		calc := Aggregate(vendorID, period, totals, dec("50"), DefaultWithholdingTaxRate)

		assert.Equal(t, "44.50", calc.TaxDeduction.StringFixed(2))
		assert.Equal(t, "895.50", calc.NetPayoutAmount.StringFixed(2))
		assert.Equal(t, int64(1), calc.CommissionCount)
	})

	t.Run("clamps at zero", func(t *testing.T) {
		totals := commission.Totals{Count: 1, NetCommissions: dec("100")}

		calc := Aggregate(vendorID, period, totals, dec("-200"), DefaultWithholdingTaxRate)

		assert.True(t, calc.NetPayoutAmount.IsZero())
		assert.Equal(t, "5.00", calc.TaxDeduction.StringFixed(2))
	})

	t.Run("empty period", func(t *testing.T) {
		calc := Aggregate(vendorID, period, commission.Totals{}, decimal.Zero, DefaultWithholdingTaxRate)

		assert.True(t, calc.NetPayoutAmount.IsZero())
		assert.Equal(t, int64(0), calc.CommissionCount)
	})
}

func TestAggregateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)
	vendorID := uuid.New()
	period := Period{Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)}

	properties.Property("payout is never negative", prop.ForAll(
		func(netPoisha, adjPoisha int64) bool {
			totals := commission.Totals{NetCommissions: decimal.New(netPoisha, -2)}
			calc := Aggregate(vendorID, period, totals, decimal.New(adjPoisha, -2), DefaultWithholdingTaxRate)
			return !calc.NetPayoutAmount.IsNegative()
		},
		gen.Int64Range(0, 1_000_000_000),
		gen.Int64Range(-2_000_000_000, 1_000_000_000),
	))

	properties.Property("recomputation is repeatable", prop.ForAll(
		func(netPoisha, adjPoisha int64) bool {
			totals := commission.Totals{Count: 3, NetCommissions: decimal.New(netPoisha, -2)}
			a := Aggregate(vendorID, period, totals, decimal.New(adjPoisha, -2), DefaultWithholdingTaxRate)
			b := Aggregate(vendorID, period, totals, decimal.New(adjPoisha, -2), DefaultWithholdingTaxRate)
			return a.NetPayoutAmount.Equal(b.NetPayoutAmount) && a.TaxDeduction.Equal(b.TaxDeduction)
		},
		gen.Int64Range(0, 1_000_000_000),
		gen.Int64Range(-1_000_000, 1_000_000),
	))

	properties.Property("positive payout equals net minus tax plus adjustments", prop.ForAll(
		func(netPoisha, adjPoisha int64) bool {
			totals := commission.Totals{NetCommissions: decimal.New(netPoisha, -2)}
			adj := decimal.New(adjPoisha, -2)
			calc := Aggregate(vendorID, period, totals, adj, DefaultWithholdingTaxRate)
			raw := calc.NetCommissions.Sub(calc.TaxDeduction).Add(calc.AdjustmentsTotal)
			if raw.IsNegative() {
				return calc.NetPayoutAmount.IsZero()
			}
			return calc.NetPayoutAmount.Equal(raw)
		},
		gen.Int64Range(0, 1_000_000_000),
		gen.Int64Range(-1_000_000_000, 1_000_000_000),
	))

	properties.TestingRun(t)
}

func TestPeriod(t *testing.T) {
	t.Run("end date is inclusive", func(t *testing.T) {
		p := januaryPeriod(t)

		assert.True(t, p.Contains(time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)))
		assert.True(t, p.Contains(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.False(t, p.Contains(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))

		from, to := p.QueryBounds()
		assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), to)
		assert.Equal(t, p.Start, from)
	})

	t.Run("truncates to dates", func(t *testing.T) {
		p, err := NewPeriod(time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "2026-01-01..2026-01-01", p.String())
	})

	t.Run("rejects reversed range", func(t *testing.T) {
		_, err := ParsePeriod("2026-02-01", "2026-01-01")
		assert.Error(t, err)
	})

	t.Run("rejects bad dates", func(t *testing.T) {
		_, err := ParsePeriod("01/01/2026", "2026-01-31")
		assert.Error(t, err)
	})
}
