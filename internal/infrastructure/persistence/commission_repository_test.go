package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/commission"
	"github.com/vendorhub/backend/internal/domain/shared"
)

func recordTestCommission(t *testing.T, repo *GormCommissionRepository, vendorID uuid.UUID, txID, gross string, at time.Time) *commission.Commission {
	t.Helper()
	calc := commission.NewCalculator(decimal.RequireFromString("0.10"), decimal.RequireFromString("0.01"))
	b, err := calc.Calculate(decimal.RequireFromString(gross), calc.DefaultRate())
	require.NoError(t, err)
	c, err := commission.NewCommission(vendorID, txID, b, at)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func TestGormCommissionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCommissionRepository(db)
	ctx := context.Background()
	vendorID := uuid.New()
	jan := func(day, hour int) time.Time { return time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC) }

	recordTestCommission(t, repo, vendorID, "ORD-1", "1000", jan(5, 10))
	recordTestCommission(t, repo, vendorID, "ORD-2", "250.50", jan(31, 23))
	recordTestCommission(t, repo, vendorID, "ORD-3", "400", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	recordTestCommission(t, repo, uuid.New(), "ORD-4", "999", jan(10, 9))

	from := jan(1, 0)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("sums only the vendor's rows inside the range", func(t *testing.T) {
		totals, err := repo.SumInPeriod(ctx, vendorID, from, to)
		require.NoError(t, err)
		assert.Equal(t, int64(2), totals.Count)
		assert.True(t, decimal.RequireFromString("1250.50").Equal(totals.GrossAmount), totals.GrossAmount.String())
		assert.True(t, decimal.RequireFromString("125.05").Equal(totals.CommissionTotal), totals.CommissionTotal.String())
		assert.True(t, decimal.RequireFromString("12.51").Equal(totals.PlatformFees), totals.PlatformFees.String())
		assert.True(t, decimal.RequireFromString("1112.94").Equal(totals.NetCommissions), totals.NetCommissions.String())
	})

	t.Run("empty range sums to zero", func(t *testing.T) {
		totals, err := repo.SumInPeriod(ctx, vendorID, jan(20, 0), jan(21, 0))
		require.NoError(t, err)
		assert.Zero(t, totals.Count)
		assert.True(t, totals.GrossAmount.IsZero())
	})

	t.Run("lists rows in transaction order", func(t *testing.T) {
		rows, err := repo.FindInPeriod(ctx, vendorID, from, to)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "ORD-1", rows[0].TransactionID)
		assert.Equal(t, "ORD-2", rows[1].TransactionID)
	})

	t.Run("transaction id is recorded once", func(t *testing.T) {
		calc := commission.NewCalculator(decimal.RequireFromString("0.10"), decimal.RequireFromString("0.01"))
		b, err := calc.Calculate(decimal.NewFromInt(10), calc.DefaultRate())
		require.NoError(t, err)
		dup, err := commission.NewCommission(vendorID, "ORD-1", b, jan(6, 0))
		require.NoError(t, err)

		err = repo.Create(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)

		found, err := repo.FindByTransactionID(ctx, "ORD-1")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1000).Equal(found.GrossAmount))
	})
}

func TestGormCommissionRateRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCommissionRateRepository(db)
	ctx := context.Background()
	vendorID := uuid.New()

	_, err := repo.FindActive(ctx, vendorID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	first, err := commission.NewRate(vendorID, decimal.RequireFromString("0.12"), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Activate(ctx, first))

	second, err := commission.NewRate(vendorID, decimal.RequireFromString("0.08"), time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Activate(ctx, second))

	active, err := repo.FindActive(ctx, vendorID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
	assert.True(t, decimal.RequireFromString("0.08").Equal(active.Rate))

	var activeCount int64
	require.NoError(t, db.Table("vendor_commission_rates").Where("vendor_id = ? AND is_active = ?", vendorID, true).Count(&activeCount).Error)
	assert.Equal(t, int64(1), activeCount)
}
