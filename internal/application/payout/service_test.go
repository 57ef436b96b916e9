package payout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/commission"
	"github.com/vendorhub/backend/internal/domain/payout"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/vendor"
	"github.com/vendorhub/backend/internal/testutil"
)

var (
	januaryFrom = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	januaryTo   = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
)

type payoutFixture struct {
	payouts     *testutil.MockPayoutRepository
	adjustments *testutil.MockAdjustmentRepository
	commissions *testutil.MockCommissionRepository
	vendors     *testutil.MockVendorRepository
	publisher   *testutil.RecordingPublisher
	vendor      *vendor.Vendor
	service     *PayoutService
}

func newPayoutFixture(t *testing.T, status vendor.Status) *payoutFixture {
	t.Helper()
	v, err := vendor.NewVendor(vendor.Registration{
		BusinessName: "Rajshahi Mango Co",
		OwnerName:    "Farhana Islam",
		Email:        "farhana@example.com",
		Phone:        "01612345678",
		Region:       "Rajshahi",
	})
	require.NoError(t, err)
	v.Status = status
	if status == vendor.StatusActive {
		verified := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
		v.VerifiedAt = &verified
	}

	f := &payoutFixture{
		payouts:     new(testutil.MockPayoutRepository),
		adjustments: new(testutil.MockAdjustmentRepository),
		commissions: new(testutil.MockCommissionRepository),
		vendors:     new(testutil.MockVendorRepository),
		publisher:   testutil.NewRecordingPublisher(),
		vendor:      v,
	}
	f.vendors.On("FindByID", mock.Anything, v.ID).Return(v, nil)
	f.service = NewPayoutService(PayoutServiceConfig{
		Payouts:        f.payouts,
		Adjustments:    f.adjustments,
		Commissions:    f.commissions,
		Vendors:        f.vendors,
		EventPublisher: f.publisher,
	})
	return f
}

func (f *payoutFixture) expectJanuaryTotals(net, adjustments string) {
	n := decimal.RequireFromString(net)
	f.commissions.On("SumInPeriod", mock.Anything, f.vendor.ID, januaryFrom, januaryTo).Return(commission.Totals{
		Count:           3,
		GrossAmount:     n.Add(decimal.NewFromInt(110)),
		CommissionTotal: decimal.NewFromInt(100),
		PlatformFees:    decimal.NewFromInt(10),
		NetCommissions:  n,
	}, nil)
	f.adjustments.On("SumInPeriod", mock.Anything, f.vendor.ID, januaryFrom, januaryTo).
		Return(decimal.RequireFromString(adjustments), nil)
}

func generateRequest() GeneratePayoutRequest {
	return GeneratePayoutRequest{
		PeriodStart:  "2024-01-01",
		PeriodEnd:    "2024-01-31",
		PayoutMethod: "bank_transfer",
		PayoutDetails: map[string]string{
			"account_name":   "Rajshahi Mango Co",
			"account_number": "1234567890123",
			"bank_name":      "Sonali Bank",
			"routing_number": "200270522",
		},
	}
}

func TestPayoutService_Calculate(t *testing.T) {
	ctx := context.Background()
	f := newPayoutFixture(t, vendor.StatusActive)
	f.expectJanuaryTotals("890", "50")

	resp, err := f.service.Calculate(ctx, f.vendor.ID, PeriodQuery{PeriodStart: "2024-01-01", PeriodEnd: "2024-01-31"})
	require.NoError(t, err)
	assert.Equal(t, "44.5", resp.TaxDeduction.String())
	assert.Equal(t, "895.5", resp.NetPayoutAmount.String())
	assert.Equal(t, int64(3), resp.CommissionCount)
	f.payouts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestPayoutService_Calculate_ClampsAtZero(t *testing.T) {
	f := newPayoutFixture(t, vendor.StatusActive)
	f.expectJanuaryTotals("100", "-500")

	resp, err := f.service.Calculate(context.Background(), f.vendor.ID, PeriodQuery{PeriodStart: "2024-01-01", PeriodEnd: "2024-01-31"})
	require.NoError(t, err)
	assert.True(t, resp.NetPayoutAmount.IsZero())
}

func TestPayoutService_Calculate_TaxExempt(t *testing.T) {
	f := newPayoutFixture(t, vendor.StatusActive)
	f.expectJanuaryTotals("890", "50")
	exempt := decimal.Zero
	f.service = NewPayoutService(PayoutServiceConfig{
		Payouts:            f.payouts,
		Adjustments:        f.adjustments,
		Commissions:        f.commissions,
		Vendors:            f.vendors,
		EventPublisher:     f.publisher,
		WithholdingTaxRate: &exempt,
	})

	resp, err := f.service.Calculate(context.Background(), f.vendor.ID, PeriodQuery{PeriodStart: "2024-01-01", PeriodEnd: "2024-01-31"})
	require.NoError(t, err)
	assert.True(t, resp.TaxDeduction.IsZero(), resp.TaxDeduction.String())
	assert.Equal(t, "940", resp.NetPayoutAmount.String())
}

func TestPayoutService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending payout with its audit entry", func(t *testing.T) {
		f := newPayoutFixture(t, vendor.StatusActive)
		f.expectJanuaryTotals("890", "50")
		f.payouts.On("FindActiveForPeriod", ctx, f.vendor.ID, mock.Anything).
			Return(nil, shared.NewNotFoundError("payout", "2024-01-01..2024-01-31"))
		f.payouts.On("Create", ctx, mock.AnythingOfType("*payout.Payout"), mock.MatchedBy(func(e payout.AuditEntry) bool {
			return e.Action == payout.AuditGenerated && e.ToStatus == payout.StatusPending && e.Actor == "finance-2"
		})).Return(nil)

		resp, err := f.service.Generate(ctx, f.vendor.ID, generateRequest(), "finance-2")
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "895.5", resp.NetPayoutAmount.String())
		assert.Equal(t, "*********0123", resp.PayoutDetails["account_number"])
		assert.Equal(t, []string{payout.EventTypePayoutGenerated}, f.publisher.Types())
	})

	t.Run("existing payout for the period is named in the conflict", func(t *testing.T) {
		f := newPayoutFixture(t, vendor.StatusActive)
		existing := pendingPayout(t)
		f.payouts.On("FindActiveForPeriod", ctx, f.vendor.ID, mock.Anything).Return(existing, nil)

		_, err := f.service.Generate(ctx, f.vendor.ID, generateRequest(), "")
		require.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Contains(t, err.Error(), existing.ID.String())
		assert.Contains(t, err.Error(), "2024-01-01..2024-01-31")
		f.payouts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("race lost at the unique index is a conflict", func(t *testing.T) {
		f := newPayoutFixture(t, vendor.StatusActive)
		f.expectJanuaryTotals("890", "0")
		f.payouts.On("FindActiveForPeriod", ctx, f.vendor.ID, mock.Anything).
			Return(nil, shared.NewNotFoundError("payout", "x"))
		f.payouts.On("Create", ctx, mock.Anything, mock.Anything).
			Return(shared.NewConflictError("a payout for vendor %s and period %s already exists", f.vendor.ID, "2024-01-01..2024-01-31"))

		_, err := f.service.Generate(ctx, f.vendor.ID, generateRequest(), "")
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Empty(t, f.publisher.Types())
	})

	t.Run("nothing to pay is refused", func(t *testing.T) {
		f := newPayoutFixture(t, vendor.StatusActive)
		f.expectJanuaryTotals("0", "0")
		f.payouts.On("FindActiveForPeriod", ctx, f.vendor.ID, mock.Anything).
			Return(nil, shared.NewNotFoundError("payout", "x"))

		_, err := f.service.Generate(ctx, f.vendor.ID, generateRequest(), "")
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("unverified vendor is refused", func(t *testing.T) {
		f := newPayoutFixture(t, vendor.StatusPendingVerification)

		_, err := f.service.Generate(ctx, f.vendor.ID, generateRequest(), "")
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("incomplete mobile banking details are refused", func(t *testing.T) {
		f := newPayoutFixture(t, vendor.StatusActive)
		req := generateRequest()
		req.PayoutMethod = "mobile_banking"
		req.PayoutDetails = map[string]string{"provider": "paypal", "wallet_number": "0171"}

		_, err := f.service.Generate(ctx, f.vendor.ID, req, "")
		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 2)
	})
}

func TestPayoutService_AddAdjustment(t *testing.T) {
	ctx := context.Background()
	f := newPayoutFixture(t, vendor.StatusActive)
	f.adjustments.On("Create", ctx, mock.MatchedBy(func(a *payout.Adjustment) bool {
		return a.Amount.Equal(decimal.RequireFromString("-12.35")) && a.AdjustmentDate.Equal(januaryFrom.AddDate(0, 0, 14))
	})).Return(nil)
	f.payouts.On("FindCovering", ctx, f.vendor.ID, januaryFrom.AddDate(0, 0, 14)).
		Return(nil, shared.NewNotFoundError("payout", "2024-01-15"))

	resp, err := f.service.AddAdjustment(ctx, f.vendor.ID, AdjustmentRequest{
		Amount:         decimal.RequireFromString("-12.345"),
		Reason:         "damaged parcel refund",
		AdjustmentDate: "2024-01-15",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "system", resp.CreatedBy)
	assert.Equal(t, "2024-01-15", resp.AdjustmentDate)

	_, err = f.service.AddAdjustment(ctx, f.vendor.ID, AdjustmentRequest{Reason: "zero"}, "")
	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestPayoutService_AddAdjustment_SettledPeriod(t *testing.T) {
	ctx := context.Background()
	f := newPayoutFixture(t, vendor.StatusActive)
	settled := pendingPayout(t)
	f.payouts.On("FindCovering", ctx, f.vendor.ID, mock.Anything).Return(settled, nil)

	_, err := f.service.AddAdjustment(ctx, f.vendor.ID, AdjustmentRequest{
		Amount:         decimal.NewFromInt(500),
		Reason:         "late delivery bonus",
		AdjustmentDate: "2024-01-20",
	}, "ops-admin")
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.Contains(t, err.Error(), settled.ID.String())
	f.adjustments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPayoutService_ListAndAudit(t *testing.T) {
	ctx := context.Background()
	f := newPayoutFixture(t, vendor.StatusActive)
	p := pendingPayout(t)
	vendorID := uuid.NewString()

	f.payouts.On("FindAll", ctx, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Filters["vendor_id"] == vendorID && filter.Filters["status"] == "pending"
	})).Return([]payout.Payout{*p}, int64(1), nil)
	f.payouts.On("FindByID", ctx, p.ID).Return(p, nil)
	f.payouts.On("AuditTrail", ctx, p.ID).Return([]payout.AuditEntry{
		payout.NewAuditEntry(p, payout.AuditGenerated, "", "", nil, time.Now()),
	}, nil)

	items, total, err := f.service.List(ctx, PayoutListFilter{VendorID: vendorID, Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "*******5678", items[0].PayoutDetails["wallet_number"])

	trail, err := f.service.AuditTrail(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, "payout_generated", trail[0].Action)
	assert.Equal(t, "system", trail[0].Actor)
}
