package payout

import (
	"context"
	"errors"
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
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
	"github.com/vendorhub/backend/internal/testutil"
)

type staticResolver map[payout.Method]payout.SettlementStrategy

func (r staticResolver) StrategyFor(m payout.Method) (payout.SettlementStrategy, error) {
	s, ok := r[m]
	if !ok {
		return nil, errors.New("no rail for " + string(m))
	}
	return s, nil
}

func pendingPayout(t *testing.T) *payout.Payout {
	t.Helper()
	period, err := payout.ParsePeriod("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	calc := payout.Aggregate(uuid.New(), period, commission.Totals{
		Count:           1,
		GrossAmount:     decimal.NewFromInt(1000),
		CommissionTotal: decimal.NewFromInt(100),
		PlatformFees:    decimal.NewFromInt(10),
		NetCommissions:  decimal.NewFromInt(890),
	}, decimal.NewFromInt(50), payout.DefaultWithholdingTaxRate)
	p, err := payout.NewPayout(calc, payout.MethodMobileBanking, payout.Details{
		"provider":      "bKash",
		"wallet_number": "01712345678",
	})
	require.NoError(t, err)
	p.ClearEvents()
	return p
}

func auditAction(action string) interface{} {
	return mock.MatchedBy(func(e payout.AuditEntry) bool { return e.Action == action })
}

func TestProcessor_Process(t *testing.T) {
	ctx := context.Background()
	eta := time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC)

	t.Run("successful settlement completes the payout", func(t *testing.T) {
		repo := new(testutil.MockPayoutRepository)
		rail := testutil.NewMockSettlementStrategy(payout.MethodMobileBanking)
		pub := testutil.NewRecordingPublisher()
		p := pendingPayout(t)

		repo.On("FindByID", ctx, p.ID).Return(p, nil)
		repo.On("Transition", ctx, p, payout.StatusPending, auditAction(payout.AuditProcessingStarted)).Return(nil)
		rail.On("Settle", mock.Anything, mock.MatchedBy(func(req payout.SettlementRequest) bool {
			return req.Amount.Equal(decimal.RequireFromString("895.5")) && req.Details["provider"] == "bkash"
		})).Return(payout.SettlementResult{Reference: "BKS-123", EstimatedProcessingTime: eta}, nil)
		repo.On("Transition", mock.Anything, p, payout.StatusProcessing, auditAction(payout.AuditSettlementCompleted)).Return(nil)

		proc := NewProcessor(ProcessorConfig{
			Payouts:        repo,
			Strategies:     staticResolver{payout.MethodMobileBanking: rail},
			EventPublisher: pub,
		})
		result, err := proc.Process(ctx, p.ID, "ops-1")
		require.NoError(t, err)
		assert.Equal(t, "completed", result.Status)
		assert.Equal(t, "BKS-123", result.SettlementReference)
		require.NotNil(t, result.EstimatedProcessingTime)
		assert.True(t, eta.Equal(*result.EstimatedProcessingTime))
		assert.Equal(t, []string{payout.EventTypePayoutSettled}, pub.Types())
		repo.AssertExpectations(t)
		rail.AssertNumberOfCalls(t, "Settle", 1)
	})

	t.Run("rail failure is a failed result, not an error", func(t *testing.T) {
		repo := new(testutil.MockPayoutRepository)
		rail := testutil.NewMockSettlementStrategy(payout.MethodMobileBanking)
		pub := testutil.NewRecordingPublisher()
		p := pendingPayout(t)

		repo.On("FindByID", ctx, p.ID).Return(p, nil)
		repo.On("Transition", ctx, p, payout.StatusPending, mock.Anything).Return(nil)
		rail.On("Settle", mock.Anything, mock.Anything).
			Return(payout.SettlementResult{}, errors.New("wallet 01712345678 is not registered"))
		repo.On("Transition", mock.Anything, p, payout.StatusProcessing, mock.MatchedBy(func(e payout.AuditEntry) bool {
			return e.Action == payout.AuditSettlementFailed && e.Details["error"] == "wallet 01712345678 is not registered"
		})).Return(nil)

		proc := NewProcessor(ProcessorConfig{
			Payouts:        repo,
			Strategies:     staticResolver{payout.MethodMobileBanking: rail},
			EventPublisher: pub,
		})
		result, err := proc.Process(ctx, p.ID, "")
		require.NoError(t, err)
		assert.Equal(t, "failed", result.Status)
		assert.Equal(t, "wallet 01712345678 is not registered", result.FailureReason)
		assert.Equal(t, []string{payout.EventTypePayoutFailed}, pub.Types())
		repo.AssertExpectations(t)
	})

	t.Run("completed payout is refused without calling the rail", func(t *testing.T) {
		repo := new(testutil.MockPayoutRepository)
		rail := testutil.NewMockSettlementStrategy(payout.MethodMobileBanking)
		p := pendingPayout(t)
		p.Status = payout.StatusCompleted

		repo.On("FindByID", ctx, p.ID).Return(p, nil)

		proc := NewProcessor(ProcessorConfig{Payouts: repo, Strategies: staticResolver{payout.MethodMobileBanking: rail}})
		_, err := proc.Process(ctx, p.ID, "")
		require.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Contains(t, err.Error(), p.ID.String())
		assert.Contains(t, err.Error(), "completed")
		rail.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("losing the pending compare-and-set skips the rail", func(t *testing.T) {
		repo := new(testutil.MockPayoutRepository)
		rail := testutil.NewMockSettlementStrategy(payout.MethodMobileBanking)
		p := pendingPayout(t)

		repo.On("FindByID", ctx, p.ID).Return(p, nil)
		repo.On("Transition", ctx, p, payout.StatusPending, mock.Anything).
			Return(shared.NewConflictError("payout %s is no longer %s", p.ID, payout.StatusPending))

		proc := NewProcessor(ProcessorConfig{Payouts: repo, Strategies: staticResolver{payout.MethodMobileBanking: rail}})
		_, err := proc.Process(ctx, p.ID, "")
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		rail.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything)
	})

	t.Run("missing rail leaves the payout pending", func(t *testing.T) {
		repo := new(testutil.MockPayoutRepository)
		p := pendingPayout(t)
		repo.On("FindByID", ctx, p.ID).Return(p, nil)

		proc := NewProcessor(ProcessorConfig{Payouts: repo, Strategies: staticResolver{}})
		_, err := proc.Process(ctx, p.ID, "")
		assert.Error(t, err)
		assert.Equal(t, payout.StatusPending, p.Status)
		repo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProcessor_RecordsBusinessMetrics(t *testing.T) {
	ctx := context.Background()
	recorder := testutil.NewMetricsRecorder(t)
	metrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{Meter: recorder.Meter()})
	require.NoError(t, err)

	settle := func(t *testing.T, settleErr error) {
		t.Helper()
		repo := new(testutil.MockPayoutRepository)
		rail := testutil.NewMockSettlementStrategy(payout.MethodMobileBanking)
		p := pendingPayout(t)
		repo.On("FindByID", ctx, p.ID).Return(p, nil)
		repo.On("Transition", mock.Anything, p, mock.Anything, mock.Anything).Return(nil)
		rail.On("Settle", mock.Anything, mock.Anything).
			Return(payout.SettlementResult{Reference: "BKS-9", EstimatedProcessingTime: time.Now()}, settleErr)

		proc := NewProcessor(ProcessorConfig{
			Payouts:         repo,
			Strategies:      staticResolver{payout.MethodMobileBanking: rail},
			BusinessMetrics: metrics,
		})
		_, err := proc.Process(ctx, p.ID, "ops-1")
		require.NoError(t, err)
	}

	settle(t, nil)
	settle(t, nil)
	settle(t, errors.New("wallet limit exceeded"))

	method := telemetry.AttrPayoutMethod.String("mobile_banking")
	assert.Equal(t, int64(2), recorder.Counter(t, "vendorhub_payouts_total", method, telemetry.AttrPayoutStatus.String("completed")))
	assert.Equal(t, int64(1), recorder.Counter(t, "vendorhub_payouts_total", method, telemetry.AttrPayoutStatus.String("failed")))
	assert.Equal(t, int64(2*89550), recorder.Counter(t, "vendorhub_payout_amount_total", method))
	assert.Equal(t, uint64(3), recorder.HistogramCount(t, "vendorhub_settlement_duration_seconds", method))
}
