package payout

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/commission"
	"github.com/vendorhub/backend/internal/domain/shared"
)

func bkashDetails() Details {
	return Details{"provider": "bKash", "wallet_number": "01712345678"}
}

func newTestPayout(t *testing.T) *Payout {
	t.Helper()
	totals := commission.Totals{Count: 2, NetCommissions: dec("1780")}
	calc := Aggregate(uuid.New(), januaryPeriod(t), totals, decimal.Zero, DefaultWithholdingTaxRate)
	p, err := NewPayout(calc, MethodMobileBanking, bkashDetails())
	require.NoError(t, err)
	return p
}

func TestNewPayout(t *testing.T) {
	t.Run("pending with normalized details", func(t *testing.T) {
		p := newTestPayout(t)

		assert.Equal(t, StatusPending, p.Status)
		assert.Equal(t, "bkash", p.Details["provider"])
		assert.Equal(t, "1691.00", p.NetPayoutAmount.StringFixed(2))
		require.Len(t, p.PendingEvents(), 1)
		assert.Equal(t, EventTypePayoutGenerated, p.PendingEvents()[0].EventType())
	})

	t.Run("zero amount is refused", func(t *testing.T) {
		calc := Aggregate(uuid.New(), januaryPeriod(t), commission.Totals{}, decimal.Zero, DefaultWithholdingTaxRate)

		_, err := NewPayout(calc, MethodMobileBanking, bkashDetails())
		assert.Equal(t, shared.CodeInvalidState, shared.ErrorCode(err))
	})

	t.Run("invalid details are refused", func(t *testing.T) {
		totals := commission.Totals{NetCommissions: dec("100")}
		calc := Aggregate(uuid.New(), januaryPeriod(t), totals, decimal.Zero, DefaultWithholdingTaxRate)

		_, err := NewPayout(calc, MethodCheck, Details{"payee_name": "Rahman Traders"})
		var ve *shared.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "payout_details.mailing_address", ve.Fields[0].Field)
	})
}

func TestPayout_Transitions(t *testing.T) {
	now := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)

	t.Run("pending to processing to completed", func(t *testing.T) {
		p := newTestPayout(t)
		p.ClearEvents()

		require.NoError(t, p.StartProcessing(now))
		assert.Equal(t, StatusProcessing, p.Status)

		eta := now.Add(time.Hour)
		require.NoError(t, p.Complete("BKASH-TRX-1", &eta, now))
		assert.Equal(t, StatusCompleted, p.Status)
		assert.Equal(t, "BKASH-TRX-1", p.SettlementReference)
		assert.True(t, p.Status.IsTerminal())
		require.Len(t, p.PendingEvents(), 1)
		assert.Equal(t, EventTypePayoutSettled, p.PendingEvents()[0].EventType())
	})

	t.Run("processing to failed", func(t *testing.T) {
		p := newTestPayout(t)
		require.NoError(t, p.StartProcessing(now))

		require.NoError(t, p.Fail("wallet not found", now))
		assert.Equal(t, StatusFailed, p.Status)
		assert.Equal(t, "wallet not found", p.FailureReason)
		assert.NotNil(t, p.FailedAt)
	})

	t.Run("completed payout cannot be processed again", func(t *testing.T) {
		p := newTestPayout(t)
		require.NoError(t, p.StartProcessing(now))
		require.NoError(t, p.Complete("REF", nil, now))

		err := p.StartProcessing(now)
		assert.Equal(t, shared.CodeConflict, shared.ErrorCode(err))
		assert.Contains(t, err.Error(), p.ID.String())
		assert.Contains(t, err.Error(), "completed")
	})

	t.Run("pending payout cannot complete", func(t *testing.T) {
		p := newTestPayout(t)
		assert.Error(t, p.Complete("REF", nil, now))
		assert.Error(t, p.Fail("x", now))
	})
}

func TestValidateDetails(t *testing.T) {
	tests := []struct {
		name    string
		method  Method
		details Details
		fields  []string
	}{
		{
			name:   "complete bank transfer",
			method: MethodBankTransfer,
			details: Details{
				"account_name": "Rahman Traders", "account_number": "1501202345678",
				"bank_name": "BRAC Bank", "routing_number": "060261726",
			},
		},
		{
			name:    "bank transfer with short routing number",
			method:  MethodBankTransfer,
			details: Details{"account_name": "A", "account_number": "1501202345678", "bank_name": "B", "routing_number": "123"},
			fields:  []string{"payout_details.routing_number"},
		},
		{
			name:    "unknown mobile provider",
			method:  MethodMobileBanking,
			details: Details{"provider": "upay", "wallet_number": "01712345678"},
			fields:  []string{"payout_details.provider"},
		},
		{
			name:    "landline wallet",
			method:  MethodMobileBanking,
			details: Details{"provider": "nagad", "wallet_number": "0212345678"},
			fields:  []string{"payout_details.wallet_number"},
		},
		{
			name:    "empty check",
			method:  MethodCheck,
			details: Details{},
			fields:  []string{"payout_details.payee_name", "payout_details.mailing_address"},
		},
		{
			name:    "unknown method",
			method:  Method("crypto"),
			details: Details{},
			fields:  []string{"payout_method"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDetails(tt.method, tt.details)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			var ve *shared.ValidationError
			require.ErrorAs(t, err, &ve)
			var got []string
			for _, f := range ve.Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestDetails_Masked(t *testing.T) {
	m := Details{"account_number": "1501202345678", "bank_name": "BRAC Bank"}.Masked()

	assert.Equal(t, "*********5678", m["account_number"])
	assert.Equal(t, "BRAC Bank", m["bank_name"])
}

func TestNewAdjustment(t *testing.T) {
	_, err := NewAdjustment(uuid.New(), decimal.Zero, "", time.Time{}, "ops")
	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 3)

	a, err := NewAdjustment(uuid.New(), dec("-25.555"), "damaged goods refund", time.Now(), "ops")
	require.NoError(t, err)
	assert.Equal(t, "-25.56", a.Amount.StringFixed(2))
}

func TestNewAuditEntry(t *testing.T) {
	p := newTestPayout(t)
	require.NoError(t, p.StartProcessing(time.Now()))

	e := NewAuditEntry(p, AuditProcessingStarted, "", StatusPending, nil, time.Now())

	assert.Equal(t, "system", e.Actor)
	assert.Equal(t, StatusPending, e.FromStatus)
	assert.Equal(t, StatusProcessing, e.ToStatus)
}
