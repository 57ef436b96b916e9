package settlement

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/payout"
	infraconfig "github.com/vendorhub/backend/internal/infrastructure/config"
)

func gatewayRail(t *testing.T, handler http.HandlerFunc) payout.SettlementStrategy {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	r, err := NewRouter(&infraconfig.SettlementConfig{
		GatewayURL:     srv.URL + "/",
		GatewayAPIKey:  "test-key",
		GatewayTimeout: 5 * time.Second,
	}, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	rail, err := r.StrategyFor(payout.MethodBankTransfer)
	require.NoError(t, err)
	return rail
}

func TestGateway_Success(t *testing.T) {
	eta := time.Date(2026, 3, 5, 4, 0, 0, 0, time.UTC)
	var got disbursementRequest
	var headers http.Header
	rail := gatewayRail(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, disbursementsPath, r.URL.Path)
		headers = r.Header.Clone()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(disbursementResponse{Reference: "NPSB-778812", Status: "accepted", EstimatedCompletion: eta})
	})

	req := request(payout.MethodBankTransfer, "895.5", payout.Details{"account_number": "1234567890123"})
	res, err := rail.Settle(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "NPSB-778812", res.Reference)
	assert.Equal(t, eta, res.EstimatedProcessingTime)
	assert.Equal(t, "895.50", got.Amount)
	assert.Equal(t, "BDT", got.Currency)
	assert.Equal(t, "1234567890123", got.Destination["account_number"])
	assert.Equal(t, req.IdempotencyKey, headers.Get("Idempotency-Key"))
	assert.Equal(t, "Bearer test-key", headers.Get("Authorization"))
}

func TestGateway_Errors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{"coded rejection", http.StatusUnprocessableEntity, `{"code":"ACCOUNT_CLOSED","message":"beneficiary account closed"}`, ErrGatewayRejected, "ACCOUNT_CLOSED"},
		{"bare client error", http.StatusBadRequest, `oops`, ErrGatewayRejected, "HTTP 400"},
		{"server error", http.StatusBadGateway, ``, ErrGatewayUnavailable, "HTTP 502"},
		{"rejected status", http.StatusOK, `{"reference":"X-1","status":"rejected"}`, ErrGatewayRejected, "X-1"},
		{"missing reference", http.StatusOK, `{"status":"accepted"}`, ErrGatewayRejected, "no reference"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rail := gatewayRail(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := rail.Settle(context.Background(), request(payout.MethodBankTransfer, "10", nil))

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestGateway_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	r, err := NewRouter(&infraconfig.SettlementConfig{GatewayURL: url, GatewayTimeout: time.Second})
	require.NoError(t, err)
	rail, _ := r.StrategyFor(payout.MethodCheck)

	_, err = rail.Settle(context.Background(), request(payout.MethodCheck, "10", nil))

	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestGateway_MobileSendsWalletOnly(t *testing.T) {
	var got disbursementRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(disbursementResponse{Reference: "BK-99", Status: "accepted"})
	}))
	t.Cleanup(srv.Close)
	r, err := NewRouter(&infraconfig.SettlementConfig{GatewayURL: srv.URL, MobileBankingLimit: 25000}, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	rail, _ := r.StrategyFor(payout.MethodMobileBanking)

	res, err := rail.Settle(context.Background(), request(payout.MethodMobileBanking, "100",
		payout.Details{"provider": "bkash", "wallet_number": "01712345678", "account_number": "1234567890123"}))

	require.NoError(t, err)
	assert.Equal(t, "BK-99", res.Reference)
	assert.Equal(t, "mobile_banking", got.Method)
	assert.Equal(t, map[string]string{"provider": "bkash", "wallet_number": "01712345678"}, got.Destination)
}

func TestGateway_MobileLimitCheckedBeforeSubmit(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	t.Cleanup(srv.Close)
	r, err := NewRouter(&infraconfig.SettlementConfig{GatewayURL: srv.URL, MobileBankingLimit: 25000}, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	rail, _ := r.StrategyFor(payout.MethodMobileBanking)

	_, err = rail.Settle(context.Background(), request(payout.MethodMobileBanking, "30000", payout.Details{"provider": "rocket"}))

	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.Contains(t, err.Error(), "rocket")
	assert.Zero(t, calls)
}
