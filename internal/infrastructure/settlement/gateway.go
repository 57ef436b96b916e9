package settlement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vendorhub/backend/internal/domain/payout"
	"go.uber.org/zap"
)

const disbursementsPath = "/v1/disbursements"

// gatewayClient submits transfers to a disbursement gateway over HTTP. One
// gateway fronts all three rails; the method travels in the request.
type gatewayClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func newGatewayClient(baseURL, apiKey string, client *http.Client, logger *zap.Logger) *gatewayClient {
	return &gatewayClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: client,
		logger:     logger,
	}
}

type disbursementRequest struct {
	PayoutID    string            `json:"payout_id"`
	VendorID    string            `json:"vendor_id"`
	Method      string            `json:"method"`
	Amount      string            `json:"amount"`
	Currency    string            `json:"currency"`
	Destination map[string]string `json:"destination"`
}

type disbursementResponse struct {
	Reference           string    `json:"reference"`
	Status              string    `json:"status"`
	EstimatedCompletion time.Time `json:"estimated_completion"`
}

type gatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// submit posts the transfer. The payout's idempotency key is forwarded so the
// gateway drops a resubmission. The gateway issues its own reference and
// estimate.
func (g *gatewayClient) submit(ctx context.Context, t transfer, _ func(time.Time) payout.SettlementResult) (payout.SettlementResult, error) {
	req := t.req
	body, err := json.Marshal(disbursementRequest{
		PayoutID:    req.PayoutID.String(),
		VendorID:    req.VendorID.String(),
		Method:      string(req.Method),
		Amount:      req.Amount.StringFixed(2),
		Currency:    "BDT",
		Destination: t.destination,
	})
	if err != nil {
		return payout.SettlementResult{}, fmt.Errorf("settlement: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+disbursementsPath, bytes.NewReader(body))
	if err != nil {
		return payout.SettlementResult{}, fmt.Errorf("settlement: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return payout.SettlementResult{}, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return payout.SettlementResult{}, fmt.Errorf("settlement: read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var gerr gatewayError
		if err := json.Unmarshal(respBody, &gerr); err == nil && gerr.Code != "" {
			return payout.SettlementResult{}, fmt.Errorf("%w: %s - %s", ErrGatewayRejected, gerr.Code, gerr.Message)
		}
		if resp.StatusCode >= 500 {
			return payout.SettlementResult{}, fmt.Errorf("%w: HTTP %d", ErrGatewayUnavailable, resp.StatusCode)
		}
		return payout.SettlementResult{}, fmt.Errorf("%w: HTTP %d", ErrGatewayRejected, resp.StatusCode)
	}

	var out disbursementResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return payout.SettlementResult{}, fmt.Errorf("settlement: parse response: %w", err)
	}
	if out.Reference == "" {
		return payout.SettlementResult{}, fmt.Errorf("%w: response carries no reference", ErrGatewayRejected)
	}
	if strings.EqualFold(out.Status, "rejected") {
		return payout.SettlementResult{}, fmt.Errorf("%w: transfer %s rejected", ErrGatewayRejected, out.Reference)
	}

	g.logger.Info("transfer submitted",
		zap.String("rail", string(req.Method)),
		zap.String("payout_id", req.PayoutID.String()),
		zap.String("reference", out.Reference),
		zap.String("status", out.Status))
	return payout.SettlementResult{
		Reference:               out.Reference,
		EstimatedProcessingTime: out.EstimatedCompletion.UTC(),
	}, nil
}
