package settlement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/payout"
)

// transport carries a transfer to wherever money moves. mint builds the
// acknowledgement a transport issues on its own; transports that get one
// back from a remote party ignore it.
type transport interface {
	submit(ctx context.Context, t transfer, mint func(now time.Time) payout.SettlementResult) (payout.SettlementResult, error)
}

// transfer is a settlement request narrowed to what one rail sends
type transfer struct {
	req         payout.SettlementRequest
	destination map[string]string
}

func checkRequest(ctx context.Context, method payout.Method, req payout.SettlementRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Method != method {
		return fmt.Errorf("%w: %s rail cannot settle %s", ErrUnsupportedMethod, method, req.Method)
	}
	if !req.Amount.IsPositive() {
		return fmt.Errorf("%w: amount %s must be positive", ErrGatewayRejected, req.Amount.StringFixed(2))
	}
	return nil
}

// pick copies the named keys that are present in details
func pick(details payout.Details, keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v := strings.TrimSpace(details[k]); v != "" {
			out[k] = v
		}
	}
	return out
}

func reference(prefix string, req payout.SettlementRequest, at time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(req.PayoutID.String(), "-", ""))
	return fmt.Sprintf("%s-%s-%s", prefix, at.In(Dhaka).Format("20060102"), id[:10])
}

// BankTransferRail settles over BEFTN/NPSB. Transfers clear on business days
// only, so the estimate rolls past the weekend.
type BankTransferRail struct {
	eta       time.Duration
	transport transport
}

// Method returns payout.MethodBankTransfer
func (r *BankTransferRail) Method() payout.Method {
	return payout.MethodBankTransfer
}

// Settle sends the transfer to the beneficiary account
func (r *BankTransferRail) Settle(ctx context.Context, req payout.SettlementRequest) (payout.SettlementResult, error) {
	if err := checkRequest(ctx, payout.MethodBankTransfer, req); err != nil {
		return payout.SettlementResult{}, err
	}
	t := transfer{
		req:         req,
		destination: pick(req.Details, "account_name", "account_number", "bank_name", "routing_number"),
	}
	return r.transport.submit(ctx, t, func(now time.Time) payout.SettlementResult {
		return payout.SettlementResult{
			Reference:               reference("BT", req, now),
			EstimatedProcessingTime: rollToBusinessDay(now.Add(r.eta)),
		}
	})
}

// MobileBankingRail settles to a bKash, Nagad or Rocket wallet. Wallet
// transfers land within minutes but carry a per-transfer ceiling.
type MobileBankingRail struct {
	eta       time.Duration
	limit     decimal.Decimal
	transport transport
}

// Method returns payout.MethodMobileBanking
func (r *MobileBankingRail) Method() payout.Method {
	return payout.MethodMobileBanking
}

// Settle sends the transfer to the vendor's wallet
func (r *MobileBankingRail) Settle(ctx context.Context, req payout.SettlementRequest) (payout.SettlementResult, error) {
	if err := checkRequest(ctx, payout.MethodMobileBanking, req); err != nil {
		return payout.SettlementResult{}, err
	}
	provider := strings.ToLower(strings.TrimSpace(req.Details["provider"]))
	if provider == "" {
		provider = string(payout.MethodMobileBanking)
	}
	if r.limit.IsPositive() && req.Amount.GreaterThan(r.limit) {
		return payout.SettlementResult{}, fmt.Errorf("%w: BDT %s is above the %s limit of BDT %s",
			ErrLimitExceeded, req.Amount.StringFixed(2), provider, r.limit.StringFixed(2))
	}
	t := transfer{
		req:         req,
		destination: pick(req.Details, "provider", "wallet_number"),
	}
	return r.transport.submit(ctx, t, func(now time.Time) payout.SettlementResult {
		return payout.SettlementResult{
			Reference:               reference(strings.ToUpper(provider), req, now),
			EstimatedProcessingTime: now.Add(r.eta),
		}
	})
}

// CheckRail mails a printed check. Checks are cut on business days.
type CheckRail struct {
	eta       time.Duration
	transport transport
}

// Method returns payout.MethodCheck
func (r *CheckRail) Method() payout.Method {
	return payout.MethodCheck
}

// Settle orders the check
func (r *CheckRail) Settle(ctx context.Context, req payout.SettlementRequest) (payout.SettlementResult, error) {
	if err := checkRequest(ctx, payout.MethodCheck, req); err != nil {
		return payout.SettlementResult{}, err
	}
	t := transfer{
		req:         req,
		destination: pick(req.Details, "payee_name", "mailing_address"),
	}
	return r.transport.submit(ctx, t, func(now time.Time) payout.SettlementResult {
		return payout.SettlementResult{
			Reference:               reference("CHK", req, now),
			EstimatedProcessingTime: rollToBusinessDay(now.Add(r.eta)),
		}
	})
}

var (
	_ payout.SettlementStrategy = (*BankTransferRail)(nil)
	_ payout.SettlementStrategy = (*MobileBankingRail)(nil)
	_ payout.SettlementStrategy = (*CheckRail)(nil)
)
