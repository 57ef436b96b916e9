package settlement

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/payout"
	infraconfig "github.com/vendorhub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Router selects the settlement rail for a payout method
type Router struct {
	rails map[payout.Method]payout.SettlementStrategy
}

// RouterOption configures a Router
type RouterOption func(*routerOptions)

type routerOptions struct {
	logger     *zap.Logger
	now        func() time.Time
	httpClient *http.Client
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) RouterOption {
	return func(o *routerOptions) {
		o.logger = logger
	}
}

// WithClock sets the clock used by the sandbox desk
func WithClock(now func() time.Time) RouterOption {
	return func(o *routerOptions) {
		o.now = now
	}
}

// WithHTTPClient sets the client used for the disbursement gateway
func WithHTTPClient(client *http.Client) RouterOption {
	return func(o *routerOptions) {
		o.httpClient = client
	}
}

// NewRouter builds one rail per payout method. In sandbox mode the rails
// hand transfers to an in-memory desk, otherwise to the disbursement gateway.
func NewRouter(cfg *infraconfig.SettlementConfig, opts ...RouterOption) (*Router, error) {
	o := routerOptions{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	var tr transport
	if cfg.SandboxMode {
		tr = newSandboxDesk(o.now, o.logger)
		o.logger.Warn("settlement running in sandbox mode, no money will move")
	} else {
		if cfg.GatewayURL == "" {
			return nil, fmt.Errorf("settlement: gateway_url is required outside sandbox mode")
		}
		client := o.httpClient
		if client == nil {
			client = &http.Client{Timeout: cfg.GatewayTimeout}
		}
		tr = newGatewayClient(cfg.GatewayURL, cfg.GatewayAPIKey, client, o.logger)
	}

	mobile := &MobileBankingRail{
		eta:       cfg.MobileBankingETA,
		limit:     decimal.NewFromFloat(cfg.MobileBankingLimit),
		transport: tr,
	}
	return &Router{rails: map[payout.Method]payout.SettlementStrategy{
		payout.MethodBankTransfer:  &BankTransferRail{eta: cfg.BankTransferETA, transport: tr},
		payout.MethodMobileBanking: mobile,
		payout.MethodCheck:         &CheckRail{eta: cfg.CheckETA, transport: tr},
	}}, nil
}

// StrategyFor returns the rail for method
func (r *Router) StrategyFor(method payout.Method) (payout.SettlementStrategy, error) {
	rail, ok := r.rails[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
	return rail, nil
}
