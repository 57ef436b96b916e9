package settlement

import (
	"context"
	"sync"
	"time"

	"github.com/vendorhub/backend/internal/domain/payout"
	"go.uber.org/zap"
)

// sandboxDesk accepts transfers without moving money. It keeps the
// acknowledgements it has issued so a resubmitted payout gets the same
// reference back. One desk serves all three rails.
type sandboxDesk struct {
	now    func() time.Time
	logger *zap.Logger

	mu     sync.Mutex
	issued map[string]payout.SettlementResult
}

func newSandboxDesk(now func() time.Time, logger *zap.Logger) *sandboxDesk {
	return &sandboxDesk{
		now:    now,
		logger: logger.With(zap.Bool("sandbox", true)),
		issued: make(map[string]payout.SettlementResult),
	}
}

func (d *sandboxDesk) submit(_ context.Context, t transfer, mint func(now time.Time) payout.SettlementResult) (payout.SettlementResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if res, ok := d.issued[t.req.IdempotencyKey]; ok {
		d.logger.Info("duplicate submission, returning original acknowledgement",
			zap.String("rail", string(t.req.Method)),
			zap.String("payout_id", t.req.PayoutID.String()),
			zap.String("reference", res.Reference))
		return res, nil
	}

	res := mint(d.now().UTC())
	d.issued[t.req.IdempotencyKey] = res

	d.logger.Info("transfer accepted",
		zap.String("rail", string(t.req.Method)),
		zap.String("payout_id", t.req.PayoutID.String()),
		zap.String("vendor_id", t.req.VendorID.String()),
		zap.String("amount", t.req.Amount.StringFixed(2)),
		zap.String("reference", res.Reference),
		zap.Time("eta", res.EstimatedProcessingTime))
	return res, nil
}
