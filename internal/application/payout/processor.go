package payout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/payout"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// StrategyResolver picks the settlement rail of a payout method
type StrategyResolver interface {
	StrategyFor(method payout.Method) (payout.SettlementStrategy, error)
}

// Processor settles pending payouts. Each payout is settled at most once:
// the pending to processing step is a compare-and-set, so of two concurrent
// calls only one reaches the rail.
type Processor struct {
	payouts        payout.Repository
	strategies     StrategyResolver
	eventPublisher shared.EventPublisher
	metrics        *telemetry.BusinessMetrics
	logger         *zap.Logger
	now            func() time.Time
}

// ProcessorConfig holds the processor's dependencies
type ProcessorConfig struct {
	Payouts        payout.Repository
	Strategies     StrategyResolver
	EventPublisher shared.EventPublisher
	Logger         *zap.Logger
	// BusinessMetrics counts settled payouts; nil disables recording
	BusinessMetrics *telemetry.BusinessMetrics
}

// NewProcessor creates a new Processor
func NewProcessor(cfg ProcessorConfig) *Processor {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		payouts:        cfg.Payouts,
		strategies:     cfg.Strategies,
		eventPublisher: cfg.EventPublisher,
		metrics:        cfg.BusinessMetrics,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Process settles a pending payout over its method's rail. A rail failure
// moves the payout to failed and is reported in the result; errors are
// returned only when the payout could not be moved at all.
func (p *Processor) Process(ctx context.Context, id uuid.UUID, actor string) (_ *ProcessResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payout", "process")
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()
	telemetry.SetAttributes(span, telemetry.SpanAttrPayoutID, id.String())

	po, err := p.payouts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrVendorID, po.VendorID.String(),
		telemetry.SpanAttrPayoutMethod, string(po.Method),
		telemetry.SpanAttrAmount, po.NetPayoutAmount.String(),
	)
	if po.Status != payout.StatusPending {
		return nil, shared.NewConflictError("payout %s is %s and cannot be processed", po.ID, po.Status)
	}
	strategy, err := p.strategies.StrategyFor(po.Method)
	if err != nil {
		return nil, err
	}

	if err := po.StartProcessing(p.now()); err != nil {
		return nil, err
	}
	started := payout.NewAuditEntry(po, payout.AuditProcessingStarted, actor, payout.StatusPending, nil, p.now())
	if err := p.payouts.Transition(ctx, po, payout.StatusPending, started); err != nil {
		return nil, err
	}

	// The payout is now processing; a client disconnect must not strand it there.
	ctx = context.WithoutCancel(ctx)

	log := p.logger.With(
		zap.String("payout_id", po.ID.String()),
		zap.String("vendor_id", po.VendorID.String()),
		zap.String("method", string(po.Method)),
	)

	settleStart := time.Now()
	result, settleErr := strategy.Settle(ctx, payout.NewSettlementRequest(po))
	took := time.Since(settleStart)
	now := p.now()
	var entry payout.AuditEntry
	if settleErr != nil {
		if err := po.Fail(settleErr.Error(), now); err != nil {
			return nil, err
		}
		entry = payout.NewAuditEntry(po, payout.AuditSettlementFailed, actorOrSystem(""), payout.StatusProcessing,
			map[string]any{"error": settleErr.Error()}, now)
	} else {
		eta := result.EstimatedProcessingTime.UTC()
		if err := po.Complete(result.Reference, &eta, now); err != nil {
			return nil, err
		}
		entry = payout.NewAuditEntry(po, payout.AuditSettlementCompleted, actorOrSystem(""), payout.StatusProcessing,
			map[string]any{
				"reference":                 result.Reference,
				"estimated_processing_time": eta.Format(time.RFC3339),
			}, now)
	}

	if err := p.payouts.Transition(ctx, po, payout.StatusProcessing, entry); err != nil {
		log.Error("settlement outcome could not be recorded",
			zap.String("outcome", string(po.Status)),
			zap.String("reference", po.SettlementReference),
			zap.Error(err))
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrPayoutStatus, string(po.Status))
	if p.metrics != nil {
		p.metrics.RecordPayout(ctx, string(po.Method), string(po.Status), po.NetPayoutAmount, took)
	}
	if settleErr != nil {
		telemetry.AddEvent(span, "settlement_failed", "error", settleErr.Error())
		log.Warn("payout settlement failed", zap.Error(settleErr))
	} else {
		log.Info("payout settled",
			zap.String("reference", po.SettlementReference),
			zap.String("amount", po.NetPayoutAmount.String()))
	}
	publishEvents(ctx, p.eventPublisher, p.logger, po)

	return &ProcessResult{
		PayoutID:                po.ID,
		Status:                  string(po.Status),
		SettlementReference:     po.SettlementReference,
		EstimatedProcessingTime: po.EstimatedProcessingTime,
		FailureReason:           po.FailureReason,
		ProcessedAt:             now,
	}, nil
}
