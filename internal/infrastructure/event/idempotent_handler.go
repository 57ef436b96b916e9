package event

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vendorhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IdempotencyConfig controls duplicate suppression
type IdempotencyConfig struct {
	Enabled bool
	// TTL is how long a processed event ID is remembered
	TTL time.Duration
}

// DefaultIdempotencyConfig remembers event IDs for a day
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{Enabled: true, TTL: 24 * time.Hour}
}

// IdempotencyMetrics counts what the wrapped handlers did
type IdempotencyMetrics struct {
	EventsProcessed atomic.Int64
	EventsDuplicate atomic.Int64
	EventsFailed    atomic.Int64
}

// IdempotencyStats is a snapshot of IdempotencyMetrics
type IdempotencyStats struct {
	EventsProcessed int64 `json:"events_processed"`
	EventsDuplicate int64 `json:"events_duplicate"`
	EventsFailed    int64 `json:"events_failed"`
}

// Stats returns a snapshot of the counters
func (m *IdempotencyMetrics) Stats() IdempotencyStats {
	return IdempotencyStats{
		EventsProcessed: m.EventsProcessed.Load(),
		EventsDuplicate: m.EventsDuplicate.Load(),
		EventsFailed:    m.EventsFailed.Load(),
	}
}

// IdempotentHandler runs the wrapped handler at most once per event ID, so a
// vendor is not sent the same SMS twice when an event is redelivered
type IdempotentHandler struct {
	handler shared.EventHandler
	store   shared.IdempotencyStore
	config  IdempotencyConfig
	logger  *zap.Logger
	metrics *IdempotencyMetrics
}

// IdempotentHandlerOption configures an IdempotentHandler
type IdempotentHandlerOption func(*IdempotentHandler)

// WithIdempotencyConfig sets the configuration
func WithIdempotencyConfig(config IdempotencyConfig) IdempotentHandlerOption {
	return func(h *IdempotentHandler) {
		h.config = config
	}
}

// WithIdempotencyMetrics shares a metrics collector between handlers
func WithIdempotencyMetrics(metrics *IdempotencyMetrics) IdempotentHandlerOption {
	return func(h *IdempotentHandler) {
		h.metrics = metrics
	}
}

// NewIdempotentHandler wraps handler
func NewIdempotentHandler(handler shared.EventHandler, store shared.IdempotencyStore, logger *zap.Logger, opts ...IdempotentHandlerOption) *IdempotentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &IdempotentHandler{
		handler: handler,
		store:   store,
		config:  DefaultIdempotencyConfig(),
		logger:  logger,
		metrics: &IdempotencyMetrics{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// EventTypes returns the wrapped handler's event types
func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle claims the event ID and runs the wrapped handler if the claim is
// new. When the store is unreachable the event is processed anyway: a
// duplicate notification is better than a lost one.
func (h *IdempotentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if !h.config.Enabled {
		return h.handler.Handle(ctx, event)
	}

	eventID := event.EventID().String()
	log := h.logger.With(
		zap.String("event_id", eventID),
		zap.String("event_type", event.EventType()),
	)

	isNew, err := h.store.MarkProcessed(ctx, eventID, h.config.TTL)
	switch {
	case err != nil:
		log.Warn("idempotency store unavailable, processing anyway", zap.Error(err))
	case !isNew:
		h.metrics.EventsDuplicate.Add(1)
		log.Debug("duplicate event skipped")
		return nil
	}

	// A failed event keeps its claim until the TTL expires.
	if err := h.handler.Handle(ctx, event); err != nil {
		h.metrics.EventsFailed.Add(1)
		return err
	}
	h.metrics.EventsProcessed.Add(1)
	return nil
}

// Metrics returns the handler's counters
func (h *IdempotentHandler) Metrics() *IdempotencyMetrics {
	return h.metrics
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)
