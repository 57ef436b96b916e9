package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vendorhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BusOption configures an InMemoryEventBus
type BusOption func(*InMemoryEventBus)

// WithAsyncDelivery hands each event to its handlers on background
// goroutines so publishers never wait on slow channels such as SMS
func WithAsyncDelivery() BusOption {
	return func(b *InMemoryEventBus) {
		b.async = true
	}
}

// WithHandlerTimeout bounds each handler call
func WithHandlerTimeout(d time.Duration) BusOption {
	return func(b *InMemoryEventBus) {
		b.handlerTimeout = d
	}
}

// InMemoryEventBus delivers events to in-process handlers. Handler failures
// and panics are logged and never reach the publisher.
type InMemoryEventBus struct {
	registry       *HandlerRegistry
	logger         *zap.Logger
	async          bool
	handlerTimeout time.Duration
	running        atomic.Bool
	wg             sync.WaitGroup
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger, opts ...BusOption) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish delivers events to their handlers. With async delivery the call
// returns once every delivery is scheduled.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	async := b.async && b.running.Load()
	if async {
		ctx = context.WithoutCancel(ctx)
	}
	for _, event := range events {
		for _, handler := range b.registry.GetHandlers(event.EventType()) {
			if !async {
				b.deliver(ctx, handler, event)
				continue
			}
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				b.deliver(ctx, handler, event)
			}()
		}
	}
	return nil
}

// Subscribe registers a handler; with no event types it uses the handler's own
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start enables async delivery, when configured
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.running.Store(true)
	b.logger.Info("event bus started",
		zap.Bool("async", b.async),
		zap.Int("handlers", b.registry.Len()))
	return nil
}

// Stop waits for in-flight deliveries or for ctx to end
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.running.Store(false)
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		b.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("event bus stop: %w", ctx.Err())
	}
}

func (b *InMemoryEventBus) deliver(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) {
	if b.handlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.handlerTimeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.Any("panic", r),
			)
		}
	}()
	if err := handler.Handle(ctx, event); err != nil {
		b.logger.Error("event handler failed",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
			zap.Error(err),
		)
	}
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
