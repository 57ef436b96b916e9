package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

type MockEventHandler struct {
	mock.Mock
}

func (m *MockEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventHandler) EventTypes() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, eventID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	return m.Called().Error(0)
}

func TestIdempotentHandler_RunsOncePerEvent(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	inner := new(MockEventHandler)
	event := newTestEvent("PayoutSettled")
	inner.On("Handle", mock.Anything, event).Return(nil).Once()

	h := NewIdempotentHandler(inner, store, zap.NewNop())

	require.NoError(t, h.Handle(context.Background(), event))
	require.NoError(t, h.Handle(context.Background(), event))

	inner.AssertExpectations(t)
	stats := h.Metrics().Stats()
	assert.Equal(t, int64(1), stats.EventsProcessed)
	assert.Equal(t, int64(1), stats.EventsDuplicate)
}

func TestIdempotentHandler_DistinctEventsBothRun(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	inner := new(MockEventHandler)
	inner.On("Handle", mock.Anything, mock.Anything).Return(nil).Twice()
	h := NewIdempotentHandler(inner, store, nil)

	require.NoError(t, h.Handle(context.Background(), newTestEvent("PayoutSettled")))
	require.NoError(t, h.Handle(context.Background(), newTestEvent("PayoutSettled")))

	inner.AssertExpectations(t)
}

func TestIdempotentHandler_FailureIsCountedAndReturned(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	inner := new(MockEventHandler)
	event := newTestEvent("PayoutFailed")
	inner.On("Handle", mock.Anything, event).Return(errors.New("gateway timeout"))
	h := NewIdempotentHandler(inner, store, zap.NewNop())

	err := h.Handle(context.Background(), event)

	require.Error(t, err)
	assert.Equal(t, int64(1), h.Metrics().Stats().EventsFailed)
}

func TestIdempotentHandler_StoreErrorStillProcesses(t *testing.T) {
	store := new(MockIdempotencyStore)
	inner := new(MockEventHandler)
	event := newTestEvent("VendorActivated")
	store.On("MarkProcessed", mock.Anything, event.EventID().String(), 24*time.Hour).
		Return(false, errors.New("redis: connection refused"))
	inner.On("Handle", mock.Anything, event).Return(nil)

	h := NewIdempotentHandler(inner, store, zap.NewNop())

	require.NoError(t, h.Handle(context.Background(), event))
	inner.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestIdempotentHandler_Disabled(t *testing.T) {
	store := new(MockIdempotencyStore)
	inner := new(MockEventHandler)
	event := newTestEvent("VendorActivated")
	inner.On("Handle", mock.Anything, event).Return(nil).Twice()

	h := NewIdempotentHandler(inner, store, zap.NewNop(), WithIdempotencyConfig(IdempotencyConfig{Enabled: false}))

	require.NoError(t, h.Handle(context.Background(), event))
	require.NoError(t, h.Handle(context.Background(), event))

	inner.AssertExpectations(t)
	store.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
}

func TestIdempotentHandler_SharedMetricsAndCustomTTL(t *testing.T) {
	metrics := &IdempotencyMetrics{}
	store := new(MockIdempotencyStore)
	inner := new(MockEventHandler)
	event := newTestEvent("PayoutSettled")
	store.On("MarkProcessed", mock.Anything, event.EventID().String(), time.Hour).Return(true, nil)
	inner.On("Handle", mock.Anything, event).Return(nil)
	inner.On("EventTypes").Return([]string{"PayoutSettled"})

	h := NewIdempotentHandler(inner, store, zap.NewNop(),
		WithIdempotencyConfig(IdempotencyConfig{Enabled: true, TTL: time.Hour}),
		WithIdempotencyMetrics(metrics))

	require.NoError(t, h.Handle(context.Background(), event))
	assert.Equal(t, []string{"PayoutSettled"}, h.EventTypes())
	assert.Equal(t, int64(1), metrics.Stats().EventsProcessed)
	store.AssertExpectations(t)
}
