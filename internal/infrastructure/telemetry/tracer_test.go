package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap/zaptest"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:     false,
		ServiceName: "vendorhub-test",
	}, zaptest.NewLogger(t))

	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProvider_EnabledInstallsGlobalProvider(t *testing.T) {
	original := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	// The gRPC exporter connects lazily, so no collector is needed here.
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           true,
		CollectorEndpoint: "localhost:14317",
		SamplingRatio:     0.25,
		ServiceName:       "vendorhub-test",
		ServiceVersion:    "test",
		Environment:       "test",
		Insecure:          true,
	}, nil)

	require.NoError(t, err)
	assert.True(t, tp.IsEnabled())
	assert.NotSame(t, original, otel.GetTracerProvider())
}
