package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// MetricsRecorder is an in-memory meter whose readings can be collected on demand
type MetricsRecorder struct {
	reader *sdkmetric.ManualReader
	meter  metric.Meter
}

// NewMetricsRecorder creates a meter backed by a manual reader
func NewMetricsRecorder(t *testing.T) *MetricsRecorder {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return &MetricsRecorder{reader: reader, meter: provider.Meter("test")}
}

// Meter returns the recording meter
func (r *MetricsRecorder) Meter() metric.Meter {
	return r.meter
}

// Counter returns the summed value of an int64 counter over the data points
// carrying every attribute in attrs
func (r *MetricsRecorder) Counter(t *testing.T, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	var total int64
	if m, ok := r.find(t, name); ok {
		sum, isSum := m.Data.(metricdata.Sum[int64])
		require.True(t, isSum, "%s is not an int64 sum", name)
		for _, dp := range sum.DataPoints {
			if hasAttributes(dp.Attributes, attrs) {
				total += dp.Value
			}
		}
	}
	return total
}

// HistogramCount returns how many values a float64 histogram recorded on the
// data points carrying every attribute in attrs
func (r *MetricsRecorder) HistogramCount(t *testing.T, name string, attrs ...attribute.KeyValue) uint64 {
	t.Helper()
	var count uint64
	if m, ok := r.find(t, name); ok {
		hist, isHist := m.Data.(metricdata.Histogram[float64])
		require.True(t, isHist, "%s is not a float64 histogram", name)
		for _, dp := range hist.DataPoints {
			if hasAttributes(dp.Attributes, attrs) {
				count += dp.Count
			}
		}
	}
	return count
}

func (r *MetricsRecorder) find(t *testing.T, name string) (metricdata.Metrics, bool) {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, r.reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func hasAttributes(set attribute.Set, want []attribute.KeyValue) bool {
	for _, kv := range want {
		v, ok := set.Value(kv.Key)
		if !ok || v.Emit() != kv.Value.Emit() {
			return false
		}
	}
	return true
}
