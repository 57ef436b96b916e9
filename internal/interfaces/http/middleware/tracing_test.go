package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(t.Context())
	})
	return sr
}

func tracedRouter() *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), Actor())
	router.Use(Tracing("vendorhub-test")...)
	router.POST("/payouts/:id/process", func(c *gin.Context) {
		if c.Param("id") == "completed" {
			c.JSON(http.StatusConflict, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func onlySpan(t *testing.T, sr *tracetest.SpanRecorder) (sdktrace.ReadOnlySpan, map[attribute.Key]attribute.Value) {
	t.Helper()
	spans := sr.Ended()
	require.Len(t, spans, 1)
	a := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		a[kv.Key] = kv.Value
	}
	return spans[0], a
}

func TestTracing_TagsSpan(t *testing.T) {
	sr := setupTestTracer(t)

	req := httptest.NewRequest(http.MethodPost, "/payouts/p-77/process", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	req.Header.Set(HeaderUserID, "finance-ops")
	w := httptest.NewRecorder()
	tracedRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	span, a := onlySpan(t, sr)
	assert.Equal(t, "POST /payouts/:id/process", span.Name())
	assert.Equal(t, "req-42", a["request_id"].AsString())
	assert.Equal(t, "finance-ops", a["actor"].AsString())
	assert.Equal(t, "p-77", a["resource_id"].AsString())
	assert.NotEqual(t, codes.Error, span.Status().Code)
}

func TestTracing_MarksClientErrors(t *testing.T) {
	sr := setupTestTracer(t)

	w := httptest.NewRecorder()
	tracedRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payouts/completed/process", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	span, a := onlySpan(t, sr)
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "Conflict", span.Status().Description)
	assert.Equal(t, int64(http.StatusConflict), a["http.status_code"].AsInt64())
}

func TestAnnotateSpan_WithoutTracer(t *testing.T) {
	router := gin.New()
	router.Use(annotateSpan)
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
