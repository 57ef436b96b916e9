// Package middleware provides HTTP middleware for the vendor API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing returns the otelgin server middleware followed by a handler that
// tags the span with the request id, the actor and the :id route parameter.
// Span names follow otelgin, e.g. "POST /api/v1/payouts/:id/process".
// Mount it after RequestID and Actor.
func Tracing(serviceName string) []gin.HandlerFunc {
	return []gin.HandlerFunc{otelgin.Middleware(serviceName), annotateSpan}
}

func annotateSpan(c *gin.Context) {
	span := trace.SpanFromContext(c.Request.Context())
	if !span.IsRecording() {
		c.Next()
		return
	}

	var tags []attribute.KeyValue
	if id := c.GetString(RequestIDKey); id != "" {
		tags = append(tags, attribute.String("request_id", id))
	}
	if actor := GetActor(c); actor != "" {
		tags = append(tags, attribute.String("actor", actor))
	}
	if id := c.Param("id"); id != "" {
		tags = append(tags, attribute.String("resource_id", id))
	}
	span.SetAttributes(tags...)

	c.Next()

	// otelgin only marks 5xx as errors; refused payouts and bad KYC input
	// are 4xx and still worth finding
	if status := c.Writer.Status(); status >= http.StatusBadRequest {
		span.SetStatus(codes.Error, http.StatusText(status))
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
}
