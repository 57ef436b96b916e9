package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	actorKey     contextKey = "actor"
)

// WithContext attaches logger to ctx
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger attached to ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// WithRequestID stores the request id in ctx
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request id stored in ctx
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithActor stores the acting user in ctx
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor returns the acting user stored in ctx
func GetActor(ctx context.Context) string {
	a, _ := ctx.Value(actorKey).(string)
	return a
}

// L returns the context logger enriched with request, actor and trace fields.
//
//	logger.L(ctx).Info("payout generated", zap.String("payout_id", id))
func L(ctx context.Context) *zap.Logger {
	l := FromContext(ctx)
	if id := GetRequestID(ctx); id != "" {
		l = l.With(zap.String("request_id", id))
	}
	if actor := GetActor(ctx); actor != "" {
		l = l.With(zap.String("actor", actor))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		l = l.With(
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	return l
}
