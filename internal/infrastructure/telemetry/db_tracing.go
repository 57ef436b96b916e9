package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig controls database spans
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // keep bind variables in spans; never in production
	SlowQueryThresh time.Duration
	DBName          string
}

// DBTracingPlugin is a gorm.Plugin that installs otelgorm plus callbacks that
// flag slow statements on the active span
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates the plugin
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.DBName == "" {
		cfg.DBName = "vendorhub"
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// Name implements gorm.Plugin
func (p *DBTracingPlugin) Name() string {
	return "vendorhub:db_tracing"
}

// Initialize implements gorm.Plugin
func (p *DBTracingPlugin) Initialize(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBName)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	cb := db.Callback()
	for _, proc := range []struct {
		op     string
		before func(string) gormRegistrar
		after  func(string) gormRegistrar
	}{
		{"create", func(n string) gormRegistrar { return cb.Create().Before(n) }, func(n string) gormRegistrar { return cb.Create().After(n) }},
		{"query", func(n string) gormRegistrar { return cb.Query().Before(n) }, func(n string) gormRegistrar { return cb.Query().After(n) }},
		{"update", func(n string) gormRegistrar { return cb.Update().Before(n) }, func(n string) gormRegistrar { return cb.Update().After(n) }},
		{"delete", func(n string) gormRegistrar { return cb.Delete().Before(n) }, func(n string) gormRegistrar { return cb.Delete().After(n) }},
		{"row", func(n string) gormRegistrar { return cb.Row().Before(n) }, func(n string) gormRegistrar { return cb.Row().After(n) }},
		{"raw", func(n string) gormRegistrar { return cb.Raw().Before(n) }, func(n string) gormRegistrar { return cb.Raw().After(n) }},
	} {
		if err := proc.before("gorm:"+proc.op).Register("vendorhub:timing_before_"+proc.op, markStart); err != nil {
			return err
		}
		if err := proc.after("gorm:"+proc.op).Register("vendorhub:timing_after_"+proc.op, p.annotate); err != nil {
			return err
		}
	}

	p.logger.Info("database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh))
	return nil
}

// gormRegistrar is the subset of gorm's callback processor used here
type gormRegistrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

type contextKey string

const queryStartKey contextKey = "vendorhub_query_start"

func markStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey, time.Now())
	}
}

func (p *DBTracingPlugin) annotate(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.RecordError(db.Error)
		span.SetStatus(codes.Error, db.Error.Error())
	}

	start, ok := ctx.Value(queryStartKey).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()))
		span.AddEvent("slow_query", trace.WithAttributes(
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds())))
	}
}

var _ gorm.Plugin = (*DBTracingPlugin)(nil)
