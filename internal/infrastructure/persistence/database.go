package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database holds the database connection and provides methods for database operations
type Database struct {
	DB *gorm.DB
}

// Option customises the GORM configuration used by NewDatabase
type Option func(*options)

type options struct {
	logger  logger.Interface
	plugins []gorm.Plugin
}

// WithLogger replaces the silent default SQL logger
func WithLogger(l logger.Interface) Option {
	return func(o *options) { o.logger = l }
}

// WithPlugins registers GORM plugins (tracing, metrics) after connecting
func WithPlugins(plugins ...gorm.Plugin) Option {
	return func(o *options) { o.plugins = append(o.plugins, plugins...) }
}

// NewDatabase creates a new database connection with the given configuration
func NewDatabase(cfg *config.DatabaseConfig, opts ...Option) (*Database, error) {
	o := &options{logger: logger.Default.LogMode(logger.Silent)}
	for _, opt := range opts {
		opt(o)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 o.logger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, p := range o.plugins {
		if err := db.Use(p); err != nil {
			return nil, fmt.Errorf("failed to register gorm plugin %s: %w", p.Name(), err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// PingContext checks if the database connection is alive
func (d *Database) PingContext(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Transaction executes a function within a database transaction
func (d *Database) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.DB.WithContext(ctx).Transaction(fn)
}

// translateNotFound maps gorm's missing-row error onto the domain error
func translateNotFound(err error, resource string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(resource, fmt.Sprint(id))
	}
	return err
}

// isDuplicate reports a unique constraint violation. Requires TranslateError.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
