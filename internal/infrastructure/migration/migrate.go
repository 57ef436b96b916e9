package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator applies the SQL scripts of a migrations directory to PostgreSQL
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// New creates a Migrator over an open database
func New(db *sql.DB, dir string, logger *zap.Logger) (*Migrator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("load migrations from %s: %w", dir, err)
	}
	return &Migrator{migrate: m, logger: logger}, nil
}

// Up applies every pending migration
func (m *Migrator) Up() error {
	if err := m.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("schema is up to date")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}
	return m.logVersion("migrations applied")
}

// Down rolls back the last n migrations
func (m *Migrator) Down(n int) error {
	if n <= 0 {
		return fmt.Errorf("migrate down: step count must be positive, got %d", n)
	}
	return m.Steps(-n)
}

// Steps applies n migrations, rolling back when n is negative
func (m *Migrator) Steps(n int) error {
	if err := m.migrate.Steps(n); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("no migration to run", zap.Int("steps", n))
			return nil
		}
		return fmt.Errorf("migrate %d steps: %w", n, err)
	}
	return m.logVersion("migration steps applied")
}

// GoTo migrates up or down to version
func (m *Migrator) GoTo(version uint) error {
	if err := m.migrate.Migrate(version); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("already at version", zap.Uint("version", version))
			return nil
		}
		return fmt.Errorf("migrate to %d: %w", version, err)
	}
	return m.logVersion("migrated to version")
}

// Version returns the applied version; zero means none
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return version, dirty, nil
}

// Force records version as applied without running it. It clears the dirty
// flag left by a failed migration once the schema has been repaired by hand.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("forcing migration version", zap.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Close releases the source and database handles
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	return errors.Join(sourceErr, dbErr)
}

func (m *Migrator) logVersion(msg string) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
