package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory database with the full schema.
// A single connection keeps every query on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}
