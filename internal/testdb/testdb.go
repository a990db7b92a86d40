// Package testdb opens throwaway SQLite databases for package tests.
package testdb

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/veioenza/seqr/internal/models"
	"github.com/veioenza/seqr/pkg/database"
)

// Driver is the migration driver name matching Open.
const Driver = "sqlite"

// Open returns an empty file-backed database removed with the test's temp
// dir. A file is used instead of :memory: so every pooled connection sees
// the same data.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seqr.db")
	db, err := database.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)"), zap.NewNop(), false)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

// Migrated returns a database with the full schema in place.
func Migrated(t *testing.T) *gorm.DB {
	t.Helper()

	db := Open(t)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}
