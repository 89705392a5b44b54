// Package helpers provides shared test fixtures, grounded on the
// teacher's test/helpers package.
package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/arcfleet/spacetrader-agent/internal/adapters/persistence"
	"github.com/arcfleet/spacetrader-agent/internal/infrastructure/database"
)

// NewTestDB opens an in-memory sqlite database and migrates every table
// the persistence layer owns, closing it automatically at test end.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(persistence.AllModels()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close(db)
	})
	return db
}
