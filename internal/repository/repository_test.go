package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/iliyamo/movie-list/internal/config"
	"github.com/iliyamo/movie-list/internal/database"
)

// setupTestDB opens a fresh in-memory SQLite database with the schema loaded.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.EnsureSchema(context.Background(), db, config.DriverSQLite); err != nil {
		db.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}
