package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ndewijer/Budget-Projection-Backend/internal/database"
)

// TestMigrate tests applying the embedded migrations.
//
// WHY: The server migrates on startup. Running it twice must be a no-op and the
// recorded version must match the latest migration.
func TestMigrate(t *testing.T) {
	t.Run("applies all migrations once", func(t *testing.T) {
		// Setup
		db, err := database.Open(filepath.Join(t.TempDir(), "budget.db"))
		if err != nil {
			t.Fatalf("Open() returned unexpected error: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		ctx := context.Background()

		// Execute
		first, err := database.Migrate(ctx, db)
		if err != nil {
			t.Fatalf("Migrate() returned unexpected error: %v", err)
		}
		second, err := database.Migrate(ctx, db)
		if err != nil {
			t.Fatalf("second Migrate() returned unexpected error: %v", err)
		}

		// Assert
		if first != 2 {
			t.Errorf("Expected 2 migrations applied, got %d", first)
		}
		if second != 0 {
			t.Errorf("Expected 0 migrations on second run, got %d", second)
		}

		version, err := database.Version(ctx, db)
		if err != nil {
			t.Fatalf("Version() returned unexpected error: %v", err)
		}
		if version != 2 {
			t.Errorf("Expected version 2, got %d", version)
		}
	})

	t.Run("enables foreign keys", func(t *testing.T) {
		// Setup
		db, err := database.Open(filepath.Join(t.TempDir(), "budget.db"))
		if err != nil {
			t.Fatalf("Open() returned unexpected error: %v", err)
		}
		t.Cleanup(func() { db.Close() })

		// Execute
		var enabled int
		err = db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)

		// Assert
		if err != nil {
			t.Fatalf("Failed to read pragma: %v", err)
		}
		if enabled != 1 {
			t.Errorf("Expected foreign keys enabled, got %d", enabled)
		}
	})
}

// TestHealthCheck tests the database health check.
//
// WHY: The health endpoint relies on it to report connectivity.
func TestHealthCheck(t *testing.T) {
	t.Run("fails on closed database", func(t *testing.T) {
		// Setup
		db, err := database.Open(filepath.Join(t.TempDir(), "budget.db"))
		if err != nil {
			t.Fatalf("Open() returned unexpected error: %v", err)
		}
		if err := database.HealthCheck(db); err != nil {
			t.Errorf("Expected healthy database, got %v", err)
		}

		// Execute
		db.Close()

		// Assert
		if err := database.HealthCheck(db); err == nil {
			t.Error("Expected error for closed database, got nil")
		}
	})
}
