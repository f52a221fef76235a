// internal/db/test_helpers.go
package db

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	"inventory-dashboard/internal/models"
)

// OpenTestDB points DB at TEST_DATABASE_DSN and applies migrations.
// Tests are skipped when the variable is not set.
func OpenTestDB(t *testing.T) {
	t.Helper()
	raw := os.Getenv("TEST_DATABASE_DSN")
	if raw == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping database test")
	}

	dsn, err := BuildDSNFromPath(raw)
	if err != nil {
		t.Fatalf("Failed to build test DSN: %v", err)
	}
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		t.Fatalf("Failed to ping test database: %v", err)
	}
	if err := RunMigrations(conn, databaseName(dsn)); err != nil {
		_ = conn.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	prev := DB
	DB = conn
	t.Cleanup(func() {
		DB = prev
		_ = conn.Close()
	})
}

func ClearTestDBTables(t *testing.T, tableNames ...string) {
	if DB == nil {
		t.Skip("DB not initialized, skipping table clear")
		return
	}
	for _, table := range tableNames {
		// DELETE keeps foreign keys happy where TRUNCATE would not.
		if _, err := DB.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Fatalf("Failed to clear table %s: %v", table, err)
		}
	}
}

func SeedDefaultRolesForTest(t *testing.T) {
	if DB == nil {
		t.Skip("DB not initialized, skipping role seeding")
		return
	}
	rolesToSeed := []models.Role{
		{Name: models.RoleUser, Description: "Default user role"},
		{Name: models.RoleAdmin, Description: "Administrator role"},
	}
	for _, role := range rolesToSeed {
		if _, err := CreateRoleIfNotExists(&role); err != nil {
			t.Fatalf("Failed to seed role %s: %v", role.Name, err)
		}
	}
}
