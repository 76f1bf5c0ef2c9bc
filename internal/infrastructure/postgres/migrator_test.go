package postgres

import (
	"context"
	"testing"
)

func TestRunMigrationsMissingSource(t *testing.T) {
	dir := t.TempDir() + "/absent"

	if err := RunMigrations(context.Background(), "postgres://localhost:1/db?sslmode=disable", dir); err == nil {
		t.Fatalf("expected error for missing migrations directory")
	}
	if err := RunMigrationsDown(context.Background(), "postgres://localhost:1/db?sslmode=disable", dir); err == nil {
		t.Fatalf("expected error for missing migrations directory")
	}
	if _, err := CurrentMigration("postgres://localhost:1/db?sslmode=disable", dir); err == nil {
		t.Fatalf("expected error for missing migrations directory")
	}
}
