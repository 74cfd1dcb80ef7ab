package migration

import (
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func testMigrations(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testMigrations(map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	}))

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := setVersion(db, 5); err != nil {
		t.Fatalf("setVersion failed: %v", err)
	}

	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testMigrations(map[string]string{
		"002_second.sql": "CREATE TABLE b (id INTEGER);",
		"001_first.sql":  "CREATE TABLE a (id INTEGER);",
		"README.md":      "not a migration",
	}))

	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}

	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "first" {
		t.Errorf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "second" {
		t.Errorf("unexpected second migration: %+v", migrations[1])
	}
}

func TestReadMigrationFiles_InvalidNames(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"no underscore", map[string]string{"001.sql": ""}, "invalid migration filename"},
		{"non-numeric version", map[string]string{"abc_init.sql": ""}, "invalid version number"},
		{"zero version", map[string]string{"000_init.sql": ""}, "must be at least 1"},
		{"duplicate version", map[string]string{"001_a.sql": "", "01_b.sql": ""}, "duplicate migration version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(setupTestDB(t), testMigrations(tt.files))
			_, err := runner.ReadMigrationFiles()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestApplyMigrations(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testMigrations(map[string]string{
		"001_create.sql": "CREATE TABLE history (id TEXT PRIMARY KEY);",
		"002_column.sql": "ALTER TABLE history ADD COLUMN date TEXT;",
	}))

	var messages []string
	applied, err := runner.ApplyMigrations(func(msg string) {
		messages = append(messages, msg)
	})
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 migrations applied, got %d", applied)
	}
	if len(messages) == 0 {
		t.Error("expected progress messages")
	}

	version, _ := runner.GetCurrentVersion()
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	if _, err := db.Exec("INSERT INTO history (id, date) VALUES ('a', '2026-01-01')"); err != nil {
		t.Errorf("migrated schema is unusable: %v", err)
	}

	// Second run is a no-op
	applied, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 migrations on second run, got %d", applied)
	}
}

func TestApplyMigrations_FailureRollsBack(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testMigrations(map[string]string{
		"001_create.sql": "CREATE TABLE history (id TEXT PRIMARY KEY);",
		"002_broken.sql": "THIS IS NOT SQL;",
	}))

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("expected 1 migration applied before failure, got %d", applied)
	}

	version, _ := runner.GetCurrentVersion()
	if version != 1 {
		t.Errorf("expected version to stay at 1, got %d", version)
	}
}

func TestValidateVersion_NewerDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testMigrations(map[string]string{
		"001_create.sql": "CREATE TABLE history (id TEXT PRIMARY KEY);",
	}))

	if err := runner.EnsureSchemaVersionTable(); err != nil {
		t.Fatalf("EnsureSchemaVersionTable failed: %v", err)
	}
	if err := setVersion(db, 3); err != nil {
		t.Fatalf("setVersion failed: %v", err)
	}

	if err := runner.ValidateVersion(); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("ValidateVersion() = %v, want ErrSchemaTooNew", err)
	}
	if _, err := runner.ApplyMigrations(nil); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("ApplyMigrations() = %v, want ErrSchemaTooNew", err)
	}
}
