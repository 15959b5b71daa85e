package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("repeated migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	if err := repo.CreateTodo(t.Context(), Todo{
		ID:        "todo-rt-1",
		Title:     "Roundtrip todo",
		Priority:  "medium",
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := repo.GetTodo(t.Context(), "todo-rt-1")
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.Title != "Roundtrip todo" {
		t.Fatalf("unexpected title after roundtrip: %q", got.Title)
	}
}

func TestOpenSQLiteCreatesDirectoryAndMigrates(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "mindflow.db")
	repo, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer repo.Close()

	if repo.Path() != dbPath {
		t.Fatalf("unexpected path: %q", repo.Path())
	}
	stats, err := repo.TodoStats(t.Context())
	if err != nil {
		t.Fatalf("stats on fresh db: %v", err)
	}
	if stats != (TodoStats{}) {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}
