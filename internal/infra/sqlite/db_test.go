package sqlite

import (
	"path/filepath"
	"testing"
)

func TestNewDB_InMemory(t *testing.T) {
	t.Parallel()

	db, err := NewDB(":memory:")
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestNewDB_CreatesFileInExistingDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "edugen.db")
	db, err := NewDB(path)
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	defer db.Close()

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q; want wal", mode)
	}
}

func TestNewDB_MissingParentDir_ReturnsError(t *testing.T) {
	t.Parallel()

	if _, err := NewDB("/nonexistent-dir-for-test/edugen.db"); err == nil {
		t.Error("expected error for missing parent directory, got nil")
	}
}
