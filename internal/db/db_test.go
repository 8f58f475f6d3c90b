package db

import (
	"path/filepath"
	"testing"
	"time"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	var count int
	if err := d.QueryRow("SELECT COUNT(*) FROM conversations").Scan(&count); err != nil {
		t.Errorf("conversations table: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty table, got %d rows", count)
	}
}

func TestOpenCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "triage.db")

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()

	if d.Path() != path {
		t.Errorf("Path() = %q, want %q", d.Path(), path)
	}

	_, err = d.Exec(
		"INSERT INTO conversations (id, session_id, sender, message, triage_status, timestamp) VALUES (?, ?, ?, ?, ?, ?)",
		"t-1", "s-1", "user", "hello", "INTAKE", time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
}

func TestSenderCheckConstraint(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	_, err = d.Exec(
		"INSERT INTO conversations (id, session_id, sender, message, triage_status, timestamp) VALUES (?, ?, ?, ?, ?, ?)",
		"t-1", "s-1", "doctor", "hello", "INTAKE", time.Now().UTC(),
	)
	if err == nil {
		t.Error("expected CHECK violation for unknown sender")
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}
