package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParentCandidatesStopsAtRoot(t *testing.T) {
	got := parentCandidates(string(filepath.Separator), 5)
	if len(got) != 1 {
		t.Fatalf("expected a single candidate at the filesystem root, got %v", got)
	}
}

func TestFindMigrationsDirWalksUp(t *testing.T) {
	root := t.TempDir()
	migrations := filepath.Join(root, "migrations")
	nested := filepath.Join(root, "cmd", "migrate")
	for _, dir := range []string{migrations, nested} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
	}

	previous, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(previous) })

	got, err := findMigrationsDir()
	if err != nil {
		t.Fatalf("findMigrationsDir: %v", err)
	}
	resolved, _ := filepath.EvalSymlinks(got)
	want, _ := filepath.EvalSymlinks(migrations)
	if resolved != want {
		t.Fatalf("expected %q, got %q", want, resolved)
	}
}

func TestNewMigratorRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DB_URL", "")
	if _, err := newMigrator(t.TempDir()); err == nil {
		t.Fatalf("expected error without DB_URL")
	}
}
