package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	text, err := LoadFile(filepath.Join(t.TempDir(), "new.json"))
	if err != nil || text != "" {
		t.Errorf("LoadFile = %q, %v", text, err)
	}
}

func TestSaveFileKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.json")
	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := SaveFile(path, "{}\n"); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	text, err := LoadFile(path)
	if err != nil || text != "{}\n" {
		t.Fatalf("LoadFile = %q, %v", text, err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", fi.Mode().Perm())
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestSaveFileNeedsPath(t *testing.T) {
	if err := SaveFile("", "{}"); err == nil {
		t.Error("expected an error for an empty path")
	}
}
