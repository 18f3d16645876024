package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("with explicit path", func(t *testing.T) {
		dir, err := New("/tmp/test-paperdeck")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.Path() != "/tmp/test-paperdeck" {
			t.Errorf("expected path /tmp/test-paperdeck, got %s", dir.Path())
		}
	})

	t.Run("with empty path uses default", func(t *testing.T) {
		dir, err := New("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, DefaultDirName)
		if dir.Path() != expected {
			t.Errorf("expected path %s, got %s", expected, dir.Path())
		}
	})
}

func TestDir_Paths(t *testing.T) {
	dir, _ := New("/tmp/test-paperdeck")

	if got := dir.OutputsPath(); got != "/tmp/test-paperdeck/outputs" {
		t.Errorf("OutputsPath() = %s", got)
	}
	if got := dir.PromptsPath(); got != "/tmp/test-paperdeck/prompts" {
		t.Errorf("PromptsPath() = %s", got)
	}
	if got := dir.ConfigPath(); got != "/tmp/test-paperdeck/config.yaml" {
		t.Errorf("ConfigPath() = %s", got)
	}
	if got := dir.DeckPath("attention"); got != "/tmp/test-paperdeck/outputs/attention.tex" {
		t.Errorf("DeckPath() = %s", got)
	}
}

func TestDir_EnsureExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "pd-home")
	dir, _ := New(root)

	if dir.Exists() {
		t.Fatal("directory should not exist yet")
	}
	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}
	if !dir.Exists() {
		t.Fatal("directory should exist")
	}

	for _, sub := range []string{dir.OutputsPath(), dir.PromptsPath()} {
		if _, err := os.Stat(sub); err != nil {
			t.Errorf("expected %s to exist: %v", sub, err)
		}
	}

	if dir.ConfigExists() {
		t.Fatal("config should not exist yet")
	}
}
