package prompts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolver_EmbeddedDefault(t *testing.T) {
	r := NewResolver("", nil)
	r.Register(EmbeddedPrompt{
		Key:  "generation.test.system",
		Text: "Plan slides for {{.Title}}",
	})

	resolved, err := r.Resolve("generation.test.system")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.IsOverride {
		t.Fatal("expected embedded default, not override")
	}
	if resolved.Text != "Plan slides for {{.Title}}" {
		t.Fatalf("unexpected text: %q", resolved.Text)
	}
	if len(resolved.Variables) != 1 || resolved.Variables[0] != "Title" {
		t.Fatalf("unexpected variables: %v", resolved.Variables)
	}
}

func TestResolver_OverrideWins(t *testing.T) {
	dir := t.TempDir()
	key := "generation.test.system"
	override := "Override: {{.Title}} by {{.Authors}}"
	if err := os.WriteFile(filepath.Join(dir, key+".tmpl"), []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	r := NewResolver(dir, nil)
	r.Register(EmbeddedPrompt{Key: key, Text: "default"})

	resolved, err := r.Resolve(key)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !resolved.IsOverride {
		t.Fatal("expected override to win")
	}
	if resolved.Text != override {
		t.Fatalf("unexpected text: %q", resolved.Text)
	}
}

func TestResolver_UnknownKey(t *testing.T) {
	r := NewResolver("", nil)

	if _, err := r.Resolve("generation.missing"); err == nil {
		t.Fatal("expected error for unregistered key")
	}
	if _, err := r.Resolve("../escape"); err == nil {
		t.Fatal("expected error for invalid key")
	}
}

func TestResolver_RenderPrompt(t *testing.T) {
	r := NewResolver("", nil)
	r.Register(EmbeddedPrompt{Key: "generation.test.user", Text: "Title: {{.Title}}"})

	out, err := r.RenderPrompt("generation.test.user", map[string]string{"Title": "Deep Learning"})
	if err != nil {
		t.Fatalf("RenderPrompt() error = %v", err)
	}
	if out != "Title: Deep Learning" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestResolver_RegisterFillsHashAndVariables(t *testing.T) {
	r := NewResolver("", nil)
	r.Register(EmbeddedPrompt{Key: "generation.test.system", Text: "{{.A}} {{.B}}"})

	p, ok := r.GetEmbedded("generation.test.system")
	if !ok {
		t.Fatal("expected embedded prompt")
	}
	if p.Hash == "" {
		t.Fatal("expected hash to be computed")
	}
	if len(p.Variables) != 2 {
		t.Fatalf("unexpected variables: %v", p.Variables)
	}
	if len(r.AllEmbedded()) != 1 {
		t.Fatalf("AllEmbedded() = %d entries, want 1", len(r.AllEmbedded()))
	}
}
