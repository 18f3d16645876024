package prompts

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// validKeyPattern matches valid prompt keys (alphanumeric with dots, underscores).
var validKeyPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9._]*$`)

// Resolver resolves prompts with user-level overrides.
// Resolution order: override directory > embedded default.
type Resolver struct {
	overrideDir string
	embedded    map[string]EmbeddedPrompt
	mu          sync.RWMutex
	logger      *slog.Logger
}

// NewResolver creates a new prompt resolver. overrideDir may be empty to
// disable overrides.
func NewResolver(overrideDir string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		overrideDir: overrideDir,
		embedded:    make(map[string]EmbeddedPrompt),
		logger:      logger,
	}
}

// Register registers an embedded prompt.
// This should be called during initialization by each prompt package.
func (r *Resolver) Register(prompt EmbeddedPrompt) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prompt.Hash == "" {
		prompt.Hash = HashText(prompt.Text)
	}
	if prompt.Variables == nil {
		prompt.Variables = ExtractVariables(prompt.Text)
	}

	r.embedded[prompt.Key] = prompt
	r.logger.Debug("registered embedded prompt", "key", prompt.Key, "vars", prompt.Variables)
}

// Resolve resolves a prompt key. Returns the user override if one exists on
// disk, otherwise the embedded default.
func (r *Resolver) Resolve(key string) (*ResolvedPrompt, error) {
	if !validKeyPattern.MatchString(key) {
		return nil, fmt.Errorf("invalid prompt key: %s", key)
	}

	if r.overrideDir != "" {
		path := filepath.Join(r.overrideDir, key+".tmpl")
		if data, err := os.ReadFile(path); err == nil {
			return &ResolvedPrompt{
				Key:        key,
				Text:       string(data),
				Variables:  ExtractVariables(string(data)),
				IsOverride: true,
			}, nil
		} else if !os.IsNotExist(err) {
			r.logger.Warn("failed to read prompt override", "key", key, "error", err)
			// Fall through to embedded default
		}
	}

	r.mu.RLock()
	embedded, ok := r.embedded[key]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("prompt not found: %s", key)
	}

	return &ResolvedPrompt{
		Key:       key,
		Text:      embedded.Text,
		Variables: embedded.Variables,
	}, nil
}

// RenderPrompt resolves a key and renders it against the given data.
func (r *Resolver) RenderPrompt(key string, data any) (string, error) {
	resolved, err := r.Resolve(key)
	if err != nil {
		return "", err
	}
	return Render(key, resolved.Text, data)
}

// GetEmbedded returns the embedded default for a key (no override resolution).
func (r *Resolver) GetEmbedded(key string) (*EmbeddedPrompt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.embedded[key]
	return &p, ok
}

// AllEmbedded returns all registered embedded prompts.
func (r *Resolver) AllEmbedded() []EmbeddedPrompt {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]EmbeddedPrompt, 0, len(r.embedded))
	for _, p := range r.embedded {
		result = append(result, p)
	}
	return result
}
