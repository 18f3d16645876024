// Package prompts provides prompt management with embedded defaults and
// user-level overrides.
//
// Embedded .tmpl files in code are the source of truth for defaults. A user
// can override any prompt by dropping a <key>.tmpl file into the prompts
// directory under the application home.
//
// Resolution order for a key:
//  1. <home>/prompts/<key>.tmpl (user override, if present)
//  2. Embedded default (from .tmpl files in code)
package prompts

// EmbeddedPrompt represents a prompt loaded from an embedded .tmpl file.
type EmbeddedPrompt struct {
	Key         string   // Hierarchical key: generation.slideplan.system
	Text        string   // The prompt text (Go template)
	Description string   // Human-readable description
	Variables   []string // Extracted template variables
	Hash        string   // SHA256 hash of the text for change detection
}

// ResolvedPrompt is the result of resolving a prompt key.
type ResolvedPrompt struct {
	Key        string   `json:"key"`
	Text       string   `json:"text"`
	Variables  []string `json:"variables,omitempty"`
	IsOverride bool     `json:"is_override"` // true if loaded from the override directory
}
