// Package slideplan holds the prompts and output schema for LLM slide
// planning.
package slideplan

import (
	_ "embed"

	"github.com/jackzampolin/paperdeck/internal/prompts"
)

//go:embed system.tmpl
var systemPrompt string

//go:embed user.tmpl
var userPrompt string

// Hierarchical keys for the slide planning prompts.
const (
	SystemPromptKey = "generation.slideplan.system"
	UserPromptKey   = "generation.slideplan.user"
)

// SystemPrompt returns the embedded system prompt template.
func SystemPrompt() string {
	return systemPrompt
}

// UserPrompt returns the embedded user prompt template.
func UserPrompt() string {
	return userPrompt
}

// RegisterPrompts registers the slide planning prompts with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         SystemPromptKey,
		Text:        systemPrompt,
		Description: "Slide planning system prompt - sets deck structure and bullet style rules",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         UserPromptKey,
		Text:        userPrompt,
		Description: "Slide planning user prompt - carries the paper title, authors, abstract and sections",
	})
}

// SystemVars is the data for the system prompt template.
type SystemVars struct {
	TargetSlides int
	DetailLevel  string
}

// UserVars is the data for the user prompt template.
type UserVars struct {
	Title    string
	Authors  string
	Abstract string
	Sections string
}
