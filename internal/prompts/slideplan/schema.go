package slideplan

import "encoding/json"

// PlanSchema is the JSON schema for the slide plan output.
var PlanSchema = map[string]any{
	"name":   "slide_plan",
	"strict": true,
	"schema": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Presentation title, usually the paper title",
			},
			"slides": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Slide title",
						},
						"section": map[string]any{
							"type":        "string",
							"description": "Paper section this slide covers",
						},
						"bullets": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Bullet points, plain text without LaTeX markup",
						},
					},
					"required":             []string{"title", "bullets"},
					"additionalProperties": false,
				},
				"description": "Content slides in presentation order",
			},
		},
		"required":             []string{"title", "slides"},
		"additionalProperties": false,
	},
}

// PlanSchemaJSON returns the schema serialized for a ResponseFormat.
func PlanSchemaJSON() json.RawMessage {
	b, _ := json.Marshal(PlanSchema)
	return b
}

// PlanSlide is a single planned content slide.
type PlanSlide struct {
	Title   string   `json:"title"`
	Section string   `json:"section,omitempty"`
	Bullets []string `json:"bullets"`
}

// Plan is the parsed result of a slide planning LLM call.
type Plan struct {
	Title  string      `json:"title"`
	Slides []PlanSlide `json:"slides"`
}
