package providers

import (
	"fmt"
	"time"
)

// LLMProviderConfig describes one configured LLM provider.
type LLMProviderConfig struct {
	Type      string  // "openai", "ollama", "mock"
	Model     string  // Model name
	APIKey    string  // Resolved API key (env references already expanded)
	BaseURL   string  // Optional endpoint override
	RateLimit float64 // Requests per minute
	Enabled   bool
}

// BuildClient instantiates an LLM client from its configuration.
func BuildClient(cfg LLMProviderConfig) (LLMClient, error) {
	switch cfg.Type {
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			RPM:     int(cfg.RateLimit),
		}), nil
	case "ollama":
		return NewOllamaClient(OllamaConfig{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			RPM:     int(cfg.RateLimit),
		}), nil
	case "mock":
		c := NewMockClient()
		c.Latency = 10 * time.Millisecond
		return c, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.Type)
	}
}

// Configure reconciles the registry with a provider configuration map,
// registering enabled providers and dropping ones that were disabled or
// removed. Used both at startup and on config hot-reload.
func (r *Registry) Configure(cfgs map[string]LLMProviderConfig) error {
	for _, name := range r.List() {
		if cfg, ok := cfgs[name]; !ok || !cfg.Enabled {
			r.Unregister(name)
		}
	}

	for name, cfg := range cfgs {
		if !cfg.Enabled {
			continue
		}
		client, err := BuildClient(cfg)
		if err != nil {
			return fmt.Errorf("provider %s: %w", name, err)
		}
		r.Register(name, client)
	}
	return nil
}
