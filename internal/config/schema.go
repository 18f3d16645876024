package config

import "github.com/jackzampolin/paperdeck/internal/extraction"

// Config holds paperdeck configuration.
// Stored at: ~/.paperdeck/config.yaml
type Config struct {
	LLMProviders map[string]LLMProviderCfg `mapstructure:"llm_providers" yaml:"llm_providers"`
	Defaults     DefaultsCfg               `mapstructure:"defaults" yaml:"defaults"`
	Extraction   extraction.Config         `mapstructure:"text_extraction" yaml:"text_extraction"`
	Generation   GenerationCfg             `mapstructure:"generation" yaml:"generation"`
}

// LLMProviderCfg configures an LLM provider.
type LLMProviderCfg struct {
	Type      string  `mapstructure:"type" yaml:"type"`             // "openai", "ollama"
	Model     string  `mapstructure:"model" yaml:"model"`           // Model name
	APIKey    string  `mapstructure:"api_key" yaml:"api_key"`       // API key (supports ${ENV_VAR} syntax)
	BaseURL   string  `mapstructure:"base_url" yaml:"base_url"`     // Optional endpoint override
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"` // Requests per minute
	Enabled   bool    `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultsCfg specifies default selections for generation runs.
type DefaultsCfg struct {
	LLMProvider string `mapstructure:"llm_provider" yaml:"llm_provider"` // Default LLM provider
	Theme       string `mapstructure:"theme" yaml:"theme"`               // Default beamer theme
	Prompt      string `mapstructure:"prompt" yaml:"prompt"`             // Default prompt template name
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`     // Default output directory
	MaxWorkers  int    `mapstructure:"max_workers" yaml:"max_workers"`   // Max concurrent papers in batch mode
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`       // "debug", "info", "warn", "error"
}

// GenerationCfg configures slide organization and LLM planning.
type GenerationCfg struct {
	MaxElementsPerSlide   int     `mapstructure:"max_elements_per_slide" yaml:"max_elements_per_slide"`
	CreateTitleSlide      bool    `mapstructure:"create_title_slide" yaml:"create_title_slide"`
	CreateOutlineSlide    bool    `mapstructure:"create_outline_slide" yaml:"create_outline_slide"`
	LargeElementThreshold int     `mapstructure:"large_element_threshold" yaml:"large_element_threshold"`
	MaxTokens             int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature           float64 `mapstructure:"temperature" yaml:"temperature"`
	TargetSlides          int     `mapstructure:"target_slides" yaml:"target_slides"`
	DetailLevel           string  `mapstructure:"detail_level" yaml:"detail_level"` // "low", "medium", "high"
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLMProviders: map[string]LLMProviderCfg{
			"openai": {
				Type:      "openai",
				Model:     "gpt-4o-mini",
				APIKey:    "${OPENAI_API_KEY}",
				RateLimit: 300,
				Enabled:   true,
			},
			"ollama": {
				Type:      "ollama",
				Model:     "llama3.2",
				BaseURL:   "http://localhost:11434",
				RateLimit: 600,
				Enabled:   true,
			},
		},
		Defaults: DefaultsCfg{
			LLMProvider: "ollama",
			Theme:       "Madrid",
			Prompt:      "default",
			OutputDir:   "./paperdeck_output",
			MaxWorkers:  4,
			LogLevel:    "info",
		},
		Extraction: extraction.DefaultConfig(),
		Generation: GenerationCfg{
			MaxElementsPerSlide:   2,
			CreateTitleSlide:      true,
			CreateOutlineSlide:    true,
			LargeElementThreshold: 200,
			MaxTokens:             4096,
			Temperature:           0.7,
			TargetSlides:          12,
			DetailLevel:           "medium",
		},
	}
}

// GetLLMProvider returns an LLM provider config by name.
func (c *Config) GetLLMProvider(name string) (LLMProviderCfg, bool) {
	cfg, ok := c.LLMProviders[name]
	return cfg, ok
}

// EnabledLLMProviders returns all enabled LLM providers.
func (c *Config) EnabledLLMProviders() map[string]LLMProviderCfg {
	result := make(map[string]LLMProviderCfg)
	for name, cfg := range c.LLMProviders {
		if cfg.Enabled {
			result[name] = cfg
		}
	}
	return result
}
