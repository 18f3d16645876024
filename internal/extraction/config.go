package extraction

import "fmt"

// Truncation strategies for fitting extracted text into an LLM context window.
const (
	TruncateEnd              = "end"
	TruncateMiddle           = "middle"
	TruncatePrioritySections = "priority_sections"
)

// Config controls text extraction and sanitization behavior.
// Values are validated with Validate; the zero value is not useful,
// start from DefaultConfig.
type Config struct {
	// Feature toggle
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Extraction parameters
	HeaderMargin    int  `mapstructure:"header_margin" yaml:"header_margin"`       // pixels excluded from page top
	FooterMargin    int  `mapstructure:"footer_margin" yaml:"footer_margin"`       // pixels excluded from page bottom
	RemoveImageText bool `mapstructure:"remove_image_text" yaml:"remove_image_text"`

	// Sanitization
	RemovePageNumbers    bool `mapstructure:"remove_page_numbers" yaml:"remove_page_numbers"`
	RemoveHeadersFooters bool `mapstructure:"remove_headers_footers" yaml:"remove_headers_footers"`
	MinLineLength        int  `mapstructure:"min_line_length" yaml:"min_line_length"`

	// Context management
	ReserveOutputFraction float64 `mapstructure:"reserve_output_fraction" yaml:"reserve_output_fraction"`
	TruncationStrategy    string  `mapstructure:"truncation_strategy" yaml:"truncation_strategy"`

	// Performance
	TimeoutSeconds float64 `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns extraction configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:               true,
		HeaderMargin:          50,
		FooterMargin:          50,
		RemoveImageText:       true,
		RemovePageNumbers:     true,
		RemoveHeadersFooters:  true,
		MinLineLength:         3,
		ReserveOutputFraction: 0.25,
		TruncationStrategy:    TruncateEnd,
		TimeoutSeconds:        30.0,
	}
}

// AvailableInputFraction is the fraction of a context window left for input
// after reserving room for model output.
func (c Config) AvailableInputFraction() float64 {
	return 1.0 - c.ReserveOutputFraction
}

// Validate returns human-readable problems with the configuration.
// An empty slice means the config is valid; callers decide whether to
// proceed with an invalid one.
func (c Config) Validate() []string {
	var errs []string

	if c.HeaderMargin < 0 || c.FooterMargin < 0 {
		errs = append(errs, "margins must be non-negative")
	}
	if c.ReserveOutputFraction <= 0 || c.ReserveOutputFraction >= 1 {
		errs = append(errs, "reserve fraction must be between 0 and 1")
	}
	switch c.TruncationStrategy {
	case TruncateEnd, TruncateMiddle, TruncatePrioritySections:
	default:
		errs = append(errs, fmt.Sprintf("invalid truncation strategy: %s", c.TruncationStrategy))
	}
	if c.TimeoutSeconds <= 0 {
		errs = append(errs, "timeout must be positive")
	}
	if c.MinLineLength < 0 {
		errs = append(errs, "min_line_length must be non-negative")
	}

	return errs
}
