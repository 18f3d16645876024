package extraction

import (
	"strings"
	"testing"
)

func TestResult_SanitizationReductionPct(t *testing.T) {
	tests := []struct {
		name  string
		raw   int
		clean int
		want  float64
	}{
		{"twenty percent", 1000, 800, 20.0},
		{"no reduction", 500, 500, 0.0},
		{"full reduction", 100, 0, 100.0},
		{"zero raw avoids division", 0, 0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Result{RawTextLength: tt.raw, CleanTextLength: tt.clean}
			if got := r.SanitizationReductionPct(); got != tt.want {
				t.Errorf("SanitizationReductionPct() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestResult_IsSuccessful(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusSuccess, true},
		{StatusPartial, true},
		{StatusFailed, false},
		{StatusNotAttempted, false},
	}

	for _, tt := range tests {
		r := Result{Status: tt.status}
		if got := r.IsSuccessful(); got != tt.want {
			t.Errorf("IsSuccessful() with %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestValidateResult(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		problems int
	}{
		{
			name: "valid success",
			result: Result{
				Status:          StatusSuccess,
				TextContent:     strPtr("clean text"),
				RawTextLength:   100,
				CleanTextLength: 80,
				PageCount:       2,
			},
			problems: 0,
		},
		{
			name: "valid failure",
			result: Result{
				Status:       StatusFailed,
				ErrorMessage: strPtr("File not found: x.pdf"),
			},
			problems: 0,
		},
		{
			name:     "success without text",
			result:   Result{Status: StatusSuccess},
			problems: 1,
		},
		{
			name: "success with error message",
			result: Result{
				Status:       StatusSuccess,
				TextContent:  strPtr("text"),
				ErrorMessage: strPtr("should not be here"),
			},
			problems: 1,
		},
		{
			name: "failure with text and no message",
			result: Result{
				Status:      StatusFailed,
				TextContent: strPtr("should not be here"),
			},
			problems: 2,
		},
		{
			name: "clean longer than raw",
			result: Result{
				Status:          StatusSuccess,
				TextContent:     strPtr("text"),
				RawTextLength:   10,
				CleanTextLength: 20,
			},
			problems: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateResult(&tt.result)
			if len(errs) != tt.problems {
				t.Errorf("ValidateResult() = %v, want %d problems", errs, tt.problems)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	if errs := DefaultConfig().Validate(); len(errs) != 0 {
		t.Fatalf("default config should validate, got: %v", errs)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative margin", func(c *Config) { c.HeaderMargin = -1 }, "margins"},
		{"reserve fraction zero", func(c *Config) { c.ReserveOutputFraction = 0 }, "reserve fraction"},
		{"reserve fraction one", func(c *Config) { c.ReserveOutputFraction = 1 }, "reserve fraction"},
		{"bad truncation strategy", func(c *Config) { c.TruncationStrategy = "sideways" }, "truncation strategy"},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }, "timeout"},
		{"negative min line length", func(c *Config) { c.MinLineLength = -3 }, "min_line_length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			errs := cfg.Validate()
			if len(errs) == 0 {
				t.Fatalf("expected validation problems, got none")
			}
			found := false
			for _, e := range errs {
				if strings.Contains(strings.ToLower(e), tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() = %v, want a problem mentioning %q", errs, tt.want)
			}
		})
	}
}
