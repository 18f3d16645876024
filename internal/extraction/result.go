package extraction

import "time"

// Status is the terminal state of one text extraction attempt.
type Status string

const (
	StatusSuccess      Status = "success"
	StatusPartial      Status = "partial"
	StatusFailed       Status = "failed"
	StatusNotAttempted Status = "not_attempted"
)

// Result holds the outcome of extracting text from a single PDF.
// It is constructed once per attempt and never mutated afterwards.
type Result struct {
	Status          Status
	TextContent     *string // sanitized full text; set only on success/partial
	RawTextLength   int     // characters before sanitization
	CleanTextLength int     // characters after sanitization
	PageCount       int
	ExtractionTime  time.Duration
	ErrorMessage    *string  // set only on failure
	Warnings        []string // non-fatal issues, in append order
}

// IsSuccessful reports whether the extraction produced usable text.
func (r *Result) IsSuccessful() bool {
	return r.Status == StatusSuccess || r.Status == StatusPartial
}

// SanitizationReductionPct returns the percentage of raw text removed by
// sanitization. Zero when no raw text was extracted.
func (r *Result) SanitizationReductionPct() float64 {
	if r.RawTextLength == 0 {
		return 0.0
	}
	reduction := r.RawTextLength - r.CleanTextLength
	return float64(reduction) / float64(r.RawTextLength) * 100
}

// Text returns the extracted text or "" when none is present.
func (r *Result) Text() string {
	if r.TextContent == nil {
		return ""
	}
	return *r.TextContent
}

// Error returns the error message or "" when none is present.
func (r *Result) Error() string {
	if r.ErrorMessage == nil {
		return ""
	}
	return *r.ErrorMessage
}

// ValidateResult checks a result for internal consistency and returns
// human-readable violations. An empty slice means the result is valid.
func ValidateResult(r *Result) []string {
	var errs []string

	if r.Status == StatusSuccess {
		if r.TextContent == nil || *r.TextContent == "" {
			errs = append(errs, "success status requires non-empty text content")
		}
		if r.ErrorMessage != nil {
			errs = append(errs, "success status should not have an error message")
		}
	}

	if r.Status == StatusFailed {
		if r.ErrorMessage == nil || *r.ErrorMessage == "" {
			errs = append(errs, "failed status requires an error message")
		}
		if r.TextContent != nil {
			errs = append(errs, "failed status should not have text content")
		}
	}

	if r.ExtractionTime < 0 {
		errs = append(errs, "extraction time must be non-negative")
	}
	if r.PageCount < 0 {
		errs = append(errs, "page count must be non-negative")
	}
	if r.CleanTextLength > r.RawTextLength {
		errs = append(errs, "clean text length cannot exceed raw text length")
	}

	return errs
}

func strPtr(s string) *string { return &s }
