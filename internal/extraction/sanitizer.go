package extraction

import (
	"regexp"
	"strings"
)

// Sanitizer removes common PDF artifacts from extracted text:
// standalone page numbers, DOI and arXiv identifiers, "Page X of Y"
// markers, repeated headers/footers, and short noise lines.
//
// Sanitize is a pure function over its inputs; a single Sanitizer is
// safe for concurrent use.
type Sanitizer struct {
	doiPattern        *regexp.Regexp
	arxivPattern      *regexp.Regexp
	pageXOfYPattern   *regexp.Regexp
	standaloneNumber  *regexp.Regexp
	spaceRuns         *regexp.Regexp
	excessiveNewlines *regexp.Regexp
}

// NewSanitizer creates a sanitizer with its patterns compiled once.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		doiPattern:        regexp.MustCompile(`(?i)^DOI:\s*[\d./\w-]+\s*$`),
		arxivPattern:      regexp.MustCompile(`(?i)^arXiv:\s*[\d.]+v?\d*\s*$`),
		pageXOfYPattern:   regexp.MustCompile(`(?i)^Page\s+\d+\s+of\s+\d+\s*$`),
		standaloneNumber:  regexp.MustCompile(`^\d+$`),
		spaceRuns:         regexp.MustCompile(`[ \t]+`),
		excessiveNewlines: regexp.MustCompile(`\n{3,}`),
	}
}

// Sanitize cleans raw extracted text according to cfg. It never fails;
// empty input yields empty output.
func (s *Sanitizer) Sanitize(text string, cfg Config) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")

	if cfg.RemoveHeadersFooters {
		lines = s.removeIdentifierLines(lines)
	}

	if cfg.RemovePageNumbers {
		// Order matters: page numbers are dropped before the short-line
		// filter so a bare "7" never survives as a short line.
		lines = s.removeStandalonePageNumbers(lines)
		lines = s.removeShortLines(lines, cfg.MinLineLength)
	} else {
		lines = s.removeShortLinesPreserveNumbers(lines, cfg.MinLineLength)
	}

	if cfg.RemoveHeadersFooters {
		lines = s.removeRepeatedLines(lines)
	}

	return s.normalizeWhitespace(strings.Join(lines, "\n"))
}

// removeIdentifierLines drops whole-line DOI, arXiv, and "Page X of Y"
// artifacts.
func (s *Sanitizer) removeIdentifierLines(lines []string) []string {
	result := lines[:0:0]
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if s.doiPattern.MatchString(stripped) ||
			s.arxivPattern.MatchString(stripped) ||
			s.pageXOfYPattern.MatchString(stripped) {
			continue
		}
		result = append(result, line)
	}
	return result
}

// removeStandalonePageNumbers drops lines that are purely digits.
// Numbers embedded in content are untouched.
func (s *Sanitizer) removeStandalonePageNumbers(lines []string) []string {
	result := lines[:0:0]
	for _, line := range lines {
		if s.standaloneNumber.MatchString(strings.TrimSpace(line)) {
			continue
		}
		result = append(result, line)
	}
	return result
}

// removeShortLines drops lines shorter than minLength after stripping.
// Blank lines are kept to preserve paragraph structure.
func (s *Sanitizer) removeShortLines(lines []string, minLength int) []string {
	result := lines[:0:0]
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if len(stripped) >= minLength || len(stripped) == 0 {
			result = append(result, line)
		}
	}
	return result
}

// removeShortLinesPreserveNumbers drops short lines but keeps blank
// lines and standalone numbers. Used when page numbers are preserved.
func (s *Sanitizer) removeShortLinesPreserveNumbers(lines []string, minLength int) []string {
	result := lines[:0:0]
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if len(stripped) == 0 || s.standaloneNumber.MatchString(stripped) || len(stripped) >= minLength {
			result = append(result, line)
		}
	}
	return result
}

// removeRepeatedLines treats any stripped line occurring 2+ times as a
// running header/footer and keeps only its first occurrence.
func (s *Sanitizer) removeRepeatedLines(lines []string) []string {
	counts := make(map[string]int)
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped != "" {
			counts[stripped]++
		}
	}

	seen := make(map[string]bool)
	result := lines[:0:0]
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			// Blank lines carry paragraph structure.
			result = append(result, line)
			continue
		}
		if counts[stripped] >= 2 {
			if seen[stripped] {
				continue
			}
			seen[stripped] = true
		}
		result = append(result, line)
	}
	return result
}

// normalizeWhitespace collapses space runs to a single space and 3+
// newlines to a paragraph break, then strips every line and the result.
func (s *Sanitizer) normalizeWhitespace(text string) string {
	text = s.spaceRuns.ReplaceAllString(text, " ")
	text = s.excessiveNewlines.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
