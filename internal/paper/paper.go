// Package paper holds the domain model for an input research paper and
// the content extracted from it.
package paper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackzampolin/paperdeck/internal/extraction"
)

// Paper is an input research paper and everything extracted from it.
type Paper struct {
	FilePath string
	Title    string
	Authors  []string
	Abstract string
	Sections []extraction.Section
	Metadata map[string]string

	// Text extraction outcome. Result is nil until an extraction has
	// been attempted.
	TextContent string
	Result      *extraction.Result

	// Visual elements (figures, tables, equations), when an element
	// extractor has run.
	Elements []Element
}

// New creates a Paper for the PDF at path, validating that the path
// points at a readable .pdf file.
func New(path string) (*Paper, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("paper file not found: %s", path)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("paper path is not a file: %s", path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("paper file must have .pdf extension: %s", path)
	}

	return &Paper{
		FilePath: path,
		Metadata: make(map[string]string),
	}, nil
}

// HasTextContent reports whether the paper carries successfully
// extracted text.
func (p *Paper) HasTextContent() bool {
	return p.TextContent != "" && p.Result != nil && p.Result.IsSuccessful()
}

// ExtractionStatus reports the current extraction state;
// StatusNotAttempted before any extraction has run.
func (p *Paper) ExtractionStatus() extraction.Status {
	if p.Result == nil {
		return extraction.StatusNotAttempted
	}
	return p.Result.Status
}

// DisplayTitle returns the extracted title or a filename-derived
// fallback.
func (p *Paper) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	base := filepath.Base(p.FilePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SectionTitles returns the ordered titles of all parsed sections.
func (p *Paper) SectionTitles() []string {
	titles := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		titles[i] = s.Title
	}
	return titles
}
