package generation

import (
	"fmt"
	"strings"

	"github.com/jackzampolin/paperdeck/internal/paper"
)

// ContentType distinguishes how a slide's content is rendered.
type ContentType string

const (
	ContentText     ContentType = "text"
	ContentItemize  ContentType = "itemize"
	ContentFigure   ContentType = "figure"
	ContentTable    ContentType = "table"
	ContentEquation ContentType = "equation"
)

// Slide is a single beamer frame.
type Slide struct {
	Title       string
	ContentType ContentType
	Text        string
	Bullets     []string
	Elements    []paper.Element
	SectionName string
}

// Presentation is a complete beamer deck ready to render.
type Presentation struct {
	Title      string
	Author     string
	Date       string // defaults to \today when empty
	Theme      string
	ColorTheme string
	Slides     []Slide
}

// Validate reports problems that would produce a broken document.
func (p *Presentation) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("presentation title must not be empty")
	}
	if len(p.Slides) == 0 {
		return fmt.Errorf("presentation must have at least one slide")
	}
	for i, s := range p.Slides {
		if s.Title == "" {
			return fmt.Errorf("slide %d has an empty title", i)
		}
	}
	return nil
}

// LaTeX renders the frame for this slide.
func (s *Slide) LaTeX(outputDir string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\\begin{frame}{%s}\n", EscapeLaTeX(s.Title))

	switch s.ContentType {
	case ContentItemize:
		sb.WriteString("\\begin{itemize}\n")
		for _, item := range s.Bullets {
			fmt.Fprintf(&sb, "  \\item %s\n", EscapeLaTeX(item))
		}
		sb.WriteString("\\end{itemize}\n")
	case ContentFigure:
		for _, e := range s.Elements {
			sb.WriteString(figureLaTeX(e, outputDir, ""))
		}
	case ContentTable:
		for _, e := range s.Elements {
			sb.WriteString(tableLaTeX(e))
		}
	case ContentEquation:
		for _, e := range s.Elements {
			sb.WriteString(equationLaTeX(e))
		}
	default:
		if s.Text != "" {
			sb.WriteString(EscapeLaTeX(s.Text))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\\end{frame}\n")
	return sb.String()
}

// Document renders the complete beamer document.
func (p *Presentation) Document(outputDir string) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	date := p.Date
	if date == "" {
		date = `\today`
	}
	theme := p.Theme
	if theme == "" {
		theme = "Madrid"
	}

	var sb strings.Builder
	sb.WriteString("\\documentclass{beamer}\n")
	fmt.Fprintf(&sb, "\\usetheme{%s}\n", theme)
	if p.ColorTheme != "" {
		fmt.Fprintf(&sb, "\\usecolortheme{%s}\n", p.ColorTheme)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "\\title{%s}\n", EscapeLaTeX(p.Title))
	fmt.Fprintf(&sb, "\\author{%s}\n", EscapeLaTeX(p.Author))
	fmt.Fprintf(&sb, "\\date{%s}\n", date)
	sb.WriteString("\n\\begin{document}\n\n\\frame{\\titlepage}\n\n")

	for _, slide := range p.Slides {
		sb.WriteString(slide.LaTeX(outputDir))
		sb.WriteString("\n")
	}

	sb.WriteString("\\end{document}\n")
	return sb.String(), nil
}
