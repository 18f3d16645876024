// Package generation turns a paper's extracted content into a LaTeX
// beamer slide deck.
package generation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jackzampolin/paperdeck/internal/paper"
)

// latexSpecialChars maps LaTeX special characters to their escaped forms.
// Backslash is handled separately to avoid double-escaping.
var latexSpecialChars = []struct {
	char    string
	escaped string
}{
	{"&", `\&`},
	{"%", `\%`},
	{"$", `\$`},
	{"#", `\#`},
	{"_", `\_`},
	{"{", `\{`},
	{"}", `\}`},
	{"~", `\textasciitilde{}`},
	{"^", `\^{}`},
}

const backslashPlaceholder = "\x00BS\x00"

// EscapeLaTeX escapes special LaTeX characters in text.
func EscapeLaTeX(text string) string {
	if text == "" {
		return text
	}

	result := strings.ReplaceAll(text, `\`, backslashPlaceholder)
	for _, sc := range latexSpecialChars {
		result = strings.ReplaceAll(result, sc.char, sc.escaped)
	}
	return strings.ReplaceAll(result, backslashPlaceholder, `\textbackslash{}`)
}

// figureLaTeX renders an includegraphics block for a figure element.
// outputDir, when set, makes the graphics path relative to it.
func figureLaTeX(e paper.Element, outputDir, width string) string {
	if e.OutputFile == "" {
		return fmt.Sprintf("%% Figure %d (no image available)\n", e.SequenceNumber)
	}
	if width == "" {
		width = `0.8\textwidth`
	}

	var sb strings.Builder
	sb.WriteString("\\begin{figure}\n")
	sb.WriteString("  \\centering\n")
	fmt.Fprintf(&sb, "  \\includegraphics[width=%s]{%s}\n", width, graphicsPath(e.OutputFile, outputDir))
	if e.Caption != "" {
		fmt.Fprintf(&sb, "  \\caption{%s}\n", EscapeLaTeX(e.Caption))
	}
	sb.WriteString("\\end{figure}\n")
	return sb.String()
}

// tableLaTeX renders a tabular block from an element's extracted cell data.
func tableLaTeX(e paper.Element) string {
	if len(e.Data) == 0 || e.Columns == 0 {
		return fmt.Sprintf("%% Table %d (no cell data available)\n", e.SequenceNumber)
	}

	var sb strings.Builder
	sb.WriteString("\\begin{table}\n")
	sb.WriteString("  \\centering\n")
	fmt.Fprintf(&sb, "  \\begin{tabular}{%s}\n", strings.Repeat("l", e.Columns))
	for _, row := range e.Data {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = EscapeLaTeX(cell)
		}
		fmt.Fprintf(&sb, "    %s \\\\\n", strings.Join(cells, " & "))
	}
	sb.WriteString("  \\end{tabular}\n")
	if e.Caption != "" {
		fmt.Fprintf(&sb, "  \\caption{%s}\n", EscapeLaTeX(e.Caption))
	}
	sb.WriteString("\\end{table}\n")
	return sb.String()
}

// equationLaTeX renders an equation element's LaTeX source, if any.
func equationLaTeX(e paper.Element) string {
	if e.LatexCode == "" {
		return fmt.Sprintf("%% Equation %d (no source available)\n", e.SequenceNumber)
	}
	env := "equation*"
	if e.IsNumbered {
		env = "equation"
	}
	return fmt.Sprintf("\\begin{%s}\n%s\n\\end{%s}\n", env, e.LatexCode, env)
}

// graphicsPath formats a path for includegraphics, relative to outputDir when
// possible. LaTeX wants forward slashes.
func graphicsPath(file, outputDir string) string {
	if outputDir != "" && filepath.IsAbs(file) {
		if rel, err := filepath.Rel(outputDir, file); err == nil && !strings.HasPrefix(rel, "..") {
			file = rel
		}
	}
	return filepath.ToSlash(file)
}
