package generation

import (
	"strings"
	"testing"

	"github.com/jackzampolin/paperdeck/internal/paper"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ampersand and percent", "R&D costs: $50 & 10%", `R\&D costs: \$50 \& 10\%`},
		{"underscore and hash", "model_v2 #3", `model\_v2 \#3`},
		{"braces", "f{x}", `f\{x\}`},
		{"tilde and caret", "~10^3", `\textasciitilde{}10\^{}3`},
		{"backslash not double escaped", `a\b`, `a\textbackslash{}b`},
		{"empty", "", ""},
		{"plain text untouched", "no specials here", "no specials here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeLaTeX(tt.in); got != tt.want {
				t.Fatalf("EscapeLaTeX(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFigureLaTeX(t *testing.T) {
	e := paper.Element{
		Type:       paper.ElementFigure,
		OutputFile: "figures/fig1.png",
		Caption:    "Loss & accuracy",
	}

	got := figureLaTeX(e, "", "")
	if !strings.Contains(got, `\includegraphics[width=0.8\textwidth]{figures/fig1.png}`) {
		t.Fatalf("missing includegraphics: %s", got)
	}
	if !strings.Contains(got, `\caption{Loss \& accuracy}`) {
		t.Fatalf("caption not escaped: %s", got)
	}

	// Missing image yields a comment placeholder, not broken LaTeX.
	placeholder := figureLaTeX(paper.Element{SequenceNumber: 3}, "", "")
	if !strings.HasPrefix(placeholder, "% Figure 3") {
		t.Fatalf("unexpected placeholder: %s", placeholder)
	}
}

func TestTableLaTeX(t *testing.T) {
	e := paper.Element{
		Type:    paper.ElementTable,
		Columns: 2,
		Data:    [][]string{{"Model", "Score"}, {"baseline_v1", "92%"}},
	}

	got := tableLaTeX(e)
	if !strings.Contains(got, `\begin{tabular}{ll}`) {
		t.Fatalf("missing tabular spec: %s", got)
	}
	if !strings.Contains(got, `baseline\_v1 & 92\% \\`) {
		t.Fatalf("cells not escaped or joined: %s", got)
	}
}

func TestEquationLaTeX(t *testing.T) {
	numbered := equationLaTeX(paper.Element{LatexCode: "E = mc^2", IsNumbered: true})
	if !strings.Contains(numbered, `\begin{equation}`) {
		t.Fatalf("expected numbered environment: %s", numbered)
	}

	unnumbered := equationLaTeX(paper.Element{LatexCode: "E = mc^2"})
	if !strings.Contains(unnumbered, `\begin{equation*}`) {
		t.Fatalf("expected starred environment: %s", unnumbered)
	}
}
