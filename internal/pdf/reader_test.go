package pdf

import (
	"errors"
	"strings"
	"testing"

	lpdf "github.com/ledongthuc/pdf"
)

func TestRect(t *testing.T) {
	r := Rect{X0: 10, Y0: 20, X1: 110, Y1: 220}

	if r.Width() != 100 || r.Height() != 200 {
		t.Errorf("Width/Height = %f/%f, want 100/200", r.Width(), r.Height())
	}
	if !r.Contains(50, 100) {
		t.Errorf("Contains(50, 100) = false, want true")
	}
	if r.Contains(5, 100) || r.Contains(50, 300) {
		t.Errorf("points outside the rect should not be contained")
	}
}

func TestNormalizeOpenError(t *testing.T) {
	err := normalizeOpenError(errors.New("pdfcpu: this file is encrypted"))
	if !strings.Contains(err.Error(), "encrypted") {
		t.Errorf("encrypted error not surfaced: %v", err)
	}

	err = normalizeOpenError(errors.New("malformed PDF: missing password to decrypt"))
	if !strings.Contains(strings.ToLower(err.Error()), "encrypt") {
		t.Errorf("password error should be normalized to an encryption message: %v", err)
	}

	plain := errors.New("xref table corrupted")
	if got := normalizeOpenError(plain); got != plain {
		t.Errorf("unrelated errors should pass through unchanged, got: %v", got)
	}
}

// glyph builds a positioned char for layout tests.
func glyph(s string, x, y float64) lpdf.Text {
	return lpdf.Text{S: s, X: x, Y: y, W: 6, FontSize: 10}
}

func TestGroupRows(t *testing.T) {
	chars := []lpdf.Text{
		glyph("b", 20, 700),
		glyph("a", 10, 701), // same visual row as "b" within tolerance
		glyph("c", 10, 650),
	}

	rows := groupRows(chars)

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][0].S != "a" || rows[0][1].S != "b" {
		t.Errorf("first row should be sorted left to right, got %v", rows[0])
	}
	if rows[1][0].S != "c" {
		t.Errorf("second row = %v, want [c]", rows[1])
	}
}

func TestFindGutter_TwoColumnLayout(t *testing.T) {
	mb := Rect{X0: 0, Y0: 0, X1: 612, Y1: 792}

	// Dense text on both sides of a wide central gap.
	var rows [][]lpdf.Text
	for y := 700.0; y > 500; y -= 20 {
		var row []lpdf.Text
		for x := 50.0; x < 250; x += 8 {
			row = append(row, glyph("l", x, y))
		}
		for x := 350.0; x < 550; x += 8 {
			row = append(row, glyph("r", x, y))
		}
		rows = append(rows, row)
	}

	gutter, ok := findGutter(rows, mb)
	if !ok {
		t.Fatalf("expected a gutter in a two-column layout")
	}
	if gutter < 250 || gutter > 350 {
		t.Errorf("gutter = %f, want near page center", gutter)
	}
}

func TestFindGutter_SingleColumn(t *testing.T) {
	mb := Rect{X0: 0, Y0: 0, X1: 612, Y1: 792}

	var rows [][]lpdf.Text
	for y := 700.0; y > 500; y -= 20 {
		row := []lpdf.Text{}
		for x := 50.0; x < 550; x += 8 {
			row = append(row, glyph("w", x, y))
		}
		rows = append(rows, row)
	}

	if _, ok := findGutter(rows, mb); ok {
		t.Errorf("dense single-column rows should not produce a gutter")
	}
}

func TestWriteRow_WordGaps(t *testing.T) {
	var b strings.Builder
	row := []lpdf.Text{
		glyph("H", 10, 700),
		glyph("i", 16, 700),  // adjacent, no space
		glyph("t", 40, 700),  // wide gap, word break
		glyph("o", 46, 700),
	}

	writeRow(&b, row)

	if got := b.String(); got != "Hi to" {
		t.Errorf("writeRow() = %q, want %q", got, "Hi to")
	}
}
