package pdf

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Layout tuning for column detection and reading-order reconstruction.
// Values follow common practice for academic two-column layouts.
const (
	columnGapThreshold  = 30.0 // minimum horizontal gap (points) treated as a gutter
	rowTolerance        = 3.0  // Y tolerance (points) for grouping chars into rows
	minRowsForColumnPct = 25   // percent of rows that must show the gutter
	wordSpaceMultiplier = 0.3  // fraction of font size treated as a word gap
)

// Reader is the default Backend, built on the native PDF text layer.
// pdfcpu validates the file up front (catching corrupt and encrypted
// documents with usable error text) and positioned glyphs from the
// text layer drive column detection and clipped extraction.
type Reader struct{}

// NewReader creates the default PDF backend.
func NewReader() *Reader { return &Reader{} }

// Open opens the document at path. The returned Document must be closed.
func (Reader) Open(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	// Validate with pdfcpu first; it reports encryption and corruption
	// where the text-layer reader would fail obscurely.
	if _, err := api.PageCount(f, nil); err != nil {
		f.Close()
		return nil, normalizeOpenError(err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rewind %s: %w", path, err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	r, err := lpdf.NewReader(f, st.Size())
	if err != nil {
		f.Close()
		return nil, normalizeOpenError(err)
	}

	return &document{file: f, reader: r}, nil
}

// normalizeOpenError makes encryption failures recognizable regardless
// of which underlying library reported them.
func normalizeOpenError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "encrypt") || strings.Contains(msg, "password") {
		return fmt.Errorf("pdf is encrypted: %w", err)
	}
	return err
}

type document struct {
	file   *os.File
	reader *lpdf.Reader
}

func (d *document) PageCount() int { return d.reader.NumPage() }

func (d *document) Page(num int) (Page, error) {
	if num < 1 || num > d.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range (1..%d)", num, d.reader.NumPage())
	}
	p := d.reader.Page(num)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d is not available", num)
	}
	return &page{page: p}, nil
}

func (d *document) Close() error { return d.file.Close() }

type page struct {
	page lpdf.Page
}

// Text extracts the whole page's text from the PDF text layer.
func (p *page) Text() (string, error) {
	text, err := p.page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract page text: %w", err)
	}
	return text, nil
}

// mediaBox resolves the page MediaBox, walking up the page tree for
// inherited values. Falls back to US Letter when absent.
func (p *page) mediaBox() Rect {
	v := p.page.V
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			return Rect{
				X0: mb.Index(0).Float64(),
				Y0: mb.Index(1).Float64(),
				X1: mb.Index(2).Float64(),
				Y1: mb.Index(3).Float64(),
			}
		}
		v = v.Key("Parent")
	}
	return Rect{X0: 0, Y0: 0, X1: 612, Y1: 792}
}

// ColumnBoxes hypothesizes reading-order column regions by looking for
// a persistent vertical gutter in the positioned glyphs. Header and
// footer margins are excluded before analysis. Returns zero boxes when
// the page has no usable text layer.
func (p *page) ColumnBoxes(hints ColumnHints) ([]Rect, error) {
	mb := p.mediaBox()
	content := Rect{
		X0: mb.X0,
		Y0: mb.Y0 + float64(hints.FooterMargin),
		X1: mb.X1,
		Y1: mb.Y1 - float64(hints.HeaderMargin),
	}
	if content.Height() <= 0 {
		return nil, nil
	}

	chars := p.charsIn(content)
	if len(chars) == 0 {
		return nil, nil
	}

	rows := groupRows(chars)
	if gutter, ok := findGutter(rows, mb); ok {
		return []Rect{
			{X0: content.X0, Y0: content.Y0, X1: gutter, Y1: content.Y1},
			{X0: gutter, Y0: content.Y0, X1: content.X1, Y1: content.Y1},
		}, nil
	}

	// Single column: one box covering the margin-trimmed content area.
	return []Rect{content}, nil
}

// TextClipped extracts text restricted to r, rebuilding reading order
// from glyph positions: rows top to bottom, glyphs left to right.
func (p *page) TextClipped(r Rect) (string, error) {
	chars := p.charsIn(r)
	if len(chars) == 0 {
		return "", nil
	}

	rows := groupRows(chars)

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		writeRow(&b, row)
	}
	return b.String(), nil
}

// charsIn returns the page's positioned glyphs inside r.
func (p *page) charsIn(r Rect) []lpdf.Text {
	content := p.page.Content()
	var chars []lpdf.Text
	for _, t := range content.Text {
		if r.Contains(t.X, t.Y) {
			chars = append(chars, t)
		}
	}
	return chars
}

// groupRows buckets glyphs into visual rows (top to bottom) and sorts
// each row left to right.
func groupRows(chars []lpdf.Text) [][]lpdf.Text {
	sorted := make([]lpdf.Text, len(chars))
	copy(sorted, chars)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]lpdf.Text
	for _, c := range sorted {
		if n := len(rows); n > 0 {
			last := rows[n-1]
			if last[0].Y-c.Y <= rowTolerance {
				rows[n-1] = append(last, c)
				continue
			}
		}
		rows = append(rows, []lpdf.Text{c})
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
	}
	return rows
}

// writeRow appends one visual row, inserting spaces at word gaps.
// Duplicate spaces are harmless downstream; sanitization collapses them.
func writeRow(b *strings.Builder, row []lpdf.Text) {
	for i, c := range row {
		if i > 0 {
			prev := row[i-1]
			gap := c.X - (prev.X + prev.W)
			threshold := prev.FontSize * wordSpaceMultiplier
			if threshold <= 0 {
				threshold = 1.0
			}
			if gap > threshold {
				b.WriteString(" ")
			}
		}
		b.WriteString(c.S)
	}
}

// findGutter looks for a vertical gap near the page center that recurs
// across enough rows to indicate a two-column layout. Returns the
// gutter's X midpoint.
func findGutter(rows [][]lpdf.Text, mb Rect) (float64, bool) {
	center := mb.X0 + mb.Width()/2
	window := mb.Width() * 0.3 // gutters must fall in the central band

	var mids []float64
	textRows := 0
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		textRows++
		for i := 1; i < len(row); i++ {
			prev := row[i-1]
			gap := row[i].X - (prev.X + prev.W)
			if gap < columnGapThreshold {
				continue
			}
			mid := prev.X + prev.W + gap/2
			if mid > center-window && mid < center+window {
				mids = append(mids, mid)
				break
			}
		}
	}

	if textRows == 0 || len(mids)*100 < textRows*minRowsForColumnPct || len(mids) < 2 {
		return 0, false
	}

	var sum float64
	for _, m := range mids {
		sum += m
	}
	return sum / float64(len(mids)), true
}
