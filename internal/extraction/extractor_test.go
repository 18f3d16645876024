package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackzampolin/paperdeck/internal/pdf"
)

// fakeBackend serves canned pages and records document lifecycle.
type fakeBackend struct {
	openErr  error
	pages    []fakePage
	pageHook func(num int)
	doc      *fakeDoc
}

func (b *fakeBackend) Open(path string) (pdf.Document, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	b.doc = &fakeDoc{pages: b.pages, pageHook: b.pageHook}
	return b.doc, nil
}

type fakeDoc struct {
	pages    []fakePage
	closed   bool
	pageHook func(num int) // optional, runs on each page access
}

func (d *fakeDoc) PageCount() int { return len(d.pages) }

func (d *fakeDoc) Page(num int) (pdf.Page, error) {
	if d.pageHook != nil {
		d.pageHook(num)
	}
	return &d.pages[num-1], nil
}

func (d *fakeDoc) Close() error {
	d.closed = true
	return nil
}

type fakePage struct {
	text       string
	boxes      []pdf.Rect
	boxTexts   map[int]string // keyed by box index
	columnsErr error
	clipErr    error
}

func (p *fakePage) Text() (string, error) { return p.text, nil }

func (p *fakePage) TextClipped(r pdf.Rect) (string, error) {
	if p.clipErr != nil {
		return "", p.clipErr
	}
	for i, box := range p.boxes {
		if box == r {
			return p.boxTexts[i], nil
		}
	}
	return "", nil
}

func (p *fakePage) ColumnBoxes(hints pdf.ColumnHints) ([]pdf.Rect, error) {
	if p.columnsErr != nil {
		return nil, p.columnsErr
	}
	return p.boxes, nil
}

func TestExtract_MultiPageSuccess(t *testing.T) {
	backend := &fakeBackend{pages: []fakePage{
		{text: "Page 1 abstract"},
		{text: "Page 2 introduction"},
		{text: "Page 3 results"},
	}}
	e := NewExtractor(backend, nil)

	result := e.Extract(context.Background(), "paper.pdf", DefaultConfig())

	if result.Status != StatusSuccess {
		t.Fatalf("status = %s, want success (error: %s)", result.Status, result.Error())
	}
	if result.PageCount != 3 {
		t.Errorf("page count = %d, want 3", result.PageCount)
	}

	text := result.Text()
	for _, want := range []string{"Page 1 abstract", "Page 2 introduction", "Page 3 results"} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q: %q", want, text)
		}
	}
	if strings.Index(text, "Page 1") > strings.Index(text, "Page 2") ||
		strings.Index(text, "Page 2") > strings.Index(text, "Page 3") {
		t.Errorf("page order not preserved: %q", text)
	}

	if !backend.doc.closed {
		t.Errorf("document should be closed after extraction")
	}
	if errs := ValidateResult(&result); len(errs) != 0 {
		t.Errorf("result should validate cleanly, got: %v", errs)
	}
}

func TestExtract_BlankPagesSkipped(t *testing.T) {
	backend := &fakeBackend{pages: []fakePage{
		{text: "Real content on first page"},
		{text: ""},
		{text: "Real content on last page"},
	}}
	e := NewExtractor(backend, nil)

	result := e.Extract(context.Background(), "paper.pdf", DefaultConfig())

	if result.Status != StatusSuccess {
		t.Fatalf("status = %s, want success", result.Status)
	}
	if result.PageCount != 3 {
		t.Errorf("page count = %d, want 3 (blank pages still counted)", result.PageCount)
	}
	if strings.Contains(result.Text(), "\n\n\n") {
		t.Errorf("blank page should not leave an empty placeholder entry: %q", result.Text())
	}
}

func TestExtract_NoTextIsFailed(t *testing.T) {
	backend := &fakeBackend{pages: []fakePage{{text: ""}, {text: "   "}}}
	e := NewExtractor(backend, nil)

	result := e.Extract(context.Background(), "paper.pdf", DefaultConfig())

	if result.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", result.Status)
	}
	if !strings.Contains(result.Error(), "No text content extracted") {
		t.Errorf("error = %q, want empty-content message", result.Error())
	}
	if result.PageCount != 2 {
		t.Errorf("page count = %d, want 2 even on failure", result.PageCount)
	}
	if result.RawTextLength != 0 || result.CleanTextLength != 0 {
		t.Errorf("lengths = %d/%d, want 0/0", result.RawTextLength, result.CleanTextLength)
	}
	if !backend.doc.closed {
		t.Errorf("document should be closed on the failure path")
	}
}

func TestExtract_OpenErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		openErr error
		want    string
	}{
		{"not found", errors.New("open missing.pdf: no such file or directory"), "File not found"},
		{"encrypted", errors.New("pdf is encrypted: invalid password"), "PDF is encrypted"},
		{"generic", errors.New("xref table corrupted"), "Error extracting text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(&fakeBackend{openErr: tt.openErr}, nil)
			result := e.Extract(context.Background(), "missing.pdf", DefaultConfig())

			if result.Status != StatusFailed {
				t.Fatalf("status = %s, want failed", result.Status)
			}
			if !strings.Contains(result.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", result.Error(), tt.want)
			}
			if result.TextContent != nil {
				t.Errorf("failed result should carry no text content")
			}
			if result.RawTextLength != 0 || result.CleanTextLength != 0 {
				t.Errorf("lengths = %d/%d, want 0/0", result.RawTextLength, result.CleanTextLength)
			}
			if result.ExtractionTime < 0 {
				t.Errorf("extraction time must be non-negative on failures")
			}
		})
	}
}

func TestExtract_ColumnTextJoined(t *testing.T) {
	left := pdf.Rect{X0: 0, Y0: 0, X1: 300, Y1: 700}
	right := pdf.Rect{X0: 300, Y0: 0, X1: 600, Y1: 700}
	backend := &fakeBackend{pages: []fakePage{{
		text:  "whole page fallback should not be used",
		boxes: []pdf.Rect{left, right},
		boxTexts: map[int]string{
			0: "left column body",
			1: "right column body",
		},
	}}}
	e := NewExtractor(backend, nil)

	result := e.Extract(context.Background(), "paper.pdf", DefaultConfig())

	text := result.Text()
	if !strings.Contains(text, "left column body") || !strings.Contains(text, "right column body") {
		t.Fatalf("column texts missing: %q", text)
	}
	if strings.Contains(text, "fallback") {
		t.Errorf("whole-page fallback used despite column boxes: %q", text)
	}
	if strings.Index(text, "left column") > strings.Index(text, "right column") {
		t.Errorf("column order not preserved: %q", text)
	}
}

func TestExtract_ColumnErrorFallsBack(t *testing.T) {
	backend := &fakeBackend{pages: []fakePage{{
		text:       "whole page text used as fallback",
		columnsErr: errors.New("layout detection exploded"),
	}}}
	e := NewExtractor(backend, nil)

	result := e.Extract(context.Background(), "paper.pdf", DefaultConfig())

	if !strings.Contains(result.Text(), "whole page text used as fallback") {
		t.Errorf("expected whole-page fallback text, got: %q", result.Text())
	}
}

func TestExtract_ClipErrorFallsBack(t *testing.T) {
	backend := &fakeBackend{pages: []fakePage{{
		text:    "whole page text used as fallback",
		boxes:   []pdf.Rect{{X1: 300, Y1: 700}},
		clipErr: errors.New("clip failed"),
	}}}
	e := NewExtractor(backend, nil)

	result := e.Extract(context.Background(), "paper.pdf", DefaultConfig())

	if !strings.Contains(result.Text(), "whole page text used as fallback") {
		t.Errorf("expected whole-page fallback text, got: %q", result.Text())
	}
}

func TestExtract_CancelledMidDocument(t *testing.T) {
	backend := &fakeBackend{pages: []fakePage{
		{text: "Gathered before cancellation"},
		{text: "Never reached"},
	}}
	e := NewExtractor(backend, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := e.Extract(ctx, "paper.pdf", DefaultConfig())

	// Cancelled before any page: no text at all.
	if result.Status != StatusFailed {
		t.Fatalf("status = %s, want failed when nothing was gathered", result.Status)
	}
	if len(result.Warnings) == 0 {
		t.Errorf("cancellation should be recorded as a warning")
	}
	if !backend.doc.closed {
		t.Errorf("document should be closed on the cancellation path")
	}
}

func TestExtract_CancelledAfterSomeTextIsPartial(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	backend := &fakeBackend{
		pages: []fakePage{
			{text: "Gathered before cancellation"},
			{text: "Never reached"},
			{text: "Never reached either"},
		},
		pageHook: func(num int) {
			if num == 1 {
				cancel()
			}
		},
	}
	e := NewExtractor(backend, nil)

	result := e.Extract(ctx, "paper.pdf", DefaultConfig())

	if result.Status != StatusPartial {
		t.Fatalf("status = %s, want partial", result.Status)
	}
	if !result.IsSuccessful() {
		t.Errorf("partial results count as successful")
	}
	if !strings.Contains(result.Text(), "Gathered before cancellation") {
		t.Errorf("partial text missing gathered page: %q", result.Text())
	}
	if strings.Contains(result.Text(), "Never reached") {
		t.Errorf("pages after cancellation should be skipped: %q", result.Text())
	}
	if len(result.Warnings) == 0 {
		t.Errorf("cancellation should be recorded as a warning")
	}
}

func TestExtract_InvariantCleanNotLongerThanRaw(t *testing.T) {
	backend := &fakeBackend{pages: []fakePage{
		{text: "Messy   text\n\n\n\nwith   artifacts\n42\nDOI: 10.1/x"},
	}}
	e := NewExtractor(backend, nil)

	result := e.Extract(context.Background(), "paper.pdf", DefaultConfig())

	if result.CleanTextLength > result.RawTextLength {
		t.Errorf("clean length %d exceeds raw length %d", result.CleanTextLength, result.RawTextLength)
	}
	if pct := result.SanitizationReductionPct(); pct < 0 || pct > 100 {
		t.Errorf("reduction pct = %f, want [0, 100]", pct)
	}
}
