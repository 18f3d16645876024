// Package pdf wraps PDF rendering behind a small backend interface so the
// extraction pipeline can run against any text-layer source (native PDF
// text, OCR output, test fakes).
package pdf

// Rect is a page region in PDF points. The origin is the bottom-left
// corner of the page; Y grows upward.
type Rect struct {
	X0, Y0 float64 // lower-left
	X1, Y1 float64 // upper-right
}

// Width returns the horizontal extent of the rect.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of the rect.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Contains reports whether the point (x, y) falls inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// ColumnHints guides column box detection.
type ColumnHints struct {
	HeaderMargin int  // points excluded from the top of the page
	FooterMargin int  // points excluded from the bottom of the page
	NoImageText  bool // skip text embedded in images, where the backend can tell
}

// Page is a single page of an open document.
type Page interface {
	// Text extracts the whole page's plain text.
	Text() (string, error)

	// TextClipped extracts text restricted to the given region, in
	// reading order within that region.
	TextClipped(r Rect) (string, error)

	// ColumnBoxes returns hypothesized reading-order column regions.
	// Zero boxes means the backend has no layout opinion and callers
	// should fall back to Text.
	ColumnBoxes(hints ColumnHints) ([]Rect, error)
}

// Document is an open PDF. It must be closed on every exit path.
type Document interface {
	PageCount() int
	// Page returns the 1-indexed page.
	Page(num int) (Page, error)
	Close() error
}

// Backend opens documents by path.
type Backend interface {
	Open(path string) (Document, error)
}
