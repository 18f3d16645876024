package paper

import (
	"fmt"

	"github.com/google/uuid"
)

// ElementType classifies a visual element extracted from a paper.
type ElementType string

const (
	ElementFigure   ElementType = "figure"
	ElementTable    ElementType = "table"
	ElementEquation ElementType = "equation"
)

// BoundingBox is an element's position and size on its page, in points.
type BoundingBox struct {
	X, Y          float64
	Width, Height float64
}

// Element is a figure, table, or equation extracted from a paper page.
// Visual extraction itself is out of scope here; the model exists so
// slide organization can place elements produced by external tools.
type Element struct {
	ID             uuid.UUID
	Type           ElementType
	PageNumber     int
	Box            BoundingBox
	Confidence     float64
	SequenceNumber int
	OutputFile     string
	Caption        string

	// Figure fields
	ImageFormat string
	WidthPx     int
	HeightPx    int

	// Table fields
	Rows    int
	Columns int
	Data    [][]string

	// Equation fields
	LatexCode  string
	IsNumbered bool
}

// NewElement creates an element with a fresh ID.
func NewElement(typ ElementType, pageNumber int, box BoundingBox, confidence float64) (*Element, error) {
	if pageNumber < 1 {
		return nil, fmt.Errorf("page number must be >= 1, got %d", pageNumber)
	}
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("confidence must be in [0, 1], got %f", confidence)
	}
	if box.X < 0 || box.Y < 0 || box.Width < 0 || box.Height < 0 {
		return nil, fmt.Errorf("bounding box values must be non-negative")
	}

	return &Element{
		ID:         uuid.New(),
		Type:       typ,
		PageNumber: pageNumber,
		Box:        box,
		Confidence: confidence,
	}, nil
}

// IsLarge reports whether the element's rendered size exceeds the
// threshold on either axis, which forces it onto its own slide.
func (e *Element) IsLarge(threshold int) bool {
	return e.WidthPx > threshold || e.HeightPx > threshold
}
