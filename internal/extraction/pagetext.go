package extraction

import (
	"strings"

	"github.com/jackzampolin/paperdeck/internal/pdf"
)

// pageText extracts a single page's best-effort plain text, handling
// multi-column layouts. It never fails: any problem during column-based
// extraction falls back to whole-page extraction, and a page with no
// text layer yields "".
func pageText(page pdf.Page, cfg Config) string {
	boxes, err := page.ColumnBoxes(pdf.ColumnHints{
		HeaderMargin: cfg.HeaderMargin,
		FooterMargin: cfg.FooterMargin,
		NoImageText:  cfg.RemoveImageText,
	})
	if err != nil || len(boxes) == 0 {
		return wholePageText(page)
	}

	// Column order is the backend's reading order: left to right,
	// top to bottom.
	var columnTexts []string
	for _, box := range boxes {
		text, err := page.TextClipped(box)
		if err != nil {
			return wholePageText(page)
		}
		if strings.TrimSpace(text) != "" {
			columnTexts = append(columnTexts, text)
		}
	}

	return strings.Join(columnTexts, "\n")
}

func wholePageText(page pdf.Page) string {
	text, err := page.Text()
	if err != nil {
		return ""
	}
	return text
}
