// Package extraction converts a PDF's raw per-page text into clean,
// structured text: multi-column reading-order reconstruction, artifact
// removal, and heuristic title/author/section parsing.
//
// The package's public operations never return Go errors across their
// boundary; every failure mode becomes a Result value so a single bad
// document cannot abort a batch.
package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackzampolin/paperdeck/internal/pdf"
)

// Extractor coordinates per-page extraction and sanitization for whole
// documents. One Extractor may serve concurrent extractions; all
// per-call state lives in the Result.
type Extractor struct {
	backend   pdf.Backend
	sanitizer *Sanitizer
	logger    *slog.Logger
}

// NewExtractor creates an extractor over the given backend.
func NewExtractor(backend pdf.Backend, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		backend:   backend,
		sanitizer: NewSanitizer(),
		logger:    logger.With("component", "extraction"),
	}
}

// Extract pulls and sanitizes all text from the document at path.
// It always returns a populated Result and never an error: open
// failures, empty documents, and cancellation are mapped to statuses.
// ctx is checked between pages; cancelling mid-document yields PARTIAL
// when some text was gathered and FAILED otherwise.
func (e *Extractor) Extract(ctx context.Context, path string, cfg Config) Result {
	start := time.Now()

	doc, err := e.backend.Open(path)
	if err != nil {
		msg := classifyOpenError(path, err)
		e.logger.Warn("failed to open document", "path", path, "error", err)
		return Result{
			Status:         StatusFailed,
			ExtractionTime: time.Since(start),
			ErrorMessage:   strPtr(msg),
		}
	}
	defer doc.Close()

	pageCount := doc.PageCount()

	var rawParts []string
	var warnings []string
	cancelled := false

	for num := 1; num <= pageCount; num++ {
		if err := ctx.Err(); err != nil {
			cancelled = true
			warnings = append(warnings, fmt.Sprintf("extraction cancelled after page %d of %d", num-1, pageCount))
			break
		}

		page, err := doc.Page(num)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d unavailable: %v", num, err))
			continue
		}

		// Blank pages are skipped rather than emitting empty entries.
		if text := pageText(page, cfg); text != "" {
			rawParts = append(rawParts, text)
		}
	}

	rawText := strings.Join(rawParts, "\n\n")
	rawLen := len(rawText)

	cleanText := e.sanitizer.Sanitize(rawText, cfg)
	cleanLen := len(cleanText)

	elapsed := time.Since(start)

	if rawLen == 0 {
		msg := "No text content extracted from PDF"
		if cancelled {
			msg = "extraction cancelled before any text was gathered"
		}
		return Result{
			Status:         StatusFailed,
			PageCount:      pageCount,
			ExtractionTime: elapsed,
			ErrorMessage:   strPtr(msg),
			Warnings:       warnings,
		}
	}

	status := StatusSuccess
	if cancelled {
		status = StatusPartial
	}

	e.logger.Debug("extraction complete",
		"path", path,
		"pages", pageCount,
		"raw_chars", rawLen,
		"clean_chars", cleanLen,
		"elapsed", elapsed,
	)

	return Result{
		Status:          status,
		TextContent:     strPtr(cleanText),
		RawTextLength:   rawLen,
		CleanTextLength: cleanLen,
		PageCount:       pageCount,
		ExtractionTime:  elapsed,
		Warnings:        warnings,
	}
}

// classifyOpenError maps a backend open failure to a user-facing
// message. The distinction rests on substring matches against the
// backend's error text, which is not a stable contract; treat the
// classification as best effort.
func classifyOpenError(path string, err error) string {
	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "encrypt") {
		return fmt.Sprintf("PDF is encrypted: %v", err)
	}
	if strings.Contains(msg, "no such file") || strings.Contains(msg, "not found") {
		return fmt.Sprintf("File not found: %s", path)
	}
	return fmt.Sprintf("Error extracting text: %v", err)
}
