package extraction

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Section is one logical section of a paper, produced by the Parser.
type Section struct {
	Title     string
	Content   string
	Level     int
	PageStart int
	PageEnd   int
	Elements  []uuid.UUID // associated extracted element IDs
}

// ValidateSection returns human-readable problems with a section.
func ValidateSection(s Section) []string {
	var errs []string
	if s.Title == "" {
		errs = append(errs, "section title must not be empty")
	}
	if s.Level < 1 {
		errs = append(errs, "section level must be >= 1")
	}
	if s.PageStart > s.PageEnd {
		errs = append(errs, "page_start must be <= page_end")
	}
	return errs
}

const (
	// minParseLength is the least text worth analyzing at all.
	minParseLength = 100

	// maxSectionContent caps stored section content.
	maxSectionContent = 5000

	// metadataScanLines bounds the title/author scan at document start.
	metadataScanLines = 10
)

// sectionNames are headings commonly found in academic papers.
const sectionNames = `abstract|introduction|related work|methodology|methods|approach|` +
	`model|architecture|experiments|evaluation|results|discussion|` +
	`conclusion|conclusions|references|acknowledgments?`

// Parser derives title, authors, and sections from sanitized paper
// text. Heading detection is regex-only (no font or layout information
// survives to this stage) and therefore best effort; page numbers are
// not invented, every section reports pages 1..1.
//
// Parse is a pure function over its input; one Parser is safe for
// concurrent use.
type Parser struct {
	minSectionLength int
	sectionRegex     *regexp.Regexp
	numberPrefix     *regexp.Regexp
	markdownPrefix   *regexp.Regexp
	authorNameLine   *regexp.Regexp
	authorSplit      *regexp.Regexp
}

// NewParser creates a parser. minSectionLength <= 0 uses the default
// of 100 characters.
func NewParser(minSectionLength int) *Parser {
	if minSectionLength <= 0 {
		minSectionLength = minParseLength
	}
	pattern := fmt.Sprintf(`(?im)^#+\s*(%[1]s)|^\d+\.?\s+(%[1]s)|^(%[1]s)$`, sectionNames)
	return &Parser{
		minSectionLength: minSectionLength,
		sectionRegex:     regexp.MustCompile(pattern),
		numberPrefix:     regexp.MustCompile(`^\d+\.?\s*`),
		markdownPrefix:   regexp.MustCompile(`^#+\s*`),
		authorNameLine:   regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+`),
		authorSplit:      regexp.MustCompile(`(?i),\s*|\s+and\s+`),
	}
}

// Parse extracts (title, authors, sections) from sanitized text.
// Text shorter than 100 characters returns (nil, nil, nil).
func (p *Parser) Parse(text string) (*string, []string, []Section) {
	if len(text) < minParseLength {
		return nil, nil, nil
	}

	title, authors, bodyStart := p.extractMetadata(text)
	sections := p.parseSections(text[bodyStart:])

	return title, authors, sections
}

// extractMetadata scans the first few lines for a title and author
// list, returning the byte offset where body text begins.
//
// The two author branches intentionally behave differently: a
// comma/"and" line ends the scan, while a bare capitalized-name line is
// recorded and the scan continues.
func (p *Parser) extractMetadata(text string) (*string, []string, int) {
	lines := strings.Split(text, "\n")

	var title *string
	var authors []string
	bodyStartLine := 0

	limit := metadataScanLines
	if limit > len(lines) {
		limit = len(lines)
	}

	for i := 0; i < limit; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		// First substantial line is the title.
		if title == nil {
			if len(line) > 20 {
				title = &line
				bodyStartLine = i + 1
			}
			continue
		}

		// Subsequent substantial lines may name the authors.
		if len(authors) == 0 && len(line) > 10 {
			if strings.Contains(line, ",") || strings.Contains(strings.ToLower(line), " and ") {
				for _, part := range p.authorSplit.Split(line, -1) {
					if name := strings.TrimSpace(part); name != "" {
						authors = append(authors, name)
					}
				}
				bodyStartLine = i + 1
				break
			}
			if p.authorNameLine.MatchString(line) {
				authors = append(authors, line)
				bodyStartLine = i + 1
			}
		}
	}

	bodyStart := len(strings.Join(lines[:bodyStartLine], "\n"))
	return title, authors, bodyStart
}

// parseSections splits body text at recognized headings.
func (p *Parser) parseSections(text string) []Section {
	matches := p.sectionRegex.FindAllStringIndex(text, -1)

	if len(matches) == 0 {
		// No headings anywhere: one synthetic section when there is
		// enough content, otherwise nothing.
		if len(text) > p.minSectionLength {
			return []Section{{
				Title:     "Content",
				Content:   capContent(text, maxSectionContent),
				Level:     1,
				PageStart: 1,
				PageEnd:   1,
			}}
		}
		return nil
	}

	var sections []Section
	for i, m := range matches {
		title := strings.TrimSpace(text[m[0]:m[1]])
		title = p.markdownPrefix.ReplaceAllString(title, "")
		title = p.numberPrefix.ReplaceAllString(title, "")
		title = strings.TrimSpace(title)

		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		content := strings.TrimSpace(text[m[1]:end])

		// Too little content means the heading match was likely noise.
		if len(content) < p.minSectionLength {
			continue
		}

		sections = append(sections, Section{
			Title:     title,
			Content:   capContent(content, maxSectionContent),
			Level:     1,
			PageStart: 1,
			PageEnd:   1,
		})
	}

	return sections
}

// capContent truncates to at most max bytes without splitting a rune.
func capContent(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
