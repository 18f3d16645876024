package generation

import (
	"fmt"
	"strings"

	"github.com/jackzampolin/paperdeck/internal/extraction"
	"github.com/jackzampolin/paperdeck/internal/paper"
)

const (
	defaultMaxElementsPerSlide   = 2
	defaultLargeElementThreshold = 200 // width or height in pixels

	sectionExcerptLimit = 500
	textSlideLimit      = 1000
)

// Organizer groups paper content into presentation slides.
type Organizer struct {
	MaxElementsPerSlide   int
	CreateTitleSlide      bool
	CreateOutlineSlide    bool
	LargeElementThreshold int
}

// NewOrganizer creates an organizer with default grouping rules.
func NewOrganizer() *Organizer {
	return &Organizer{
		MaxElementsPerSlide:   defaultMaxElementsPerSlide,
		CreateTitleSlide:      true,
		CreateOutlineSlide:    true,
		LargeElementThreshold: defaultLargeElementThreshold,
	}
}

// Organize builds a presentation structure from a paper's sections and
// elements.
func (o *Organizer) Organize(p *paper.Paper) *Presentation {
	var slides []Slide

	if o.CreateTitleSlide {
		slides = append(slides, o.titleSlide(p))
	}
	if o.CreateOutlineSlide {
		slides = append(slides, o.outlineSlide(p))
	}

	elementsBySection := groupElementsBySection(p)
	for _, section := range p.Sections {
		slides = append(slides, o.sectionSlides(section, elementsBySection[section.Title])...)
	}

	author := "Unknown"
	if len(p.Authors) > 0 {
		author = p.Authors[0]
	}

	return &Presentation{
		Title:  p.DisplayTitle(),
		Author: author,
		Theme:  "Madrid",
		Slides: slides,
	}
}

// OrganizeElements groups loose elements into slides. Large elements get
// their own slides; small ones are batched up to MaxElementsPerSlide.
func (o *Organizer) OrganizeElements(elements []paper.Element, titlePrefix string) []Slide {
	if len(elements) == 0 {
		return nil
	}
	if titlePrefix == "" {
		titlePrefix = "Content"
	}

	var large, small []paper.Element
	for _, e := range elements {
		if e.IsLarge(o.LargeElementThreshold) {
			large = append(large, e)
		} else {
			small = append(small, e)
		}
	}

	var slides []Slide
	for _, e := range large {
		slides = append(slides, Slide{
			Title:       elementSlideTitle(e, titlePrefix),
			ContentType: elementContentType(e.Type),
			Elements:    []paper.Element{e},
		})
	}

	perSlide := o.maxPerSlide()
	for i := 0; i < len(small); i += perSlide {
		batch := small[i:min(i+perSlide, len(small))]
		title := elementSlideTitle(batch[0], titlePrefix)
		if len(batch) > 1 {
			title = fmt.Sprintf("%s - %ss", titlePrefix, titleCase(string(batch[0].Type)))
		}
		slides = append(slides, Slide{
			Title:       title,
			ContentType: elementContentType(batch[0].Type),
			Elements:    batch,
		})
	}

	return slides
}

func (o *Organizer) titleSlide(p *paper.Paper) Slide {
	authors := "Unknown Author"
	if len(p.Authors) > 0 {
		authors = strings.Join(p.Authors, ", ")
	}
	return Slide{
		Title:       p.DisplayTitle(),
		ContentType: ContentText,
		Text:        "Authors: " + authors,
	}
}

func (o *Organizer) outlineSlide(p *paper.Paper) Slide {
	var items []string
	for _, s := range p.Sections {
		if s.Title != "" {
			items = append(items, s.Title)
		}
	}
	return Slide{
		Title:       "Outline",
		ContentType: ContentItemize,
		Bullets:     items,
	}
}

func (o *Organizer) sectionSlides(section extraction.Section, elements []paper.Element) []Slide {
	var slides []Slide

	if section.Title != "" {
		slides = append(slides, Slide{
			Title:       section.Title,
			ContentType: ContentText,
			Text:        truncate(section.Content, sectionExcerptLimit),
			SectionName: section.Title,
		})
	}

	byType := map[paper.ElementType][]paper.Element{}
	for _, e := range elements {
		byType[e.Type] = append(byType[e.Type], e)
	}

	prefix := section.Title
	if prefix == "" {
		prefix = "Content"
	}
	for _, typ := range []paper.ElementType{paper.ElementFigure, paper.ElementTable, paper.ElementEquation} {
		slides = append(slides, o.elementBatchSlides(byType[typ], prefix, section.Title)...)
	}

	if len(elements) == 0 && section.Content != "" && section.Title == "" {
		slides = append(slides, Slide{
			Title:       "Content",
			ContentType: ContentText,
			Text:        truncate(section.Content, textSlideLimit),
		})
	}

	return slides
}

func (o *Organizer) elementBatchSlides(elements []paper.Element, prefix, sectionName string) []Slide {
	var slides []Slide
	perSlide := o.maxPerSlide()

	for i := 0; i < len(elements); i += perSlide {
		batch := elements[i:min(i+perSlide, len(elements))]
		title := elementSlideTitle(batch[0], prefix)
		if len(batch) > 1 {
			end := min(i+len(batch), len(elements))
			title = fmt.Sprintf("%s - %ss %d-%d", prefix, titleCase(string(batch[0].Type)), i+1, end)
		}
		slides = append(slides, Slide{
			Title:       title,
			ContentType: elementContentType(batch[0].Type),
			Elements:    batch,
			SectionName: sectionName,
		})
	}
	return slides
}

func (o *Organizer) maxPerSlide() int {
	if o.MaxElementsPerSlide > 0 {
		return o.MaxElementsPerSlide
	}
	return defaultMaxElementsPerSlide
}

func elementContentType(typ paper.ElementType) ContentType {
	switch typ {
	case paper.ElementFigure:
		return ContentFigure
	case paper.ElementTable:
		return ContentTable
	case paper.ElementEquation:
		return ContentEquation
	default:
		return ContentText
	}
}

func elementSlideTitle(e paper.Element, prefix string) string {
	if e.Caption != "" {
		return e.Caption
	}
	return fmt.Sprintf("%s - %s", prefix, titleCase(string(e.Type)))
}

// groupElementsBySection assigns each paper element to the section whose page
// range contains it. Elements outside every section group under "".
func groupElementsBySection(p *paper.Paper) map[string][]paper.Element {
	grouped := make(map[string][]paper.Element)
	for _, e := range p.Elements {
		key := ""
		for _, s := range p.Sections {
			if e.PageNumber >= s.PageStart && e.PageNumber <= s.PageEnd {
				key = s.Title
				break
			}
		}
		grouped[key] = append(grouped[key], e)
	}
	return grouped
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
