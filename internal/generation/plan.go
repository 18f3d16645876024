package generation

import (
	"strings"

	"github.com/jackzampolin/paperdeck/internal/paper"
	"github.com/jackzampolin/paperdeck/internal/prompts/slideplan"
)

// FromPlan converts an LLM slide plan into a presentation, keeping the
// organizer's title and outline slides and appending element slides for any
// figures, tables, or equations the paper carries.
func (o *Organizer) FromPlan(plan *slideplan.Plan, p *paper.Paper) *Presentation {
	var slides []Slide

	if o.CreateTitleSlide {
		slides = append(slides, o.titleSlide(p))
	}
	if o.CreateOutlineSlide && len(plan.Slides) > 1 {
		slides = append(slides, planOutlineSlide(plan))
	}

	for _, ps := range plan.Slides {
		slide := Slide{
			Title:       ps.Title,
			ContentType: ContentItemize,
			Bullets:     ps.Bullets,
			SectionName: ps.Section,
		}
		if len(ps.Bullets) == 0 {
			slide.ContentType = ContentText
		}
		slides = append(slides, slide)
	}

	elementsBySection := groupElementsBySection(p)
	for _, section := range p.Sections {
		prefix := section.Title
		if prefix == "" {
			prefix = "Content"
		}
		for _, typ := range []paper.ElementType{paper.ElementFigure, paper.ElementTable, paper.ElementEquation} {
			var ofType []paper.Element
			for _, e := range elementsBySection[section.Title] {
				if e.Type == typ {
					ofType = append(ofType, e)
				}
			}
			slides = append(slides, o.elementBatchSlides(ofType, prefix, section.Title)...)
		}
	}

	title := plan.Title
	if strings.TrimSpace(title) == "" {
		title = p.DisplayTitle()
	}
	author := "Unknown"
	if len(p.Authors) > 0 {
		author = p.Authors[0]
	}

	return &Presentation{
		Title:  title,
		Author: author,
		Theme:  "Madrid",
		Slides: slides,
	}
}

func planOutlineSlide(plan *slideplan.Plan) Slide {
	var items []string
	seen := make(map[string]bool)
	for _, ps := range plan.Slides {
		name := ps.Section
		if name == "" {
			name = ps.Title
		}
		if name != "" && !seen[name] {
			seen[name] = true
			items = append(items, name)
		}
	}
	return Slide{
		Title:       "Outline",
		ContentType: ContentItemize,
		Bullets:     items,
	}
}
