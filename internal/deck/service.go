// Package deck orchestrates the pipeline from an input PDF to a
// rendered beamer .tex file: text extraction, LLM slide planning, and
// deterministic slide organization when planning is unavailable.
package deck

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackzampolin/paperdeck/internal/config"
	"github.com/jackzampolin/paperdeck/internal/extraction"
	"github.com/jackzampolin/paperdeck/internal/generation"
	"github.com/jackzampolin/paperdeck/internal/paper"
	"github.com/jackzampolin/paperdeck/internal/prompts"
	"github.com/jackzampolin/paperdeck/internal/prompts/slideplan"
	"github.com/jackzampolin/paperdeck/internal/providers"
)

// Service wires extraction, prompt rendering, LLM providers and slide
// generation behind two operations: PreparePaper and Generate.
type Service struct {
	cfg       *config.Manager
	registry  *providers.Registry
	prompts   *prompts.Resolver
	extractor *extraction.Extractor
	logger    *slog.Logger
}

// NewService creates a deck service. All dependencies are required
// except logger, which falls back to slog.Default.
func NewService(cfg *config.Manager, registry *providers.Registry, resolver *prompts.Resolver, extractor *extraction.Extractor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:       cfg,
		registry:  registry,
		prompts:   resolver,
		extractor: extractor,
		logger:    logger.With("component", "deck"),
	}
}

// Options control a single deck generation.
type Options struct {
	Provider  string // LLM provider name; empty uses the configured default
	Model     string // model override; empty uses the provider's default
	Theme     string // beamer theme; empty uses the configured default
	OutputDir string // empty uses the configured default
	NoLLM     bool   // skip slide planning and organize deterministically

	// Prompt names a planning prompt style. Custom styles live in the
	// prompt library as <style>.system.tmpl and <style>.user.tmpl;
	// empty or "default" uses the built-in pair.
	Prompt string

	// NoExtraction skips text extraction entirely; the deck is built
	// from file metadata alone.
	NoExtraction bool
}

// Result describes one generated deck.
type Result struct {
	TexPath     string
	SlideCount  int
	Planned     bool   // true when an LLM plan shaped the deck
	Provider    string // provider that produced the plan, when Planned
	TotalTokens int
}

// PreparePaper validates the input path and runs text extraction.
// Extraction failures never fail the call: the returned paper carries
// a failed Result and generation proceeds in metadata-only mode.
func (s *Service) PreparePaper(ctx context.Context, path string, opts Options) (*paper.Paper, error) {
	p, err := paper.New(path)
	if err != nil {
		return nil, err
	}

	cfg := s.cfg.Get()
	if opts.NoExtraction || !cfg.Extraction.Enabled {
		s.logger.Info("text extraction disabled, using metadata-only mode", "path", path)
		return p, nil
	}

	extractCtx := ctx
	if cfg.Extraction.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		timeout := time.Duration(cfg.Extraction.TimeoutSeconds * float64(time.Second))
		extractCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result := s.extractor.Extract(extractCtx, path, cfg.Extraction)
	p.Result = &result
	s.logExtraction(path, &result)

	if !result.IsSuccessful() {
		return p, nil
	}

	p.TextContent = result.Text()
	title, authors, sections := extraction.NewParser(0).Parse(p.TextContent)
	if title != nil {
		p.Title = *title
	}
	p.Authors = authors
	p.Sections = sections
	for _, sec := range sections {
		if strings.EqualFold(sec.Title, "abstract") {
			p.Abstract = sec.Content
			break
		}
	}
	return p, nil
}

// Generate renders a beamer deck for the prepared paper and writes it
// to <output dir>/<paper stem>.tex. Slide planning failures fall back
// to deterministic organization; only rendering and filesystem errors
// fail the call.
func (s *Service) Generate(ctx context.Context, p *paper.Paper, opts Options) (*Result, error) {
	cfg := s.cfg.Get()

	theme := opts.Theme
	if theme == "" {
		theme = cfg.Defaults.Theme
	}
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = cfg.Defaults.OutputDir
	}

	org := organizerFromConfig(cfg.Generation)

	res := &Result{}
	var pres *generation.Presentation
	if !opts.NoLLM {
		if plan, chat := s.planSlides(ctx, p, opts, cfg); plan != nil {
			pres = org.FromPlan(plan, p)
			res.Planned = true
			res.Provider = chat.Provider
			res.TotalTokens = chat.TotalTokens
		}
	}
	if pres == nil {
		pres = org.Organize(p)
	}
	pres.Theme = theme

	doc, err := pres.Document(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to render presentation: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	stem := strings.TrimSuffix(filepath.Base(p.FilePath), filepath.Ext(p.FilePath))
	texPath := filepath.Join(outputDir, stem+".tex")
	if err := os.WriteFile(texPath, []byte(doc), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", texPath, err)
	}

	res.TexPath = texPath
	res.SlideCount = len(pres.Slides)
	s.logger.Info("deck generated",
		"path", texPath,
		"slides", res.SlideCount,
		"planned", res.Planned,
		"theme", theme)
	return res, nil
}

// planSlides asks the configured LLM for a slide plan. Every failure
// path returns nil so Generate can fall back to deterministic
// organization.
func (s *Service) planSlides(ctx context.Context, p *paper.Paper, opts Options, cfg *config.Config) (*slideplan.Plan, *providers.ChatResult) {
	if !p.HasTextContent() {
		s.logger.Info("no extracted text, skipping slide planning", "path", p.FilePath)
		return nil, nil
	}

	name := opts.Provider
	if name == "" {
		name = cfg.Defaults.LLMProvider
	}
	client, limiter, err := s.registry.Get(name)
	if err != nil {
		s.logger.Warn("LLM provider unavailable, skipping slide planning", "provider", name, "error", err)
		return nil, nil
	}

	style := opts.Prompt
	if style == "" {
		style = cfg.Defaults.Prompt
	}
	systemKey, userKey := promptKeys(style)

	sysVars := slideplan.SystemVars{
		TargetSlides: cfg.Generation.TargetSlides,
		DetailLevel:  cfg.Generation.DetailLevel,
	}
	system, err := s.prompts.RenderPrompt(systemKey, sysVars)
	if err != nil && systemKey != slideplan.SystemPromptKey {
		s.logger.Warn("prompt style unavailable, using built-in", "style", style, "error", err)
		systemKey, userKey = slideplan.SystemPromptKey, slideplan.UserPromptKey
		system, err = s.prompts.RenderPrompt(systemKey, sysVars)
	}
	if err != nil {
		s.logger.Warn("failed to render slide planning prompt", "key", systemKey, "error", err)
		return nil, nil
	}
	user, err := s.prompts.RenderPrompt(userKey, slideplan.UserVars{
		Title:    p.DisplayTitle(),
		Authors:  strings.Join(p.Authors, ", "),
		Abstract: p.Abstract,
		Sections: sectionsSummary(p.Sections),
	})
	if err != nil {
		s.logger.Warn("failed to render slide planning prompt", "key", userKey, "error", err)
		return nil, nil
	}

	req := &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Model:       opts.Model,
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
		ResponseFormat: &providers.ResponseFormat{
			Type:       "json_schema",
			JSONSchema: slideplan.PlanSchemaJSON(),
		},
	}

	chat, err := providers.Call(ctx, client, limiter, req)
	if err != nil {
		s.logger.Warn("slide planning failed, falling back to deterministic organization",
			"provider", name, "error", err)
		return nil, nil
	}

	var plan slideplan.Plan
	if err := json.Unmarshal(chat.ParsedJSON, &plan); err != nil {
		s.logger.Warn("slide plan did not match expected shape", "provider", name, "error", err)
		return nil, nil
	}
	if len(plan.Slides) == 0 {
		s.logger.Warn("slide plan contained no slides", "provider", name)
		return nil, nil
	}

	s.logger.Info("slide plan received",
		"provider", chat.Provider,
		"model", chat.ModelUsed,
		"slides", len(plan.Slides),
		"tokens", chat.TotalTokens,
		"duration", chat.ExecutionTime)
	return &plan, chat
}

func (s *Service) logExtraction(path string, r *extraction.Result) {
	attrs := []any{
		"path", path,
		"status", r.Status,
		"pages", r.PageCount,
		"raw_length", r.RawTextLength,
		"clean_length", r.CleanTextLength,
		"reduction_pct", fmt.Sprintf("%.1f", r.SanitizationReductionPct()),
		"duration", r.ExtractionTime,
		"warnings", len(r.Warnings),
	}
	switch r.Status {
	case extraction.StatusSuccess:
		s.logger.Info("text extraction complete", attrs...)
	case extraction.StatusPartial:
		s.logger.Warn("text extraction partial, continuing with available text",
			append(attrs, "error", r.Error())...)
	default:
		s.logger.Warn("text extraction failed, falling back to metadata-only mode",
			append(attrs, "error", r.Error())...)
	}
	for _, w := range r.Warnings {
		s.logger.Debug("extraction warning", "path", path, "warning", w)
	}
}

// promptKeys picks the prompt pair for a planning style.
func promptKeys(style string) (systemKey, userKey string) {
	if style == "" || style == "default" || style == "slideplan" {
		return slideplan.SystemPromptKey, slideplan.UserPromptKey
	}
	return style + ".system", style + ".user"
}

func organizerFromConfig(cfg config.GenerationCfg) *generation.Organizer {
	org := generation.NewOrganizer()
	if cfg.MaxElementsPerSlide > 0 {
		org.MaxElementsPerSlide = cfg.MaxElementsPerSlide
	}
	if cfg.LargeElementThreshold > 0 {
		org.LargeElementThreshold = cfg.LargeElementThreshold
	}
	org.CreateTitleSlide = cfg.CreateTitleSlide
	org.CreateOutlineSlide = cfg.CreateOutlineSlide
	return org
}

// sectionExcerptLimit caps how much of each section's content is sent
// to the planning prompt.
const sectionExcerptLimit = 800

func sectionsSummary(sections []extraction.Section) string {
	if len(sections) == 0 {
		return "(no sections detected)"
	}
	var b strings.Builder
	for _, sec := range sections {
		b.WriteString("## ")
		b.WriteString(sec.Title)
		b.WriteString("\n")
		b.WriteString(excerpt(sec.Content, sectionExcerptLimit))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// excerpt cuts s to at most limit bytes without splitting a rune.
func excerpt(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
