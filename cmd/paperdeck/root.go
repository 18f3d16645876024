package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/paperdeck/internal/config"
	"github.com/jackzampolin/paperdeck/internal/deck"
	"github.com/jackzampolin/paperdeck/internal/extraction"
	"github.com/jackzampolin/paperdeck/internal/home"
	"github.com/jackzampolin/paperdeck/internal/pdf"
	"github.com/jackzampolin/paperdeck/internal/prompts"
	"github.com/jackzampolin/paperdeck/internal/prompts/slideplan"
	"github.com/jackzampolin/paperdeck/internal/providers"
	"github.com/jackzampolin/paperdeck/version"
)

var (
	cfgFile  string
	homeDir  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "paperdeck",
	Short: "Generate LaTeX beamer slide decks from research papers",
	Long: `Paperdeck turns a research paper PDF into a LaTeX beamer slide deck.

The pipeline includes:
  - Text extraction with multi-column reading-order reconstruction
  - Sanitization of page numbers, headers, footers and identifiers
  - LLM-assisted slide planning with deterministic fallback
  - Beamer rendering with configurable themes`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.paperdeck/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "paperdeck home directory (default: ~/.paperdeck)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)",
	)

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger from the --log-level flag or the
// configured default.
func newLogger(cfg *config.Config) *slog.Logger {
	level := logLevel
	if level == "" {
		level = cfg.Defaults.LogLevel
	}

	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: l,
	}))
}

// buildService assembles the generation stack: config manager with hot
// reload, provider registry, prompt resolver with home-dir overrides,
// and the PDF text extractor.
func buildService() (*deck.Service, *home.Dir, *slog.Logger, error) {
	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg := cm.Get()
	logger := newLogger(cfg)

	h, err := home.New(homeDir)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, nil, nil, err
	}

	registry := providers.NewRegistry(logger)
	if err := registry.Configure(cfg.ToProviderConfigs()); err != nil {
		logger.Warn("failed to configure some LLM providers", "error", err)
	}
	cm.OnChange(func(c *config.Config) {
		if err := registry.Configure(c.ToProviderConfigs()); err != nil {
			logger.Warn("failed to reconfigure LLM providers", "error", err)
		}
	})
	cm.WatchConfig()

	resolver := prompts.NewResolver(h.PromptsPath(), logger)
	slideplan.RegisterPrompts(resolver)

	extractor := extraction.NewExtractor(pdf.NewReader(), logger)
	svc := deck.NewService(cm, registry, resolver, extractor, logger)
	return svc, h, logger, nil
}
