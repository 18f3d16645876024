package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/paperdeck/internal/deck"
)

var (
	generateOutput   string
	generateTheme    string
	generateProvider string
	generateModel    string
	generatePrompt   string
	generateNoLLM    bool
	generateNoText   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <paper.pdf | directory>",
	Short: "Generate a beamer slide deck from a PDF paper",
	Long: `Generate a LaTeX beamer slide deck from a research paper PDF.

Pass a directory to process every PDF in it, bounded by the configured
worker count. Per-paper failures in batch mode are reported but do not
abort the run.

Examples:
  paperdeck generate paper.pdf
  paperdeck generate paper.pdf --theme Berlin --provider openai
  paperdeck generate papers/ --output decks/
  paperdeck generate paper.pdf --no-llm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, _, _, err := buildService()
		if err != nil {
			return err
		}

		opts := deck.Options{
			Provider:     generateProvider,
			Model:        generateModel,
			Theme:        generateTheme,
			OutputDir:    generateOutput,
			Prompt:       generatePrompt,
			NoLLM:        generateNoLLM,
			NoExtraction: generateNoText,
		}

		st, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if st.IsDir() {
			return runBatch(cmd, svc, args[0], opts)
		}

		p, err := svc.PreparePaper(ctx, args[0], opts)
		if err != nil {
			return err
		}
		res, err := svc.Generate(ctx, p, opts)
		if err != nil {
			return err
		}

		fmt.Printf("Wrote %s (%d slides", res.TexPath, res.SlideCount)
		if res.Planned {
			fmt.Printf(", planned by %s, %d tokens", res.Provider, res.TotalTokens)
		}
		fmt.Println(")")
		return nil
	},
}

func runBatch(cmd *cobra.Command, svc *deck.Service, dir string, opts deck.Options) error {
	items, err := svc.GenerateBatch(cmd.Context(), dir, opts)
	if err != nil {
		return err
	}

	var failed int
	for _, item := range items {
		if item.Err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", item.Path, item.Err)
			continue
		}
		fmt.Printf("OK    %s -> %s (%d slides)\n", item.Path, item.Result.TexPath, item.Result.SlideCount)
	}

	if failed == len(items) {
		return fmt.Errorf("all %d papers failed", failed)
	}
	if failed > 0 {
		fmt.Printf("%d of %d papers failed\n", failed, len(items))
	}
	return nil
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output directory (default from config)")
	generateCmd.Flags().StringVar(&generateTheme, "theme", "", "beamer theme (default from config)")
	generateCmd.Flags().StringVar(&generateProvider, "provider", "", "LLM provider for slide planning (default from config)")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "model override for the selected provider")
	generateCmd.Flags().StringVar(&generatePrompt, "prompt", "", "planning prompt style from the prompt library (default from config)")
	generateCmd.Flags().BoolVar(&generateNoLLM, "no-llm", false, "skip LLM slide planning, organize deterministically")
	generateCmd.Flags().BoolVar(&generateNoText, "no-text-extraction", false, "skip PDF text extraction, use metadata only")

	rootCmd.AddCommand(generateCmd)
}
