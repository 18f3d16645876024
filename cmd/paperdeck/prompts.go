package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/paperdeck/internal/home"
	"github.com/jackzampolin/paperdeck/internal/prompts"
	"github.com/jackzampolin/paperdeck/internal/prompts/slideplan"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Inspect prompt templates",
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompt templates and their override status",
	Long: `List all prompt templates with their variables and whether a
file in <home>/prompts overrides the embedded default.

Override files are named <key>.tmpl, e.g.:
  ~/.paperdeck/prompts/generation.slideplan.system.tmpl`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}

		resolver := prompts.NewResolver(h.PromptsPath(), nil)
		slideplan.RegisterPrompts(resolver)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tSOURCE\tVARIABLES\tDESCRIPTION")
		for _, p := range resolver.AllEmbedded() {
			source := "embedded"
			if resolved, err := resolver.Resolve(p.Key); err == nil && resolved.IsOverride {
				source = "override"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Key, source, strings.Join(p.Variables, ","), p.Description)
		}
		return w.Flush()
	},
}

func init() {
	promptsCmd.AddCommand(promptsListCmd)
	rootCmd.AddCommand(promptsCmd)
}
