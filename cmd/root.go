package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aaron-Ben/Magentic-mini/internal/output"
	"github.com/Aaron-Ben/Magentic-mini/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "websurfer",
	Short: "Inspect rendered web pages for automation agents",
	Long:  "A CLI tool that turns a rendered web page into machine-consumable snapshots: interactive elements, viewport state, metadata, visible text, and markdown.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Use the root persistent flag directly to avoid conflicts with
		// subcommand local flags.
		format, _ := rootCmd.PersistentFlags().GetString("format")

		// Smart default: auto-detect format when not explicitly set.
		// Piped output (agent context) → json format.
		// Terminal output (human) → yaml format.
		if format == "" {
			if output.IsOutputPiped() {
				format = "json"
			} else {
				format = "yaml"
			}
		}

		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if prettyFlag := cmd.Flags().Lookup("pretty"); prettyFlag != nil {
			if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
				output.PrettyOutput = true
			}
		}
		return nil
	}
}
