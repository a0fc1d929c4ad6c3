package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recipeworks/simmer/cmd/simmer/commands"
	"github.com/recipeworks/simmer/logger"
)

var rootCmd = &cobra.Command{
	Use:   "simmer",
	Short: "simmer - incremental recipe data pipeline",
	Long: `simmer - incremental ETL for recipe data.

Scans document-store export collections, detects changed documents by
content fingerprint, normalizes and deduplicates them into relational
tables, and scores data quality over the full table state.

Available commands:
  run      - Run the full pipeline
  detect   - Change detection only, without processing
  validate - Re-run quality checks over current tables
  config   - Show resolved configuration
  version  - Show version information

Examples:
  simmer run               # Full pipeline run
  simmer detect            # Preview changes without committing state
  simmer detect --commit   # Mark current source as seen
  simmer validate          # Recompute the quality report`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(commands.RunCmd)
	rootCmd.AddCommand(commands.DetectCmd)
	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
