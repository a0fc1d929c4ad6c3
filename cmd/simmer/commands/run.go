package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/recipeworks/simmer/sym"
)

// RunCmd executes the full pipeline.
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: sym.Run + " Run the full pipeline",
	Long: sym.Run + ` run — Detect, normalize, persist, validate, export

Runs every stage over the configured collections. The hash store commits
only after all downstream stages succeed, so a failed run reprocesses the
same documents next time.`,
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	_, runner, database, err := setupRunner()
	if err != nil {
		return err
	}
	defer database.Close()

	summary, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	data := pterm.TableData{
		{"Collection", "New", "Updated", "Unchanged", "Accepted", "Quarantined"},
	}
	for _, col := range summary.Collections {
		data = append(data, []string{
			col.Stats.Collection,
			strconv.Itoa(col.Stats.New),
			strconv.Itoa(col.Stats.Updated),
			strconv.Itoa(col.Stats.Unchanged),
			strconv.Itoa(col.Accepted),
			strconv.Itoa(col.Quarantined),
		})
	}
	fmt.Println()
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}

	fmt.Println()
	score := fmt.Sprintf("%.1f / 100", summary.Report.QualityScore)
	switch {
	case summary.Report.QualityScore >= 90:
		pterm.Printf("Quality score: %s\n", pterm.LightGreen(score))
	case summary.Report.QualityScore >= 70:
		pterm.Printf("Quality score: %s\n", pterm.Yellow(score))
	default:
		pterm.Printf("Quality score: %s\n", pterm.Red(score))
	}
	pterm.Printf("Run id: %s\n", pterm.Gray(summary.Manifest.RunID))
	return nil
}
