package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/recipeworks/simmer/sym"
)

// ValidateCmd re-runs the quality engine over the current tables.
var ValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: sym.Validate + " Re-run quality checks over current tables",
	Long: sym.Validate + ` validate — Recompute the data quality report

Scans the full table state, rewrites the validation reports, and prints
the result. No source scan, no hash store change.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, runner, database, err := setupRunner()
	if err != nil {
		return err
	}
	defer database.Close()

	report, err := runner.Validate(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	pterm.Printf("Records: %d   Issues: %d   Score: %.1f / 100\n\n",
		report.TotalRecords, report.TotalIssueCount, report.QualityScore)

	if len(report.Issues) == 0 {
		pterm.Printf("%s No issues found\n", pterm.LightGreen("✓"))
		return nil
	}

	data := pterm.TableData{{"Severity", "Check", "Count"}}
	for _, issue := range report.Issues {
		data = append(data, []string{string(issue.Severity), issue.CheckName, strconv.Itoa(issue.Count)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}

	pterm.Printf("\nFull report: %s\n", pterm.Gray(cfg.Output.ValidationDir()))
	return nil
}
