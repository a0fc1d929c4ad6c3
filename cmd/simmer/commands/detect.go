package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/recipeworks/simmer/sym"
)

// DetectCmd runs change detection only.
var DetectCmd = &cobra.Command{
	Use:   "detect",
	Short: sym.Detect + " Detect source changes without processing",
	Long: sym.Detect + ` detect — Classify source documents as New / Updated / Unchanged

Scans the configured collections and reports what a full run would
process. The hash store is left untouched unless --commit is given, in
which case the current source is marked as seen without being processed.`,
	RunE: runDetect,
}

var detectCommitFlag bool

func init() {
	DetectCmd.Flags().BoolVar(&detectCommitFlag, "commit", false, "Commit the updated hash store after detection")
}

func runDetect(cmd *cobra.Command, args []string) error {
	_, runner, database, err := setupRunner()
	if err != nil {
		return err
	}
	defer database.Close()

	stats, err := runner.Detect(cmd.Context(), detectCommitFlag)
	if err != nil {
		return err
	}

	data := pterm.TableData{
		{"Collection", "New", "Updated", "Unchanged", "Total"},
	}
	for _, s := range stats {
		data = append(data, []string{
			s.Collection,
			strconv.Itoa(s.New),
			strconv.Itoa(s.Updated),
			strconv.Itoa(s.Unchanged),
			strconv.Itoa(s.Total),
		})
	}
	fmt.Println()
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}

	if detectCommitFlag {
		pterm.Printf("\n%s Hash store committed\n", pterm.LightGreen("✓"))
	}
	return nil
}
