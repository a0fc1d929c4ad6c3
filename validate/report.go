package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/recipeworks/simmer/errors"
)

// WriteJSON writes the machine-readable report.
func (r QualityReport) WriteJSON(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create report dir for %s", path)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal quality report")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// WriteMarkdown writes the human report with issues grouped by severity,
// most severe first.
func (r QualityReport) WriteMarkdown(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create report dir for %s", path)
	}
	if err := os.WriteFile(path, []byte(r.markdown()), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

func (r QualityReport) markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Data Quality Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total records | %d |\n", r.TotalRecords)
	fmt.Fprintf(&b, "| Total issues | %d |\n", r.TotalIssueCount)
	fmt.Fprintf(&b, "| Quality score | %.1f / 100 |\n\n", r.QualityScore)

	if len(r.Issues) == 0 {
		b.WriteString("No issues found.\n")
		return b.String()
	}

	grouped := make(map[Severity][]Issue)
	for _, issue := range r.Issues {
		grouped[issue.Severity] = append(grouped[issue.Severity], issue)
	}

	severities := make([]Severity, 0, len(grouped))
	for s := range grouped {
		severities = append(severities, s)
	}
	sort.Slice(severities, func(i, j int) bool {
		return severityRank(severities[i]) < severityRank(severities[j])
	})

	for _, severity := range severities {
		fmt.Fprintf(&b, "## %s\n\n", severity)
		for _, issue := range grouped[severity] {
			fmt.Fprintf(&b, "### %s (%d)\n\n", issue.CheckName, issue.Count)
			if len(issue.Samples) > 0 {
				b.WriteString("Samples:\n")
				for _, s := range issue.Samples {
					fmt.Fprintf(&b, "- `%s`\n", s)
				}
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
