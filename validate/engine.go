// Package validate runs the quality check battery over the full normalized
// dataset and produces a quality report. Unlike normalization, which sees
// only the run's delta, every check here is relational and scans the whole
// table state.
package validate

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/recipeworks/simmer/normalize"
	"github.com/recipeworks/simmer/sym"
)

// Severity is a static priority label per check, used for human triage.
// It never weights the score.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// severityRank orders severities for report grouping.
func severityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	default:
		return 3
	}
}

// Check names are stable identifiers consumed by the machine report.
const (
	CheckMissingRequiredColumns = "missing_required_columns"
	CheckOrphanInteractions     = "orphan_interactions"
	CheckNegativeTimeValues     = "negative_time_values"
	CheckInvalidIngredients     = "invalid_ingredients"
	CheckDuplicateIdentityKeys  = "duplicate_identity_keys"
	CheckInvalidSteps           = "invalid_steps"
	CheckInvalidDifficulty      = "invalid_difficulty_values"
)

// Issue is one failed check: the offense count plus a bounded sample of
// offending records for inspection, never the full list.
type Issue struct {
	CheckName string   `json:"check_name"`
	Severity  Severity `json:"severity"`
	Count     int      `json:"count"`
	Samples   []string `json:"samples"`
}

// QualityReport summarizes dataset health. Recomputed fully every run,
// never incrementally.
type QualityReport struct {
	TotalRecords    int     `json:"total_records"`
	Issues          []Issue `json:"issues"`
	TotalIssueCount int     `json:"total_issue_count"`
	QualityScore    float64 `json:"quality_score"`
}

// DefaultSampleCap bounds per-check sample lists when no cap is configured.
const DefaultSampleCap = 5

// Engine runs the check battery. Checks and their severities are fixed;
// only the sample cap is configurable.
type Engine struct {
	sampleCap int
	log       *zap.SugaredLogger
}

// NewEngine creates an Engine. sampleCap <= 0 selects DefaultSampleCap;
// logger may be nil.
func NewEngine(sampleCap int, logger *zap.SugaredLogger) *Engine {
	if sampleCap <= 0 {
		sampleCap = DefaultSampleCap
	}
	return &Engine{sampleCap: sampleCap, log: logger}
}

// Run scans the full dataset and produces the quality report. Checks run
// in battery order; only failing checks appear in the report.
func (e *Engine) Run(set normalize.RowSet) QualityReport {
	var issues []Issue

	add := func(name string, severity Severity, count int, samples []string) {
		if count == 0 {
			return
		}
		if len(samples) > e.sampleCap {
			samples = samples[:e.sampleCap]
		}
		issues = append(issues, Issue{CheckName: name, Severity: severity, Count: count, Samples: samples})
	}

	count, samples := missingRequiredColumns(set.Recipes)
	add(CheckMissingRequiredColumns, SeverityCritical, count, samples)

	count, samples = orphanInteractions(set)
	add(CheckOrphanInteractions, SeverityCritical, count, samples)

	count, samples = negativeTimeValues(set.Recipes)
	add(CheckNegativeTimeValues, SeverityHigh, count, samples)

	count, samples = invalidIngredients(set.Ingredients)
	add(CheckInvalidIngredients, SeverityHigh, count, samples)

	count, samples = duplicateIdentityKeys(set)
	add(CheckDuplicateIdentityKeys, SeverityHigh, count, samples)

	count, samples = invalidSteps(set.Steps)
	add(CheckInvalidSteps, SeverityMedium, count, samples)

	count, samples = invalidDifficultyValues(set.Recipes)
	add(CheckInvalidDifficulty, SeverityLow, count, samples)

	report := QualityReport{
		TotalRecords: len(set.Recipes) + len(set.Ingredients) + len(set.Steps) + len(set.Interactions),
		Issues:       issues,
	}
	for _, issue := range issues {
		report.TotalIssueCount += issue.Count
	}
	report.QualityScore = score(report.TotalIssueCount, report.TotalRecords)

	if e.log != nil {
		e.log.Infow(sym.Validate+" validation complete",
			"records", report.TotalRecords,
			"issues", report.TotalIssueCount,
			"score", report.QualityScore,
		)
	}
	return report
}

// score is a deliberately simple linear penalty: one issue costs about one
// percentage point per record on average. Severity is reported separately
// for triage, never folded in.
func score(issues, records int) float64 {
	if records < 1 {
		records = 1
	}
	s := 100 - 100*float64(issues)/float64(records)
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// requiredRecipeColumns must carry a value somewhere in a non-empty recipe
// table; a column blank across every row is indistinguishable from a
// column the upstream export dropped entirely.
var requiredRecipeColumns = []string{"id", "title"}

func missingRequiredColumns(recipes []normalize.RecipeRow) (int, []string) {
	if len(recipes) == 0 {
		return 0, nil
	}

	column := func(r normalize.RecipeRow, name string) string {
		if name == "id" {
			return r.ID
		}
		return r.Title
	}

	var missing []string
	for _, name := range requiredRecipeColumns {
		populated := false
		for _, r := range recipes {
			if strings.TrimSpace(column(r, name)) != "" {
				populated = true
				break
			}
		}
		if !populated {
			missing = append(missing, name)
		}
	}
	return len(missing), missing
}

func orphanInteractions(set normalize.RowSet) (int, []string) {
	known := normalize.NewKeySet()
	for _, r := range set.Recipes {
		known.Add(r.ID)
	}

	count := 0
	var samples []string
	for _, ia := range set.Interactions {
		if ia.RecipeID != "" && !known.Has(ia.RecipeID) {
			count++
			samples = append(samples, ia.ID)
		}
	}
	return count, samples
}

var timeColumns = []func(normalize.RecipeRow) string{
	func(r normalize.RecipeRow) string { return r.PrepTimeMin },
	func(r normalize.RecipeRow) string { return r.CookTimeMin },
	func(r normalize.RecipeRow) string { return r.TotalTimeMin },
}

func negativeTimeValues(recipes []normalize.RecipeRow) (int, []string) {
	count := 0
	var samples []string
	for _, r := range recipes {
		for _, col := range timeColumns {
			raw := strings.TrimSpace(col(r))
			if raw == "" {
				continue
			}
			if f, err := strconv.ParseFloat(raw, 64); err == nil && f < 0 {
				count++
				samples = append(samples, r.ID)
				break
			}
		}
	}
	return count, samples
}

func invalidIngredients(ingredients []normalize.IngredientRow) (int, []string) {
	count := 0
	var samples []string
	for _, ing := range ingredients {
		if strings.TrimSpace(ing.IngredientName) == "" {
			count++
			samples = append(samples, ing.RecipeID)
		}
	}
	return count, samples
}

// duplicateIdentityKeys re-checks what the deduplicator should have
// guaranteed. A nonzero count here means upstream state and tables have
// diverged.
func duplicateIdentityKeys(set normalize.RowSet) (int, []string) {
	count := 0
	var samples []string

	countTable := func(ids []string) {
		seen := map[string]int{}
		for _, id := range ids {
			seen[id]++
			if seen[id] == 2 {
				samples = append(samples, id)
			}
			if seen[id] > 1 {
				count++
			}
		}
	}

	recipeIDs := make([]string, 0, len(set.Recipes))
	for _, r := range set.Recipes {
		recipeIDs = append(recipeIDs, r.ID)
	}
	countTable(recipeIDs)

	interactionIDs := make([]string, 0, len(set.Interactions))
	for _, ia := range set.Interactions {
		interactionIDs = append(interactionIDs, ia.ID)
	}
	countTable(interactionIDs)

	return count, samples
}

func invalidSteps(steps []normalize.StepRow) (int, []string) {
	count := 0
	var samples []string
	for _, st := range steps {
		raw := strings.TrimSpace(st.StepNumber)
		if raw == "" {
			count++
			samples = append(samples, st.RecipeID)
			continue
		}
		if f, err := strconv.ParseFloat(raw, 64); err != nil || f <= 0 {
			count++
			samples = append(samples, st.RecipeID)
		}
	}
	return count, samples
}

var validDifficulties = map[string]struct{}{
	"easy":    {},
	"medium":  {},
	"hard":    {},
	"unknown": {},
	"":        {},
}

func invalidDifficultyValues(recipes []normalize.RecipeRow) (int, []string) {
	count := 0
	var samples []string
	for _, r := range recipes {
		difficulty := strings.ToLower(strings.TrimSpace(r.Difficulty))
		if _, ok := validDifficulties[difficulty]; !ok {
			count++
			samples = append(samples, r.ID)
		}
	}
	return count, samples
}
