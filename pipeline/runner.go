// Package pipeline sequences the batch run: detect changes per collection,
// normalize and persist the delta, validate the full table state, export,
// and only then commit the hash store. A single active run is assumed.
package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/recipeworks/simmer/config"
	"github.com/recipeworks/simmer/detect"
	"github.com/recipeworks/simmer/errors"
	"github.com/recipeworks/simmer/normalize"
	"github.com/recipeworks/simmer/source"
	"github.com/recipeworks/simmer/storage"
	"github.com/recipeworks/simmer/sym"
	"github.com/recipeworks/simmer/validate"
)

// CollectionResult summarizes one collection's trip through the run.
type CollectionResult struct {
	Stats       detect.Stats
	Accepted    int
	Quarantined int
}

// Summary is everything a run produced, for the CLI to present.
type Summary struct {
	Manifest    *RunManifest
	Collections []CollectionResult
	Report      validate.QualityReport
}

// Runner owns one pipeline configuration and its collaborators.
type Runner struct {
	cfg    config.Config
	src    source.Source
	tables *storage.Tables
	log    *zap.SugaredLogger
}

// NewRunner creates a Runner. logger may be nil.
func NewRunner(cfg config.Config, src source.Source, tables *storage.Tables, logger *zap.SugaredLogger) *Runner {
	return &Runner{cfg: cfg, src: src, tables: tables, log: logger}
}

// Run executes the full pipeline. The hash store commits last, after every
// downstream stage succeeded, so a failed run reprocesses its documents on
// the next attempt instead of losing them. The manifest is written even
// when the run fails partway.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	manifest := NewManifest()
	summary := &Summary{Manifest: manifest}

	if r.log != nil {
		r.log.Infow(sym.Run+" pipeline run started", "run_id", manifest.RunID)
	}

	state, err := step(manifest, "load_state", func() (*detect.State, error) {
		return detect.LoadState(r.cfg.Output.StateFile())
	})
	if err != nil {
		return r.fail(summary, err)
	}

	next := state.Clone()
	detector := detect.NewDetector(detect.NewFingerprinter(r.cfg.Pipeline.FingerprintIgnoreFields))
	normalizer := normalize.NewNormalizer(r.log)

	for _, collection := range r.cfg.Pipeline.Collections {
		result, hashes, err := r.runCollection(ctx, manifest, detector, normalizer, collection, state)
		if err != nil {
			return r.fail(summary, err)
		}
		summary.Collections = append(summary.Collections, result)
		next.SetCollection(collection, hashes)
	}

	snapshot, err := step(manifest, "snapshot", func() (normalize.RowSet, error) {
		return r.tables.Snapshot(ctx)
	})
	if err != nil {
		return r.fail(summary, err)
	}

	report, err := step(manifest, "validate", func() (validate.QualityReport, error) {
		rep := validate.NewEngine(r.cfg.Pipeline.SampleCap, r.log).Run(snapshot)
		return rep, r.writeReports(rep)
	})
	if err != nil {
		return r.fail(summary, err)
	}
	summary.Report = report

	if _, err := step(manifest, "export", func() (struct{}, error) {
		return struct{}{}, storage.ExportCSV(r.cfg.Output.TablesDir(), snapshot)
	}); err != nil {
		return r.fail(summary, err)
	}

	// Commit point. Everything downstream of detection succeeded, so the
	// documents consumed this run are now safe to mark as seen.
	if _, err := step(manifest, "commit_state", func() (struct{}, error) {
		return struct{}{}, next.Save(r.cfg.Output.StateFile())
	}); err != nil {
		return r.fail(summary, err)
	}

	manifest.Finish(true)
	if err := manifest.Write(r.cfg.Output.LogsDir()); err != nil {
		return summary, err
	}

	if r.log != nil {
		r.log.Infow(sym.Run+" pipeline run complete",
			"run_id", manifest.RunID,
			"score", report.QualityScore,
		)
	}
	return summary, nil
}

// runCollection takes one collection from scan through quarantine output.
// The returned hash map is the collection's next hash-store state; the
// caller commits it only if the whole run succeeds.
func (r *Runner) runCollection(
	ctx context.Context,
	manifest *RunManifest,
	detector *detect.Detector,
	normalizer *normalize.Normalizer,
	collection string,
	state *detect.State,
) (CollectionResult, map[string]string, error) {
	var result CollectionResult

	docs, err := step(manifest, "scan:"+collection, func() ([]source.Document, error) {
		return r.src.Scan(ctx, collection)
	})
	if err != nil {
		return result, nil, err
	}
	if r.log != nil {
		r.log.Infow(sym.Scan+" collection scanned",
			"collection", collection,
			"documents", len(docs),
		)
	}

	changed, hashes, stats := detector.Detect(collection, docs, state.Collection(collection))
	result.Stats = stats
	if r.log != nil {
		r.log.Infow(sym.Detect+" changes detected",
			"collection", collection,
			"new", stats.New,
			"updated", stats.Updated,
			"unchanged", stats.Unchanged,
		)
	}

	// Nothing new or updated: downstream stages have no delta to process.
	if !stats.HasChanges() {
		manifest.Record("normalize:"+collection, StepSkipped, 0, nil)
		manifest.Record("persist:"+collection, StepSkipped, 0, nil)
		return result, hashes, nil
	}

	res, err := step(manifest, "normalize:"+collection, func() (normalize.Result, error) {
		return r.normalizeCollection(ctx, normalizer, collection, changed)
	})
	if err != nil {
		return result, nil, err
	}
	result.Accepted = len(changed) - len(res.Quarantined)
	result.Quarantined = len(res.Quarantined)

	if _, err := step(manifest, "persist:"+collection, func() (struct{}, error) {
		if err := r.tables.AppendRows(ctx, res.Rows); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, storage.WriteQuarantine(r.cfg.Output.BadDataDir(), collection, res.Quarantined)
	}); err != nil {
		return result, nil, err
	}

	if result.Quarantined > 0 && r.log != nil {
		r.log.Infow(sym.Quarantine+" records quarantined",
			"collection", collection,
			"count", result.Quarantined,
		)
	}

	return result, hashes, nil
}

func (r *Runner) normalizeCollection(ctx context.Context, n *normalize.Normalizer, collection string, docs []source.Document) (normalize.Result, error) {
	switch collection {
	case "recipes":
		identity, content, err := r.tables.RecipeKeys(ctx)
		if err != nil {
			return normalize.Result{}, err
		}
		return n.Recipes(docs, identity, content), nil
	case "interactions":
		identity, err := r.tables.InteractionKeys(ctx)
		if err != nil {
			return normalize.Result{}, err
		}
		return n.Interactions(docs, identity), nil
	default:
		return normalize.Result{}, errors.Newf("unknown collection %q", collection)
	}
}

// Detect runs change detection only. State commits only when commit is
// true; otherwise the hash store is untouched and a later full run will
// see the same documents as changed.
func (r *Runner) Detect(ctx context.Context, commit bool) ([]detect.Stats, error) {
	state, err := detect.LoadState(r.cfg.Output.StateFile())
	if err != nil {
		return nil, err
	}

	next := state.Clone()
	detector := detect.NewDetector(detect.NewFingerprinter(r.cfg.Pipeline.FingerprintIgnoreFields))

	var all []detect.Stats
	for _, collection := range r.cfg.Pipeline.Collections {
		docs, err := r.src.Scan(ctx, collection)
		if err != nil {
			return all, err
		}
		_, hashes, stats := detector.Detect(collection, docs, state.Collection(collection))
		all = append(all, stats)
		next.SetCollection(collection, hashes)
	}

	if commit {
		if err := next.Save(r.cfg.Output.StateFile()); err != nil {
			return all, err
		}
	}
	return all, nil
}

// Validate re-runs the quality engine over the current tables and rewrites
// the reports. No source scan, no state change.
func (r *Runner) Validate(ctx context.Context) (validate.QualityReport, error) {
	snapshot, err := r.tables.Snapshot(ctx)
	if err != nil {
		return validate.QualityReport{}, err
	}

	report := validate.NewEngine(r.cfg.Pipeline.SampleCap, r.log).Run(snapshot)
	return report, r.writeReports(report)
}

func (r *Runner) writeReports(report validate.QualityReport) error {
	dir := r.cfg.Output.ValidationDir()
	if err := report.WriteJSON(filepath.Join(dir, "validation_results.json")); err != nil {
		return err
	}
	return report.WriteMarkdown(filepath.Join(dir, "validation_report.md"))
}

// step times fn, records it on the manifest, and passes its result through.
func step[T any](manifest *RunManifest, name string, fn func() (T, error)) (T, error) {
	start := time.Now()
	out, err := fn()
	status := StepSuccess
	if err != nil {
		status = StepFailed
	}
	manifest.Record(name, status, time.Since(start), err)
	return out, err
}

func (r *Runner) fail(summary *Summary, err error) (*Summary, error) {
	summary.Manifest.Finish(false)
	if werr := summary.Manifest.Write(r.cfg.Output.LogsDir()); werr != nil && r.log != nil {
		r.log.Errorw("failed to write run manifest", "error", werr)
	}
	return summary, err
}
