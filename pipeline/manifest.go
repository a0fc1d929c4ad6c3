package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/recipeworks/simmer/errors"
)

// StepStatus is the outcome of one pipeline step.
type StepStatus string

const (
	StepSuccess StepStatus = "success"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
)

// StepResult records one step of a run.
type StepResult struct {
	Name      string     `json:"name"`
	Status    StepStatus `json:"status"`
	ElapsedMS int64      `json:"elapsed_ms"`
	Error     string     `json:"error,omitempty"`
}

// RunManifest is the per-run audit record: which steps ran, in what order,
// how long they took, and where the run stopped if it failed.
type RunManifest struct {
	RunID      string       `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Success    bool         `json:"success"`
	Steps      []StepResult `json:"steps"`
}

// NewManifest starts a manifest with a fresh run id.
func NewManifest() *RunManifest {
	return &RunManifest{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
}

// Record appends a step outcome. err may be nil.
func (m *RunManifest) Record(name string, status StepStatus, elapsed time.Duration, err error) {
	step := StepResult{
		Name:      name,
		Status:    status,
		ElapsedMS: elapsed.Milliseconds(),
	}
	if err != nil {
		step.Error = err.Error()
	}
	m.Steps = append(m.Steps, step)
}

// Finish stamps the end time and overall outcome.
func (m *RunManifest) Finish(success bool) {
	m.FinishedAt = time.Now().UTC()
	m.Success = success
}

// Write persists the manifest as run_report_<id>.json under dir.
func (m *RunManifest) Write(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create manifest dir %s", dir)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal run manifest")
	}
	path := filepath.Join(dir, "run_report_"+m.RunID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
