// Package config loads simmer configuration from TOML files and the
// environment using Viper. Precedence (lowest to highest): system config,
// user config, project config found by walking up from the working
// directory, then SIMMER_* environment variables.
package config

import "path/filepath"

// DefaultDirPermissions for created config/output directories
const DefaultDirPermissions = 0o755

// Config represents the simmer pipeline configuration
type Config struct {
	Source   SourceConfig   `mapstructure:"source"`
	Output   OutputConfig   `mapstructure:"output"`
	Database DatabaseConfig `mapstructure:"database"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Log      LogConfig      `mapstructure:"log"`
}

// SourceConfig configures the document-store collaborator boundary
type SourceConfig struct {
	// Dir holds one <collection>.json export file per collection
	Dir string `mapstructure:"dir"`
}

// OutputConfig configures where run artifacts land
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// StateFile is the hash-store snapshot, read at run start and committed
// only after downstream stages succeed.
func (o OutputConfig) StateFile() string {
	return filepath.Join(o.Dir, "state", "pipeline_state.json")
}

// BadDataDir holds per-run quarantine outputs grouped by category.
func (o OutputConfig) BadDataDir() string {
	return filepath.Join(o.Dir, "bad_data")
}

// ValidationDir holds the machine and human quality reports.
func (o OutputConfig) ValidationDir() string {
	return filepath.Join(o.Dir, "validation")
}

// TablesDir holds the per-entity CSV exports for the reporting collaborator.
func (o OutputConfig) TablesDir() string {
	return filepath.Join(o.Dir, "etl")
}

// LogsDir holds run manifests.
func (o OutputConfig) LogsDir() string {
	return filepath.Join(o.Dir, "logs")
}

// DatabaseConfig configures the SQLite table store
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// PipelineConfig configures run behavior
type PipelineConfig struct {
	// Collections scanned per run, in order
	Collections []string `mapstructure:"collections"`

	// FingerprintIgnoreFields are volatile, pipeline-assigned fields
	// excluded from the content fingerprint so they never force a
	// spurious Updated classification
	FingerprintIgnoreFields []string `mapstructure:"fingerprint_ignore_fields"`

	// SampleCap bounds per-check sample lists in the quality report
	SampleCap int `mapstructure:"sample_cap"`
}

// LogConfig configures logging output
type LogConfig struct {
	JSON bool `mapstructure:"json"`
}
