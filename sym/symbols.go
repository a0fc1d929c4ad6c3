// Package sym defines canonical symbols for simmer pipeline stages and
// system markers. These symbols are stable across CLI output, structured
// logs, and documentation.
package sym

// Pipeline stage markers.
const (
	// Scan marks document-source scans (the export stage).
	Scan = "⇲"

	// Detect marks change detection against the hash store.
	Detect = "Δ"

	// Normalize marks the flatten/dedup stage.
	Normalize = "⚗"

	// Quarantine marks records routed to the quarantine sink.
	Quarantine = "⊘"

	// Validate marks the full-table quality scan.
	Validate = "✓"
)

// System markers.
const (
	// DB marks database operations.
	DB = "⛁"

	// Run marks whole-pipeline lifecycle events.
	Run = "➤"
)

// Name returns the human name for a known symbol, or "" for unknown input.
func Name(symbol string) string {
	switch symbol {
	case Scan:
		return "scan"
	case Detect:
		return "detect"
	case Normalize:
		return "normalize"
	case Quarantine:
		return "quarantine"
	case Validate:
		return "validate"
	case DB:
		return "db"
	case Run:
		return "run"
	}
	return ""
}
