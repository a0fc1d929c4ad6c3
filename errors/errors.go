// Package errors provides error handling for simmer.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing messages
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrStateCorrupt) {
//	    // handle unreadable pipeline state
//	}
//
// Note the pipeline's error taxonomy: malformed records are never Go
// errors — they route to quarantine with a reason code. Only
// infrastructure failures (unreadable state, broken store, unreachable
// source) travel through this package.
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// GetStack is an alias for GetReportableStackTrace for convenience.
var GetStack = crdb.GetReportableStackTrace

// Sentinel errors for the pipeline's infrastructure failure modes.
// Use these with errors.Is() for type-safe checking and wrap them with
// errors.Wrap() to add context while preserving the type.
var (
	// ErrStateCorrupt indicates the persisted hash-store state file could
	// not be read or parsed. The run must not commit new state on top of it.
	ErrStateCorrupt = New("pipeline state corrupt")

	// ErrSourceUnavailable indicates the document-store collaborator could
	// not be scanned (missing export, unreadable file, malformed JSON).
	ErrSourceUnavailable = New("document source unavailable")

	// ErrStoreFailure indicates the relational table store rejected an
	// operation (open, migrate, insert, or scan).
	ErrStoreFailure = New("table store failure")
)

// IsStateCorrupt checks if an error is or wraps ErrStateCorrupt.
func IsStateCorrupt(err error) bool {
	return err != nil && Is(err, ErrStateCorrupt)
}

// IsSourceUnavailable checks if an error is or wraps ErrSourceUnavailable.
func IsSourceUnavailable(err error) bool {
	return err != nil && Is(err, ErrSourceUnavailable)
}

// IsStoreFailure checks if an error is or wraps ErrStoreFailure.
func IsStoreFailure(err error) bool {
	return err != nil && Is(err, ErrStoreFailure)
}
