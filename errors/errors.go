// Package errors provides error handling for rs2ts.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
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
//	// Classify a translation failure
//	return errors.NewUnsupportedf("reference type &%s", inner)
//
//	// Check errors
//	if errors.Is(err, errors.ErrUnsupportedConstruct) {
//	    // skip the item, keep going
//	}
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
	Mark         = crdb.Mark
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
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the translation pipeline.
// Use these with errors.Is() and wrap them with errors.Wrap() to add context.
var (
	// ErrUnsupportedConstruct marks a declaration or type shape outside the
	// translatable set (references, fn types, trait objects, ...).
	ErrUnsupportedConstruct = New("unsupported construct")

	// ErrStructuralViolation marks input that breaks a declaration invariant
	// (empty names, unions without variants, duplicate keys).
	ErrStructuralViolation = New("structural violation")

	// ErrOutOfDate indicates generated output no longer matches its source
	ErrOutOfDate = New("generated output is out of date")

	// ErrInvalidConfig indicates a configuration value failed validation
	ErrInvalidConfig = New("invalid configuration")
)

// NewUnsupportedf creates an ErrUnsupportedConstruct error with a formatted message
func NewUnsupportedf(format string, args ...interface{}) error {
	return Wrapf(ErrUnsupportedConstruct, format, args...)
}

// NewStructuralf creates an ErrStructuralViolation error with a formatted message
func NewStructuralf(format string, args ...interface{}) error {
	return Wrapf(ErrStructuralViolation, format, args...)
}

// IsUnsupported checks if an error is or wraps ErrUnsupportedConstruct
func IsUnsupported(err error) bool {
	return err != nil && Is(err, ErrUnsupportedConstruct)
}

// IsStructural checks if an error is or wraps ErrStructuralViolation
func IsStructural(err error) bool {
	return err != nil && Is(err, ErrStructuralViolation)
}

// IsSkippable reports whether err only disqualifies a single item.
// Skippable errors are recorded as diagnostics and never abort a run.
func IsSkippable(err error) bool {
	return IsUnsupported(err) || IsStructural(err)
}
