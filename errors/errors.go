// Package errors provides error handling for Baton.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints on compile failures
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
//	// Add hints for users
//	return errors.WithHint(err, "reconnect the block's value input")
//
//	// Check errors
//	if errors.Is(err, errors.ErrUnknownKind) {
//	    // handle unregistered block kind
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
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapOnce    = crdb.UnwrapOnce
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Assertions and panics
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Compile-time sentinel errors. The ensemble package wraps these into
// structured CompileErrors carrying the offending node's id and kind;
// callers branch on them with errors.Is().
var (
	// ErrUnknownKind indicates a node whose kind is not in the registry
	ErrUnknownKind = New("unknown node kind")

	// ErrDanglingReference indicates a connection naming a node id that
	// does not exist in the patch
	ErrDanglingReference = New("dangling node reference")

	// ErrCyclicValueInput indicates a node reachable from one of its own
	// value inputs, which cannot be rendered as an expression
	ErrCyclicValueInput = New("cyclic value input")
)

// Library sentinel errors for use across Baton.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidDocument indicates a patch document that could not be decoded
	ErrInvalidDocument = New("invalid patch document")

	// ErrVersionMismatch indicates a patch whose requires constraint is not
	// satisfied by this compiler build
	ErrVersionMismatch = New("patch requires an incompatible compiler version")
)

// IsCompileError reports whether err is or wraps one of the fatal
// compile sentinels.
func IsCompileError(err error) bool {
	return err != nil && IsAny(err, ErrUnknownKind, ErrDanglingReference, ErrCyclicValueInput)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidDocumentError checks if an error is or wraps ErrInvalidDocument
func IsInvalidDocumentError(err error) bool {
	return err != nil && Is(err, ErrInvalidDocument)
}

// IsVersionMismatchError checks if an error is or wraps ErrVersionMismatch
func IsVersionMismatchError(err error) bool {
	return err != nil && Is(err, ErrVersionMismatch)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewInvalidDocumentError creates an invalid-document error with a formatted message
func NewInvalidDocumentError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidDocument, Newf(format, args...).Error())
}
