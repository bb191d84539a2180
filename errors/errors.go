// Package errors provides error handling for pyjava.
//
// It re-exports github.com/cockroachdb/errors so every package wraps,
// annotates and inspects errors the same way:
//
//	if err := decode(data); err != nil {
//	    return errors.Wrap(err, "failed to decode syntax tree")
//	}
//
//	return errors.WithHint(err, "run the file through `python3 -m ast` first")
//
// Generator defects (an unresolved placeholder, an unbalanced scope stack)
// are reported with AssertionFailedf so they carry a stack trace and are
// recognisable with IsAssertionFailure.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessagef = crdb.WithMessagef
)

// User-facing annotations
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Inspection
var (
	Is            = crdb.Is
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Assertions
var (
	AssertionFailedf   = crdb.AssertionFailedf
	IsAssertionFailure = crdb.IsAssertionFailure
)

// Sentinel errors. Wrap them to add context; test with Is.
var (
	// ErrMalformedTree indicates the input syntax tree could not be decoded
	ErrMalformedTree = New("malformed syntax tree")

	// ErrUnsupportedInput indicates an input format the decoder does not know
	ErrUnsupportedInput = New("unsupported input")

	// ErrParserFailed indicates the external Python parser exited with an error
	ErrParserFailed = New("python parser failed")

	// ErrOutOfDate indicates generated Java differs from the files on disk
	ErrOutOfDate = New("generated sources are out of date")
)

// IsMalformedTree reports whether err is or wraps ErrMalformedTree
func IsMalformedTree(err error) bool {
	return err != nil && Is(err, ErrMalformedTree)
}

// IsParserFailure reports whether err is or wraps ErrParserFailed
func IsParserFailure(err error) bool {
	return err != nil && Is(err, ErrParserFailed)
}

// NewMalformedTreeError creates a malformed-tree error with a formatted message
func NewMalformedTreeError(format string, args ...interface{}) error {
	return Wrap(ErrMalformedTree, Newf(format, args...).Error())
}

// NewUnsupportedInputError creates an unsupported-input error with a formatted message
func NewUnsupportedInputError(format string, args ...interface{}) error {
	return Wrap(ErrUnsupportedInput, Newf(format, args...).Error())
}
