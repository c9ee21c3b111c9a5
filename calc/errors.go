// SPDX-License-Identifier: MIT

package calc

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/matcalc/matrix"
)

// Kind classifies a calculator failure. All kinds are detected before or
// during computation and never come with a partial result.
type Kind string

// Failure kinds.
const (
	KindInvalidInput      Kind = "InvalidInput"
	KindDimensionMismatch Kind = "DimensionMismatch"
	KindNotSquare         Kind = "NotSquare"
	KindSingularMatrix    Kind = "SingularMatrix"
)

// Error is the structured failure returned by Dispatch.
type Error struct {
	// Kind is the failure class.
	Kind Kind
	// Message is the human-readable description shown to users.
	Message string
	// Err is the underlying cause, usually a matrix sentinel.
	Err error
}

// Error implements error.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

func invalidInput(msg string, cause error) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg, Err: cause}
}

// KindOf extracts the Kind of err, or "" when err is not a *Error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}

	return ""
}

// classify maps an error from the matrix layer onto a calculator Error.
// Errors without a known sentinel (context cancellation, internal
// failures) are returned unchanged.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, matrix.ErrSingular):
		return &Error{Kind: KindSingularMatrix, Message: "matrix is singular and has no inverse", Err: err}
	case errors.Is(err, matrix.ErrNonSquare):
		return &Error{Kind: KindNotSquare, Message: "operation requires a square matrix", Err: err}
	case errors.Is(err, matrix.ErrDimensionMismatch):
		return &Error{Kind: KindDimensionMismatch, Message: "matrix dimensions are not compatible", Err: err}
	case errors.Is(err, matrix.ErrNilMatrix),
		errors.Is(err, matrix.ErrEmptyInput),
		errors.Is(err, matrix.ErrRaggedRows),
		errors.Is(err, matrix.ErrParse),
		errors.Is(err, matrix.ErrNaNInf),
		errors.Is(err, matrix.ErrInvalidDimensions):
		return invalidInput("invalid matrix input", err)
	default:
		return err
	}
}
