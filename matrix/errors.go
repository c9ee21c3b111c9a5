// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package and its solvers (matrix/ops). Algorithms return these sentinels,
// optionally wrapped with an operation tag, and callers match them via errors.Is.
// No algorithm panics on user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." so log lines are easy to grep.
// Kernels wrap with matrixErrorf(tag, ErrX); the sentinel survives via %w.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape/parse -> NaN/Inf -> dimension mismatch -> non-square -> singular.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub with different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrSingular is returned when no usable pivot exists (|pivot| < eps)
	// during Gauss-Jordan inversion or pivoted LU.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrRaggedRows indicates a row-slice input whose rows differ in length.
	ErrRaggedRows = errors.New("matrix: rows have different lengths")

	// ErrEmptyInput indicates an empty textual or row-slice input.
	ErrEmptyInput = errors.New("matrix: empty input")

	// ErrParse indicates a textual matrix entry that is not a number.
	ErrParse = errors.New("matrix: invalid number")
)
