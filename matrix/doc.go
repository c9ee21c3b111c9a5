// SPDX-License-Identifier: MIT
// Package matrix provides the dense real matrix used by the calculator,
// its basic algebra and the supporting types the solvers build on.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with safe (error-returning) accessors,
//     built from row slices (NewFromRows) or the "1 2; 3 4" text form (ParseDense).
//   - Add, Sub, Mul, Transpose, Scale and MatVec, each returning a fresh matrix.
//   - IsSquare, EqualApprox and AllClose for shape and tolerance checks.
//   - Complex and CDense, the complex scalar and matrix types used for
//     eigenvalues and eigenvectors.
//   - A sentinel error set (ErrDimensionMismatch, ErrNonSquare, ErrSingular, ...)
//     matched with errors.Is, and functional Options (WithEpsilon, WithMaxIterFactor).
//
// Step-by-step variants of these operations, Gauss-Jordan inversion and the
// QR eigen solver live in matrix/ops.
package matrix
