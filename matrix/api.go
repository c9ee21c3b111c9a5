// SPDX-License-Identifier: MIT
// Package matrix - constructors and shape utilities.
//
// Purpose:
//   - Provide thin, intention-revealing constructors (NewZeros, NewIdentity).
//   - Provide Resize, which re-dimensions a matrix and keeps the values that
//     still fit, the behavior behind the calculator's grid controls.
//
// Determinism & Policy:
//   - Fixed loop orders; no hidden work beyond the documented copies.

package matrix

import "fmt"

const opResize = "Resize"

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// Options select the NaN/Inf policy of Set (WithNoValidateNaNInf).
func NewZeros(rows, cols int, opts ...Option) (*Dense, error) {
	return newDenseWithPolicy(rows, cols, NewOptions(opts...).ValidateNaNInf())
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// ZerosLike allocates a zero matrix with m's shape.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}

	return NewDense(m.Rows(), m.Cols())
}

// Resize returns a rows×cols copy of m. Entries inside the overlapping
// top-left window keep their values; new cells are zero.
// Implementation:
//   - Stage 1: validate m and the target shape.
//   - Stage 2: copy min(rows, m.Rows()) × min(cols, m.Cols()) entries.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions.
//
// Complexity:
//   - Time O(rows*cols), Space O(rows*cols).
func Resize(m Matrix, rows, cols int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opResize, err)
	}
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opResize, fmt.Errorf("%dx%d: %w", rows, cols, err))
	}

	keepR, keepC := min(rows, m.Rows()), min(cols, m.Cols())
	var (
		i, j int
		v    float64
	)
	for i = 0; i < keepR; i++ {
		for j = 0; j < keepC; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opResize, err)
			}
			res.data[i*cols+j] = v
		}
	}

	return res, nil
}
