// SPDX-License-Identifier: MIT

package ops

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/katalvlaran/matcalc/trace"
)

const (
	opLU          = "LU"
	opDeterminant = "Determinant"
)

// LUFactors holds PA = LU: L unit lower triangular, U upper triangular,
// Perm[i] is the original row now at position i.
type LUFactors struct {
	L, U  *matrix.Dense
	Perm  []int
	Swaps int
}

// LU factors a square matrix with partial pivoting (Doolittle form).
// Blueprint:
//
//	Stage 1 (Validate): ensure m is square.
//	Stage 2 (Decompose): for each column k pick the largest |u[i][k]|, i ≥ k,
//	    swap rows of U, the computed part of L and Perm, then eliminate below.
//	Stage 3 (Finalize): wrap L and U as Dense.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare,
//     matrix.ErrSingular when a pivot falls below eps.
//
// Complexity: O(n³) time, O(n²) memory.
func LU(m matrix.Matrix, opts ...matrix.Option) (*LUFactors, error) {
	// Stage 1: Validate input shape
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return nil, opErrorf(opLU, err)
	}
	eps := matrix.NewOptions(opts...).Epsilon()

	u, err := rowsOf(m)
	if err != nil {
		return nil, opErrorf(opLU, err)
	}
	n := len(u)
	l := identityRows(n)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	// Stage 2: Decompose
	var (
		i, j, k, p int
		swaps      int
		factor     float64
	)
	for k = 0; k < n; k++ {
		p = k
		for i = k + 1; i < n; i++ {
			if math.Abs(u[i][k]) > math.Abs(u[p][k]) {
				p = i
			}
		}
		if math.Abs(u[p][k]) < eps {
			return nil, opErrorf(opLU, fmt.Errorf("pivot %d: %w", k+1, matrix.ErrSingular))
		}
		if p != k {
			u[k], u[p] = u[p], u[k]
			perm[k], perm[p] = perm[p], perm[k]
			for j = 0; j < k; j++ { // only the computed multipliers move
				l[k][j], l[p][j] = l[p][j], l[k][j]
			}
			swaps++
		}
		for i = k + 1; i < n; i++ {
			factor = u[i][k] / u[k][k]
			l[i][k] = factor
			for j = k; j < n; j++ {
				u[i][j] -= factor * u[k][j]
			}
			u[i][k] = 0
		}
	}

	// Stage 3: Finalize
	L, err := denseOf(l)
	if err != nil {
		return nil, opErrorf(opLU, err)
	}
	U, err := denseOf(u)
	if err != nil {
		return nil, opErrorf(opLU, err)
	}

	return &LUFactors{L: L, U: U, Perm: perm, Swaps: swaps}, nil
}

// Determinant returns det(A) from the pivoted LU factorization.
// A singular matrix is not an error here: its determinant is 0.
//
// Steps: input, factorization (L and U), determinant.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare.
func Determinant(a matrix.Matrix, tr *trace.Trace, opts ...matrix.Option) (float64, error) {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return 0, opErrorf(opDeterminant, err)
	}
	tr.Addf("A = "+trace.Matrix(a), "Compute det(A) for the %d×%d matrix A by LU factorization with partial pivoting", a.Rows(), a.Cols())

	f, err := LU(a, opts...)
	if errors.Is(err, matrix.ErrSingular) {
		tr.Add("Elimination found a column without a usable pivot, so A is singular", `\det(A) = 0`)
		return 0, nil
	}
	if err != nil {
		return 0, opErrorf(opDeterminant, err)
	}
	tr.Addf("PA = LU: L = "+trace.Matrix(f.L)+`,\; U = `+trace.Matrix(f.U),
		"Factor PA = LU (%d row swaps)", f.Swaps)

	det := 1.0
	var v float64
	for i := 0; i < f.U.Rows(); i++ {
		v, _ = f.U.At(i, i)
		det *= v
	}
	if f.Swaps%2 == 1 {
		det = -det
	}
	tr.Addf(fmt.Sprintf(`\det(A) = (-1)^{%d}\prod u_{ii} = %s`, f.Swaps, trace.Number(det)),
		"Multiply the diagonal of U and apply the sign of the row permutation")

	return det, nil
}
