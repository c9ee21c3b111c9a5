// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/katalvlaran/matcalc/trace"
)

const opInverse = "Inverse"

// Inversion is the full outcome of a Gauss-Jordan inversion.
type Inversion struct {
	Inverse     *matrix.Dense // A⁻¹
	Determinant float64       // product of pivots times (-1)^Swaps
	Swaps       int           // number of row exchanges performed
}

// Inverse returns A⁻¹ computed by Gauss-Jordan elimination with partial pivoting.
// It is a thin wrapper over GaussJordan for callers that only need the matrix.
func Inverse(a matrix.Matrix, tr *trace.Trace, opts ...matrix.Option) (matrix.Matrix, error) {
	inv, err := GaussJordan(a, tr, opts...)
	if err != nil {
		return nil, err
	}

	return inv.Inverse, nil
}

// GaussJordan inverts a square matrix on the augmented form [A | I].
// Blueprint:
//
//	Stage 1 (Validate): A non-nil and square.
//	Stage 2 (Augment): build the n×2n scratch [A | I]; step.
//	Stage 3 (Eliminate): for each pivot column k
//	    - choose the row r ≥ k with the largest |value| in column k;
//	      fail with ErrSingular when it is below eps,
//	    - swap r into place (step only when r != k),
//	    - divide the pivot row by the pivot (step),
//	    - clear column k from every other row (one summary step).
//	Stage 4 (Extract): the right half is A⁻¹; result and determinant steps.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrSingular.
//
// Complexity: O(n³) time, O(n²) memory.
func GaussJordan(a matrix.Matrix, tr *trace.Trace, opts ...matrix.Option) (*Inversion, error) {
	// Stage 1: Validate
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return nil, opErrorf(opInverse, err)
	}
	eps := matrix.NewOptions(opts...).Epsilon()
	n := a.Rows()

	// Stage 2: Augment
	src, err := rowsOf(a)
	if err != nil {
		return nil, opErrorf(opInverse, err)
	}
	aug := make([][]float64, n)
	var i, j, k int
	for i = 0; i < n; i++ {
		aug[i] = make([]float64, 2*n)
		copy(aug[i], src[i])
		aug[i][n+i] = 1
	}
	tr.Add("Form the augmented matrix [A | I] and reduce the left half to I", trace.Augmented(aug, n))

	// Stage 3: Eliminate
	var (
		pivotRow int
		pivot    float64
		factor   float64
		det      = 1.0
		swaps    int
	)
	for k = 0; k < n; k++ {
		pivotRow = k
		for i = k + 1; i < n; i++ {
			if math.Abs(aug[i][k]) > math.Abs(aug[pivotRow][k]) {
				pivotRow = i
			}
		}
		pivot = aug[pivotRow][k]
		if math.Abs(pivot) < eps {
			return nil, opErrorf(opInverse, fmt.Errorf("column %d has no pivot above %g: %w", k+1, eps, matrix.ErrSingular))
		}

		if pivotRow != k {
			aug[k], aug[pivotRow] = aug[pivotRow], aug[k]
			swaps++
			tr.Addf(fmt.Sprintf(`R_{%d} \leftrightarrow R_{%d}: `, k+1, pivotRow+1)+trace.Augmented(aug, n),
				"Swap row %d with row %d to bring the largest pivot (%s) of column %d onto the diagonal",
				k+1, pivotRow+1, trace.Number(pivot), k+1)
		}

		det *= pivot
		for j = 0; j < 2*n; j++ {
			aug[k][j] /= pivot
		}
		tr.Addf(fmt.Sprintf(`R_{%d} \leftarrow \frac{R_{%d}}{%s}: `, k+1, k+1, trace.Number(pivot))+trace.Augmented(aug, n),
			"Divide row %d by the pivot %s", k+1, trace.Number(pivot))

		for i = 0; i < n; i++ {
			if i == k {
				continue
			}
			if factor = aug[i][k]; factor == 0 {
				continue
			}
			for j = 0; j < 2*n; j++ {
				aug[i][j] -= factor * aug[k][j]
			}
			aug[i][k] = 0 // exact zero below/above the pivot
		}
		tr.Addf(trace.Augmented(aug, n), "Eliminate column %d from every other row", k+1)
	}

	// Stage 4: Extract
	invRows := make([][]float64, n)
	for i = 0; i < n; i++ {
		invRows[i] = make([]float64, n)
		copy(invRows[i], aug[i][n:])
	}
	inv, err := denseOf(invRows)
	if err != nil {
		return nil, opErrorf(opInverse, err)
	}
	if swaps%2 == 1 {
		det = -det
	}
	tr.Add("The left half is now I, so the right half is the inverse", "A^{-1} = "+trace.Rows(invRows))
	tr.Addf(fmt.Sprintf(`\det(A) = (-1)^{%d}\prod p_k = %s`, swaps, trace.Number(det)),
		"The determinant is the product of the pivots, negated once per row swap (%d swaps)", swaps)

	return &Inversion{Inverse: inv, Determinant: det, Swaps: swaps}, nil
}
