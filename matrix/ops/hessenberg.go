// SPDX-License-Identifier: MIT

package ops

import (
	"math"

	"github.com/katalvlaran/matcalc/matrix"
)

const opHessenberg = "Hessenberg"

// Hessenberg returns an upper Hessenberg matrix similar to m
// (same eigenvalues), obtained by Householder similarity transforms.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare.
//
// Complexity: O(n³) time, O(n²) memory.
func Hessenberg(m matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return nil, opErrorf(opHessenberg, err)
	}
	h, err := rowsOf(m)
	if err != nil {
		return nil, opErrorf(opHessenberg, err)
	}
	hessenbergInPlace(h)

	out, err := denseOf(h)
	if err != nil {
		return nil, opErrorf(opHessenberg, err)
	}

	return out, nil
}

// hessenbergInPlace reduces the square row slices a to upper Hessenberg form.
func hessenbergInPlace(a [][]float64) {
	hessenbergRange(a, 0, len(a)-1)
}

// hessenbergRange restores Hessenberg form inside the diagonal window
// [lo, hi] of a. Each reflector H acts on indices k+1..hi and is applied as a
// full similarity (a ← H·a·H over all rows and columns), so a stays similar
// to its input. For each column k of the window, a[k+2:hi+1, k] becomes zero.
func hessenbergRange(a [][]float64, lo, hi int) {
	n := len(a)
	if hi-lo < 2 {
		return
	}
	v := make([]float64, n)

	var (
		i, j, k, l  int
		norm, alpha float64
		vnorm2, s   float64
	)
	for k = lo; k < hi-1; k++ {
		norm = 0
		for i = k + 1; i <= hi; i++ {
			norm += a[i][k] * a[i][k]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		alpha = -norm
		if a[k+1][k] < 0 {
			alpha = norm
		}
		vnorm2 = 0
		for i = k + 1; i <= hi; i++ {
			v[i] = a[i][k]
			if i == k+1 {
				v[i] -= alpha
			}
			vnorm2 += v[i] * v[i]
		}
		if vnorm2 == 0 {
			continue
		}

		// a ← H·a (rows k+1..hi)
		for j = 0; j < n; j++ {
			s = 0
			for i = k + 1; i <= hi; i++ {
				s += v[i] * a[i][j]
			}
			s = 2 * s / vnorm2
			for i = k + 1; i <= hi; i++ {
				a[i][j] -= s * v[i]
			}
		}
		// a ← a·H (columns k+1..hi)
		for i = 0; i < n; i++ {
			s = 0
			for l = k + 1; l <= hi; l++ {
				s += a[i][l] * v[l]
			}
			s = 2 * s / vnorm2
			for l = k + 1; l <= hi; l++ {
				a[i][l] -= s * v[l]
			}
		}

		a[k+1][k] = alpha
		for i = k + 2; i <= hi; i++ {
			a[i][k] = 0
		}
	}
}
