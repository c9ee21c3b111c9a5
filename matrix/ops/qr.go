// SPDX-License-Identifier: MIT

package ops

import (
	"math"

	"github.com/katalvlaran/matcalc/matrix"
)

const opQR = "QR"

// QR returns the Householder factorization m = Q×R for an r×c matrix
// with r ≥ c: Q is r×r orthogonal, R is r×c upper triangular.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (r < c).
//
// Complexity: O(r²c) time, O(r² + rc) memory.
func QR(m matrix.Matrix) (Q, R *matrix.Dense, err error) {
	if err = matrix.ValidateNotNil(m); err != nil {
		return nil, nil, opErrorf(opQR, err)
	}
	if m.Rows() < m.Cols() {
		return nil, nil, opErrorf(opQR, matrix.ErrDimensionMismatch)
	}
	a, err := rowsOf(m)
	if err != nil {
		return nil, nil, opErrorf(opQR, err)
	}

	q, r := householderQR(a)
	if Q, err = denseOf(q); err != nil {
		return nil, nil, opErrorf(opQR, err)
	}
	if R, err = denseOf(r); err != nil {
		return nil, nil, opErrorf(opQR, err)
	}

	return Q, R, nil
}

// householderQR factors a (m×n, m ≥ n) into q (m×m) and r (m×n), a = q·r.
// Implementation:
//   - Stage 1: r = copy(a), q = I.
//   - Stage 2: for each column k, build v with x = r[k:, k] and
//     alpha = -sign(x0)·‖x‖, v = x - alpha·e1; apply H = I - 2vvᵀ/vᵀv
//     to r from the left and accumulate q ← q·H.
//   - Stage 3: write exact zeros below the diagonal of r.
//
// On Hessenberg input every v has two non-zeros, so q stays Hessenberg.
func householderQR(a [][]float64) (q, r [][]float64) {
	m, n := len(a), len(a[0])
	r = cloneRows(a)
	q = identityRows(m)
	v := make([]float64, m)

	var (
		i, j, k, l  int
		norm, alpha float64
		vnorm2, s   float64
	)
	for k = 0; k < n && k < m-1; k++ {
		// Stage 2: reflector for column k
		norm = 0
		for i = k; i < m; i++ {
			norm += r[i][k] * r[i][k]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		alpha = -norm
		if r[k][k] < 0 {
			alpha = norm
		}
		vnorm2 = 0
		for i = k; i < m; i++ {
			v[i] = r[i][k]
			if i == k {
				v[i] -= alpha
			}
			vnorm2 += v[i] * v[i]
		}
		if vnorm2 == 0 {
			continue
		}

		// r ← H·r (rows k..m-1)
		for j = 0; j < n; j++ {
			s = 0
			for i = k; i < m; i++ {
				s += v[i] * r[i][j]
			}
			s = 2 * s / vnorm2
			for i = k; i < m; i++ {
				r[i][j] -= s * v[i]
			}
		}
		// q ← q·H (columns k..m-1)
		for i = 0; i < m; i++ {
			s = 0
			for l = k; l < m; l++ {
				s += q[i][l] * v[l]
			}
			s = 2 * s / vnorm2
			for l = k; l < m; l++ {
				q[i][l] -= s * v[l]
			}
		}
	}

	// Stage 3: exact triangular shape
	for i = 1; i < m; i++ {
		for j = 0; j < i && j < n; j++ {
			r[i][j] = 0
		}
	}

	return q, r
}
