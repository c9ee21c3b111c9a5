// SPDX-License-Identifier: MIT

package ops

import (
	"math"
	"math/cmplx"
)

// phaseTieTolerance separates "largest entry" candidates of equal modulus.
const phaseTieTolerance = 1e-12

// nullSpace returns a basis of {v : b·v = 0} for the square complex rows b.
// Pivots with modulus <= tol count as zero. When elimination finds full rank
// (an eigenvalue carrying rounding error), the column with the weakest pivot
// is forced free, so the result always holds at least one vector.
func nullSpace(b [][]complex128, tol float64) [][]complex128 {
	basis, pivotMag := rrefBasis(b, tol, -1)
	if len(basis) > 0 {
		return basis
	}

	weakest, weakestMag := len(b)-1, math.Inf(1)
	for col, mag := range pivotMag {
		if mag > 0 && mag < weakestMag {
			weakest, weakestMag = col, mag
		}
	}
	basis, _ = rrefBasis(b, tol, weakest)

	return basis
}

// rrefBasis runs complex Gauss-Jordan with partial pivoting on a copy of b,
// never pivoting on column forced (pass -1 for none). It returns one basis
// vector per free column: the free variable set to 1, other free variables 0,
// pivot variables read off the reduced rows. pivotMag[col] is the modulus of
// the pivot chosen for col before normalization, 0 for free columns.
func rrefBasis(b [][]complex128, tol float64, forced int) (basis [][]complex128, pivotMag []float64) {
	n := len(b)
	m := make([][]complex128, n)
	for i := range b {
		m[i] = make([]complex128, len(b[i]))
		copy(m[i], b[i])
	}
	cols := len(m[0])
	pivotMag = make([]float64, cols)
	pivotCols := make([]int, 0, n)
	isPivot := make([]bool, cols)

	var (
		row, col, i, j, p int
		best, mag         float64
		piv, factor       complex128
	)
	for col = 0; col < cols && row < n; col++ {
		if col == forced {
			continue
		}
		p, best = row, cmplx.Abs(m[row][col])
		for i = row + 1; i < n; i++ {
			if mag = cmplx.Abs(m[i][col]); mag > best {
				p, best = i, mag
			}
		}
		if best <= tol {
			continue // free column
		}
		m[row], m[p] = m[p], m[row]
		piv = m[row][col]
		for j = 0; j < cols; j++ {
			m[row][j] /= piv
		}
		for i = 0; i < n; i++ {
			if i == row {
				continue
			}
			if factor = m[i][col]; factor == 0 {
				continue
			}
			for j = 0; j < cols; j++ {
				m[i][j] -= factor * m[row][j]
			}
			m[i][col] = 0
		}
		pivotMag[col] = best
		isPivot[col] = true
		pivotCols = append(pivotCols, col)
		row++
	}

	var v []complex128
	for f := 0; f < cols; f++ {
		if isPivot[f] {
			continue
		}
		v = make([]complex128, cols)
		v[f] = 1
		for r, pc := range pivotCols {
			v[pc] = -m[r][f]
		}
		basis = append(basis, v)
	}

	return basis, pivotMag
}

// normalizeVector scales v to unit Euclidean length and rotates its phase so
// that the first entry of largest modulus is real and positive.
// A zero vector is returned unchanged.
func normalizeVector(v []complex128) []complex128 {
	var norm float64
	for _, z := range v {
		norm += real(z)*real(z) + imag(z)*imag(z)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return v
	}

	out := make([]complex128, len(v))
	idx, best := 0, -1.0
	var mag float64
	for i, z := range v {
		out[i] = z / complex(norm, 0)
		if mag = cmplx.Abs(out[i]); mag > best+phaseTieTolerance {
			idx, best = i, mag
		}
	}
	phase := cmplx.Conj(out[idx]) / complex(best, 0)
	for i := range out {
		out[i] *= phase
	}
	out[idx] = complex(best, 0) // exact real on the anchor entry

	return out
}
