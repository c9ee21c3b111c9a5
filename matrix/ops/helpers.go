// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math"

	"github.com/katalvlaran/matcalc/matrix"
)

// rowsOf copies any Matrix into private row slices.
// *Dense takes the single-copy path.
func rowsOf(m matrix.Matrix) ([][]float64, error) {
	if d, ok := m.(*matrix.Dense); ok && d != nil {
		return d.ToRows(), nil
	}
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, err
	}

	out := make([][]float64, m.Rows())
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		out[i] = make([]float64, m.Cols())
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out[i][j] = v
		}
	}

	return out, nil
}

// denseOf wraps row slices back into a *Dense.
func denseOf(rows [][]float64) (*matrix.Dense, error) {
	return matrix.NewFromRows(rows)
}

// identityRows returns I_n as row slices.
func identityRows(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		out[i][i] = 1
	}

	return out
}

// cloneRows deep-copies row slices.
func cloneRows(a [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i := range a {
		out[i] = make([]float64, len(a[i]))
		copy(out[i], a[i])
	}

	return out
}

// mulRows computes a×b for conformable row slices (i→k→j order).
func mulRows(a, b [][]float64) [][]float64 {
	n, inner, m := len(a), len(b), len(b[0])
	out := make([][]float64, n)
	var (
		i, j, k int
		av      float64
	)
	for i = 0; i < n; i++ {
		out[i] = make([]float64, m)
		for k = 0; k < inner; k++ {
			if av = a[i][k]; av == 0 {
				continue
			}
			for j = 0; j < m; j++ {
				out[i][j] += av * b[k][j]
			}
		}
	}

	return out
}

// transposeRows returns aᵀ.
func transposeRows(a [][]float64) [][]float64 {
	out := make([][]float64, len(a[0]))
	for j := range out {
		out[j] = make([]float64, len(a))
		for i := range a {
			out[j][i] = a[i][j]
		}
	}

	return out
}

// maxAbsRows returns max |a[i][j]|.
func maxAbsRows(a [][]float64) float64 {
	var best float64
	for i := range a {
		for _, v := range a[i] {
			if v = math.Abs(v); v > best {
				best = v
			}
		}
	}

	return best
}

// opErrorf tags err with the operation name, keeping the sentinel for errors.Is.
func opErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
