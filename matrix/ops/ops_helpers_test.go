// SPDX-License-Identifier: MIT
package ops_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/stretchr/testify/require"
)

// MustDense builds a *Dense from rows or fails the test.
func MustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// requireClose asserts |got - want| <= tol entrywise.
func requireClose(t *testing.T, want, got matrix.Matrix, tol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, tol)
	require.NoError(t, err)
	require.Truef(t, ok, "want\n%v\ngot\n%v", want, got)
}

// residual returns max_i |(Av)_i - λv_i| for one eigenpair.
func residual(t *testing.T, a *matrix.Dense, lambda complex128, v []complex128) float64 {
	t.Helper()
	rows := a.ToRows()
	var worst float64
	for i := range rows {
		var av complex128
		for j := range rows[i] {
			av += complex(rows[i][j], 0) * v[j]
		}
		d := av - lambda*v[i]
		if m := real(d)*real(d) + imag(d)*imag(d); m > worst {
			worst = m
		}
	}

	return math.Sqrt(worst)
}
