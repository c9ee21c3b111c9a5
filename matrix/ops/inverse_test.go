// SPDX-License-Identifier: MIT
package ops_test

import (
	"testing"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/katalvlaran/matcalc/matrix/ops"
	"github.com/katalvlaran/matcalc/trace"
	"github.com/stretchr/testify/require"
)

func TestGaussJordan2x2(t *testing.T) {
	a := MustDense(t, [][]float64{{4, 7}, {2, 6}})
	tr := trace.New()

	inv, err := ops.GaussJordan(a, tr)
	require.NoError(t, err)
	requireClose(t, MustDense(t, [][]float64{{0.6, -0.7}, {-0.2, 0.4}}), inv.Inverse, 1e-12)
	require.InDelta(t, 10.0, inv.Determinant, 1e-12)
	require.Equal(t, 0, inv.Swaps)

	// augment, (divide, eliminate) per column, inverse, determinant
	require.Equal(t, 7, tr.Len())
	steps := tr.Steps()
	require.Contains(t, steps[0].Formula, `\begin{array}{cc|cc}`)
	require.Equal(t, "Divide row 1 by the pivot 4.0000", steps[1].Explanation)
	require.Equal(t, "The left half is now I, so the right half is the inverse", steps[5].Explanation)
}

// TestGaussJordanPivoting forces a row swap and checks the determinant sign.
func TestGaussJordanPivoting(t *testing.T) {
	a := MustDense(t, [][]float64{{0, 1}, {1, 0}})
	tr := trace.New()

	inv, err := ops.GaussJordan(a, tr)
	require.NoError(t, err)
	requireClose(t, a, inv.Inverse, 1e-12)
	require.Equal(t, 1, inv.Swaps)
	require.InDelta(t, -1.0, inv.Determinant, 1e-12)
	require.Contains(t, tr.Steps()[1].Explanation, "Swap row 1 with row 2")
}

func TestInverseRoundTrip(t *testing.T) {
	a := MustDense(t, [][]float64{{2, -1, 0}, {-1, 2, -1}, {0, -1, 2}})

	inv, err := ops.Inverse(a, nil)
	require.NoError(t, err)
	prod, err := matrix.Mul(a, inv)
	require.NoError(t, err)
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	requireClose(t, id, prod, 1e-12)
}

func TestGaussJordanErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a       matrix.Matrix
		wantErr error
	}{
		{"nil", nil, matrix.ErrNilMatrix},
		{"non-square", MustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}}), matrix.ErrNonSquare},
		{"singular", MustDense(t, [][]float64{{1, 2}, {2, 4}}), matrix.ErrSingular},
		{"zero", MustDense(t, [][]float64{{0, 0}, {0, 0}}), matrix.ErrSingular},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ops.GaussJordan(tc.a, nil)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestGaussJordanEpsilon shows the pivot threshold is configurable.
func TestGaussJordanEpsilon(t *testing.T) {
	a := MustDense(t, [][]float64{{1e-6, 0}, {0, 1e-6}})

	_, err := ops.GaussJordan(a, nil)
	require.NoError(t, err)
	_, err = ops.GaussJordan(a, nil, matrix.WithEpsilon(1e-3))
	require.ErrorIs(t, err, matrix.ErrSingular)
}
