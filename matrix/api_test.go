// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewIdentity(t *testing.T) {
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, id.ToRows())

	_, err = matrix.NewIdentity(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestZeros(t *testing.T) {
	z, err := matrix.NewZeros(2, 3)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 0, 0}, {0, 0, 0}}, z.ToRows())

	like, err := matrix.ZerosLike(hide{z})
	require.NoError(t, err)
	require.Equal(t, 2, like.Rows())
	require.Equal(t, 3, like.Cols())

	_, err = matrix.ZerosLike(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestResize covers growing, shrinking and mixed re-dimensioning.
func TestResize(t *testing.T) {
	t.Parallel()

	src := MustDense(t, [][]float64{{1, 2}, {3, 4}})
	tests := []struct {
		name       string
		rows, cols int
		want       [][]float64
	}{
		{"grow", 3, 3, [][]float64{{1, 2, 0}, {3, 4, 0}, {0, 0, 0}}},
		{"shrink", 1, 1, [][]float64{{1}}},
		{"mixed", 1, 3, [][]float64{{1, 2, 0}}},
		{"same", 2, 2, [][]float64{{1, 2}, {3, 4}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := matrix.Resize(src, tc.rows, tc.cols)
			require.NoError(t, err)
			require.Equal(t, tc.want, out.ToRows())
		})
	}
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, src.ToRows()) // source untouched

	_, err := matrix.Resize(src, 0, 2)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.Resize(nil, 2, 2)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
