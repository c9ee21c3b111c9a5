// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/stretchr/testify/require"
)

func TestComplex(t *testing.T) {
	z := matrix.NewComplex(complex(3, -4))

	require.Equal(t, matrix.Complex{Real: 3, Imag: -4}, z)
	require.Equal(t, complex(3, -4), z.C128())
	require.InDelta(t, 5.0, z.Abs(), 1e-12)
	require.Equal(t, matrix.Complex{Real: 3, Imag: 4}, z.Conj())
	require.False(t, z.IsReal(1e-10))
	require.True(t, matrix.Complex{Real: 1, Imag: 1e-12}.IsReal(1e-10))
}

func TestCDense(t *testing.T) {
	_, err := matrix.NewCDense(0, 1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	m, err := matrix.NewCDense(2, 2)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 2, m.Cols())

	require.NoError(t, m.Set(0, 1, complex(1, 2)))
	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, complex(1, 2), v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, cmplx.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, complex(math.Inf(1), 0)), matrix.ErrNaNInf)

	require.NoError(t, m.SetColumn(0, []complex128{5, 6}))
	col, err := m.Column(0)
	require.NoError(t, err)
	require.Equal(t, []complex128{5, 6}, col)

	require.ErrorIs(t, m.SetColumn(0, []complex128{1}), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, m.SetColumn(3, []complex128{1, 2}), matrix.ErrOutOfRange)
	_, err = m.Column(-1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	require.False(t, m.IsReal(1e-10))
	require.Equal(t, [][]matrix.Complex{
		{{Real: 5}, {Real: 1, Imag: 2}},
		{{Real: 6}, {}},
	}, m.ToRows())
}

func TestCDenseIsFinite(t *testing.T) {
	m, err := matrix.NewCDense(2, 1)
	require.NoError(t, err)
	require.True(t, m.IsFinite())

	// SetColumn copies without the Set guard.
	require.NoError(t, m.SetColumn(0, []complex128{1, complex(0, math.Inf(1))}))
	require.False(t, m.IsFinite())
}
