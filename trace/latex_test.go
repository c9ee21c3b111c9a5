// SPDX-License-Identifier: MIT
package trace_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/katalvlaran/matcalc/trace"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0000"},
		{1, "1.0000"},
		{-2.5, "-2.5000"},
		{1.0 / 3, "0.3333"},
		{-1e-9, "0.0000"}, // never "-0.0000"
		{math.Copysign(0, -1), "0.0000"},
		{12345.67891, "12345.6789"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, trace.Number(tc.in), "in=%v", tc.in)
	}
}

func TestRowsAndMatrix(t *testing.T) {
	want := `\begin{bmatrix}1.0000 & 2.0000 \\ 3.0000 & 4.0000\end{bmatrix}`
	require.Equal(t, want, trace.Rows([][]float64{{1, 2}, {3, 4}}))

	m, err := matrix.NewFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.Equal(t, want, trace.Matrix(m))
	require.Equal(t, "", trace.Matrix(nil))
}

func TestAugmented(t *testing.T) {
	got := trace.Augmented([][]float64{{2, 0, 1, 0}, {0, 2, 0, 1}}, 2)
	require.Equal(t,
		`\left[\begin{array}{cc|cc}2.0000 & 0.0000 & 1.0000 & 0.0000 \\ 0.0000 & 2.0000 & 0.0000 & 1.0000\end{array}\right]`,
		got)
	require.Equal(t, "", trace.Augmented(nil, 0))
}

func TestComplex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   complex128
		want string
	}{
		{complex(2, 0), "2.0000"},
		{complex(2, 1e-12), "2.0000"},
		{complex(0, 1), "i"},
		{complex(0, -1), "-i"},
		{complex(0, 2), "2.0000i"},
		{complex(1, 1), "1.0000+i"},
		{complex(1, -1), "1.0000-i"},
		{complex(3.5, 1.3229), "3.5000+1.3229i"},
		{complex(3.5, -1.3229), "3.5000-1.3229i"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, trace.Complex(tc.in), "in=%v", tc.in)
	}
}

func TestComplexVectorAndMatrix(t *testing.T) {
	require.Equal(t, `\begin{bmatrix}1.0000 \\ -i\end{bmatrix}`,
		trace.ComplexVector([]complex128{1, complex(0, -1)}))

	m, err := matrix.NewCDense(1, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 1, complex(0, 2)))
	require.Equal(t, `\begin{bmatrix}0.0000 & 2.0000i\end{bmatrix}`, trace.ComplexMatrix(m))
	require.Equal(t, "", trace.ComplexMatrix(nil))
}

func TestFormatComplex(t *testing.T) {
	require.Equal(t, "4.0000", trace.FormatComplex(matrix.Complex{Real: 4}))
	require.Equal(t, "1.0000i", trace.FormatComplex(matrix.Complex{Imag: 1}))
	require.Equal(t, "-1.0000i", trace.FormatComplex(matrix.Complex{Imag: -1}))
	require.Equal(t, "3.5000+1.3229i", trace.FormatComplex(matrix.Complex{Real: 3.5, Imag: 1.3229}))
	require.Equal(t, "3.5000-1.3229i", trace.FormatComplex(matrix.Complex{Real: 3.5, Imag: -1.3229}))
}
