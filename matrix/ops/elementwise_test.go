// SPDX-License-Identifier: MIT
package ops_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/katalvlaran/matcalc/matrix/ops"
	"github.com/katalvlaran/matcalc/trace"
	"github.com/stretchr/testify/require"
)

func TestAddNarration(t *testing.T) {
	a := MustDense(t, [][]float64{{1, 2}, {3, 4}})
	b := MustDense(t, [][]float64{{5, 6}, {7, 8}})
	tr := trace.New()

	res, err := ops.Add(a, b, tr)
	require.NoError(t, err)
	requireClose(t, MustDense(t, [][]float64{{6, 8}, {10, 12}}), res, 0)

	// input, one per row, result
	require.Equal(t, 4, tr.Len())
	steps := tr.Steps()
	require.Contains(t, steps[0].Explanation, "Add corresponding entries")
	require.Equal(t, "Row 1: combine row 1 of A with row 1 of B", steps[1].Explanation)
	require.Equal(t, "Result", steps[3].Explanation)
	require.Contains(t, steps[3].Formula, "12.0000")
}

func TestSubNegativeParenthesized(t *testing.T) {
	a := MustDense(t, [][]float64{{1}})
	b := MustDense(t, [][]float64{{-2}})
	tr := trace.New()

	res, err := ops.Sub(a, b, tr)
	require.NoError(t, err)
	requireClose(t, MustDense(t, [][]float64{{3}}), res, 0)
	require.Contains(t, tr.Steps()[1].Formula, "1.0000-(-2.0000)")
}

func TestMulNarration(t *testing.T) {
	a := MustDense(t, [][]float64{{1, 2}, {3, 4}})
	b := MustDense(t, [][]float64{{5, 6}, {7, 8}})
	tr := trace.New()

	res, err := ops.Mul(a, b, tr)
	require.NoError(t, err)
	requireClose(t, MustDense(t, [][]float64{{19, 22}, {43, 50}}), res, 0)

	// operands, shape, one per output row, result
	require.Equal(t, 5, tr.Len())
	require.Equal(t, "A is 2×2 and B is 2×2, so the product is 2×2", tr.Steps()[1].Explanation)
	require.True(t, strings.HasPrefix(tr.Steps()[2].Formula, "c_{11} = 1.0000"))
}

func TestTransposeNarration(t *testing.T) {
	a := MustDense(t, [][]float64{{1, 2, 3}})
	tr := trace.New()

	res, err := ops.Transpose(a, tr)
	require.NoError(t, err)
	requireClose(t, MustDense(t, [][]float64{{1}, {2}, {3}}), res, 0)
	require.Equal(t, 2, tr.Len())
}

// TestFailuresWriteNoSteps ensures validation runs before any narration.
func TestFailuresWriteNoSteps(t *testing.T) {
	a := MustDense(t, [][]float64{{1, 2}})
	b := MustDense(t, [][]float64{{1, 2, 3}})
	tr := trace.New()

	_, err := ops.Add(a, b, tr)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = ops.Mul(a, b, tr)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = ops.Transpose(nil, tr)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	require.Equal(t, 0, tr.Len())
}

// TestUntraced ensures a nil trace is accepted everywhere.
func TestUntraced(t *testing.T) {
	a := MustDense(t, [][]float64{{1, 2}, {3, 4}})

	_, err := ops.Add(a, a, nil)
	require.NoError(t, err)
	_, err = ops.Mul(a, a, nil)
	require.NoError(t, err)
	_, err = ops.Transpose(a, nil)
	require.NoError(t, err)
	_, err = ops.GaussJordan(a, nil)
	require.NoError(t, err)
	_, err = ops.Determinant(a, nil)
	require.NoError(t, err)
}
