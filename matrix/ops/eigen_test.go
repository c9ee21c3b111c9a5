// SPDX-License-Identifier: MIT
package ops_test

import (
	"context"
	"math"
	"math/cmplx"
	"testing"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/katalvlaran/matcalc/matrix/ops"
	"github.com/katalvlaran/matcalc/trace"
	"github.com/stretchr/testify/require"
)

const eigenTol = 1e-6

func requireValues(t *testing.T, want []complex128, got []matrix.Complex) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDelta(t, real(want[i]), got[i].Real, eigenTol, "Re λ%d", i+1)
		require.InDelta(t, imag(want[i]), got[i].Imag, eigenTol, "Im λ%d", i+1)
	}
}

// requirePairs checks Av = λv and ‖v‖ = 1 for every returned pair.
func requirePairs(t *testing.T, a *matrix.Dense, res *ops.EigenResult) {
	t.Helper()
	for i, z := range res.Values {
		v, err := res.Vectors.Column(i)
		require.NoError(t, err)
		var norm float64
		for _, c := range v {
			norm += real(c)*real(c) + imag(c)*imag(c)
		}
		require.InDelta(t, 1.0, math.Sqrt(norm), 1e-9, "‖v%d‖", i+1)
		require.Less(t, residual(t, a, z.C128(), v), eigenTol, "pair %d", i+1)
	}
}

func TestEigenIdentity(t *testing.T) {
	a, err := matrix.NewIdentity(3)
	require.NoError(t, err)

	res, err := ops.Eigen(context.Background(), a, nil)
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.Equal(t, 0, res.Iterations)
	requireValues(t, []complex128{1, 1, 1}, res.Values)
	require.Equal(t, [][]matrix.Complex{
		{{Real: 1}, {}, {}},
		{{}, {Real: 1}, {}},
		{{}, {}, {Real: 1}},
	}, res.Vectors.ToRows())
}

func TestEigenSymmetric(t *testing.T) {
	a := MustDense(t, [][]float64{{2, 1}, {1, 2}})

	res, err := ops.Eigen(context.Background(), a, nil)
	require.NoError(t, err)
	requireValues(t, []complex128{3, 1}, res.Values)
	requirePairs(t, a, res)

	// first entry of largest modulus is real and positive
	v, err := res.Vectors.Column(1)
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt2/2, real(v[0]), 1e-9)
	require.InDelta(t, -math.Sqrt2/2, real(v[1]), 1e-9)
}

func TestEigenRotation(t *testing.T) {
	a := MustDense(t, [][]float64{{0, -1}, {1, 0}})
	tr := trace.New()

	res, err := ops.Eigen(context.Background(), a, tr)
	require.NoError(t, err)
	requireValues(t, []complex128{complex(0, 1), complex(0, -1)}, res.Values)
	requirePairs(t, a, res)
	require.False(t, res.Vectors.IsReal(1e-10))

	require.Equal(t, "Find λ and v ≠ 0 with Av = λv for the 2×2 matrix A", tr.Steps()[0].Explanation)
	require.Contains(t, tr.Steps()[1].Formula, `\lambda^2 - (0.0000)\lambda + (1.0000)`)
}

func TestEigenComplexPair(t *testing.T) {
	a := MustDense(t, [][]float64{{3, -2}, {1, 4}})

	res, err := ops.Eigen(context.Background(), a, nil)
	require.NoError(t, err)
	im := math.Sqrt(1.75)
	requireValues(t, []complex128{complex(3.5, im), complex(3.5, -im)}, res.Values)
	requirePairs(t, a, res)
}

func TestEigen3x3(t *testing.T) {
	a := MustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	tr := trace.New()

	res, err := ops.Eigen(context.Background(), a, tr)
	require.NoError(t, err)
	require.True(t, res.Converged)
	s := math.Sqrt(297) / 2 // roots of λ² - 15λ - 18
	requireValues(t, []complex128{complex(7.5+s, 0), 0, complex(7.5-s, 0)}, res.Values)
	requirePairs(t, a, res)

	require.Contains(t, tr.Steps()[1].Explanation, "Hessenberg")
	last, ok := tr.Last()
	require.True(t, ok)
	require.Contains(t, last.Explanation, "Check Av3 = λ3 v3")
}

// TestEigenUpperTriangular covers real distinct values read straight off the diagonal.
func TestEigenUpperTriangular(t *testing.T) {
	a := MustDense(t, [][]float64{{5, 1, 2, 0}, {0, -1, 3, 1}, {0, 0, 2, 4}, {0, 0, 0, 7}})

	res, err := ops.Eigen(context.Background(), a, nil)
	require.NoError(t, err)
	requireValues(t, []complex128{7, 5, 2, -1}, res.Values)
	requirePairs(t, a, res)
}

// TestEigenIterationLimit hits the bound on a cyclic permutation, whose
// unshifted QR iterates never deflate.
func TestEigenIterationLimit(t *testing.T) {
	a := MustDense(t, [][]float64{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}})
	tr := trace.New()

	res, err := ops.Eigen(context.Background(), a, tr, matrix.WithMaxIterFactor(1))
	require.NoError(t, err)
	require.False(t, res.Converged)
	require.Equal(t, 3, res.Iterations)
	require.Len(t, res.Values, 3)

	found := false
	for _, s := range tr.Steps() {
		if s.Explanation == "Iteration limit (3) reached before H became block triangular; the eigenvalues below are approximate" {
			found = true
		}
	}
	require.True(t, found)
}

// TestEigenTinyScale keeps distinct eigenvalues far below the default
// epsilon apart: tolerances follow the size of the entries.
func TestEigenTinyScale(t *testing.T) {
	a := MustDense(t, [][]float64{{1e-12, 0}, {0, 2e-12}})

	res, err := ops.Eigen(context.Background(), a, nil)
	require.NoError(t, err)
	require.Len(t, res.Values, 2)
	require.InDelta(t, 2e-12, res.Values[0].Real, 1e-24)
	require.InDelta(t, 1e-12, res.Values[1].Real, 1e-24)

	v1, err := res.Vectors.Column(0)
	require.NoError(t, err)
	require.InDelta(t, 0, cmplx.Abs(v1[0]), 1e-12)
	require.InDelta(t, 1, cmplx.Abs(v1[1]), 1e-12)
	v2, err := res.Vectors.Column(1)
	require.NoError(t, err)
	require.InDelta(t, 1, cmplx.Abs(v2[0]), 1e-12)
	require.InDelta(t, 0, cmplx.Abs(v2[1]), 1e-12)

	rot := MustDense(t, [][]float64{{0, -1e-12}, {1e-12, 0}})
	res, err = ops.Eigen(context.Background(), rot, nil)
	require.NoError(t, err)
	require.InDelta(t, 1e-12, res.Values[0].Imag, 1e-24)
	require.InDelta(t, -1e-12, res.Values[1].Imag, 1e-24)
}

// TestSortEigenvalues checks that the order does not depend on the input
// order, even when close real parts chain across the tie tolerance.
func TestSortEigenvalues(t *testing.T) {
	a, b, c := complex(0, 5), complex(0.8, 0), complex(1.6, 3)
	want := []complex128{a, c, b}
	for _, in := range [][]complex128{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	} {
		got := append([]complex128(nil), in...)
		ops.SortEigenvalues(got, 1)
		require.Equal(t, want, got, "input %v", in)
	}

	got := []complex128{complex(1, -2), 3, complex(1, 2), -4}
	ops.SortEigenvalues(got, 1e-10)
	require.Equal(t, []complex128{3, complex(1, 2), complex(1, -2), -4}, got)
}

func TestEigenErrors(t *testing.T) {
	ctx := context.Background()

	_, err := ops.Eigen(ctx, MustDense(t, [][]float64{{1, 2}}), nil)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
	_, err = ops.Eigen(ctx, nil, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ops.Eigen(cancelled, MustDense(t, [][]float64{{1, 2}, {3, 4}}), nil)
	require.ErrorIs(t, err, context.Canceled)
}
