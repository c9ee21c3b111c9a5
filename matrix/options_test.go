// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/stretchr/testify/require"
)

// TestDefaultOptions_Documented verifies that NewOptions() equals documented defaults.
func TestDefaultOptions_Documented(t *testing.T) {
	o := matrix.NewOptions()

	if o.Epsilon() != matrix.DefaultEpsilon {
		t.Fatalf("eps default mismatch: got %v, want %v", o.Epsilon(), matrix.DefaultEpsilon)
	}
	if o.ValidateNaNInf() != matrix.DefaultValidateNaNInf {
		t.Fatalf("validateNaNInf default mismatch: got %v, want %v", o.ValidateNaNInf(), matrix.DefaultValidateNaNInf)
	}
	if got := o.MaxIterations(3); got != 3*matrix.DefaultMaxIterFactor {
		t.Fatalf("max iterations mismatch: got %d, want %d", got, 3*matrix.DefaultMaxIterFactor)
	}
}

// TestOptions_LastWins checks left-to-right resolution and nil skipping.
func TestOptions_LastWins(t *testing.T) {
	o := matrix.NewOptions(
		matrix.WithEpsilon(1e-6),
		nil,
		matrix.WithEpsilon(1e-8),
		matrix.WithMaxIterFactor(7),
		matrix.WithNoValidateNaNInf(),
	)
	require.Equal(t, 1e-8, o.Epsilon())
	require.Equal(t, 14, o.MaxIterations(2))
	require.False(t, o.ValidateNaNInf())
}

// TestOptions_PanicOnInvalid guards the programmer-error contract.
func TestOptions_PanicOnInvalid(t *testing.T) {
	for _, eps := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		require.Panics(t, func() { matrix.WithEpsilon(eps) }, "eps=%v", eps)
	}
	require.Panics(t, func() { matrix.WithMaxIterFactor(0) })
	require.Panics(t, func() { matrix.WithMaxIterFactor(-3) })
}

// TestNoValidateNaNInf_Policy checks that the option reaches Set and ingestion.
func TestNoValidateNaNInf_Policy(t *testing.T) {
	strict, err := matrix.NewZeros(1, 2)
	require.NoError(t, err)
	require.ErrorIs(t, strict.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, strict.Set(0, 1, math.Inf(-1)), matrix.ErrNaNInf)

	loose, err := matrix.NewZeros(1, 2, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, loose.Set(0, 0, math.NaN()))
	require.NoError(t, loose.Set(0, 1, math.Inf(1)))
	v, err := loose.At(0, 0)
	require.NoError(t, err)
	require.True(t, math.IsNaN(v))

	// Clone keeps the policy.
	cp := loose.Clone()
	require.NoError(t, cp.Set(0, 0, math.Inf(1)))

	_, err = matrix.NewFromRows([][]float64{{1, math.Inf(1)}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	m, err := matrix.NewFromRows([][]float64{{1, math.Inf(1)}}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, math.NaN()))
	require.ErrorIs(t, matrix.ValidateFinite(m), matrix.ErrNaNInf)
}
