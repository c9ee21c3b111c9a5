// SPDX-License-Identifier: MIT
package ops_test

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/katalvlaran/matcalc/matrix/ops"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const propSide = 3

// entries generates the row-major entries of a propSide×propSide matrix.
func entries() gopter.Gen {
	return gen.SliceOfN(propSide*propSide, gen.Float64Range(-10, 10))
}

func square(vals []float64) *matrix.Dense {
	rows := make([][]float64, propSide)
	for i := range rows {
		rows[i] = vals[i*propSide : (i+1)*propSide]
	}
	m, _ := matrix.NewFromRows(rows)

	return m
}

// dominant makes the matrix strictly diagonally dominant, hence invertible.
func dominant(vals []float64) *matrix.Dense {
	m := square(vals)
	for i := 0; i < propSide; i++ {
		var sum float64
		for j := 0; j < propSide; j++ {
			v, _ := m.At(i, j)
			sum += math.Abs(v)
		}
		_ = m.Set(i, i, sum+1)
	}

	return m
}

func closeTo(a, b matrix.Matrix, tol float64) bool {
	ok, err := matrix.AllClose(a, b, 0, tol)
	return err == nil && ok
}

// TestAlgebraicLaws_PropertyBased checks the identities the calculator relies on.
func TestAlgebraicLaws_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("A + B = B + A", prop.ForAll(
		func(x, y []float64) bool {
			a, b := square(x), square(y)
			ab, err1 := ops.Add(a, b, nil)
			ba, err2 := ops.Add(b, a, nil)
			return err1 == nil && err2 == nil && closeTo(ab, ba, 0)
		},
		entries(), entries(),
	))

	properties.Property("A - A = 0", prop.ForAll(
		func(x []float64) bool {
			a := square(x)
			d, err := ops.Sub(a, a, nil)
			if err != nil {
				return false
			}
			z, _ := matrix.ZerosLike(a)
			return closeTo(d, z, 0)
		},
		entries(),
	))

	properties.Property("(AB)C = A(BC)", prop.ForAll(
		func(x, y, z []float64) bool {
			a, b, c := square(x), square(y), square(z)
			ab, _ := ops.Mul(a, b, nil)
			left, err1 := ops.Mul(ab, c, nil)
			bc, _ := ops.Mul(b, c, nil)
			right, err2 := ops.Mul(a, bc, nil)
			return err1 == nil && err2 == nil && closeTo(left, right, 1e-9)
		},
		entries(), entries(), entries(),
	))

	properties.Property("(Aᵀ)ᵀ = A", prop.ForAll(
		func(x []float64) bool {
			a := square(x)
			at, _ := ops.Transpose(a, nil)
			att, err := ops.Transpose(at, nil)
			return err == nil && closeTo(att, a, 0)
		},
		entries(),
	))

	properties.TestingRun(t)
}

// TestInverse_PropertyBased checks A·A⁻¹ = I and det(A) agreement between
// Gauss-Jordan and LU on diagonally dominant matrices.
func TestInverse_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)
	id, _ := matrix.NewIdentity(propSide)

	properties.Property("A × A⁻¹ = I", prop.ForAll(
		func(x []float64) bool {
			a := dominant(x)
			inv, err := ops.Inverse(a, nil)
			if err != nil {
				return false
			}
			p, err := matrix.Mul(a, inv)
			return err == nil && closeTo(p, id, 1e-9)
		},
		entries(),
	))

	properties.Property("Gauss-Jordan and LU determinants agree", prop.ForAll(
		func(x []float64) bool {
			a := dominant(x)
			gj, err1 := ops.GaussJordan(a, nil)
			det, err2 := ops.Determinant(a, nil)
			if err1 != nil || err2 != nil {
				return false
			}
			return math.Abs(gj.Determinant-det) <= 1e-9*math.Max(1, math.Abs(det))
		},
		entries(),
	))

	properties.TestingRun(t)
}

// sized generates the row-major entries of an n×n matrix with 1 <= n <= 6.
func sized() gopter.Gen {
	return gen.IntRange(1, 6).FlatMap(func(v interface{}) gopter.Gen {
		n := v.(int)
		return gen.SliceOfN(n*n, gen.Float64Range(-10, 10))
	}, reflect.TypeOf([]float64(nil)))
}

func squareOf(vals []float64) *matrix.Dense {
	n := int(math.Round(math.Sqrt(float64(len(vals)))))
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = vals[i*n : (i+1)*n]
	}
	m, _ := matrix.NewFromRows(rows)

	return m
}

// TestEigen_PropertyBased checks Av = λv with unit v for every eigenpair of
// random matrices up to 6×6.
func TestEigen_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Av = λv", prop.ForAll(
		func(x []float64) bool {
			a := squareOf(x)
			res, err := ops.Eigen(context.Background(), a, nil)
			if err != nil || len(res.Values) != a.Rows() {
				return false
			}
			scale, _ := matrix.MaxAbs(a)
			tol := 1e-6 * math.Max(1, scale)
			for i, z := range res.Values {
				v, err := res.Vectors.Column(i)
				if err != nil {
					return false
				}
				var norm float64
				for _, c := range v {
					norm += real(c)*real(c) + imag(c)*imag(c)
				}
				if math.Abs(math.Sqrt(norm)-1) > 1e-9 || residual(t, a, z.C128(), v) > tol {
					return false
				}
			}
			return true
		},
		sized(),
	))

	properties.TestingRun(t)
}
