// SPDX-License-Identifier: MIT

// Package matrix - complex scalars and complex dense storage.
//
// Purpose:
//   - Complex is the uniform wire form of eigenvalues and eigenvector entries:
//     a real eigenvalue is simply a Complex with Imag == 0.
//   - CDense is a row-major complex128 matrix used by the eigen solver for
//     null-space work and as the eigenvector container (one vector per column).

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
)

const ctxCDense = "CDense"

// Complex is a complex number in rectangular form.
type Complex struct {
	Real float64 `json:"real" yaml:"real"`
	Imag float64 `json:"imag" yaml:"imag"`
}

// NewComplex converts a complex128 into its rectangular form.
func NewComplex(z complex128) Complex {
	return Complex{Real: real(z), Imag: imag(z)}
}

// C128 converts back to complex128.
func (z Complex) C128() complex128 { return complex(z.Real, z.Imag) }

// IsReal reports |Imag| < eps.
func (z Complex) IsReal(eps float64) bool { return math.Abs(z.Imag) < eps }

// Abs returns the modulus |z|.
func (z Complex) Abs() float64 { return cmplx.Abs(z.C128()) }

// Conj returns the complex conjugate.
func (z Complex) Conj() Complex { return Complex{Real: z.Real, Imag: -z.Imag} }

// CDense is a row-major complex128 matrix with bounds-checked accessors.
type CDense struct {
	r, c int
	data []complex128
}

// NewCDense allocates an r×c zero complex matrix.
// Errors: ErrInvalidDimensions.
func NewCDense(rows, cols int) (*CDense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &CDense{r: rows, c: cols, data: make([]complex128, rows*cols)}, nil
}

// Rows returns the row count.
func (m *CDense) Rows() int { return m.r }

// Cols returns the column count.
func (m *CDense) Cols() int { return m.c }

// At returns m[i,j] or ErrOutOfRange.
func (m *CDense) At(i, j int) (complex128, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, fmt.Errorf("%s.At(%d,%d): %w", ctxCDense, i, j, ErrOutOfRange)
	}

	return m.data[i*m.c+j], nil
}

// Set writes m[i,j] or returns ErrOutOfRange / ErrNaNInf.
func (m *CDense) Set(i, j int, v complex128) error {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return fmt.Errorf("%s.Set(%d,%d): %w", ctxCDense, i, j, ErrOutOfRange)
	}
	if cmplx.IsNaN(v) || cmplx.IsInf(v) {
		return fmt.Errorf("%s.Set(%d,%d): %w", ctxCDense, i, j, ErrNaNInf)
	}
	m.data[i*m.c+j] = v

	return nil
}

// Column copies column j.
func (m *CDense) Column(j int) ([]complex128, error) {
	if j < 0 || j >= m.c {
		return nil, fmt.Errorf("%s.Column(%d): %w", ctxCDense, j, ErrOutOfRange)
	}
	out := make([]complex128, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// SetColumn overwrites column j with v (len(v) must equal Rows()).
func (m *CDense) SetColumn(j int, v []complex128) error {
	if j < 0 || j >= m.c {
		return fmt.Errorf("%s.SetColumn(%d): %w", ctxCDense, j, ErrOutOfRange)
	}
	if len(v) != m.r {
		return fmt.Errorf("%s.SetColumn(%d): %w", ctxCDense, j, ErrDimensionMismatch)
	}
	for i := 0; i < m.r; i++ {
		m.data[i*m.c+j] = v[i]
	}

	return nil
}

// ToRows returns the matrix as rows of Complex values (row-major wire form).
func (m *CDense) ToRows() [][]Complex {
	out := make([][]Complex, m.r)
	var i, j int
	for i = 0; i < m.r; i++ {
		out[i] = make([]Complex, m.c)
		for j = 0; j < m.c; j++ {
			out[i][j] = NewComplex(m.data[i*m.c+j])
		}
	}

	return out
}

// IsReal reports whether every entry has |imag| < eps.
func (m *CDense) IsReal(eps float64) bool {
	for _, v := range m.data {
		if math.Abs(imag(v)) >= eps {
			return false
		}
	}

	return true
}

// IsFinite reports whether no entry has a NaN or infinite part.
func (m *CDense) IsFinite() bool {
	for _, v := range m.data {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}

	return true
}
