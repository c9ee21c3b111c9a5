// SPDX-License-Identifier: MIT

package trace

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/matcalc/matrix"
)

// Presentation constants. Values are rounded here and only here; the
// numeric results the formulas describe keep full precision.
const (
	// Decimals is the number of digits after the point in formulas and text output.
	Decimals = 4

	// RealTolerance decides when an imaginary part is shown as zero.
	RealTolerance = 1e-10

	numberVerb = "%.4f"
	halfUnit   = 0.5e-4 // values that round to ±0.0000
)

// clean maps values that would print as "-0.0000" to 0.
func clean(v float64) float64 {
	if math.Abs(v) < halfUnit {
		return 0
	}

	return v
}

// Number formats v with four decimals.
func Number(v float64) string { return fmt.Sprintf(numberVerb, clean(v)) }

// Rows renders a row slice as a LaTeX bmatrix.
func Rows(rows [][]float64) string {
	lines := make([]string, len(rows))
	cells := make([]string, 0)
	for i, row := range rows {
		cells = cells[:0]
		for _, v := range row {
			cells = append(cells, Number(v))
		}
		lines[i] = strings.Join(cells, " & ")
	}

	return `\begin{bmatrix}` + strings.Join(lines, ` \\ `) + `\end{bmatrix}`
}

// Matrix renders m as a LaTeX bmatrix. Unreadable cells render as "?".
func Matrix(m matrix.Matrix) string {
	if m == nil {
		return ""
	}
	rows := make([][]float64, m.Rows())
	for i := range rows {
		rows[i] = make([]float64, m.Cols())
		for j := range rows[i] {
			v, err := m.At(i, j)
			if err != nil {
				v = math.NaN()
			}
			rows[i][j] = v
		}
	}

	return strings.ReplaceAll(Rows(rows), "NaN", "?")
}

// Augmented renders [left | right] rows, split after column split.
func Augmented(rows [][]float64, split int) string {
	if len(rows) == 0 {
		return ""
	}
	width := len(rows[0])
	colSpec := strings.Repeat("c", split) + "|" + strings.Repeat("c", width-split)
	lines := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = Number(v)
		}
		lines[i] = strings.Join(cells, " & ")
	}

	return `\left[\begin{array}{` + colSpec + `}` + strings.Join(lines, ` \\ `) + `\end{array}\right]`
}

// Complex renders z for LaTeX:
//   - real numbers as "a",
//   - pure imaginary as "bi", with "i" and "-i" for ±1,
//   - otherwise "a+bi" / "a-bi", dropping a unit coefficient.
func Complex(z complex128) string {
	re, im := real(z), imag(z)
	if math.Abs(im) < RealTolerance {
		return Number(re)
	}
	if math.Abs(re) < RealTolerance {
		switch {
		case math.Abs(im-1) < RealTolerance:
			return "i"
		case math.Abs(im+1) < RealTolerance:
			return "-i"
		}
		return Number(im) + "i"
	}
	sign := "+"
	if im < 0 {
		sign = "-"
	}
	mag := math.Abs(im)
	if math.Abs(mag-1) < RealTolerance {
		return Number(re) + sign + "i"
	}

	return Number(re) + sign + Number(mag) + "i"
}

// ComplexVector renders v as a LaTeX column vector.
func ComplexVector(v []complex128) string {
	cells := make([]string, len(v))
	for i, z := range v {
		cells[i] = Complex(z)
	}

	return `\begin{bmatrix}` + strings.Join(cells, ` \\ `) + `\end{bmatrix}`
}

// ComplexMatrix renders m as a LaTeX bmatrix of complex entries.
func ComplexMatrix(m *matrix.CDense) string {
	if m == nil {
		return ""
	}
	rows := m.ToRows()
	lines := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, z := range row {
			cells[j] = Complex(z.C128())
		}
		lines[i] = strings.Join(cells, " & ")
	}

	return `\begin{bmatrix}` + strings.Join(lines, ` \\ `) + `\end{bmatrix}`
}

// FormatComplex renders z as plain text: "a", "bi" or "a+bi" / "a-bi",
// always with four decimals. Used by text renderers outside LaTeX.
func FormatComplex(z matrix.Complex) string {
	if math.Abs(z.Imag) < RealTolerance {
		return Number(z.Real)
	}
	if math.Abs(z.Real) < RealTolerance {
		return Number(z.Imag) + "i"
	}
	sign := "+"
	if clean(z.Imag) < 0 {
		sign = ""
	}

	return Number(z.Real) + sign + Number(z.Imag) + "i"
}
