// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/katalvlaran/matcalc/trace"
)

const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
)

// Add returns A + B and narrates it: the operands, one step per row, the result.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
func Add(a, b matrix.Matrix, tr *trace.Trace) (matrix.Matrix, error) {
	return elementwise(a, b, +1, opAdd, tr)
}

// Sub returns A - B with the same narration as Add.
func Sub(a, b matrix.Matrix, tr *trace.Trace) (matrix.Matrix, error) {
	return elementwise(a, b, -1, opSub, tr)
}

// elementwise computes through matrix.Add / matrix.Sub and narrates the rows.
// Implementation:
//   - Stage 1: compute (validation happens in the kernel, before any step is written).
//   - Stage 2: input step, per-row steps, result step.
func elementwise(a, b matrix.Matrix, sign float64, op string, tr *trace.Trace) (matrix.Matrix, error) {
	var (
		res matrix.Matrix
		err error
	)
	if sign > 0 {
		res, err = matrix.Add(a, b)
	} else {
		res, err = matrix.Sub(a, b)
	}
	if err != nil {
		return nil, opErrorf(op, err)
	}
	if tr == nil {
		return res, nil
	}

	ar, err := rowsOf(a)
	if err != nil {
		return nil, opErrorf(op, err)
	}
	br, err := rowsOf(b)
	if err != nil {
		return nil, opErrorf(op, err)
	}
	rr, err := rowsOf(res)
	if err != nil {
		return nil, opErrorf(op, err)
	}

	verb, sym := "Add", "+"
	if sign < 0 {
		verb, sym = "Subtract", "-"
	}
	tr.Addf(trace.Rows(ar)+" "+sym+" "+trace.Rows(br),
		"%s corresponding entries of A and B (both %d×%d)", verb, len(ar), len(ar[0]))

	var (
		i, j  int
		terms []string
	)
	for i = range rr {
		terms = terms[:0]
		for j = range rr[i] {
			terms = append(terms, trace.Number(ar[i][j])+sym+paren(br[i][j]))
		}
		tr.Addf(
			`\begin{bmatrix}`+strings.Join(terms, " & ")+`\end{bmatrix} = `+trace.Rows([][]float64{rr[i]}),
			"Row %d: combine row %d of A with row %d of B", i+1, i+1, i+1)
	}
	tr.Add("Result", "A "+sym+" B = "+trace.Rows(rr))

	return res, nil
}

// Mul returns A × B and narrates it: the operands, the output shape,
// one step per output row spelling out each dot product, the result.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (A.Cols != B.Rows).
func Mul(a, b matrix.Matrix, tr *trace.Trace) (matrix.Matrix, error) {
	res, err := matrix.Mul(a, b)
	if err != nil {
		return nil, opErrorf(opMul, err)
	}
	if tr == nil {
		return res, nil
	}

	ar, err := rowsOf(a)
	if err != nil {
		return nil, opErrorf(opMul, err)
	}
	br, err := rowsOf(b)
	if err != nil {
		return nil, opErrorf(opMul, err)
	}
	rr, err := rowsOf(res)
	if err != nil {
		return nil, opErrorf(opMul, err)
	}

	n := len(br)
	tr.Add("Multiply A by B: each entry is a row of A times a column of B",
		trace.Rows(ar)+` \times `+trace.Rows(br))
	tr.Addf(fmt.Sprintf(`(%d \times %d)(%d \times %d) \to %d \times %d`, len(ar), n, n, len(br[0]), len(rr), len(rr[0])),
		"A is %d×%d and B is %d×%d, so the product is %d×%d", len(ar), n, n, len(br[0]), len(rr), len(rr[0]))

	var (
		i, j, k  int
		cells    []string
		products []string
	)
	for i = range rr {
		cells = cells[:0]
		for j = range rr[i] {
			products = products[:0]
			for k = 0; k < n; k++ {
				products = append(products, paren(ar[i][k])+`\cdot `+paren(br[k][j]))
			}
			cells = append(cells, fmt.Sprintf("c_{%d%d} = %s = %s", i+1, j+1, strings.Join(products, " + "), trace.Number(rr[i][j])))
		}
		tr.Addf(strings.Join(cells, `,\; `), "Row %d: dot products of row %d of A with each column of B", i+1, i+1)
	}
	tr.Add("Result", `A \times B = `+trace.Rows(rr))

	return res, nil
}

// Transpose returns Aᵀ with an input and a result step.
func Transpose(a matrix.Matrix, tr *trace.Trace) (matrix.Matrix, error) {
	res, err := matrix.Transpose(a)
	if err != nil {
		return nil, opErrorf(opTranspose, err)
	}
	if tr == nil {
		return res, nil
	}
	tr.Addf("A = "+trace.Matrix(a), "Swap rows and columns of the %d×%d matrix A", a.Rows(), a.Cols())
	tr.Add("Result", "A^{T} = "+trace.Matrix(res))

	return res, nil
}

// paren formats v, wrapping negatives in parentheses for inline arithmetic.
func paren(v float64) string {
	s := trace.Number(v)
	if strings.HasPrefix(s, "-") {
		return "(" + s + ")"
	}

	return s
}
