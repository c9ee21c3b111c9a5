// SPDX-License-Identifier: MIT

package calc

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/katalvlaran/matcalc/matrix/ops"
	"github.com/katalvlaran/matcalc/trace"
)

// DefaultMaxDimension bounds rows and columns of every operand.
const DefaultMaxDimension = 50

// verifyTolerance bounds |A·A⁻¹ - I| before the inverse is flagged as ill-conditioned.
const verifyTolerance = 1e-8

// Request is one calculation: an operation and its operands.
// B is ignored by unary operations.
type Request struct {
	Operation Operation
	A         matrix.Matrix
	B         matrix.Matrix
}

// Result is the outcome of a successful Dispatch.
// Exactly the fields relevant to the operation are set.
type Result struct {
	Operation Operation

	// Matrix is the matrix result of addition, subtraction, multiplication,
	// transpose and inverse.
	Matrix *matrix.Dense

	// Eigenvalues and Eigenvectors are set by eigen; column i of
	// Eigenvectors pairs with Eigenvalues[i].
	Eigenvalues  []matrix.Complex
	Eigenvectors *matrix.CDense

	// Determinant is set by determinant and inverse.
	Determinant *float64

	// Approximate is true when eigen hit its iteration bound.
	Approximate bool
	Iterations  int

	// Steps is the ordered narration of the computation.
	Steps []trace.Step
}

// Message is the user-facing summary line of the result.
func (r *Result) Message() string {
	switch r.Operation {
	case OpInverse:
		return "Inverse calculated successfully"
	case OpEigen:
		if r.Approximate {
			return "Eigenvalues approximated: iteration limit reached before convergence"
		}
		return "Eigenvalues and eigenvectors calculated successfully"
	case OpDeterminant:
		return "Determinant calculated successfully"
	default:
		return "Calculation successful"
	}
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMatrixOptions forwards numeric options (epsilon, iteration factor)
// to every kernel call.
func WithMatrixOptions(opts ...matrix.Option) Option {
	return func(d *Dispatcher) { d.matrixOpts = append(d.matrixOpts, opts...) }
}

// WithMaxDimension bounds operand rows and columns; n <= 0 keeps the default.
func WithMaxDimension(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxDim = n
		}
	}
}

// Dispatcher validates requests and routes them to the traced kernels.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	matrixOpts []matrix.Option
	maxDim     int
}

// NewDispatcher returns a Dispatcher configured by opts.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{maxDim: DefaultMaxDimension}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// MaxDimension reports the operand size bound.
func (d *Dispatcher) MaxDimension() int { return d.maxDim }

// Dispatch validates req and runs it.
// Blueprint:
//
//	Stage 1 (Validate): operation known, operands present and within bounds,
//	    shapes compatible; nothing is computed on failure.
//	Stage 2 (Compute): run the kernel with a fresh trace.
//	Stage 3 (Check): reject results that overflowed to NaN or ±Inf.
//	Stage 4 (Package): Result with the trace steps.
//
// Errors are *Error values, except context cancellation which is returned
// as ctx.Err().
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Result, error) {
	if err := d.Validate(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		tr  = trace.New()
		res = &Result{Operation: req.Operation}
		err error
	)
	switch req.Operation {
	case OpAddition:
		err = res.setMatrix(ops.Add(req.A, req.B, tr))
	case OpSubtraction:
		err = res.setMatrix(ops.Sub(req.A, req.B, tr))
	case OpMultiplication:
		err = res.setMatrix(ops.Mul(req.A, req.B, tr))
	case OpTranspose:
		err = res.setMatrix(ops.Transpose(req.A, tr))
	case OpInverse:
		err = d.inverse(req.A, tr, res)
	case OpEigen:
		err = d.eigen(ctx, req.A, tr, res)
	case OpDeterminant:
		var det float64
		det, err = ops.Determinant(req.A, tr, d.matrixOpts...)
		res.Determinant = &det
	}
	if err != nil {
		return nil, classify(err)
	}
	if err = checkFinite(res); err != nil {
		return nil, err
	}
	res.Steps = tr.Steps()

	return res, nil
}

// Validate checks req without computing anything.
func (d *Dispatcher) Validate(req Request) error {
	if !isCanonical(req.Operation) {
		return invalidInput(fmt.Sprintf("unknown operation %q", req.Operation), nil)
	}
	if err := d.validateOperand("matrix1", req.A); err != nil {
		return err
	}
	if req.Operation.Binary() {
		if err := d.validateOperand("matrix2", req.B); err != nil {
			return err
		}
	}

	switch {
	case req.Operation == OpAddition || req.Operation == OpSubtraction:
		if req.A.Rows() != req.B.Rows() || req.A.Cols() != req.B.Cols() {
			return &Error{
				Kind:    KindDimensionMismatch,
				Message: fmt.Sprintf("%s requires matrices of the same shape, got %s and %s", req.Operation, shape(req.A), shape(req.B)),
				Err:     matrix.ErrDimensionMismatch,
			}
		}
	case req.Operation == OpMultiplication:
		if req.A.Cols() != req.B.Rows() {
			return &Error{
				Kind:    KindDimensionMismatch,
				Message: fmt.Sprintf("multiplication requires columns of A to equal rows of B, got %s and %s", shape(req.A), shape(req.B)),
				Err:     matrix.ErrDimensionMismatch,
			}
		}
	case req.Operation.NeedsSquare():
		if !matrix.IsSquare(req.A) {
			return &Error{
				Kind:    KindNotSquare,
				Message: fmt.Sprintf("%s requires a square matrix, got %s", req.Operation, shape(req.A)),
				Err:     matrix.ErrNonSquare,
			}
		}
	}

	return nil
}

func (d *Dispatcher) validateOperand(name string, m matrix.Matrix) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return invalidInput(name+" is required", err)
	}
	if m.Rows() <= 0 || m.Cols() <= 0 {
		return invalidInput(name+" must not be empty", matrix.ErrEmptyInput)
	}
	if m.Rows() > d.maxDim || m.Cols() > d.maxDim {
		return invalidInput(fmt.Sprintf("%s is %s, larger than the %d×%d limit", name, shape(m), d.maxDim, d.maxDim), matrix.ErrInvalidDimensions)
	}

	return nil
}

func (d *Dispatcher) inverse(a matrix.Matrix, tr *trace.Trace, res *Result) error {
	inv, err := ops.GaussJordan(a, tr, d.matrixOpts...)
	if err != nil {
		return err
	}
	res.Matrix = inv.Inverse
	if det := inv.Determinant; isFinite(det) {
		res.Determinant = &det
	} else {
		tr.Add("Note: det(A) overflows the floating-point range and is omitted", "")
	}

	check, err := matrix.Mul(a, inv.Inverse)
	if err != nil {
		return err
	}
	tr.Add("Verify: A × A⁻¹ should equal identity matrix", `A \times A^{-1} = `+trace.Matrix(check))

	id, err := matrix.NewIdentity(check.Rows())
	if err != nil {
		return err
	}
	ok, err := matrix.AllClose(check, id, 0, verifyTolerance)
	if err != nil {
		return err
	}
	if !ok {
		tr.Addf("", "Warning: A × A⁻¹ deviates from I by more than %g; the matrix is ill-conditioned", verifyTolerance)
	}

	return nil
}

func (d *Dispatcher) eigen(ctx context.Context, a matrix.Matrix, tr *trace.Trace, res *Result) error {
	er, err := ops.Eigen(ctx, a, tr, d.matrixOpts...)
	if err != nil {
		return err
	}
	res.Eigenvalues = er.Values
	res.Eigenvectors = er.Vectors
	res.Approximate = !er.Converged
	res.Iterations = er.Iterations

	return nil
}

// checkFinite rejects a result holding NaN or ±Inf. Finite operands can
// still overflow, e.g. [[1e200]] × [[1e200]].
func checkFinite(res *Result) error {
	if cause := nonFinite(res); cause != nil {
		return &Error{
			Kind:    KindInvalidInput,
			Message: "result overflows the floating-point range; use smaller values",
			Err:     cause,
		}
	}

	return nil
}

func nonFinite(res *Result) error {
	if res.Matrix != nil {
		if err := matrix.ValidateFinite(res.Matrix); err != nil {
			return err
		}
	}
	if res.Determinant != nil && !isFinite(*res.Determinant) {
		return fmt.Errorf("determinant %v: %w", *res.Determinant, matrix.ErrNaNInf)
	}
	for i, z := range res.Eigenvalues {
		if !isFinite(z.Real) || !isFinite(z.Imag) {
			return fmt.Errorf("eigenvalue %d: %w", i+1, matrix.ErrNaNInf)
		}
	}
	if res.Eigenvectors != nil && !res.Eigenvectors.IsFinite() {
		return fmt.Errorf("eigenvectors: %w", matrix.ErrNaNInf)
	}

	return nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// setMatrix stores a kernel result; it takes the kernel's return pair directly.
func (r *Result) setMatrix(m matrix.Matrix, err error) error {
	if err != nil {
		return err
	}
	if d, ok := m.(*matrix.Dense); ok {
		r.Matrix = d
		return nil
	}
	if m == nil {
		return errors.New("calc: kernel returned no matrix")
	}
	d, err := matrix.NewDense(m.Rows(), m.Cols())
	if err != nil {
		return err
	}
	var v float64
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, _ = m.At(i, j)
			_ = d.Set(i, j, v)
		}
	}
	r.Matrix = d

	return nil
}

func isCanonical(op Operation) bool {
	for _, known := range allOperations {
		if op == known {
			return true
		}
	}

	return false
}

func shape(m matrix.Matrix) string {
	return fmt.Sprintf("%d×%d", m.Rows(), m.Cols())
}
