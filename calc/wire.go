// SPDX-License-Identifier: MIT

package calc

import (
	"errors"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/katalvlaran/matcalc/trace"
)

// WireRequest is the JSON body of a calculation request.
type WireRequest struct {
	Operation string      `json:"operation" yaml:"operation"`
	Matrix1   [][]float64 `json:"matrix1" yaml:"matrix1"`
	Matrix2   [][]float64 `json:"matrix2,omitempty" yaml:"matrix2,omitempty"`
}

// Decode turns the wire form into a Request.
// Unknown operations and malformed matrices are InvalidInput errors;
// shape compatibility is left to Dispatcher.Validate.
func (w WireRequest) Decode() (Request, error) {
	op, err := ParseOperation(w.Operation)
	if err != nil {
		return Request{}, err
	}
	req := Request{Operation: op}
	if len(w.Matrix1) == 0 {
		return Request{}, invalidInput("matrix1 is required", matrix.ErrEmptyInput)
	}
	if req.A, err = matrix.NewFromRows(w.Matrix1); err != nil {
		return Request{}, invalidInput("matrix1 is malformed", err)
	}
	if !op.Binary() {
		return req, nil
	}
	if len(w.Matrix2) == 0 {
		return Request{}, invalidInput("matrix2 is required for "+string(op), matrix.ErrEmptyInput)
	}
	if req.B, err = matrix.NewFromRows(w.Matrix2); err != nil {
		return Request{}, invalidInput("matrix2 is malformed", err)
	}

	return req, nil
}

// ErrorBody is the error member of a failed Response.
type ErrorBody struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

// Response is the JSON envelope returned for every calculation.
// Eigenvectors lists one vector per eigenvalue, in eigenvalue order.
type Response struct {
	Success      bool               `json:"success" yaml:"success"`
	Message      string             `json:"message" yaml:"message"`
	Operation    Operation          `json:"operation,omitempty" yaml:"operation,omitempty"`
	Result       [][]float64        `json:"result,omitempty" yaml:"result,omitempty"`
	Eigenvalues  []matrix.Complex   `json:"eigenvalues,omitempty" yaml:"eigenvalues,omitempty"`
	Eigenvectors [][]matrix.Complex `json:"eigenvectors,omitempty" yaml:"eigenvectors,omitempty"`
	Determinant  *float64           `json:"determinant,omitempty" yaml:"determinant,omitempty"`
	Approximate  bool               `json:"approximate,omitempty" yaml:"approximate,omitempty"`
	Iterations   int                `json:"iterations,omitempty" yaml:"iterations,omitempty"`
	Steps        []trace.Step       `json:"steps" yaml:"steps"`
	Error        *ErrorBody         `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewResponse packages a successful Result.
func NewResponse(res *Result) Response {
	out := Response{
		Success:     true,
		Message:     res.Message(),
		Operation:   res.Operation,
		Eigenvalues: res.Eigenvalues,
		Determinant: res.Determinant,
		Approximate: res.Approximate,
		Iterations:  res.Iterations,
		Steps:       res.Steps,
	}
	if out.Steps == nil {
		out.Steps = []trace.Step{}
	}
	if res.Matrix != nil {
		out.Result = res.Matrix.ToRows()
	}
	if res.Eigenvectors != nil {
		out.Eigenvectors = columnsOf(res.Eigenvectors)
	}

	return out
}

// ErrorResponse packages a failure. Errors that are not *Error are
// reported without a kind.
func ErrorResponse(err error) Response {
	out := Response{Success: false, Steps: []trace.Step{}}
	var ce *Error
	if errors.As(err, &ce) {
		out.Message = ce.Message
		out.Error = &ErrorBody{Kind: ce.Kind, Message: ce.Message}
		return out
	}
	out.Message = err.Error()
	out.Error = &ErrorBody{Message: err.Error()}

	return out
}

func columnsOf(m *matrix.CDense) [][]matrix.Complex {
	out := make([][]matrix.Complex, m.Cols())
	for j := range out {
		col, _ := m.Column(j)
		vec := make([]matrix.Complex, len(col))
		for i, z := range col {
			vec[i] = matrix.NewComplex(z)
		}
		out[j] = vec
	}

	return out
}
