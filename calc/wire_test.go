// SPDX-License-Identifier: MIT

package calc_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matcalc/calc"
	"github.com/katalvlaran/matcalc/matrix"
)

func TestWireRequest_Decode(t *testing.T) {
	t.Parallel()

	req, err := calc.WireRequest{
		Operation: "multiplication",
		Matrix1:   [][]float64{{1, 2}},
		Matrix2:   [][]float64{{3}, {4}},
	}.Decode()
	require.NoError(t, err)
	require.Equal(t, calc.OpMultiplication, req.Operation)
	require.Equal(t, 2, req.B.Rows())

	// unary operations ignore matrix2 entirely
	req, err = calc.WireRequest{Operation: "inverse", Matrix1: [][]float64{{1}}, Matrix2: [][]float64{{1, 2}, {3}}}.Decode()
	require.NoError(t, err)
	require.Nil(t, req.B)

	for _, w := range []calc.WireRequest{
		{Operation: "nope", Matrix1: [][]float64{{1}}},
		{Operation: "inverse"},
		{Operation: "addition", Matrix1: [][]float64{{1}}},
		{Operation: "addition", Matrix1: [][]float64{{1, 2}, {3}}, Matrix2: [][]float64{{1}}},
	} {
		_, err = w.Decode()
		require.Equal(t, calc.KindInvalidInput, calc.KindOf(err), "%+v", w)
	}
}

func TestResponse_JSONShape(t *testing.T) {
	t.Parallel()
	req, err := calc.WireRequest{Operation: "eigen", Matrix1: [][]float64{{2, 0}, {0, 1}}}.Decode()
	require.NoError(t, err)
	res, err := calc.NewDispatcher().Dispatch(context.Background(), req)
	require.NoError(t, err)

	raw, err := json.Marshal(calc.NewResponse(res))
	require.NoError(t, err)

	var body struct {
		Success      bool               `json:"success"`
		Message      string             `json:"message"`
		Eigenvalues  []matrix.Complex   `json:"eigenvalues"`
		Eigenvectors [][]matrix.Complex `json:"eigenvectors"`
		Steps        []struct {
			Explanation string `json:"explanation"`
			Latex       string `json:"latex"`
		} `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.True(t, body.Success)
	require.Equal(t, "Eigenvalues and eigenvectors calculated successfully", body.Message)
	require.Len(t, body.Eigenvalues, 2)
	require.InDelta(t, 2, body.Eigenvalues[0].Real, 1e-12)
	require.InDelta(t, 1, body.Eigenvalues[1].Real, 1e-12)
	require.Zero(t, body.Eigenvalues[1].Imag)
	require.Len(t, body.Eigenvectors, 2)
	// first vector pairs with λ = 2: e1
	require.InDelta(t, 1, body.Eigenvectors[0][0].Real, 1e-12)
	require.InDelta(t, 0, body.Eigenvectors[0][1].Real, 1e-12)
	require.NotEmpty(t, body.Steps)
	require.NotEmpty(t, body.Steps[0].Explanation)
}

func TestErrorResponse(t *testing.T) {
	t.Parallel()
	_, err := calc.NewDispatcher().Dispatch(context.Background(), calc.Request{
		Operation: calc.OpInverse,
		A:         dense(t, [][]float64{{1, 2}, {2, 4}}),
	})
	resp := calc.ErrorResponse(err)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	require.Equal(t, calc.KindSingularMatrix, resp.Error.Kind)
	require.NotNil(t, resp.Steps)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"kind":"SingularMatrix"`)
	require.NotContains(t, string(raw), `"result"`)
}
