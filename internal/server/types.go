// SPDX-License-Identifier: MIT

package server

import "github.com/katalvlaran/matcalc/calc"

// ErrorResponse is the body of non-calculation errors (method, routing).
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// OperationInfo describes one supported operation.
type OperationInfo struct {
	Name        calc.Operation `json:"name"`
	Description string         `json:"description"`
	Binary      bool           `json:"binary"`
	Square      bool           `json:"square"`
}

// OperationsResponse is the body of GET /operations.
type OperationsResponse struct {
	Operations   []OperationInfo `json:"operations"`
	MaxDimension int             `json:"max_dimension"`
}

// BatchRequest is the body of POST /calculate/batch.
type BatchRequest struct {
	Requests []calc.WireRequest `json:"requests"`
}

// BatchResponse carries one envelope per request, in request order.
type BatchResponse struct {
	Success   bool            `json:"success"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Results   []calc.Response `json:"results"`
	Duration  string          `json:"duration"`
}
