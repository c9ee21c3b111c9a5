// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/katalvlaran/matcalc/calc"
	"github.com/katalvlaran/matcalc/internal/apperrors"
	"github.com/katalvlaran/matcalc/internal/logging"
	"github.com/katalvlaran/matcalc/internal/service"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, HealthResponse{Status: "healthy", Timestamp: time.Now().Unix()})
}

// handleOperations lists the supported operations.
func (s *Server) handleOperations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	resp := OperationsResponse{MaxDimension: s.cfg.MaxDimension}
	if resp.MaxDimension <= 0 {
		resp.MaxDimension = calc.DefaultMaxDimension
	}
	for _, op := range calc.Operations() {
		resp.Operations = append(resp.Operations, OperationInfo{
			Name:        op,
			Description: op.Describe(),
			Binary:      op.Binary(),
			Square:      op.NeedsSquare(),
		})
	}

	s.writeJSONResponse(w, http.StatusOK, resp)
}

// handleCalculate runs one calculation and answers with the calc.Response
// envelope. Calculator errors are 422, malformed bodies 400, timeouts 504.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var wire calc.WireRequest
	if status, err := decodeBody(r, &wire); err != nil {
		s.writeCalcError(w, r, status, err)
		return
	}
	req, err := wire.Decode()
	if err != nil {
		s.writeCalcError(w, r, statusFor(err), err)
		return
	}

	res, err := s.service.Calculate(r.Context(), req)
	if err != nil {
		s.writeCalcError(w, r, statusFor(err), err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, calc.NewResponse(res))
}

// handleBatch runs every request of the batch concurrently. The HTTP
// status is 200 whenever the batch itself was accepted; per-item failures
// are reported inside the item envelopes.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var batch BatchRequest
	if status, err := decodeBody(r, &batch); err != nil {
		s.writeCalcError(w, r, status, err)
		return
	}

	start := time.Now()
	outcomes, err := s.service.CalculateBatch(r.Context(), batch.Requests)
	switch {
	case errors.Is(err, service.ErrEmptyBatch):
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, service.ErrBatchTooLarge):
		s.writeErrorResponse(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	case err != nil:
		s.writeCalcError(w, r, statusFor(err), err)
		return
	}

	resp := BatchResponse{Results: make([]calc.Response, len(outcomes))}
	for i, out := range outcomes {
		if out.Err != nil {
			resp.Results[i] = errorEnvelope(out.Err)
			resp.Failed++
			continue
		}
		resp.Results[i] = calc.NewResponse(out.Result)
		resp.Succeeded++
	}
	resp.Success = resp.Failed == 0
	resp.Duration = time.Since(start).String()

	s.writeJSONResponse(w, http.StatusOK, resp)
}

// decodeBody reads a JSON body into dst; on failure it returns the HTTP
// status and an InvalidInput error.
func decodeBody(r *http.Request, dst any) (int, error) {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, &calc.Error{
				Kind:    calc.KindInvalidInput,
				Message: "request body too large",
				Err:     err,
			}
		}
		return http.StatusBadRequest, &calc.Error{
			Kind:    calc.KindInvalidInput,
			Message: "malformed JSON body",
			Err:     err,
		}
	}

	return http.StatusOK, nil
}

// statusFor maps a calculation error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case calc.KindOf(err) != "":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorEnvelope builds the failure envelope without leaking internals.
func errorEnvelope(err error) calc.Response {
	switch {
	case calc.KindOf(err) != "":
		return calc.ErrorResponse(err)
	case apperrors.IsContextError(err):
		return calc.ErrorResponse(errors.New("calculation timed out or was cancelled"))
	default:
		return calc.ErrorResponse(errors.New("internal error"))
	}
}

// writeCalcError logs and writes a failure envelope.
func (s *Server) writeCalcError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("calculation failed", err,
			logging.String("request_id", RequestIDFrom(r.Context())),
			logging.Int("status", status),
		)
	} else {
		s.logger.Debug("calculation rejected",
			logging.String("request_id", RequestIDFrom(r.Context())),
			logging.Err(err),
		)
	}
	s.writeJSONResponse(w, status, errorEnvelope(err))
}

// writeJSONResponse writes data as JSON with the given status. The body is
// encoded before the header is sent; an encoding failure becomes a 500.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("encoding JSON response", err, logging.Int("status", statusCode))
		statusCode = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{
			Error:   http.StatusText(statusCode),
			Message: "response could not be encoded",
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err = w.Write(append(body, '\n')); err != nil {
		s.logger.Printf("Error writing JSON response: %v", err)
	}
}

// writeErrorResponse writes a generic error body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
