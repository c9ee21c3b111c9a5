// SPDX-License-Identifier: MIT

// Package calc is the entry point of the calculator core.
//
// A Dispatcher takes a Request (operation name plus one or two matrices),
// validates operand shapes before any arithmetic runs, routes to the traced
// kernels in matrix/ops and packages the outcome as a Result carrying the
// step-by-step narration. Failures are *Error values with a Kind
// (InvalidInput, DimensionMismatch, NotSquare, SingularMatrix) that still
// unwrap to the matrix sentinels.
//
// Response and WireRequest are the JSON envelope of the HTTP and CLI surfaces.
package calc
