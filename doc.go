// SPDX-License-Identifier: MIT

// Package matcalc is a step-by-step matrix calculator: every result comes
// with the ordered narration of how it was computed, each step a short
// explanation plus a LaTeX formula.
//
// What is in the box?
//
//	• Operations: addition, subtraction, multiplication, transpose,
//	  Gauss-Jordan inverse, LU determinant, QR eigenvalues and eigenvectors
//	• Narration: an append-only step trace filled in algorithm order
//	• Surfaces: a command-line tool and a JSON HTTP service
//
// Under the hood the module is organized as:
//
//	matrix:       Dense matrices, validators, sentinel errors, text parsing
//	matrix/ops:   narrated solvers (elementwise, Gauss-Jordan, LU, QR, eigen)
//	trace:        Step, Trace and the LaTeX/number formatting helpers
//	calc:         operation catalogue, validation, dispatcher, wire envelope
//	internal:     config, logging, app errors, service, HTTP server, CLI
//	cmd/matcalc:  the binary
//
// Quick example:
//
//	matcalc -op inverse -a "4 7; 2 6"
//
// prints A⁻¹ = [[0.6, -0.7], [-0.2, 0.4]] followed by the Gauss-Jordan
// steps that produced it and an A × A⁻¹ check.
//
//	go install github.com/katalvlaran/matcalc/cmd/matcalc@latest
package matcalc
