// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy shared by
// the kernels in this package and the solvers in matrix/ops.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - NewOptions, which resolves a list of setters into an Options value.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the absolute tolerance used for pivot detection,
	// "is real" tests on eigenvalues and EqualApprox.
	DefaultEpsilon = 1e-10

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultMaxIterFactor bounds the QR eigen iteration at factor*n sweeps.
	DefaultMaxIterFactor = 100
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid  = "matrix: WithEpsilon: eps must be finite, positive"
	panicIterFactorValue = "matrix: WithMaxIterFactor: factor must be > 0"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; read them through the accessor methods.
type Options struct {
	eps            float64 // > 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf
	maxIterFactor  int     // > 0; DefaultMaxIterFactor
}

// WithEpsilon sets the numeric tolerance eps.
// Implementation:
//   - Stage 1: validate eps is finite and > 0.
//   - Stage 2: return a setter that writes eps into Options.
//
// Panics on NaN, ±Inf, zero or negative values.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps <= 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithMaxIterFactor sets the per-dimension iteration budget of the QR eigen solver.
func WithMaxIterFactor(factor int) Option {
	if factor <= 0 {
		panic(panicIterFactorValue)
	}

	return func(o *Options) { o.maxIterFactor = factor }
}

// WithNoValidateNaNInf disables finite-value checks in NewFromRows, NewZeros
// and on Set of the matrices they build.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// defaultOptions returns the zero-config policy.
func defaultOptions() Options {
	return Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
		maxIterFactor:  DefaultMaxIterFactor,
	}
}

// NewOptions resolves opts left to right over the defaults.
// Nil setters are skipped.
func NewOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// Epsilon returns the resolved tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether finite-value checks are enabled.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// MaxIterations returns the iteration bound for an n×n eigen problem.
func (o Options) MaxIterations(n int) int { return o.maxIterFactor * n }
