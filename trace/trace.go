// SPDX-License-Identifier: MIT

// Package trace records the human-readable narration of a computation.
//
// A Trace is an append-only, ordered list of Steps. Each Step carries a
// plain-language explanation and an optional LaTeX formula. Solvers append
// steps in exactly the order the algorithm performs them; consumers replay
// them verbatim. A nil *Trace is valid and discards everything, so kernels
// can run untraced without branching at every call site.
package trace

import "fmt"

// Step is one narrated stage of a computation.
// Formula is a LaTeX fragment; empty when the stage has no formula.
type Step struct {
	Explanation string `json:"explanation" yaml:"explanation"`
	Formula     string `json:"latex,omitempty" yaml:"latex,omitempty"`
}

// Trace is an ordered step log. Not safe for concurrent appends;
// each computation owns its own Trace.
type Trace struct {
	steps []Step
}

// New returns an empty Trace.
func New() *Trace { return &Trace{} }

// Add appends a step. No-op on a nil receiver.
func (t *Trace) Add(explanation, formula string) {
	if t == nil {
		return
	}
	t.steps = append(t.steps, Step{Explanation: explanation, Formula: formula})
}

// Addf appends a step whose explanation is built with fmt.Sprintf.
func (t *Trace) Addf(formula, format string, args ...any) {
	if t == nil {
		return
	}
	t.Add(fmt.Sprintf(format, args...), formula)
}

// Steps returns a copy of the recorded steps in insertion order.
func (t *Trace) Steps() []Step {
	if t == nil || len(t.steps) == 0 {
		return []Step{}
	}
	out := make([]Step, len(t.steps))
	copy(out, t.steps)

	return out
}

// Len returns the number of recorded steps.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}

	return len(t.steps)
}

// Last returns the most recent step and whether one exists.
func (t *Trace) Last() (Step, bool) {
	if t.Len() == 0 {
		return Step{}, false
	}

	return t.steps[len(t.steps)-1], true
}
