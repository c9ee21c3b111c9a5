// SPDX-License-Identifier: MIT
package trace_test

import (
	"testing"

	"github.com/katalvlaran/matcalc/trace"
	"github.com/stretchr/testify/require"
)

func TestTraceOrder(t *testing.T) {
	tr := trace.New()
	require.Equal(t, 0, tr.Len())
	_, ok := tr.Last()
	require.False(t, ok)

	tr.Add("first", "x = 1")
	tr.Addf("y = 2", "second step %d", 2)
	tr.Add("third", "")

	require.Equal(t, 3, tr.Len())
	require.Equal(t, []trace.Step{
		{Explanation: "first", Formula: "x = 1"},
		{Explanation: "second step 2", Formula: "y = 2"},
		{Explanation: "third"},
	}, tr.Steps())

	last, ok := tr.Last()
	require.True(t, ok)
	require.Equal(t, "third", last.Explanation)
}

// TestStepsIsCopy ensures callers cannot rewrite recorded history.
func TestStepsIsCopy(t *testing.T) {
	tr := trace.New()
	tr.Add("a", "")
	steps := tr.Steps()
	steps[0].Explanation = "mutated"

	require.Equal(t, "a", tr.Steps()[0].Explanation)
}

// TestNilTrace checks a nil *Trace silently discards everything.
func TestNilTrace(t *testing.T) {
	var tr *trace.Trace
	require.NotPanics(t, func() {
		tr.Add("x", "y")
		tr.Addf("", "x %d", 1)
	})
	require.Equal(t, 0, tr.Len())
	require.NotNil(t, tr.Steps())
	require.Empty(t, tr.Steps())
	_, ok := tr.Last()
	require.False(t, ok)
}
