// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/matcalc/calc"
	"github.com/katalvlaran/matcalc/internal/config"
	"github.com/katalvlaran/matcalc/trace"
)

// Render writes resp in the given format. Quiet drops the narration in
// every format and the headings in text.
func Render(w io.Writer, resp calc.Response, format string, quiet bool) error {
	if quiet {
		resp.Steps = []trace.Step{}
	}
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderText(w, resp, quiet)
	}
}

func renderText(w io.Writer, resp calc.Response, quiet bool) error {
	var b strings.Builder
	if !resp.Success {
		b.WriteString("Error: " + resp.Message + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	if !quiet {
		fmt.Fprintf(&b, "Operation: %s\n%s\n\n", resp.Operation, resp.Message)
	}
	if len(resp.Result) > 0 {
		if !quiet {
			b.WriteString("Result:\n")
		}
		b.WriteString(FormatRows(resp.Result))
	}
	if resp.Determinant != nil {
		fmt.Fprintf(&b, "Determinant: %s\n", trace.Number(*resp.Determinant))
	}
	if len(resp.Eigenvalues) > 0 {
		b.WriteString("Eigenvalues:\n")
		for i, z := range resp.Eigenvalues {
			fmt.Fprintf(&b, "  λ%d = %s\n", i+1, trace.FormatComplex(z))
		}
		b.WriteString("Eigenvectors:\n")
		for i, v := range resp.Eigenvectors {
			cells := make([]string, len(v))
			for j, z := range v {
				cells[j] = trace.FormatComplex(z)
			}
			fmt.Fprintf(&b, "  v%d = (%s)\n", i+1, strings.Join(cells, ", "))
		}
		if resp.Approximate {
			fmt.Fprintf(&b, "Warning: iteration limit reached after %d iterations; values are approximate\n", resp.Iterations)
		}
	}

	if !quiet && len(resp.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for i, step := range resp.Steps {
			fmt.Fprintf(&b, "%3d. %s\n", i+1, step.Explanation)
			if step.Formula != "" {
				fmt.Fprintf(&b, "     %s\n", step.Formula)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatRows renders a matrix as right-aligned rows with four decimals.
func FormatRows(rows [][]float64) string {
	cells := make([][]string, len(rows))
	width := 0
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			cells[i][j] = trace.Number(v)
			width = max(width, len(cells[i][j]))
		}
	}

	var b strings.Builder
	for _, row := range cells {
		b.WriteString("[ ")
		for j, c := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strings.Repeat(" ", width-len(c)) + c)
		}
		b.WriteString(" ]\n")
	}

	return b.String()
}
