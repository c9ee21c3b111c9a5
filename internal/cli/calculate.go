// SPDX-License-Identifier: MIT

// Package cli implements the one-shot command-line calculator:
//
//	matcalc -op inverse -a "4 7; 2 6"
//	matcalc -op multiplication -a "1 2; 3 4" -b "5; 6" -format json
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/matcalc/calc"
	"github.com/katalvlaran/matcalc/internal/apperrors"
	"github.com/katalvlaran/matcalc/internal/config"
	"github.com/katalvlaran/matcalc/internal/service"
	"github.com/katalvlaran/matcalc/matrix"
)

// Run executes the calculation described by cfg and renders it to stdout.
// Progress goes to stderr. Calculation failures are rendered in the
// chosen format and returned.
func Run(ctx context.Context, cfg config.AppConfig, svc service.Service, stdout, stderr io.Writer) error {
	if cfg.ListOperations {
		return ListOperations(stdout)
	}

	req, err := BuildRequest(cfg)
	if err != nil {
		return err
	}

	sp := spinnerFor(stderr, cfg.Quiet)
	sp.UpdateSuffix(fmt.Sprintf(" computing %s...", req.Operation))
	sp.Start()
	res, err := svc.Calculate(ctx, req)
	sp.Stop()

	if err != nil {
		if apperrors.IsContextError(err) {
			return err
		}
		if rerr := Render(stdout, calc.ErrorResponse(err), cfg.Format, cfg.Quiet); rerr != nil {
			return rerr
		}
		return apperrors.CalculationError{Cause: err}
	}

	return Render(stdout, calc.NewResponse(res), cfg.Format, cfg.Quiet)
}

// BuildRequest parses the operation and the textual matrices of cfg.
func BuildRequest(cfg config.AppConfig) (calc.Request, error) {
	if cfg.Operation == "" {
		return calc.Request{}, apperrors.NewConfigError("missing -op (one of: %s)", opNames())
	}
	op, err := calc.ParseOperation(cfg.Operation)
	if err != nil {
		return calc.Request{}, apperrors.NewConfigError("unrecognized operation: '%s'", cfg.Operation)
	}
	if cfg.MatrixA == "" {
		return calc.Request{}, apperrors.NewConfigError("missing -a (matrix rows separated by ';')")
	}

	req := calc.Request{Operation: op}
	if req.A, err = parseMatrix("matrix1", cfg.MatrixA); err != nil {
		return calc.Request{}, err
	}
	if op.Binary() {
		if cfg.MatrixB == "" {
			return calc.Request{}, apperrors.NewConfigError("operation %s needs -b", op)
		}
		if req.B, err = parseMatrix("matrix2", cfg.MatrixB); err != nil {
			return calc.Request{}, err
		}
	}

	return req, nil
}

func parseMatrix(name, text string) (*matrix.Dense, error) {
	m, err := matrix.ParseDense(text)
	if err != nil {
		return nil, &calc.Error{
			Kind:    calc.KindInvalidInput,
			Message: fmt.Sprintf("%s: could not parse %q", name, text),
			Err:     err,
		}
	}
	return m, nil
}

// ListOperations prints the supported operations as a table.
func ListOperations(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "OPERATION\tOPERANDS\tDESCRIPTION")
	for _, op := range calc.Operations() {
		operands := "A"
		if op.Binary() {
			operands = "A, B"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", op, operands, op.Describe())
	}
	return tw.Flush()
}

func opNames() string {
	var s string
	for i, op := range calc.Operations() {
		if i > 0 {
			s += ", "
		}
		s += string(op)
	}
	return s
}
