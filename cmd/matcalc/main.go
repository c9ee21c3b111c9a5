// SPDX-License-Identifier: MIT

// Command matcalc is a step-narrating matrix calculator.
//
//	matcalc -op inverse -a "4 7; 2 6"
//	matcalc -op eigen -a "3 -2; 1 4" -format json
//	matcalc -serve -port 8080
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/katalvlaran/matcalc/internal/app"
	"github.com/katalvlaran/matcalc/internal/apperrors"
)

func main() {
	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
