// SPDX-License-Identifier: MIT

// Package app wires configuration, logging, the calculation service and
// the two front ends (HTTP server and one-shot CLI) into one application.
package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/matcalc/internal/apperrors"
	"github.com/katalvlaran/matcalc/internal/cli"
	"github.com/katalvlaran/matcalc/internal/config"
	"github.com/katalvlaran/matcalc/internal/logging"
	"github.com/katalvlaran/matcalc/internal/server"
	"github.com/katalvlaran/matcalc/internal/service"
)

// Application is one configured matcalc process.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// ErrWriter receives diagnostics (typically os.Stderr).
	ErrWriter io.Writer
	// Logger is the structured logger of the application.
	Logger *logging.ZerologAdapter
}

// New parses args (args[0] is the program name) and builds the application.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "matcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(errWriter, "matcalc", cfg.LogLevel)
	logger.Debug("configuration loaded", logging.String("config", cfg.String()))

	return &Application{Config: cfg, ErrWriter: errWriter, Logger: logger}, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		fmt.Fprintln(out, VersionString())
		return apperrors.ExitSuccess
	}
	if a.Config.Serve {
		return a.runServer(ctx)
	}
	return a.runCalculate(ctx, out)
}

func (a *Application) runServer(ctx context.Context) int {
	srv := server.NewServer(a.Config, server.WithLogger(a.Logger.With(logging.String("mode", "server"))))
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := service.NewCalculatorService(a.Config)
	err := cli.Run(ctx, a.Config, svc, out, a.ErrWriter)
	code := apperrors.ExitCode(err)
	switch code {
	case apperrors.ExitSuccess, apperrors.ExitErrorCalculation:
		// success output and calculation errors are already rendered
	case apperrors.ExitErrorTimeout:
		fmt.Fprintf(a.ErrWriter, "Error: calculation exceeded the %s timeout\n", a.Config.Timeout)
	case apperrors.ExitErrorCanceled:
		fmt.Fprintln(a.ErrWriter, "Error: calculation cancelled")
	default:
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	}
	return code
}
