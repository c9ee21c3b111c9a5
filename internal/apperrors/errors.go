// SPDX-License-Identifier: MIT

// Package apperrors defines the application-level error types of matcalc
// (configuration, server, calculation) and the process exit codes.
// Every type implements Unwrap where it carries a cause, so errors.Is and
// errors.As see through it.
package apperrors

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/matcalc/calc"
)

// Process exit codes.
const (
	ExitSuccess          = 0   // successful execution
	ExitErrorGeneric     = 1   // unclassified failure
	ExitErrorTimeout     = 2   // the calculation exceeded its deadline
	ExitErrorCalculation = 3   // the calculator rejected the input or matrix
	ExitErrorConfig      = 4   // invalid flags, environment or config file
	ExitErrorCanceled    = 130 // interrupted (SIGINT)
)

// ConfigError is a user configuration error (flags, env, config file).
type ConfigError struct {
	Message string
}

// Error returns the message.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure of the calculator core.
type CalculationError struct {
	Cause error
}

// Error returns the cause's message.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the cause.
func (e CalculationError) Unwrap() error { return e.Cause }

// ServerError is a failure of the HTTP server component.
type ServerError struct {
	Message string
	Cause   error
}

// Error combines the message and the cause if present.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the cause.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a ServerError; cause may be nil.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError adds context to err with %w; nil stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports cancellation or deadline expiry.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error onto the process exit code.
func ExitCode(err error) int {
	var (
		cfgErr  ConfigError
		calcErr *calc.Error
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr):
		return ExitErrorConfig
	case errors.As(err, &calcErr):
		return ExitErrorCalculation
	default:
		return ExitErrorGeneric
	}
}
