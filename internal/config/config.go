// SPDX-License-Identifier: MIT

// Package config provides the configuration of the matcalc application:
// command-line flags, an optional YAML or TOML file, and MATCALC_*
// environment variables, validated into one AppConfig.
//
// Priority: CLI flags > environment variables > config file > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/matcalc/calc"
	"github.com/katalvlaran/matcalc/internal/apperrors"
	"github.com/katalvlaran/matcalc/matrix"
)

// EnvPrefix is the prefix for all environment variables used by matcalc.
const EnvPrefix = "MATCALC_"

// Default configuration values.
const (
	DefaultPort             = "8080"
	DefaultTimeout          = 10 * time.Second
	DefaultEpsilon          = matrix.DefaultEpsilon
	DefaultMaxIterFactor    = matrix.DefaultMaxIterFactor
	DefaultMaxDimension     = calc.DefaultMaxDimension
	DefaultBatchConcurrency = 4
	DefaultMaxBatchSize     = 32
	DefaultRateLimit        = 10.0
	DefaultRateBurst        = 20
	DefaultLogLevel         = "info"
	DefaultFormat           = FormatText
)

// Output formats of the CLI.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// AppConfig aggregates every setting of the application.
type AppConfig struct {
	// ConfigFile is the optional YAML (.yaml/.yml) or TOML (.toml) file.
	ConfigFile string

	// Serve starts the HTTP server instead of the one-shot CLI.
	Serve bool
	// Port is the listen port in server mode.
	Port string

	// Epsilon is the pivot and convergence tolerance.
	Epsilon float64
	// MaxIterFactor bounds eigen QR iterations at MaxIterFactor·n.
	MaxIterFactor int
	// MaxDimension bounds operand rows and columns.
	MaxDimension int

	// Timeout bounds one calculation.
	Timeout time.Duration
	// BatchConcurrency is the number of batch items computed at once.
	BatchConcurrency int
	// MaxBatchSize bounds the number of requests in one batch.
	MaxBatchSize int

	// RateLimit is requests per second per client IP; 0 disables limiting.
	RateLimit float64
	// RateBurst is the token bucket size.
	RateBurst int

	// LogLevel is one of debug, info, warn, error, disabled.
	LogLevel string

	// Operation, MatrixA and MatrixB describe the CLI calculation.
	Operation string
	MatrixA   string
	MatrixB   string
	// Format is the CLI output format: text, json or yaml.
	Format string
	// Quiet prints only the result, without steps or spinner.
	Quiet bool
	// ListOperations prints the supported operations and exits.
	ListOperations bool
	// ShowVersion prints the version and exits.
	ShowVersion bool
}

// Default returns the configuration used when nothing is set.
func Default() AppConfig {
	return AppConfig{
		Port:             DefaultPort,
		Epsilon:          DefaultEpsilon,
		MaxIterFactor:    DefaultMaxIterFactor,
		MaxDimension:     DefaultMaxDimension,
		Timeout:          DefaultTimeout,
		BatchConcurrency: DefaultBatchConcurrency,
		MaxBatchSize:     DefaultMaxBatchSize,
		RateLimit:        DefaultRateLimit,
		RateBurst:        DefaultRateBurst,
		LogLevel:         DefaultLogLevel,
		Format:           DefaultFormat,
	}
}

// DispatcherOptions converts the numeric settings into calc options.
// Unset (zero) or out-of-range values keep the calculator defaults.
func (c AppConfig) DispatcherOptions() []calc.Option {
	var mopts []matrix.Option
	if c.Epsilon > 0 && !math.IsInf(c.Epsilon, 0) {
		mopts = append(mopts, matrix.WithEpsilon(c.Epsilon))
	}
	if c.MaxIterFactor > 0 {
		mopts = append(mopts, matrix.WithMaxIterFactor(c.MaxIterFactor))
	}

	return []calc.Option{
		calc.WithMatrixOptions(mopts...),
		calc.WithMaxDimension(c.MaxDimension),
	}
}

// Validate checks the semantic consistency of the configuration.
// It returns a ConfigError describing the first problem found.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) || c.Epsilon <= 0 {
		return apperrors.NewConfigError("epsilon must be a positive finite number: %v", c.Epsilon)
	}
	if c.MaxIterFactor <= 0 {
		return apperrors.NewConfigError("max iteration factor must be positive: %d", c.MaxIterFactor)
	}
	if c.MaxDimension <= 0 {
		return apperrors.NewConfigError("max dimension must be positive: %d", c.MaxDimension)
	}
	if c.BatchConcurrency <= 0 {
		return apperrors.NewConfigError("batch concurrency must be positive: %d", c.BatchConcurrency)
	}
	if c.MaxBatchSize <= 0 {
		return apperrors.NewConfigError("max batch size must be positive: %d", c.MaxBatchSize)
	}
	if c.RateLimit < 0 {
		return apperrors.NewConfigError("rate limit cannot be negative: %v", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		return apperrors.NewConfigError("rate burst must be positive when rate limiting is enabled: %d", c.RateBurst)
	}
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return apperrors.NewConfigError("invalid port: '%s'", c.Port)
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return apperrors.NewConfigError("unrecognized output format: '%s'. Valid formats are: text, json, yaml", c.Format)
	}
	if c.Operation != "" {
		if _, err := calc.ParseOperation(c.Operation); err != nil {
			return apperrors.NewConfigError("unrecognized operation: '%s'. Valid operations are: %s", c.Operation, operationList())
		}
	}

	return nil
}

// ParseConfig parses args (typically os.Args[1:]), layers the config file
// and environment underneath flags that were not set explicitly, and
// validates the result. Usage and errors are written to errorWriter.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := Default()
	fs.StringVar(&config.ConfigFile, "config", "", "Path to a YAML or TOML configuration file.")
	fs.BoolVar(&config.Serve, "serve", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.Float64Var(&config.Epsilon, "epsilon", DefaultEpsilon, "Pivot and convergence tolerance.")
	fs.IntVar(&config.MaxIterFactor, "max-iter-factor", DefaultMaxIterFactor, "Eigen QR iteration bound per matrix dimension.")
	fs.IntVar(&config.MaxDimension, "max-dim", DefaultMaxDimension, "Largest accepted number of rows or columns.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time of one calculation.")
	fs.IntVar(&config.BatchConcurrency, "batch-concurrency", DefaultBatchConcurrency, "Batch items computed concurrently.")
	fs.IntVar(&config.MaxBatchSize, "max-batch", DefaultMaxBatchSize, "Largest accepted batch.")
	fs.Float64Var(&config.RateLimit, "rate-limit", DefaultRateLimit, "Requests per second per client (0 disables).")
	fs.IntVar(&config.RateBurst, "rate-burst", DefaultRateBurst, "Rate limiter burst size.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error, disabled.")
	fs.StringVar(&config.Operation, "op", "", "Operation: "+operationList()+".")
	fs.StringVar(&config.MatrixA, "a", "", `First matrix, rows separated by ';' (e.g. "1 2; 3 4").`)
	fs.StringVar(&config.MatrixB, "b", "", "Second matrix for addition, subtraction and multiplication.")
	fs.StringVar(&config.Format, "format", DefaultFormat, "Output format: text, json or yaml.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&config.Quiet, "q", false, "Print only the result (shorthand).")
	fs.BoolVar(&config.ListOperations, "ops", false, "List supported operations and exit.")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", config.ConfigFile)
	}
	if config.ConfigFile != "" {
		if err := applyFile(&config, fs, config.ConfigFile); err != nil {
			fmt.Fprintln(errorWriter, "Configuration error:", err)
			return AppConfig{}, err
		}
	}
	applyEnvOverrides(&config, fs)

	config.Format = strings.ToLower(config.Format)
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}

	return config, nil
}

func operationList() string {
	ops := calc.Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}

	return strings.Join(names, ", ")
}
