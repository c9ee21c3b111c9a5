// SPDX-License-Identifier: MIT

package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/matcalc/internal/apperrors"
)

// fileConfig is the on-disk form. Pointer fields distinguish "absent" from
// a zero value so that only keys present in the file override defaults.
type fileConfig struct {
	Serve            *bool    `yaml:"serve" toml:"serve"`
	Port             *string  `yaml:"port" toml:"port"`
	Epsilon          *float64 `yaml:"epsilon" toml:"epsilon"`
	MaxIterFactor    *int     `yaml:"max_iter_factor" toml:"max_iter_factor"`
	MaxDimension     *int     `yaml:"max_dimension" toml:"max_dimension"`
	Timeout          *string  `yaml:"timeout" toml:"timeout"`
	BatchConcurrency *int     `yaml:"batch_concurrency" toml:"batch_concurrency"`
	MaxBatchSize     *int     `yaml:"max_batch_size" toml:"max_batch_size"`
	RateLimit        *float64 `yaml:"rate_limit" toml:"rate_limit"`
	RateBurst        *int     `yaml:"rate_burst" toml:"rate_burst"`
	LogLevel         *string  `yaml:"log_level" toml:"log_level"`
	Format           *string  `yaml:"format" toml:"format"`
	Quiet            *bool    `yaml:"quiet" toml:"quiet"`
}

// loadFile decodes a YAML or TOML file, chosen by extension.
func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fileConfig{}, apperrors.NewConfigError("reading config file: %v", err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fileConfig{}, apperrors.NewConfigError("parsing config file %s: %v", path, err)
		}
	case ".toml":
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return fileConfig{}, apperrors.NewConfigError("parsing config file %s: %v", path, err)
		}
	default:
		return fileConfig{}, apperrors.NewConfigError("unsupported config file type %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}

	return fc, nil
}

// applyFile copies every key present in the file onto config, skipping
// settings whose flag was set explicitly.
func applyFile(config *AppConfig, fs *flag.FlagSet, path string) error {
	fc, err := loadFile(path)
	if err != nil {
		return err
	}

	setBool(fs, "serve", fc.Serve, &config.Serve)
	setString(fs, "port", fc.Port, &config.Port)
	setFloat(fs, "epsilon", fc.Epsilon, &config.Epsilon)
	setInt(fs, "max-iter-factor", fc.MaxIterFactor, &config.MaxIterFactor)
	setInt(fs, "max-dim", fc.MaxDimension, &config.MaxDimension)
	setInt(fs, "batch-concurrency", fc.BatchConcurrency, &config.BatchConcurrency)
	setInt(fs, "max-batch", fc.MaxBatchSize, &config.MaxBatchSize)
	setFloat(fs, "rate-limit", fc.RateLimit, &config.RateLimit)
	setInt(fs, "rate-burst", fc.RateBurst, &config.RateBurst)
	setString(fs, "log-level", fc.LogLevel, &config.LogLevel)
	setString(fs, "format", fc.Format, &config.Format)
	if !isFlagSet(fs, "q") {
		setBool(fs, "quiet", fc.Quiet, &config.Quiet)
	}
	if fc.Timeout != nil && !isFlagSet(fs, "timeout") {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return apperrors.NewConfigError("invalid timeout %q in %s: %v", *fc.Timeout, path, err)
		}
		config.Timeout = d
	}

	return nil
}

func setString(fs *flag.FlagSet, name string, src *string, dst *string) {
	if src != nil && !isFlagSet(fs, name) {
		*dst = *src
	}
}

func setInt(fs *flag.FlagSet, name string, src *int, dst *int) {
	if src != nil && !isFlagSet(fs, name) {
		*dst = *src
	}
}

func setFloat(fs *flag.FlagSet, name string, src *float64, dst *float64) {
	if src != nil && !isFlagSet(fs, name) {
		*dst = *src
	}
}

func setBool(fs *flag.FlagSet, name string, src *bool, dst *bool) {
	if src != nil && !isFlagSet(fs, name) {
		*dst = *src
	}
}

// String renders the effective configuration for debug logging.
func (c AppConfig) String() string {
	return fmt.Sprintf("serve=%t port=%s eps=%g iter=%d maxdim=%d timeout=%s batch=%d/%d rate=%g/%d log=%s format=%s",
		c.Serve, c.Port, c.Epsilon, c.MaxIterFactor, c.MaxDimension, c.Timeout,
		c.BatchConcurrency, c.MaxBatchSize, c.RateLimit, c.RateBurst, c.LogLevel, c.Format)
}
