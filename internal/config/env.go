// SPDX-License-Identifier: MIT

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns EnvPrefix+key, or defaultVal when unset.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns EnvPrefix+key parsed as int, or defaultVal when unset or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvFloat returns EnvPrefix+key parsed as float64, or defaultVal when unset or invalid.
func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool accepts "true", "1", "yes" and "false", "0", "no" (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration accepts formats like "5s", "1m30s".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet reports whether a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyEnvOverrides applies environment variables to every setting whose
// flag was not explicitly set.
//
// Supported environment variables:
//   - MATCALC_SERVE (bool), MATCALC_PORT (string)
//   - MATCALC_EPSILON (float), MATCALC_MAX_ITER_FACTOR (int), MATCALC_MAX_DIM (int)
//   - MATCALC_TIMEOUT (duration), MATCALC_BATCH_CONCURRENCY (int), MATCALC_MAX_BATCH (int)
//   - MATCALC_RATE_LIMIT (float), MATCALC_RATE_BURST (int)
//   - MATCALC_LOG_LEVEL, MATCALC_FORMAT (string), MATCALC_QUIET (bool)
//   - MATCALC_CONFIG (string, read before the config file is loaded)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	applyNumericOverrides(config, fs)
	applyStringOverrides(config, fs)
	applyBooleanOverrides(config, fs)
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "epsilon") {
		config.Epsilon = getEnvFloat("EPSILON", config.Epsilon)
	}
	if !isFlagSet(fs, "max-iter-factor") {
		config.MaxIterFactor = getEnvInt("MAX_ITER_FACTOR", config.MaxIterFactor)
	}
	if !isFlagSet(fs, "max-dim") {
		config.MaxDimension = getEnvInt("MAX_DIM", config.MaxDimension)
	}
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	if !isFlagSet(fs, "batch-concurrency") {
		config.BatchConcurrency = getEnvInt("BATCH_CONCURRENCY", config.BatchConcurrency)
	}
	if !isFlagSet(fs, "max-batch") {
		config.MaxBatchSize = getEnvInt("MAX_BATCH", config.MaxBatchSize)
	}
	if !isFlagSet(fs, "rate-limit") {
		config.RateLimit = getEnvFloat("RATE_LIMIT", config.RateLimit)
	}
	if !isFlagSet(fs, "rate-burst") {
		config.RateBurst = getEnvInt("RATE_BURST", config.RateBurst)
	}
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "log-level") {
		config.LogLevel = getEnvString("LOG_LEVEL", config.LogLevel)
	}
	if !isFlagSet(fs, "format") {
		config.Format = getEnvString("FORMAT", config.Format)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "serve") {
		config.Serve = getEnvBool("SERVE", config.Serve)
	}
	if !isFlagSet(fs, "quiet") && !isFlagSet(fs, "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
}
