// SPDX-License-Identifier: MIT

package app_test

import (
	"bytes"
	"context"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matcalc/internal/app"
	"github.com/katalvlaran/matcalc/internal/apperrors"
)

func runApp(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a, err := app.New(append([]string{"matcalc", "-log-level", "disabled"}, args...), &stderr)
	require.NoError(t, err)

	return a.Run(context.Background(), &stdout), stdout.String(), stderr.String()
}

func TestRun_Calculate(t *testing.T) {
	code, out, _ := runApp(t, "-op", "inverse", "-a", "4 7; 2 6")
	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Contains(t, out, "Inverse calculated successfully")
}

func TestRun_Singular(t *testing.T) {
	code, out, _ := runApp(t, "-op", "inverse", "-a", "1 2; 2 4")
	assert.Equal(t, apperrors.ExitErrorCalculation, code)
	assert.Contains(t, out, "singular")
}

func TestRun_MissingOperation(t *testing.T) {
	code, _, errOut := runApp(t, "-a", "1 2")
	assert.Equal(t, apperrors.ExitErrorConfig, code)
	assert.Contains(t, errOut, "missing -op")
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runApp(t, "-version")
	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Contains(t, out, "matcalc dev")
}

func TestNew_InvalidConfig(t *testing.T) {
	var stderr bytes.Buffer
	_, err := app.New([]string{"matcalc", "-format", "xml"}, &stderr)
	require.Error(t, err)
	assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCode(err))
	assert.Contains(t, stderr.String(), "Configuration error")
}

func TestNew_Help(t *testing.T) {
	var stderr bytes.Buffer
	_, err := app.New([]string{"matcalc", "-h"}, &stderr)
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, stderr.String(), "-op")
}
