// SPDX-License-Identifier: MIT

package app

import (
	"fmt"
	"runtime"
)

// Build metadata, set with -ldflags "-X github.com/katalvlaran/matcalc/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// VersionString returns a one-line version banner.
func VersionString() string {
	return fmt.Sprintf("matcalc %s (commit %s, built %s, %s %s/%s)",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
