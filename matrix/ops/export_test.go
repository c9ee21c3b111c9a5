// SPDX-License-Identifier: MIT

package ops

// SortEigenvalues exposes sortEigenvalues to the external test package.
var SortEigenvalues = sortEigenvalues
