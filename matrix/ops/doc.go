// SPDX-License-Identifier: MIT

// Package ops provides the step-narrated matrix operations of the calculator.
//
// Every exported operation takes a *trace.Trace and appends, in algorithm
// order, one human-readable step per meaningful stage. A nil trace runs the
// same algorithm silently.
//
//   - Add, Sub, Mul, Transpose: element-wise and product kernels with per-row narration.
//   - Inverse: Gauss-Jordan elimination on [A | I] with partial pivoting.
//   - LU, Determinant: partial-pivot Doolittle factorization and det(A).
//   - QR, Hessenberg: Householder factorization and similarity reduction.
//   - Eigen: shifted QR iteration on the Hessenberg form, conjugate pairs from
//     2×2 blocks, eigenvectors from the null space of A - λI.
//
// Inputs are never mutated; solvers work on private row-slice copies.
package ops
