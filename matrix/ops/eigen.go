// SPDX-License-Identifier: MIT

package ops

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/katalvlaran/matcalc/trace"
)

const opEigen = "Eigen"

// Iteration policy of the shifted QR algorithm.
const (
	exceptionalEvery = 10   // stalled iterations before an exceptional shift
	exceptionalScale = 0.75 // weight of the subdiagonal in the exceptional shift
	tracedHead       = 5    // every one of the first tracedHead iterations is narrated
	tracedStride     = 10   // afterwards every tracedStride-th iteration is narrated
)

// Tolerances for eigenvector extraction, relative to max|a_ij| (1 for the
// zero matrix), so tiny matrices separate their tiny eigenvalues.
const (
	clusterTolerance = 1e-8 // eigenvalues closer than this share one null space
	nullTolerance    = 1e-8 // per-dimension pivot threshold in A - λI
)

// EigenResult is the outcome of Eigen.
// Vectors holds one unit eigenvector per column, column i pairing with Values[i].
type EigenResult struct {
	Values     []matrix.Complex
	Vectors    *matrix.CDense
	Iterations int  // QR iterations performed
	Converged  bool // false: the iteration bound was hit and Values are approximate
}

// Eigen computes all eigenvalues (real or complex-conjugate pairs) and one
// eigenvector per eigenvalue of a real square matrix.
// Blueprint:
//
//	Stage 1 (Validate): A non-nil and square.
//	Stage 2 (Reduce): Householder similarity to upper Hessenberg form H.
//	Stage 3 (Iterate): shifted QR on the active window of H until it is
//	    block upper-triangular with 1×1 and 2×2 diagonal blocks, deflating
//	    from the bottom; at most MaxIterations(n) iterations.
//	Stage 4 (Extract): 1×1 blocks give real eigenvalues, 2×2 blocks the roots
//	    of their characteristic quadratic.
//	Stage 5 (Order): descending real part, ties by descending imaginary part.
//	Stage 6 (Vectors): null space of A - λI by complex Gauss-Jordan; repeated
//	    eigenvalues take successive basis vectors.
//	Stage 7 (Narrate): one step per eigenpair and one Av = λv check per pair.
//
// Hitting the iteration bound is not an error: the best approximation is
// returned with Converged == false and the trace says so.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare, ctx.Err() on cancellation.
//
// Complexity: O(n³) per QR iteration, O(maxIter·n³) worst case; O(n²) memory.
func Eigen(ctx context.Context, a matrix.Matrix, tr *trace.Trace, opts ...matrix.Option) (*EigenResult, error) {
	// Stage 1: Validate
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return nil, opErrorf(opEigen, err)
	}
	o := matrix.NewOptions(opts...)
	src, err := rowsOf(a)
	if err != nil {
		return nil, opErrorf(opEigen, err)
	}
	n := len(src)
	scale := maxAbsRows(src)
	if scale == 0 {
		scale = 1
	}
	tol := o.Epsilon() * maxAbsRows(src)

	tr.Addf("A = "+trace.Rows(src), "Find λ and v ≠ 0 with Av = λv for the %d×%d matrix A", n, n)
	if n == 2 {
		t, d := src[0][0]+src[1][1], src[0][0]*src[1][1]-src[0][1]*src[1][0]
		tr.Add("The eigenvalues are the roots of the characteristic polynomial",
			fmt.Sprintf(`\det(A - \lambda I) = \lambda^2 - (%s)\lambda + (%s) = 0`, trace.Number(t), trace.Number(d)))
	}

	// Stage 2: Reduce
	h := cloneRows(src)
	hessenbergInPlace(h)
	if n >= 3 {
		tr.Add("Reduce A to upper Hessenberg form H by Householder reflections (H is similar to A)", "H = "+trace.Rows(h))
	} else {
		tr.Add("A matrix of this size is already in Hessenberg form", "H = A")
	}

	// Stages 3-4: Iterate and extract
	values, iters, converged, err := qrEigenvalues(ctx, h, tol, o.MaxIterations(n), o.Epsilon()*scale, tr)
	if err != nil {
		return nil, opErrorf(opEigen, err)
	}
	if converged {
		tr.Addf("H_{final} = "+trace.Rows(h),
			"Converged after %d QR iterations: H is block upper-triangular with 1×1 and 2×2 diagonal blocks", iters)
	} else {
		tr.Addf("H_{final} = "+trace.Rows(h),
			"Iteration limit (%d) reached before H became block triangular; the eigenvalues below are approximate", iters)
	}

	// Stage 5: Order
	sortEigenvalues(values, o.Epsilon()*scale)

	// Stage 6: Vectors
	vectors, err := eigenvectors(src, values, scale)
	if err != nil {
		return nil, opErrorf(opEigen, err)
	}

	// Stage 7: Narrate
	result := &EigenResult{
		Values:     make([]matrix.Complex, n),
		Vectors:    vectors,
		Iterations: iters,
		Converged:  converged,
	}
	var v []complex128
	for i, lambda := range values {
		result.Values[i] = matrix.NewComplex(lambda)
		if tr == nil {
			continue
		}
		v, _ = vectors.Column(i)
		tr.Addf(fmt.Sprintf(`\lambda_{%d} = %s,\quad v_{%d} = %s`, i+1, trace.Complex(lambda), i+1, trace.ComplexVector(v)),
			"Eigenpair %d: λ%d = %s, v%d spans the null space of (A - λ%d I), scaled to unit length",
			i+1, i+1, trace.Complex(lambda), i+1, i+1)
		narrateCheck(tr, src, lambda, v, i+1)
	}

	return result, nil
}

// qrEigenvalues runs the shifted QR iteration on h in place.
// The active window [lo, hi] is the unreduced block ending at hi: a
// subdiagonal entry with |h[i][i-1]| <= tol splits the matrix. A 1×1 window
// yields a real eigenvalue, a 2×2 window the roots of its quadratic;
// both shrink hi. Larger windows take one QR step per iteration:
//   - trailing 2×2 with real eigenvalues: single Wilkinson shift,
//   - trailing 2×2 with complex eigenvalues: double shift with both roots,
//   - every exceptionalEvery stalled iterations: an exceptional single shift.
//
// On reaching maxIter the remaining diagonal is read as approximate blocks.
func qrEigenvalues(ctx context.Context, h [][]float64, tol float64, maxIter int, realTol float64, tr *trace.Trace) ([]complex128, int, bool, error) {
	n := len(h)
	values := make([]complex128, 0, n)

	var (
		hi          = n - 1
		lo          int
		iter, stall int
		shift       string
		l1, l2      complex128
		pending     *trace.Step // last untraced iteration, narrated at the end
		step        trace.Step
	)
	for hi >= 0 {
		if err := ctx.Err(); err != nil {
			return nil, iter, false, err
		}

		lo = hi
		for lo > 0 && math.Abs(h[lo][lo-1]) > tol {
			lo--
		}
		if lo > 0 {
			h[lo][lo-1] = 0
		}

		switch hi - lo {
		case 0:
			values = append(values, complex(h[hi][hi], 0))
			hi--
			stall = 0
			continue
		case 1:
			l1, l2 = eigen2x2(h[hi-1][hi-1], h[hi-1][hi], h[hi][hi-1], h[hi][hi], realTol)
			values = append(values, l1, l2)
			hi -= 2
			stall = 0
			continue
		}

		if iter >= maxIter {
			values = append(values, approximateValues(h, hi, tol, realTol)...)
			if pending != nil {
				tr.Add(pending.Explanation, pending.Formula)
			}
			return values, iter, false, nil
		}

		shift = qrStep(h, lo, hi, stall)
		iter++
		stall++
		if tr == nil {
			continue
		}
		step = trace.Step{
			Explanation: fmt.Sprintf("QR iteration %d on rows %d-%d (%s)", iter, lo+1, hi+1, shift),
			Formula:     fmt.Sprintf("H_{%d} = ", iter) + trace.Rows(h),
		}
		if iter <= tracedHead || iter%tracedStride == 0 {
			tr.Add(step.Explanation, step.Formula)
			pending = nil
		} else {
			pending = &step
		}
	}
	if pending != nil {
		tr.Add(pending.Explanation, pending.Formula)
	}

	return values, iter, true, nil
}

// qrStep performs one shifted QR similarity on the window [lo, hi] of h
// (hi - lo >= 2) and describes the shift it used.
func qrStep(h [][]float64, lo, hi, stall int) string {
	a, b, c, d := h[hi-1][hi-1], h[hi-1][hi], h[hi][hi-1], h[hi][hi]

	if stall > 0 && stall%exceptionalEvery == 0 {
		sigma := d + exceptionalScale*(math.Abs(c)+math.Abs(h[hi-1][hi-2]))
		singleShiftStep(h, lo, hi, sigma)
		return "exceptional shift σ = " + trace.Number(sigma)
	}

	t, det := a+d, a*d-b*c
	disc := t*t/4 - det
	if disc < 0 {
		doubleShiftStep(h, lo, hi, t, det)
		return fmt.Sprintf("double shift σ = %s ± %si", trace.Number(t/2), trace.Number(math.Sqrt(-disc)))
	}

	// Wilkinson: the eigenvalue of the trailing 2×2 closest to d.
	sq := math.Sqrt(disc)
	sigma := t/2 + sq
	if math.Abs(t/2-sq-d) < math.Abs(sigma-d) {
		sigma = t/2 - sq
	}
	singleShiftStep(h, lo, hi, sigma)

	return "Wilkinson shift σ = " + trace.Number(sigma)
}

// singleShiftStep: W - σI = QR, W ← RQ + σI = QᵀWQ on the window W.
func singleShiftStep(h [][]float64, lo, hi int, sigma float64) {
	w := window(h, lo, hi)
	for i := range w {
		w[i][i] -= sigma
	}
	q, _ := householderQR(w)
	applySimilarity(h, lo, hi, q)

	// Hessenberg form is preserved in exact arithmetic; drop rounding fill.
	for i := lo + 2; i <= hi; i++ {
		for j := lo; j < i-1; j++ {
			h[i][j] = 0
		}
	}
}

// doubleShiftStep applies two conjugate shifts at once in real arithmetic:
// M = W² - tW + dI = QR, W ← QᵀWQ, then restores Hessenberg form.
func doubleShiftStep(h [][]float64, lo, hi int, t, det float64) {
	w := window(h, lo, hi)
	m := mulRows(w, w)
	for i := range m {
		for j := range m[i] {
			m[i][j] -= t * w[i][j]
		}
		m[i][i] += det
	}
	q, _ := householderQR(m)
	applySimilarity(h, lo, hi, q)
	hessenbergRange(h, lo, hi)
}

// window copies h[lo..hi][lo..hi].
func window(h [][]float64, lo, hi int) [][]float64 {
	k := hi - lo + 1
	w := make([][]float64, k)
	for i := 0; i < k; i++ {
		w[i] = make([]float64, k)
		copy(w[i], h[lo+i][lo:hi+1])
	}

	return w
}

// applySimilarity replaces h by PᵀhP with P = diag(I, q, I), q acting on
// indices lo..hi. Rows and columns outside the window are updated as well,
// so h stays similar to the original matrix.
func applySimilarity(h [][]float64, lo, hi int, q [][]float64) {
	n, k := len(h), hi-lo+1
	tmp := make([]float64, k)
	var (
		i, j, l int
		s       float64
	)
	// h ← h·P (columns lo..hi, every row)
	for i = 0; i < n; i++ {
		for j = 0; j < k; j++ {
			s = 0
			for l = 0; l < k; l++ {
				s += h[i][lo+l] * q[l][j]
			}
			tmp[j] = s
		}
		copy(h[i][lo:hi+1], tmp)
	}
	// h ← Pᵀ·h (rows lo..hi, every column)
	for j = 0; j < n; j++ {
		for i = 0; i < k; i++ {
			s = 0
			for l = 0; l < k; l++ {
				s += q[l][i] * h[lo+l][j]
			}
			tmp[i] = s
		}
		for i = 0; i < k; i++ {
			h[lo+i][j] = tmp[i]
		}
	}
}

// eigen2x2 returns the eigenvalues of [[a, b], [c, d]] from
// λ² - tλ + det = 0. A negative discriminant yields the conjugate pair
// t/2 ± i·sqrt(-disc); an imaginary part below realTol is treated as zero.
// Real roots use the cancellation-free form λ2 = det/λ1.
func eigen2x2(a, b, c, d, realTol float64) (complex128, complex128) {
	t, det := a+d, a*d-b*c
	disc := t*t/4 - det
	if disc < 0 {
		im := math.Sqrt(-disc)
		if im >= realTol {
			return complex(t/2, im), complex(t/2, -im)
		}
		disc = 0
	}

	sq := math.Sqrt(disc)
	l1 := t/2 + sq
	if t < 0 {
		l1 = t/2 - sq
	}
	if l1 == 0 {
		return 0, 0
	}

	return complex(l1, 0), complex(det/l1, 0)
}

// approximateValues reads eigenvalues off the unconverged diagonal h[0..hi],
// pairing i-1 and i whenever |h[i][i-1]| > tol.
func approximateValues(h [][]float64, hi int, tol, realTol float64) []complex128 {
	out := make([]complex128, 0, hi+1)
	var l1, l2 complex128
	for i := hi; i >= 0; {
		if i > 0 && math.Abs(h[i][i-1]) > tol {
			l1, l2 = eigen2x2(h[i-1][i-1], h[i-1][i], h[i][i-1], h[i][i], realTol)
			out = append(out, l1, l2)
			i -= 2
			continue
		}
		out = append(out, complex(h[i][i], 0))
		i--
	}

	return out
}

// sortEigenvalues orders by descending real part; real parts within tieTol
// are ordered by descending imaginary part. Near-equal real parts are first
// snapped to a shared key (single link: each value joins the group of its
// predecessor when the gap is <= tieTol), so the comparison is a strict weak
// order even for chains of close values. The sort is stable.
func sortEigenvalues(values []complex128, tieTol float64) {
	sort.SliceStable(values, func(i, j int) bool { return real(values[i]) > real(values[j]) })

	type keyed struct {
		key float64
		z   complex128
	}
	ks := make([]keyed, len(values))
	for i, z := range values {
		ks[i] = keyed{key: real(z), z: z}
		if i > 0 && real(values[i-1])-real(z) <= tieTol {
			ks[i].key = ks[i-1].key
		}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].key != ks[j].key {
			return ks[i].key > ks[j].key
		}
		return imag(ks[i].z) > imag(ks[j].z)
	})
	for i := range ks {
		values[i] = ks[i].z
	}
}

// eigenvectors builds the n×n eigenvector matrix for ordered values.
// Eigenvalues within clusterTolerance·scale of each other form one cluster;
// the k-th member of a cluster takes the k-th null-space basis vector of
// A - λI, reusing the last one when the null space is too small (defective).
func eigenvectors(a [][]float64, values []complex128, scale float64) (*matrix.CDense, error) {
	n := len(a)
	out, err := matrix.NewCDense(n, n)
	if err != nil {
		return nil, err
	}
	b := make([][]complex128, n)
	for i := range b {
		b[i] = make([]complex128, n)
	}

	var (
		i, j, k, r, c int
		lambda        complex128
		basis         [][]complex128
	)
	for i = 0; i < n; i = j + 1 {
		j = i
		for j+1 < n && cmplx.Abs(values[j+1]-values[i]) <= clusterTolerance*scale {
			j++
		}
		lambda = values[i]
		for r = 0; r < n; r++ {
			for c = 0; c < n; c++ {
				b[r][c] = complex(a[r][c], 0)
			}
			b[r][r] -= lambda
		}
		basis = nullSpace(b, nullTolerance*scale*float64(n))
		for k = i; k <= j; k++ {
			if err = out.SetColumn(k, normalizeVector(basis[min(k-i, len(basis)-1)])); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// narrateCheck appends the Av = λv verification for one eigenpair.
func narrateCheck(tr *trace.Trace, a [][]float64, lambda complex128, v []complex128, idx int) {
	n := len(a)
	av := make([]complex128, n)
	lv := make([]complex128, n)
	var residual float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			av[i] += complex(a[i][j], 0) * v[j]
		}
		lv[i] = lambda * v[i]
		residual += math.Pow(cmplx.Abs(av[i]-lv[i]), 2)
	}
	tr.Addf(fmt.Sprintf(`Av_{%d} = %s = \lambda_{%d} v_{%d} = %s`, idx, trace.ComplexVector(av), idx, idx, trace.ComplexVector(lv)),
		"Check Av%d = λ%d v%d (residual %.2e)", idx, idx, idx, math.Sqrt(residual))
}
