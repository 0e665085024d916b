// Package piengine implements the arbitrary-precision π engine: the
// Chudnovsky binary-splitting recursion, its parallel decomposition,
// the high-precision square root of 10005, and the rational-to-decimal
// assembly. It is the only part of this module with real numerical
// engineering content; everything above it (CLI, HTTP service, digit
// search/persistence) is a caller.
package piengine

import (
	"context"
	"math"
	"runtime"
)

// digitsPerTerm is the number of decimal digits of precision the
// Chudnovsky series contributes per term.
const digitsPerTerm = 14.1816474

// nGuard is the number of extra terms carried beyond the minimum
// implied by digitsPerTerm, absorbing rounding of that constant and
// giving the under-convergence guard below headroom before it needs to
// trigger in the common case.
const nGuard = 2

// minGuardDigits is G's floor: at least 10 guard digits protect
// against the last-digit truncation error.
const minGuardDigits = 10

// MaxDigits bounds digits to an implementation-defined maximum. It is
// set high enough that no legitimate request is rejected while still
// bounding memory use to a sane ceiling.
const MaxDigits = 1_000_000_000

// maxConvergenceRetries bounds the under-convergence retry loop. In
// practice the fixed guard digits mean this almost never iterates more
// than once.
const maxConvergenceRetries = 5

// termCount returns N, the number of Chudnovsky terms needed for
// digits decimal digits of precision.
func termCount(digits uint64) int64 {
	n := int64(math.Ceil(float64(digits)/digitsPerTerm)) + nGuard
	if n < 1 {
		n = 1
	}
	return n
}

// guardDigits returns G, the number of extra decimal digits of
// working precision carried through the divide, scaling slowly with
// term count.
func guardDigits(n int64) int {
	g := minGuardDigits
	if n > 1 {
		scaled := 2 + int(math.Ceil(math.Log10(float64(n))))
		if scaled > g {
			g = scaled
		}
	}
	return g
}

// ComputePi computes π to digits decimal digits after the point,
// using up to parallelism worker goroutines (parallelism == 0 resolves
// to runtime.NumCPU()), reporting progress through progress if
// non-nil. It is the core's single entry point.
func ComputePi(ctx context.Context, digits uint64, parallelism uint32, progress ProgressFunc) (string, error) {
	if digits == 0 || digits > MaxDigits {
		return "", newError(InvalidPrecision, "digits must be in [1, MaxDigits]", nil)
	}
	if progress == nil {
		progress = noopProgress
	}

	w := int(parallelism)
	if w == 0 {
		w = runtime.NumCPU()
	}
	if w < 1 {
		w = 1
	}

	onWarn := func(error) {} // progress callbacks must not raise; caller wires real logging via a wrapping ProgressFunc if it wants to observe this.

	n := termCount(digits)
	result := ""

	for attempt := 0; attempt < maxConvergenceRetries; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		g := guardDigits(n)
		dPrime := int(digits) + g

		root, err := parallelSplit(ctx, n, w, progress, onWarn)
		if err != nil {
			return "", err
		}

		reportSafe(progress, onWarn, PhaseSqrt, 0)
		sqrtScaled := sqrt10005Scaled(dPrime)
		reportSafe(progress, onWarn, PhaseSqrt, 1)

		reportSafe(progress, onWarn, PhaseAssemble, 0)
		scaledPi, err := assembleDecimal(root, sqrtScaled, dPrime)
		if err != nil {
			return "", err
		}

		s, ok := decimalString(scaledPi, int(digits))
		if !ok {
			// Under-converged: widen N and try again rather than emit a
			// truncated-short result.
			n = int64(float64(n)*1.2) + 5
			continue
		}
		reportSafe(progress, onWarn, PhaseAssemble, 1)

		if err := verify(s, int(digits)); err != nil {
			return "", err
		}
		result = s
		break
	}

	if result == "" {
		return "", newError(VerificationFailed, "failed to converge after retries", nil)
	}

	return result, nil
}
