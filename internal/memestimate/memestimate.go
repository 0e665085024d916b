// Package memestimate produces human-readable memory-estimate
// messages on the caller's behalf: a rough residency budget for a
// requested digit count, and a warning string once that budget crosses
// a threshold worth calling out. It is a caller-side concern only —
// piengine.ComputePi never formats or prints anything.
package memestimate

import "github.com/dustin/go-humanize"

// bytesPerDigit is a rough estimator for peak residency: 15 bytes per
// requested decimal digit, dominated by the operand sizes at the final
// few merges.
const bytesPerDigit = 15

// warnDigitsThreshold is the digit count above which a request is
// large enough to call out the estimated memory budget.
const warnDigitsThreshold = 10_000_000

// EstimateBytes returns the rough peak-residency estimate for digits
// decimal digits of π.
func EstimateBytes(digits uint64) uint64 {
	return digits * bytesPerDigit
}

// Warning returns a human-readable warning string if digits crosses
// warnDigitsThreshold, or "" otherwise.
func Warning(digits uint64) string {
	if digits <= warnDigitsThreshold {
		return ""
	}
	return "this calculation may require approximately " +
		humanize.Bytes(EstimateBytes(digits)) + " of memory"
}
