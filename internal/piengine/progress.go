package piengine

import "fmt"

// Phase identifies which stage of the computation is reporting
// progress.
type Phase int

const (
	PhaseSplit Phase = iota
	PhaseMerge
	PhaseSqrt
	PhaseAssemble
)

func (p Phase) String() string {
	switch p {
	case PhaseSplit:
		return "split"
	case PhaseMerge:
		return "merge"
	case PhaseSqrt:
		return "sqrt"
	case PhaseAssemble:
		return "assemble"
	default:
		return "unknown"
	}
}

// ProgressFunc is invoked with a phase and the fraction complete (0.0
// to 1.0) for that phase. It may be called concurrently from worker
// and reducer goroutines; implementations that are not inherently
// concurrency-safe must serialize internally. The engine guarantees a
// monotonically non-decreasing fraction per phase and at least one
// call at the start and one at completion of each phase.
type ProgressFunc func(phase Phase, fraction float64)

// reportSafe invokes fn and recovers any panic, treating a misbehaving
// callback as a nonfatal warning rather than letting it abort the
// computation. Callers must never let a progress callback abort the
// run it's observing.
func reportSafe(fn ProgressFunc, onWarn func(error), phase Phase, fraction float64) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && onWarn != nil {
			if err, ok := r.(error); ok {
				onWarn(err)
			} else {
				onWarn(fmt.Errorf("progress callback panicked: %v", r))
			}
		}
	}()
	fn(phase, fraction)
}

func noopProgress(Phase, float64) {}
