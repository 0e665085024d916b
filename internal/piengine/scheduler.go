package piengine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

func atomicIncr(counter *int64) int64 {
	return atomic.AddInt64(counter, 1)
}

// partition splits [0, n) into w contiguous ranges as evenly as
// possible; any leftover terms go one-each to the first ranges, so
// range sizes differ by at most one.
func partition(n int64, w int) [][2]int64 {
	if w > int(n) {
		w = int(n)
	}
	ranges := make([][2]int64, w)
	base := n / int64(w)
	extra := n % int64(w)
	var cursor int64
	for i := 0; i < w; i++ {
		size := base
		if int64(i) < extra {
			size++
		}
		ranges[i] = [2]int64{cursor, cursor + size}
		cursor += size
	}
	return ranges
}

// parallelSplit computes the split tuple over [0, n) using up to w
// worker goroutines, one per leaf range. Each worker runs the
// sequential splitter on its own range and produces an owned tuple;
// ownership transfers to the reducer on join, with no mutable state
// shared between workers. The reduction then repeatedly pairs adjacent
// tuples, preserving the ascending-index ordering the non-commutative
// merge rule requires.
func parallelSplit(ctx context.Context, n int64, w int, progress ProgressFunc, onWarn func(error)) (Tuple, error) {
	if n <= 0 {
		return Tuple{}, newError(InvalidPrecision, "term count must be positive", nil)
	}
	if w < 1 {
		w = 1
	}

	ranges := partition(n, w)
	leaves := make([]Tuple, len(ranges))

	reportSafe(progress, onWarn, PhaseSplit, 0)

	eg, egCtx := errgroup.WithContext(ctx)
	var completed int64
	var progressMu sync.Mutex // keeps PhaseSplit fractions in increasing order

	for i, r := range ranges {
		i, r := i, r
		eg.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					if ce, ok := rec.(*ComputeError); ok {
						err = ce
						return
					}
					err = newError(WorkerPanicked, fmt.Sprintf("leaf [%d,%d): %v", r[0], r[1], rec), nil)
				}
			}()
			select {
			case <-egCtx.Done():
				return egCtx.Err()
			default:
			}
			leaves[i] = split(r[0], r[1])
			progressMu.Lock()
			reportSafe(progress, onWarn, PhaseSplit, float64(atomicIncr(&completed))/float64(len(ranges)))
			progressMu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		var ce *ComputeError
		if as, ok := err.(*ComputeError); ok {
			ce = as
		} else {
			ce = newError(WorkerPanicked, err.Error(), err)
		}
		return Tuple{}, ce
	}

	reportSafe(progress, onWarn, PhaseSplit, 1.0)

	reportSafe(progress, onWarn, PhaseMerge, 0)
	return reduceTree(leaves, progress, onWarn)
}

// reduceTree merges a left-to-right list of tuples pairwise until one
// remains, reporting PhaseMerge progress after each merge. This is a
// cheap reduction step: only w-1 merges for w leaves.
func reduceTree(tuples []Tuple, progress ProgressFunc, onWarn func(error)) (Tuple, error) {
	if len(tuples) == 0 {
		return Tuple{}, newError(InvalidPrecision, "no leaves to reduce", nil)
	}

	total := len(tuples) - 1
	if total == 0 {
		reportSafe(progress, onWarn, PhaseMerge, 1.0)
		return tuples[0], nil
	}

	merged := 0
	for len(tuples) > 1 {
		next := make([]Tuple, 0, (len(tuples)+1)/2)
		for i := 0; i < len(tuples); i += 2 {
			if i+1 < len(tuples) {
				next = append(next, merge(tuples[i], tuples[i+1]))
				merged++
				reportSafe(progress, onWarn, PhaseMerge, float64(merged)/float64(total))
			} else {
				next = append(next, tuples[i])
			}
		}
		tuples = next
	}
	return tuples[0], nil
}
