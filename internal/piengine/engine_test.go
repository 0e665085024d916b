package piengine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustComputePi(t *testing.T, digits uint64, parallelism uint32) string {
	t.Helper()
	s, err := ComputePi(context.Background(), digits, parallelism, nil)
	require.NoError(t, err)
	return s
}

// TestConcreteScenarios checks known-good literal digit outputs.
func TestConcreteScenarios(t *testing.T) {
	require.Equal(t, "3.1415926535", mustComputePi(t, 10, 1))
	require.Equal(t, "3.141592653589793", mustComputePi(t, 15, 1))
	require.Equal(t, "3.14159265358979323846264338327950288419716939937510", mustComputePi(t, 50, 1))

	thousand := mustComputePi(t, 1000, 1)
	require.True(t, strings.HasPrefix(thousand, "3.1415926535"))
	require.True(t, strings.HasSuffix(thousand, "1989"))
}

// TestParallelismInvariance checks that compute_pi(D, W1) ==
// compute_pi(D, W2) for different parallelism values.
func TestParallelismInvariance(t *testing.T) {
	a := mustComputePi(t, 300, 1)
	b := mustComputePi(t, 300, 8)
	require.Equal(t, a, b)
}

// TestPrefixMonotonicity checks that compute_pi(D1) is a character
// prefix of compute_pi(D2) for D1 < D2 (a consequence of truncation).
func TestPrefixMonotonicity(t *testing.T) {
	small := mustComputePi(t, 40, 1)
	large := mustComputePi(t, 400, 1)
	require.True(t, strings.HasPrefix(large, small))
}

func TestLengthAndPrefixInvariant(t *testing.T) {
	for _, d := range []uint64{1, 2, 5, 10, 123} {
		s := mustComputePi(t, d, 1)
		require.Len(t, s, int(d)+2)
		require.True(t, strings.HasPrefix(s, "3."))
	}
}

func TestBoundaryD1AndD2(t *testing.T) {
	require.Equal(t, "3.1", mustComputePi(t, 1, 1))
	require.Equal(t, "3.14", mustComputePi(t, 2, 1))
}

func TestD0Rejected(t *testing.T) {
	_, err := ComputePi(context.Background(), 0, 1, nil)
	require.Error(t, err)
	var ce *ComputeError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, InvalidPrecision, ce.Kind)
}

func TestDigitsAboveMaxRejected(t *testing.T) {
	_, err := ComputePi(context.Background(), MaxDigits+1, 1, nil)
	require.Error(t, err)
	var ce *ComputeError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, InvalidPrecision, ce.Kind)
}

func TestProgressCallbackPanicIsNonfatal(t *testing.T) {
	panicky := func(Phase, float64) { panic("boom") }
	s, err := ComputePi(context.Background(), 20, 1, panicky)
	require.NoError(t, err)
	require.Equal(t, "3.14159265358979323846", s)
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ComputePi(ctx, 50, 1, nil)
	require.Error(t, err)
}

// TestMillionDigitsSHA256 checks a million computed digits against a
// published reference hash. It is skipped by
// default: computing and hashing a million digits is correct but slow
// for a unit test, and there is no way to embed the published
// reference hash here without fetching it from an external source at
// test-write time. Run with -run TestMillionDigitsSHA256 -v and a
// known-good reference hash supplied via t.Setenv in a local patch to
// exercise it.
func TestMillionDigitsSHA256(t *testing.T) {
	if testing.Short() {
		t.Skip("million-digit computation is too slow for -short")
	}
	t.Skip("no embedded reference hash for the first million digits of π")

	s := mustComputePi(t, 1_000_000, 0)
	sum := sha256.Sum256([]byte(s[2:]))
	_ = hex.EncodeToString(sum[:])
}
