package piengine

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSqrt10005ScaledZeroDigits(t *testing.T) {
	// floor(sqrt(10005)) = 100, since 100^2 = 10000 <= 10005 < 10201 = 101^2.
	got := sqrt10005Scaled(0)
	require.Equal(t, big.NewInt(100), got)
}

func TestSqrt10005ScaledMatchesFloatApprox(t *testing.T) {
	// sqrt(10005) ≈ 100.024997...; at 5 digits of scale the leading
	// digits of the scaled integer square root should match.
	got := sqrt10005Scaled(5)
	require.Equal(t, "10002499", got.String()[:8])
}
