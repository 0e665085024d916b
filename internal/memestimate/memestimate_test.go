package memestimate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEstimateBytes(t *testing.T) {
	require.Equal(t, uint64(1500), EstimateBytes(100))
}

func TestWarningBelowThreshold(t *testing.T) {
	require.Equal(t, "", Warning(1_000_000))
	require.Equal(t, "", Warning(warnDigitsThreshold))
}

func TestWarningAboveThreshold(t *testing.T) {
	msg := Warning(warnDigitsThreshold + 1)
	require.NotEmpty(t, msg)
	require.Contains(t, msg, "memory")
}
