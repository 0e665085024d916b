package piengine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyAccepts(t *testing.T) {
	require.NoError(t, verify("3.14159265358979323846", 20))
	require.NoError(t, verify("3.1", 1))
	require.NoError(t, verify("3.14", 2))
}

func TestVerifyRejectsWrongLength(t *testing.T) {
	err := verify("3.14159", 10)
	require.Error(t, err)
	var ce *ComputeError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, VerificationFailed, ce.Kind)
	require.Equal(t, "length", ce.Reason)
}

func TestVerifyRejectsWrongPrefix(t *testing.T) {
	err := verify("3.24159265358979323846", 20)
	require.Error(t, err)
	var ce *ComputeError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "prefix", ce.Reason)
}

func TestVerifyRejectsNonDigitCharacters(t *testing.T) {
	s := "3.1415926535897932384x"
	require.Len(t, s, 22)
	err := verify(s, 20)
	require.Error(t, err)
	var ce *ComputeError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "charset", ce.Reason)
}
