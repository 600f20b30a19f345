package tool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateTrackingCode(t *testing.T) {
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	code := GenerateTrackingCode(42, at)

	require.Regexp(t, `^AFF\d+$`, code)
	require.Equal(t, code, GenerateTrackingCode(42, at))
	require.NotEqual(t, code, GenerateTrackingCode(43, at))
	require.NotEqual(t, code, GenerateTrackingCode(42, at.Add(time.Second)))
}

func TestGenerateUUIDV7_Unique(t *testing.T) {
	a := GenerateUUIDV7()
	b := GenerateUUIDV7()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}
