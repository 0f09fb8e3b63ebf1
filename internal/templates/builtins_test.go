package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAddBuiltinData(t *testing.T) {
	now := time.Date(2024, 3, 9, 22, 15, 0, 0, time.FixedZone("CET", 3600))

	common := map[string]any{}
	addBuiltinData(common, now)
	require.Equal(t, "2024-03-09", common["Date"])
	require.Equal(t, "2024-03-09T21:15:00Z", common["DateTime"])

	preset := map[string]any{"Date": "yesterday"}
	addBuiltinData(preset, now)
	require.Equal(t, "yesterday", preset["Date"])
	require.Equal(t, "2024-03-09T21:15:00Z", preset["DateTime"])
}
