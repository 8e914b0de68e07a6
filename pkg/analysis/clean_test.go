package analysis

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1log/stint-analyzer-go/pkg/model"
)

func TestIsGreen(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{status: "1", want: true},
		{status: " 1 ", want: true},
		{status: "", want: true}, // missing status counts as green
		{status: "2", want: false},
		{status: "4", want: false},  // safety car
		{status: "5", want: false},  // red flag
		{status: "67", want: false}, // combined codes
	}
	for _, tt := range tests {
		t.Run("status "+tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, isGreen(tt.status))
		})
	}
}

func TestCleanLaps(t *testing.T) {
	base := []model.Lap{
		sampleLap("VER", 1, 92, 1, "SOFT", 1),
		sampleLap("VER", 2, 91, 1, "SOFT", 2),
		sampleLap("VER", 3, 90, 1, "SOFT", 3),
		sampleLap("VER", 4, 92, 1, "SOFT", 4),
		withoutLapTime(sampleLap("VER", 5, 0, 1, "SOFT", 5)),
		withStatus(sampleLap("VER", 6, 91, 1, "SOFT", 6), "4"),
		withPitIn(sampleLap("VER", 7, 95, 1, "SOFT", 7), 640.0),
		withPitOut(sampleLap("VER", 8, 99, 2, "HARD", 0), 650.0),
	}
	got, err := CleanLaps(t.Context(), base)
	require.NoError(t, err)

	kept := lo.Map(got, func(l model.Lap, _ int) int { return l.LapNumber })
	assert.Equal(t, []int{1, 2, 3, 4}, kept)
	for _, l := range got {
		assert.True(t, l.LapTimeS.Valid)
		assert.Equal(t, l.LapTime.V, l.LapTimeS.V)
		assert.False(t, l.PitInTime.Valid, "in-lap survived cleaning")
		assert.False(t, l.PitOutTime.Valid, "out-lap survived cleaning")
	}
}

// Rows coming from a table without the optional columns carry zero values,
// which the pipeline treats as missing.
func TestCleanLapsSparseColumns(t *testing.T) {
	laps := []model.Lap{
		{Driver: "VER", LapNumber: 1, LapTime: model.Sec(90)},
		{Driver: "VER", LapNumber: 2, LapTime: model.Sec(91)},
		{Driver: "HAM", LapNumber: 1},
	}
	got, err := CleanLaps(t.Context(), laps)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCleanLapsEmptyInput(t *testing.T) {
	got, err := CleanLaps(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
