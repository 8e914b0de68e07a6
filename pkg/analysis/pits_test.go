package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/f1log/stint-analyzer-go/pkg/model"
)

func TestPitStops(t *testing.T) {
	laps := []model.Lap{
		sampleLap("VER", 1, 80, 1, "SOFT", 1),
		withPitIn(sampleLap("VER", 20, 95, 1, "SOFT", 20), 1700.5),
		withPitIn(sampleLap("HAM", 30, 96, 2, "MEDIUM", 12), 2900.1),
		withPitIn(sampleLap("VER", 40, 97, 2, "MEDIUM", 20), 3400.9),
		withPitOut(sampleLap("HAM", 31, 99, 3, "HARD", 0), 2925.0),
	}
	got := PitStops(laps)

	assert.Len(t, got, 3)
	// sorted by driver, in-lap
	assert.Equal(t, "HAM", got[0].Driver)
	assert.Equal(t, 30, got[0].InLap)
	assert.Equal(t, 1, got[0].Stop)
	// per driver contiguous stop numbers, increasing with in-lap
	assert.Equal(t, "VER", got[1].Driver)
	assert.Equal(t, 20, got[1].InLap)
	assert.Equal(t, 1, got[1].Stop)
	assert.Equal(t, "VER", got[2].Driver)
	assert.Equal(t, 40, got[2].InLap)
	assert.Equal(t, 2, got[2].Stop)
	// renamed columns carry the source values
	assert.Equal(t, model.Sec(1700.5), got[1].InTime)
}

func TestPitStopsNoInLaps(t *testing.T) {
	laps := []model.Lap{
		sampleLap("VER", 1, 80, 1, "SOFT", 1),
		withPitOut(sampleLap("VER", 2, 99, 2, "HARD", 0), 160.0),
	}
	if diff := cmp.Diff([]model.PitStop{}, PitStops(laps)); diff != "" {
		t.Errorf("pit table not empty: %s", diff)
	}
}

func TestPitStopsEmptyInput(t *testing.T) {
	assert.Empty(t, PitStops(nil))
}
