package csvio

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1log/stint-analyzer-go/pkg/analysis"
	"github.com/f1log/stint-analyzer-go/pkg/model"
)

func testLaps() []model.Lap {
	laps := make([]model.Lap, 0, 24)
	for i := 1; i <= 22; i++ {
		laps = append(laps, model.Lap{
			Driver:      "VER",
			Team:        "Red Bull",
			LapNumber:   i,
			LapTime:     model.Sec(90 + 0.125*float64(i)),
			Stint:       1,
			Compound:    "MEDIUM",
			TyreLife:    model.Age(float64(i)),
			TrackStatus: "1",
		})
	}
	laps = append(laps, model.Lap{
		Driver:    "VER",
		Team:      "Red Bull",
		LapNumber: 23,
		LapTime:   model.Sec(94.5),
		Stint:     2,
		Compound:  "SOFT",
		PitInTime: model.Sec(2099.5),
		TyreLife:  model.Age(23),
	})
	laps = append(laps, model.Lap{
		Driver:      "HAM",
		Team:        "Mercedes",
		LapNumber:   1,
		LapTime:     model.Sec(95),
		Stint:       1,
		Compound:    "HARD",
		TyreLife:    model.Age(1),
		TrackStatus: "4",
	})
	return laps
}

func TestLapsRoundTrip(t *testing.T) {
	paths := Paths{DataDir: t.TempDir()}
	want := testLaps()
	require.NoError(t, WriteLaps(paths.RawLaps("test_2022"), want))

	got, err := ReadLaps(paths.RawLaps("test_2022"))
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("laps differ after reload: %s", diff)
	}
}

func TestReadLapsMissingFile(t *testing.T) {
	paths := Paths{DataDir: t.TempDir()}
	_, err := ReadLaps(paths.RawLaps("test_2022"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRawLapsMissing)
	assert.Contains(t, err.Error(), "stint-analyzer fetch")
}

func TestWritePitStopsEmptyKeepsColumns(t *testing.T) {
	paths := Paths{DataDir: t.TempDir()}
	file := paths.PitStops("test_2022")
	require.NoError(t, WritePitStops(file, []model.PitStop{}))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	header := strings.TrimSpace(string(data))
	assert.Equal(t,
		"Driver,Team,Stop,InLap,InTime,OutTime,LapTime,Stint,Compound,TyreLife,TrackStatus",
		header)

	stops, err := ReadPitStops(file)
	require.NoError(t, err)
	assert.Empty(t, stops)
}

// Re-running the aggregation on a reloaded cleaned-laps table must produce
// identical stint summaries and degradation fits.
func TestAggregationIdempotentUnderReload(t *testing.T) {
	ctx := context.Background()
	paths := Paths{DataDir: t.TempDir()}

	cleanLaps, err := analysis.CleanLaps(ctx, testLaps())
	require.NoError(t, err)
	wantSummaries := analysis.StintSummaries(cleanLaps)
	wantFits, err := analysis.FitDegradation(ctx, cleanLaps)
	require.NoError(t, err)
	require.NotEmpty(t, wantFits)

	require.NoError(t, WriteLaps(paths.CleanLaps("test_2022"), cleanLaps))
	reloaded, err := ReadLaps(paths.CleanLaps("test_2022"))
	require.NoError(t, err)

	gotSummaries := analysis.StintSummaries(reloaded)
	gotFits, err := analysis.FitDegradation(ctx, reloaded)
	require.NoError(t, err)

	if diff := cmp.Diff(wantSummaries, gotSummaries); diff != "" {
		t.Errorf("summaries differ after reload: %s", diff)
	}
	if diff := cmp.Diff(wantFits, gotFits); diff != "" {
		t.Errorf("fits differ after reload: %s", diff)
	}
}

func TestResultTablesRoundTrip(t *testing.T) {
	paths := Paths{DataDir: t.TempDir()}

	summaries := []model.StintSummary{
		{
			Driver: "VER", Stint: 1, Compound: "MEDIUM", Laps: 20,
			StartLap: 1, EndLap: 20, MeanPaceS: 90.5, MedianPaceS: 90.4,
		},
	}
	require.NoError(t,
		WriteStintSummaries(paths.StintSummary("test_2022"), summaries))
	gotSummaries, err := ReadStintSummaries(paths.StintSummary("test_2022"))
	require.NoError(t, err)
	assert.Equal(t, summaries, gotSummaries)

	fits := []model.CompoundFit{
		{Compound: "MEDIUM", InterceptS: 90, SlopePerLap: 0.05, N: 22, RmseS: 0.12},
	}
	require.NoError(t,
		WriteCompoundFits(paths.DegradationFit("test_2022"), fits))
	gotFits, err := ReadCompoundFits(paths.DegradationFit("test_2022"))
	require.NoError(t, err)
	assert.Equal(t, fits, gotFits)
}
