package analysis

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/f1log/stint-analyzer-go/pkg/model"
)

// isGreen reports whether a lap ran under green flag conditions.
// Track status "1" is green; a missing status is assumed green.
func isGreen(trackStatus string) bool {
	s := strings.TrimSpace(trackStatus)
	return s == "" || s == "1"
}

// isInOutLap reports whether the car entered or exited the pits on this lap.
func isInOutLap(l model.Lap) bool {
	return l.PitInTime.Valid || l.PitOutTime.Valid
}

// CleanLaps reduces the raw lap table to laps usable for pace analysis.
// Filters are applied in order, each narrowing the candidate set:
//
//  1. laps without a lap time are dropped
//  2. only green flag laps are kept
//  3. in-laps and out-laps are dropped
//  4. per driver, laps slower than the Tukey upper fence are dropped
//
// Surviving rows carry their lap time in seconds in LapTimeS.
func CleanLaps(ctx context.Context, laps []model.Lap) ([]model.Lap, error) {
	ret := lo.Filter(laps, func(l model.Lap, _ int) bool {
		return l.LapTime.Valid
	})
	ret = lo.Filter(ret, func(l model.Lap, _ int) bool {
		return isGreen(l.TrackStatus)
	})
	ret = lo.Reject(ret, func(l model.Lap, _ int) bool {
		return isInOutLap(l)
	})
	ret, err := filterPaceOutliers(ctx, ret)
	if err != nil {
		return nil, err
	}
	for i := range ret {
		ret[i].LapTimeS = model.Sec(ret[i].LapTime.V)
	}
	return ret, nil
}
