package analysis

import (
	"sort"

	"github.com/samber/lo"

	"github.com/f1log/stint-analyzer-go/pkg/model"
)

// PitStops derives the pit stop table from the raw lap table. Every lap with
// a set PitInTime is an in-lap and becomes one pit stop row. Stop numbers are
// assigned per driver in order of the in-lap number, starting at 1.
// An empty input yields an empty table.
func PitStops(laps []model.Lap) []model.PitStop {
	inLaps := lo.Filter(laps, func(l model.Lap, _ int) bool {
		return l.PitInTime.Valid
	})
	ret := lo.Map(inLaps, func(l model.Lap, _ int) model.PitStop {
		return model.PitStop{
			Driver:      l.Driver,
			Team:        l.Team,
			InLap:       l.LapNumber,
			InTime:      l.PitInTime,
			OutTime:     l.PitOutTime,
			LapTime:     l.LapTime,
			Stint:       l.Stint,
			Compound:    l.Compound,
			TyreLife:    l.TyreLife,
			TrackStatus: l.TrackStatus,
		}
	})
	sort.SliceStable(ret, func(i, j int) bool {
		if ret[i].Driver != ret[j].Driver {
			return ret[i].Driver < ret[j].Driver
		}
		return ret[i].InLap < ret[j].InLap
	})
	stops := map[string]int{}
	for i := range ret {
		stops[ret[i].Driver]++
		ret[i].Stop = stops[ret[i].Driver]
	}
	return ret
}
