package analysis

import (
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/f1log/stint-analyzer-go/pkg/model"
)

type stintKey struct {
	Driver   string
	Stint    int
	Compound string
}

// StintSummaries aggregates cleaned laps into one row per
// (driver, stint, compound) group. A missing compound is still a valid group
// key. Output is sorted by (driver, stint). Empty input yields empty output.
func StintSummaries(laps []model.Lap) []model.StintSummary {
	groups := lo.GroupBy(laps, func(l model.Lap) stintKey {
		return stintKey{Driver: l.Driver, Stint: l.Stint, Compound: l.Compound}
	})

	ret := make([]model.StintSummary, 0, len(groups))
	for key, group := range groups {
		times := lo.Map(group, func(l model.Lap, _ int) float64 {
			return l.LapTimeS.V
		})
		lapNums := lo.Map(group, func(l model.Lap, _ int) int {
			return l.LapNumber
		})
		ret = append(ret, model.StintSummary{
			Driver:      key.Driver,
			Stint:       key.Stint,
			Compound:    key.Compound,
			Laps:        len(group),
			StartLap:    lo.Min(lapNums),
			EndLap:      lo.Max(lapNums),
			MeanPaceS:   stat.Mean(times, nil),
			MedianPaceS: median(times),
		})
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Driver != ret[j].Driver {
			return ret[i].Driver < ret[j].Driver
		}
		if ret[i].Stint != ret[j].Stint {
			return ret[i].Stint < ret[j].Stint
		}
		return ret[i].Compound < ret[j].Compound
	})
	return ret
}
