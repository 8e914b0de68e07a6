package analysis

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/f1log/stint-analyzer-go/pkg/model"
)

const (
	// minimum qualifying laps per compound for a stable fit
	minFitSamples = 20
	// minimum distinct tyre age values per compound
	minDistinctAges = 3
)

// FitDegradation fits an ordinary least squares line
//
//	lapTimeS = intercept + slope * tyreLife
//
// per tyre compound over the cleaned laps. Rows missing lap time, tyre age
// or compound are dropped first. Compounds with fewer than minFitSamples rows
// or fewer than minDistinctAges distinct tyre age values are skipped.
// Fits run in parallel per compound; output is sorted by compound name.
func FitDegradation(ctx context.Context, laps []model.Lap) ([]model.CompoundFit, error) {
	usable := lo.Filter(laps, func(l model.Lap, _ int) bool {
		return l.LapTimeS.Valid && l.TyreLife.Valid && l.Compound != ""
	})
	groups := lo.GroupBy(usable, func(l model.Lap) string { return l.Compound })

	var mu sync.Mutex
	ret := make([]model.CompoundFit, 0, len(groups))
	g, _ := errgroup.WithContext(ctx)
	for compound, group := range groups {
		g.Go(func() error {
			fit, ok := fitCompound(compound, group)
			if !ok {
				return nil
			}
			mu.Lock()
			ret = append(ret, fit)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Compound < ret[j].Compound
	})
	return ret, nil
}

func fitCompound(compound string, laps []model.Lap) (model.CompoundFit, bool) {
	if len(laps) < minFitSamples {
		return model.CompoundFit{}, false
	}
	ages := lo.Map(laps, func(l model.Lap, _ int) float64 { return l.TyreLife.V })
	if len(lo.Uniq(ages)) < minDistinctAges {
		return model.CompoundFit{}, false
	}
	times := lo.Map(laps, func(l model.Lap, _ int) float64 { return l.LapTimeS.V })

	intercept, slope := stat.LinearRegression(ages, times, nil, false)

	var sqSum float64
	for i := range ages {
		resid := times[i] - (intercept + slope*ages[i])
		sqSum += resid * resid
	}
	return model.CompoundFit{
		Compound:    compound,
		InterceptS:  intercept,
		SlopePerLap: slope,
		N:           len(laps),
		RmseS:       math.Sqrt(sqSum / float64(len(laps))),
	}, true
}
