package analysis

import (
	"context"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/f1log/stint-analyzer-go/pkg/model"
)

// fenceFactor is the Tukey multiplier for the upper outlier fence.
const fenceFactor = 1.5

// upperFence computes Q3 + 1.5*(Q3-Q1) over lap times in seconds.
// Quartiles use linear interpolation on the sorted sample.
func upperFence(lapTimes []float64) float64 {
	q1 := percentile(lapTimes, 25)
	q3 := percentile(lapTimes, 75)
	return q3 + fenceFactor*(q3-q1)
}

// filterPaceOutliers removes laps slower than the driver's upper fence.
// Fences are independent per driver, so one driver's traffic or damage never
// shifts another driver's threshold. Laps without a lap time are dropped.
// Drivers with no timed lap contribute no rows. Fence computation is
// parallel across drivers; input row order is preserved in the result.
func filterPaceOutliers(ctx context.Context, laps []model.Lap) ([]model.Lap, error) {
	byDriver := lo.GroupBy(laps, func(l model.Lap) string { return l.Driver })

	var mu sync.Mutex
	fences := make(map[string]float64)
	g, _ := errgroup.WithContext(ctx)
	for drv, drvLaps := range byDriver {
		g.Go(func() error {
			times := make([]float64, 0, len(drvLaps))
			for _, l := range drvLaps {
				if l.LapTime.Valid {
					times = append(times, l.LapTime.V)
				}
			}
			if len(times) == 0 {
				return nil
			}
			fence := upperFence(times)
			mu.Lock()
			fences[drv] = fence
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ret := lo.Filter(laps, func(l model.Lap, _ int) bool {
		fence, ok := fences[l.Driver]
		return ok && l.LapTime.Valid && l.LapTime.V <= fence
	})
	return ret, nil
}
