package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		p    float64
		want float64
	}{
		{name: "single value", xs: []float64{5}, p: 25, want: 5},
		{name: "q1 interpolated", xs: []float64{1, 2, 3, 4}, p: 25, want: 1.75},
		{name: "q3 interpolated", xs: []float64{1, 2, 3, 4}, p: 75, want: 3.25},
		{name: "median even", xs: []float64{1, 2, 3, 4}, p: 50, want: 2.5},
		{name: "median odd", xs: []float64{3, 1, 2}, p: 50, want: 2},
		{name: "p0", xs: []float64{4, 2, 9}, p: 0, want: 2},
		{name: "p100", xs: []float64{4, 2, 9}, p: 100, want: 9},
		{name: "unsorted input", xs: []float64{4, 1, 3, 2}, p: 75, want: 3.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, percentile(tt.xs, tt.p), 1e-9)
		})
	}
}

func TestPercentileDoesNotModifyInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	percentile(xs, 50)
	assert.Equal(t, []float64{3, 1, 2}, xs)
}
