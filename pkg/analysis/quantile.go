package analysis

import "sort"

// percentile computes the p-th percentile (0..100) of xs using linear
// interpolation between the two nearest ranks of the sorted sample.
// Matches numpy's default interpolation so that fences computed here agree
// with reference tooling. xs must be non-empty and is not modified.
func percentile(xs []float64, p float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	h := p / 100 * float64(len(sorted)-1)
	lo := int(h)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func median(xs []float64) float64 {
	return percentile(xs, 50)
}
