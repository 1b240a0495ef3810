// Package games holds the decision-first outcome engines. Each engine receives an
// already drawn decision and produces visible evidence consistent with it.
package games

import (
	"fmt"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/rng"
)

// sampleWhere draws one candidate among those accepted by keep.
// With a nil weight the draw is uniform. An empty subset returns ErrResampleExhausted.
func sampleWhere[T any](src rng.Source, candidates []T, keep func(T) bool, weight func(T) float64) (T, error) {
	weights := make([]float64, len(candidates))
	for i, c := range candidates {
		if !keep(c) {
			continue
		}
		if weight == nil {
			weights[i] = 1
		} else {
			weights[i] = weight(c)
		}
	}

	idx := rng.Weighted(src, weights)
	if idx < 0 {
		var zero T
		return zero, fmt.Errorf("%w: %d candidates", domain.ErrResampleExhausted, len(candidates))
	}
	return candidates[idx], nil
}

func intRange(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
