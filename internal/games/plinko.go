package games

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/catalog"
	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
	"github.com/osse101/BrandishCasino_Go/internal/payout"
	"github.com/osse101/BrandishCasino_Go/internal/rng"
	"github.com/osse101/BrandishCasino_Go/internal/utils"
)

// PlinkoEngine picks the landing bucket from the decision, then builds a path that reaches it
type PlinkoEngine struct {
	catalog *catalog.Catalog
}

// NewPlinkoEngine creates a plinko engine
func NewPlinkoEngine(cat *catalog.Catalog) *PlinkoEngine {
	return &PlinkoEngine{catalog: cat}
}

// Validate rejects unknown risk levels and row counts
func (e *PlinkoEngine) Validate(params domain.PlinkoParams) error {
	_, err := e.catalog.PlinkoTableFor(params.Risk, params.Rows)
	return err
}

// MaxMultiplier is the best bucket of the chosen table
func (e *PlinkoEngine) MaxMultiplier(params domain.PlinkoParams) (decimal.Decimal, error) {
	return e.catalog.PlinkoMaxMultiplier(params.Risk, params.Rows)
}

// Drop lands the ball in a bucket consistent with the decision.
// Winning buckets pay more than the stake; a bucket paying exactly 1 settles as a push.
func (e *PlinkoEngine) Drop(ctx context.Context, params domain.PlinkoParams, decision domain.OutcomeDecision, src rng.Source) (domain.PlinkoState, domain.OutcomeKind, error) {
	table, err := e.catalog.PlinkoTableFor(params.Risk, params.Rows)
	if err != nil {
		return domain.PlinkoState{}, "", err
	}

	buckets := intRange(0, params.Rows)
	keep := func(b int) bool { return table[b] <= 1 }
	if decision.Won {
		keep = func(b int) bool { return table[b] > 1 }
	}
	weight := func(b int) float64 { return utils.BinomialProbability(params.Rows, b) }

	bucket, err := sampleWhere(src, buckets, keep, weight)
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgResampleExhausted, "game", domain.GamePlinko, "risk", params.Risk, "rows", params.Rows)
		bucket = extremeBucket(table, decision.Won)
	}

	multiplier := payout.Multiplier(table[bucket])
	state := domain.PlinkoState{
		Rows:       params.Rows,
		Risk:       params.Risk,
		Path:       pathTo(params.Rows, bucket, src),
		Bucket:     bucket,
		Multiplier: multiplier,
	}

	one := decimal.NewFromInt(1)
	switch {
	case multiplier.GreaterThan(one):
		return state, domain.OutcomeWin, nil
	case multiplier.Equal(one):
		return state, domain.OutcomePush, nil
	default:
		return state, domain.OutcomeLoss, nil
	}
}

// pathTo walks rows steps ending in bucket. Each step goes right with probability
// rightsRemaining/rowsRemaining, which is the uniform distribution over paths to bucket.
func pathTo(rows, bucket int, src rng.Source) []int {
	path := make([]int, rows)
	rights := bucket
	for r := 0; r < rows; r++ {
		remaining := rows - r
		if rights > 0 && src.Float64() < float64(rights)/float64(remaining) {
			path[r] = 1
			rights--
		}
	}
	return path
}

// extremeBucket is the deterministic fallback: best bucket for a win, worst for a loss
func extremeBucket(table []float64, won bool) int {
	best := 0
	for i, m := range table {
		if (won && m > table[best]) || (!won && m < table[best]) {
			best = i
		}
	}
	return best
}
