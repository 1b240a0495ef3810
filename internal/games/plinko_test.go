package games

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/rng"
)

func TestPlinko_BucketMatchesDecision(t *testing.T) {
	cat := testCatalog(t)
	engine := NewPlinkoEngine(cat)
	src := rng.NewSeeded(77)
	ctx := context.Background()

	for _, risk := range []domain.PlinkoRisk{domain.PlinkoLow, domain.PlinkoMedium, domain.PlinkoHigh} {
		for _, rows := range cat.PlinkoRows(risk) {
			params := domain.PlinkoParams{Rows: rows, Risk: risk}
			for i := 0; i < 100; i++ {
				won := i%2 == 0
				state, kind, err := engine.Drop(ctx, params, domain.OutcomeDecision{Won: won}, src)
				require.NoError(t, err)

				require.Len(t, state.Path, rows)
				rights := 0
				for _, step := range state.Path {
					rights += step
				}
				assert.Equal(t, state.Bucket, rights, "path must land in its bucket")

				if won {
					assert.Equal(t, domain.OutcomeWin, kind)
					assert.True(t, state.Multiplier.GreaterThan(decimal1))
				} else {
					assert.NotEqual(t, domain.OutcomeWin, kind)
					assert.True(t, state.Multiplier.LessThanOrEqual(decimal1))
				}
			}
		}
	}
}

func TestPlinko_ExactlyOneIsPush(t *testing.T) {
	cat := testCatalog(t)
	engine := NewPlinkoEngine(cat)
	src := rng.NewSeeded(5)

	table, err := cat.PlinkoTableFor(domain.PlinkoLow, 8)
	require.NoError(t, err)

	seenPush := false
	for i := 0; i < 500; i++ {
		state, kind, err := engine.Drop(context.Background(), domain.PlinkoParams{Rows: 8, Risk: domain.PlinkoLow}, domain.OutcomeDecision{}, src)
		require.NoError(t, err)
		if table[state.Bucket] == 1 {
			assert.Equal(t, domain.OutcomePush, kind)
			seenPush = true
		}
	}
	assert.True(t, seenPush, "low/8 has a 1x bucket that losses should reach")
}

func TestPlinko_InvalidParams(t *testing.T) {
	engine := NewPlinkoEngine(testCatalog(t))

	assert.ErrorIs(t, engine.Validate(domain.PlinkoParams{Rows: 9, Risk: domain.PlinkoLow}), domain.ErrInvalidBetParameters)
	_, _, err := engine.Drop(context.Background(), domain.PlinkoParams{Rows: 8, Risk: "wild"}, domain.OutcomeDecision{}, rng.NewSeeded(1))
	assert.ErrorIs(t, err, domain.ErrInvalidBetParameters)
}

func TestPathTo(t *testing.T) {
	src := rng.NewSeeded(9)
	for bucket := 0; bucket <= 16; bucket++ {
		path := pathTo(16, bucket, src)
		sum := 0
		for _, s := range path {
			sum += s
		}
		assert.Equal(t, bucket, sum)
	}
}

func TestExtremeBucket(t *testing.T) {
	table := []float64{5, 1, 0.5, 1, 5}
	assert.Equal(t, 0, extremeBucket(table, true))
	assert.Equal(t, 2, extremeBucket(table, false))
}
