package casino

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/rng"
)

// Run with -race: GetRound must never read a board while a reveal mutates it.
func TestGetRound_ConcurrentWithReveals(t *testing.T) {
	ledger := newMemLedger(map[string]decimal.Decimal{"user1": dec("100")})
	svc, _ := newTestService(t, ledger, resolverReturning(domain.Resolution{ForceWin: true, Source: domain.SourceForced}), rng.NewSeeded(5))
	ctx := context.Background()

	round, err := svc.StartMines(ctx, "user1", dec("10"), 5, 3)
	require.NoError(t, err)
	safe := round.Mines.SafeSpots()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for tile := 0; tile < safe; tile++ {
			if _, err := svc.RevealTile(ctx, "user1", round.ID, tile); err != nil {
				assert.NoError(t, err, "reveal %d", tile)
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		seen := 0
		for i := 0; i < 200; i++ {
			got, err := svc.GetRound(ctx, "user1", round.ID)
			if !assert.NoError(t, err) {
				return
			}
			assert.Nil(t, got.Mines.Layout)
			assert.GreaterOrEqual(t, got.Mines.SafeRevealed, seen, "reveals never go backwards")
			assert.Len(t, got.Mines.Revealed, got.Mines.SafeRevealed)
			seen = got.Mines.SafeRevealed
		}
	}()

	wg.Wait()

	final, err := svc.GetRound(ctx, "user1", round.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoundSettled, final.Status)
	assert.Equal(t, domain.OutcomeWin, final.Outcome)
	assert.Equal(t, safe, final.Mines.SafeRevealed)
}

func TestGetRound_ServesPublishedCopy(t *testing.T) {
	ledger := newMemLedger(map[string]decimal.Decimal{"user1": dec("100")})
	svc, _ := newTestService(t, ledger, resolverReturning(domain.Resolution{ForceWin: true, Source: domain.SourceForced}), rng.NewSeeded(5))
	ctx := context.Background()

	round, err := svc.StartMines(ctx, "user1", dec("10"), 5, 3)
	require.NoError(t, err)

	_, err = svc.RevealTile(ctx, "user1", round.ID, 7)
	require.NoError(t, err)

	got, err := svc.GetRound(ctx, "user1", round.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, got.Mines.Revealed)

	// Callers own their copy.
	got.Mines.Revealed[0] = 99
	again, err := svc.GetRound(ctx, "user1", round.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, again.Mines.Revealed)
}
