package repository

import (
	"context"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

// Settings stores win rate layers and forced outcomes
type Settings interface {
	GetWinRates(ctx context.Context, userID string, game domain.GameType) (domain.WinRates, error)
	// ConsumeForcedOutcome decrements remaining in one guarded statement.
	// ok is false when nothing was pending for the pair.
	ConsumeForcedOutcome(ctx context.Context, userID string, game domain.GameType) (mode domain.ForcedMode, ok bool, err error)

	UpsertWinRate(ctx context.Context, override domain.WinRateOverride) error
	DeleteWinRate(ctx context.Context, scope domain.RateScope, game domain.GameType, userID string) error
	ListWinRates(ctx context.Context) ([]domain.WinRateOverride, error)

	UpsertForcedOutcome(ctx context.Context, forced domain.ForcedOutcome) error
	DeleteForcedOutcome(ctx context.Context, userID string, game domain.GameType) error
	ListForcedOutcomes(ctx context.Context) ([]domain.ForcedOutcome, error)
}
