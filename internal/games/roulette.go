package games

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/catalog"
	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
	"github.com/osse101/BrandishCasino_Go/internal/rng"
)

// RouletteEngine spins a single-zero wheel
type RouletteEngine struct {
	catalog *catalog.Catalog
}

// NewRouletteEngine creates a roulette engine
func NewRouletteEngine(cat *catalog.Catalog) *RouletteEngine {
	return &RouletteEngine{catalog: cat}
}

// Validate rejects malformed bets before any money moves
func (e *RouletteEngine) Validate(bet domain.RouletteBet) error {
	if _, err := e.catalog.RouletteMultiplier(bet.Type); err != nil {
		return fmt.Errorf("%w: %s %q", domain.ErrInvalidBetParameters, domain.ErrMsgUnsupportedBetType, bet.Type)
	}
	if !bet.RequiresSelection() {
		return nil
	}
	if bet.Selection == nil {
		return fmt.Errorf("%w: %s bet needs a selection", domain.ErrInvalidBetParameters, bet.Type)
	}
	sel := *bet.Selection
	switch bet.Type {
	case domain.RouletteStraight:
		if sel < 0 || sel >= domain.RoulettePockets {
			return fmt.Errorf("%w: number %d is not on the wheel", domain.ErrInvalidBetParameters, sel)
		}
	default:
		if sel < 1 || sel > 3 {
			return fmt.Errorf("%w: %s selection must be 1-3", domain.ErrInvalidBetParameters, bet.Type)
		}
	}
	return nil
}

// MaxMultiplier is the return of a winning bet of this type
func (e *RouletteEngine) MaxMultiplier(bet domain.RouletteBet) (decimal.Decimal, error) {
	return e.catalog.RouletteMultiplier(bet.Type)
}

// Spin lands the ball on a pocket consistent with the decision
func (e *RouletteEngine) Spin(ctx context.Context, bet domain.RouletteBet, decision domain.OutcomeDecision, src rng.Source) (domain.RouletteState, domain.OutcomeKind, decimal.Decimal, error) {
	if err := e.Validate(bet); err != nil {
		return domain.RouletteState{}, "", decimal.Zero, err
	}
	multiplier, err := e.catalog.RouletteMultiplier(bet.Type)
	if err != nil {
		return domain.RouletteState{}, "", decimal.Zero, err
	}

	wantWin := decision.Won
	keep := func(n int) bool { return bet.Covers(n) == wantWin }

	pockets := intRange(0, domain.RoulettePockets-1)
	number, err := sampleWhere(src, pockets, keep, nil)
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgResampleExhausted, "game", domain.GameRoulette, "bet", bet.Type)
		number = 0
		for _, n := range pockets {
			if keep(n) {
				number = n
				break
			}
		}
	}

	state := domain.RouletteState{Bet: bet, Number: number, Color: domain.PocketColor(number)}
	if bet.Covers(number) {
		return state, domain.OutcomeWin, multiplier, nil
	}
	return state, domain.OutcomeLoss, decimal.Zero, nil
}
