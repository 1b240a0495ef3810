package casino

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

// SpinSlots plays one slots spin
func (s *service) SpinSlots(ctx context.Context, userID string, stake decimal.Decimal) (*domain.Round, error) {
	done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	ar, err := s.open(ctx, userID, domain.GameSlots, stake, s.slots.MaxMultiplier())
	if err != nil {
		return view(ar), err
	}

	state, kind := s.slots.Spin(ctx, ar.decision, s.rng)
	ar.round.Slots = &state
	return s.settle(ctx, ar, kind, state.Multiplier)
}

// SpinRoulette plays one roulette spin for a single bet
func (s *service) SpinRoulette(ctx context.Context, userID string, stake decimal.Decimal, bet domain.RouletteBet) (*domain.Round, error) {
	done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	if err := s.roulette.Validate(bet); err != nil {
		return nil, err
	}
	maxMultiplier, err := s.roulette.MaxMultiplier(bet)
	if err != nil {
		return nil, err
	}

	ar, err := s.open(ctx, userID, domain.GameRoulette, stake, maxMultiplier)
	if err != nil {
		return view(ar), err
	}

	state, kind, multiplier, err := s.roulette.Spin(ctx, bet, ar.decision, s.rng)
	if err != nil {
		return view(ar), s.fail(ctx, ar, StageStart, err)
	}
	ar.round.Roulette = &state
	return s.settle(ctx, ar, kind, multiplier)
}

// DropPlinko drops one ball
func (s *service) DropPlinko(ctx context.Context, userID string, stake decimal.Decimal, params domain.PlinkoParams) (*domain.Round, error) {
	done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	if err := s.plinko.Validate(params); err != nil {
		return nil, err
	}
	maxMultiplier, err := s.plinko.MaxMultiplier(params)
	if err != nil {
		return nil, err
	}

	ar, err := s.open(ctx, userID, domain.GamePlinko, stake, maxMultiplier)
	if err != nil {
		return view(ar), err
	}

	state, kind, err := s.plinko.Drop(ctx, params, ar.decision, s.rng)
	if err != nil {
		return view(ar), s.fail(ctx, ar, StageStart, err)
	}
	ar.round.Plinko = &state
	return s.settle(ctx, ar, kind, state.Multiplier)
}
