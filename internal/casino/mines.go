package casino

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

// StartMines places a board. The number of safe reveals is fixed here, from the resolution.
func (s *service) StartMines(ctx context.Context, userID string, stake decimal.Decimal, gridSize, mines int) (*domain.Round, error) {
	done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	if err := s.mines.Validate(gridSize, mines); err != nil {
		return nil, err
	}

	ar, err := s.open(ctx, userID, domain.GameMines, stake, s.mines.MaxMultiplier(gridSize, mines))
	if err != nil {
		return view(ar), err
	}

	state, err := s.mines.Start(gridSize, mines, ar.resolution, s.rng)
	if err != nil {
		return view(ar), s.fail(ctx, ar, StageStart, err)
	}
	ar.round.Mines = state
	out := snapshot(ar.round)
	s.rounds.activate(ar)
	return out, nil
}

// RevealTile opens one tile; hitting a mine or clearing the board settles the round
func (s *service) RevealTile(ctx context.Context, userID string, roundID uuid.UUID, tile int) (*domain.Round, error) {
	done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	return s.act(roundID, func() (*domain.Round, error) {
		ar, err := s.owned(userID, roundID, domain.GameMines)
		if err != nil {
			return nil, err
		}
		reveal, err := s.mines.Reveal(ctx, ar.round.Mines, tile, s.rng)
		if err != nil {
			return nil, err
		}
		if reveal.Finished {
			kind, multiplier := s.mines.Result(ar.round.Mines)
			return s.settle(ctx, ar, kind, multiplier)
		}
		return snapshot(ar.round), nil
	})
}

// CashOutMines settles the board at the current ladder multiplier. An
// untouched board settles as a push.
func (s *service) CashOutMines(ctx context.Context, userID string, roundID uuid.UUID) (*domain.Round, error) {
	done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	return s.act(roundID, func() (*domain.Round, error) {
		ar, err := s.owned(userID, roundID, domain.GameMines)
		if err != nil {
			return nil, err
		}
		kind, multiplier, err := s.mines.CashOut(ar.round.Mines)
		if err != nil {
			return nil, err
		}
		return s.settle(ctx, ar, kind, multiplier)
	})
}
