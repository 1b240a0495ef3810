package casino

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/event"
)

// StartBlackjack deals a hand. A natural on either side settles immediately.
func (s *service) StartBlackjack(ctx context.Context, userID string, stake decimal.Decimal) (*domain.Round, error) {
	done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	ar, err := s.open(ctx, userID, domain.GameBlackjack, stake, s.blackjack.MaxMultiplier())
	if err != nil {
		return view(ar), err
	}

	ar.round.Blackjack = s.blackjack.Deal(s.rng)
	if ar.round.Blackjack.Phase == domain.PhaseFinished {
		kind, multiplier := s.blackjack.Result(ar.round.Blackjack)
		return s.settle(ctx, ar, kind, multiplier)
	}

	out := snapshot(ar.round)
	s.rounds.activate(ar)
	return out, nil
}

// BlackjackAction applies hit, stand or double to an open hand
func (s *service) BlackjackAction(ctx context.Context, userID string, roundID uuid.UUID, action domain.BlackjackAction) (*domain.Round, error) {
	done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	return s.act(roundID, func() (*domain.Round, error) {
		ar, err := s.owned(userID, roundID, domain.GameBlackjack)
		if err != nil {
			return nil, err
		}
		state := ar.round.Blackjack
		if state.Phase != domain.PhasePlayerTurn {
			return nil, domain.ErrRoundNotActive
		}

		if action == domain.BlackjackDouble {
			if len(state.PlayerCards) != 2 {
				return nil, fmt.Errorf("%w: double is only allowed on the first two cards", domain.ErrInvalidBetParameters)
			}
			if err := s.doubleStake(ctx, ar); err != nil {
				return snapshot(ar.round), err
			}
		}

		if err := s.blackjack.Act(ctx, state, action, ar.decision, s.rng); err != nil {
			return nil, err
		}
		if state.Phase == domain.PhaseFinished {
			kind, multiplier := s.blackjack.Result(state)
			return s.settle(ctx, ar, kind, multiplier)
		}
		return snapshot(ar.round), nil
	})
}

// doubleStake debits a second base stake. A short balance leaves the hand untouched.
func (s *service) doubleStake(ctx context.Context, ar *activeRound) error {
	round := ar.round
	reference := round.ID.String() + domain.RefSuffixDouble
	after, err := s.withLedgerRetry(ctx, StageDouble, func(callCtx context.Context) (decimal.Decimal, error) {
		return s.ledger.Debit(callCtx, round.UserID, ar.baseStake, reference)
	})
	if errors.Is(err, domain.ErrInsufficientBalance) {
		return fmt.Errorf("%w: cannot cover the double", err)
	}
	if err != nil {
		return s.fail(ctx, ar, StageDouble, err)
	}

	round.Stake = ar.baseStake.Mul(decimal.NewFromInt(2))
	round.Balance = after
	s.publish(ctx, event.NewBalanceUpdatedEvent(round.UserID, after, ar.baseStake.Neg(), reference))
	return nil
}
