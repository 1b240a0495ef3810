package games

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/catalog"
	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
	"github.com/osse101/BrandishCasino_Go/internal/payout"
	"github.com/osse101/BrandishCasino_Go/internal/rng"
)

// BlackjackEngine deals from an infinite deck and steers the dealer toward the decision.
// Player cards are never steered.
type BlackjackEngine struct {
	table catalog.BlackjackTable
}

// NewBlackjackEngine creates a blackjack engine
func NewBlackjackEngine(table catalog.BlackjackTable) *BlackjackEngine {
	return &BlackjackEngine{table: table}
}

// MaxMultiplier is the best return of one hand, a won double
func (e *BlackjackEngine) MaxMultiplier() decimal.Decimal {
	return payout.Multiplier(e.table.MaxMultiplier)
}

// Deal deals two cards each. A natural on either side finishes the hand.
func (e *BlackjackEngine) Deal(src rng.Source) *domain.BlackjackState {
	s := &domain.BlackjackState{
		PlayerCards: []domain.Card{drawCard(src), drawCard(src)},
		DealerCards: []domain.Card{drawCard(src), drawCard(src)},
		Phase:       domain.PhasePlayerTurn,
	}
	s.Natural = domain.IsNatural(s.PlayerCards)
	if s.Natural || domain.IsNatural(s.DealerCards) {
		s.Phase = domain.PhaseFinished
	}
	updateTotals(s)
	return s
}

// Act applies a player action. The hand finishes on bust, stand, double, or reaching 21.
func (e *BlackjackEngine) Act(ctx context.Context, s *domain.BlackjackState, action domain.BlackjackAction, decision domain.OutcomeDecision, src rng.Source) error {
	if s.Phase != domain.PhasePlayerTurn {
		return domain.ErrRoundNotActive
	}

	switch action {
	case domain.BlackjackHit:
		s.PlayerCards = append(s.PlayerCards, drawCard(src))
	case domain.BlackjackStand:
	case domain.BlackjackDouble:
		if len(s.PlayerCards) != 2 {
			return fmt.Errorf("%w: double is only allowed on the first two cards", domain.ErrInvalidBetParameters)
		}
		s.Doubled = true
		s.PlayerCards = append(s.PlayerCards, drawCard(src))
	default:
		return fmt.Errorf("%w: %s %q", domain.ErrInvalidBetParameters, domain.ErrMsgUnsupportedAction, action)
	}
	updateTotals(s)

	switch {
	case s.PlayerTotal > BlackjackTarget:
		s.Phase = domain.PhaseFinished
	case action != domain.BlackjackHit || s.PlayerTotal == BlackjackTarget:
		e.playDealer(ctx, s, decision, src)
	}
	return nil
}

// Result returns the realized outcome and multiplier of a finished hand
func (e *BlackjackEngine) Result(s *domain.BlackjackState) (domain.OutcomeKind, decimal.Decimal) {
	playerNatural := s.Natural
	dealerNatural := domain.IsNatural(s.DealerCards)

	switch {
	case playerNatural && dealerNatural:
		return domain.OutcomePush, decimal.NewFromInt(1)
	case playerNatural:
		return domain.OutcomeWin, payout.Multiplier(e.table.Natural)
	case dealerNatural:
		return domain.OutcomeLoss, decimal.Zero
	case s.PlayerTotal > BlackjackTarget:
		return domain.OutcomeLoss, decimal.Zero
	case s.DealerTotal > BlackjackTarget, s.PlayerTotal > s.DealerTotal:
		return domain.OutcomeWin, payout.Multiplier(e.table.Win)
	case s.PlayerTotal == s.DealerTotal:
		return domain.OutcomePush, decimal.NewFromInt(1)
	default:
		return domain.OutcomeLoss, decimal.Zero
	}
}

func (e *BlackjackEngine) playDealer(ctx context.Context, s *domain.BlackjackState, decision domain.OutcomeDecision, src rng.Source) {
	s.Phase = domain.PhaseDealerTurn
	if decision.Won {
		e.dealerToLose(ctx, s, src)
	} else {
		e.dealerToWin(ctx, s, src)
	}
	updateTotals(s)
	s.Phase = domain.PhaseFinished
}

// dealerToLose plays house rules to 17, then keeps drawing toward a bust while still ahead
func (e *BlackjackEngine) dealerToLose(ctx context.Context, s *domain.BlackjackState, src rng.Source) {
	for dealerTotal(s) < DealerStandTotal && len(s.DealerCards) < maxDealerCards {
		s.DealerCards = append(s.DealerCards, drawCard(src))
	}

	for len(s.DealerCards) < maxDealerCards {
		total := dealerTotal(s)
		if total > BlackjackTarget || total < s.PlayerTotal {
			return
		}
		card, err := drawCardWhere(src, s.DealerCards, func(t int) bool { return t > BlackjackTarget })
		if err != nil {
			logger.FromContext(ctx).Debug(LogMsgResampleExhausted, "game", domain.GameBlackjack, "dealer_total", total)
			card = drawCard(src)
		}
		s.DealerCards = append(s.DealerCards, card)
	}
}

// dealerToWin draws only safe cards while behind, preferring ones that pass the player
func (e *BlackjackEngine) dealerToWin(ctx context.Context, s *domain.BlackjackState, src rng.Source) {
	player := s.PlayerTotal
	for dealerTotal(s) < player && len(s.DealerCards) < maxDealerCards {
		card, err := drawCardWhere(src, s.DealerCards, func(t int) bool { return t > player && t <= BlackjackTarget })
		if err != nil {
			card, err = drawCardWhere(src, s.DealerCards, func(t int) bool { return t <= BlackjackTarget })
		}
		if err != nil {
			logger.FromContext(ctx).Debug(LogMsgResampleExhausted, "game", domain.GameBlackjack, "dealer_total", dealerTotal(s))
			return
		}
		s.DealerCards = append(s.DealerCards, card)
	}
}

func drawCard(src rng.Source) domain.Card {
	return domain.Card{
		Rank: cardRanks[src.IntN(len(cardRanks))],
		Suit: cardSuits[src.IntN(len(cardSuits))],
	}
}

// drawCardWhere draws a rank whose addition to hand gives a total accepted by keep
func drawCardWhere(src rng.Source, hand []domain.Card, keep func(total int) bool) (domain.Card, error) {
	next := make([]domain.Card, len(hand)+1)
	copy(next, hand)
	rank, err := sampleWhere(src, cardRanks, func(r string) bool {
		next[len(hand)] = domain.Card{Rank: r}
		total, _ := domain.HandValue(next)
		return keep(total)
	}, nil)
	if err != nil {
		return domain.Card{}, err
	}
	return domain.Card{Rank: rank, Suit: cardSuits[src.IntN(len(cardSuits))]}, nil
}

func dealerTotal(s *domain.BlackjackState) int {
	total, _ := domain.HandValue(s.DealerCards)
	return total
}

func updateTotals(s *domain.BlackjackState) {
	s.PlayerTotal, _ = domain.HandValue(s.PlayerCards)
	s.DealerTotal, _ = domain.HandValue(s.DealerCards)
}
