package games

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/catalog"
	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
	"github.com/osse101/BrandishCasino_Go/internal/payout"
	"github.com/osse101/BrandishCasino_Go/internal/rng"
)

// SlotsEngine spins three weighted reels. Only three of a kind pays.
type SlotsEngine struct {
	symbols []catalog.SlotSymbol
	weights []float64
}

// NewSlotsEngine creates a slots engine over the catalog reel strip
func NewSlotsEngine(table catalog.SlotsTable) *SlotsEngine {
	weights := make([]float64, len(table.Symbols))
	for i, s := range table.Symbols {
		weights[i] = s.Weight
	}
	return &SlotsEngine{symbols: table.Symbols, weights: weights}
}

// MaxMultiplier is the best three-of-a-kind on the strip
func (e *SlotsEngine) MaxMultiplier() decimal.Decimal {
	highest := 0.0
	for _, s := range e.symbols {
		if s.Multiplier > highest {
			highest = s.Multiplier
		}
	}
	return payout.Multiplier(highest)
}

// Spin produces reels matching the decision
func (e *SlotsEngine) Spin(ctx context.Context, decision domain.OutcomeDecision, src rng.Source) (domain.SlotsState, domain.OutcomeKind) {
	var state domain.SlotsState

	if decision.Won {
		sym := e.symbols[e.draw(src)]
		for i := range state.Reels {
			state.Reels[i] = sym.Name
		}
		state.Symbol = sym.Name
		state.Multiplier = payout.Multiplier(sym.Multiplier)
		return state, domain.OutcomeWin
	}

	for attempt := 0; attempt < MaxResampleAttempts; attempt++ {
		for i := range state.Reels {
			state.Reels[i] = e.symbols[e.draw(src)].Name
		}
		if !state.AllMatch() {
			state.Multiplier = decimal.Zero
			return state, domain.OutcomeLoss
		}
	}

	// Last reel moves to the next symbol on the strip
	logger.FromContext(ctx).Debug(LogMsgResampleExhausted, "game", domain.GameSlots)
	state.Reels[2] = e.symbols[(e.indexOf(state.Reels[0])+1)%len(e.symbols)].Name
	state.Multiplier = decimal.Zero
	return state, domain.OutcomeLoss
}

func (e *SlotsEngine) draw(src rng.Source) int {
	idx := rng.Weighted(src, e.weights)
	if idx < 0 {
		return src.IntN(len(e.symbols))
	}
	return idx
}

func (e *SlotsEngine) indexOf(name string) int {
	for i, s := range e.symbols {
		if s.Name == name {
			return i
		}
	}
	return 0
}
