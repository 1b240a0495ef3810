package games

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/catalog"
	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
	"github.com/osse101/BrandishCasino_Go/internal/payout"
	"github.com/osse101/BrandishCasino_Go/internal/rng"
	"github.com/osse101/BrandishCasino_Go/internal/utils"
)

// MinesEngine runs mines boards. The number of safe reveals a round allows is fixed at
// start from the resolved probability. Mines are moved under the player's clicks to
// honour it.
type MinesEngine struct {
	table            catalog.MinesTable
	instantLossShare float64
}

// NewMinesEngine creates a mines engine. instantLossShare outside [0,1] uses the default.
func NewMinesEngine(table catalog.MinesTable, instantLossShare float64) *MinesEngine {
	if math.IsNaN(instantLossShare) || instantLossShare < 0 || instantLossShare > 1 {
		instantLossShare = DefaultMinesInstantLossShare
	}
	return &MinesEngine{table: table, instantLossShare: instantLossShare}
}

// MinesReveal reports what a reveal did
type MinesReveal struct {
	Tile     int
	HitMine  bool
	Finished bool
}

// Validate rejects an unplayable board before any money moves
func (e *MinesEngine) Validate(gridSize, mines int) error {
	if !e.supportsGrid(gridSize) {
		return fmt.Errorf("%w: grid size %d is not offered", domain.ErrInvalidBetParameters, gridSize)
	}
	return payout.ValidateMinesBoard(mines, gridSize*gridSize)
}

// MaxMultiplier is the ladder cap of the board
func (e *MinesEngine) MaxMultiplier(gridSize, mines int) decimal.Decimal {
	return payout.Multiplier(payout.MinesCap(mines, gridSize*gridSize))
}

// Start places the mines and fixes how many safe reveals the round allows
func (e *MinesEngine) Start(gridSize, mines int, res domain.Resolution, src rng.Source) (*domain.MinesState, error) {
	if err := e.Validate(gridSize, mines); err != nil {
		return nil, err
	}

	s := &domain.MinesState{
		GridSize: gridSize,
		Mines:    mines,
		Revealed: []int{},
	}
	total := s.Total()
	safe := s.SafeSpots()

	p := utils.ClampProbability(res.Probability)
	switch {
	case res.ForceWin:
		s.MaxSafeReveals = safe
	case res.ForceLoss:
		s.MaxSafeReveals = 0
	default:
		s.MaxSafeReveals = int(math.Floor(float64(safe) * p))
		if src.Float64() < e.instantLossShare*(1-p) {
			s.MaxSafeReveals = 0
		}
	}

	s.Layout = make([]bool, total)
	for i := 0; i < mines; i++ {
		s.Layout[i] = true
	}
	rng.Shuffle(src, total, func(i, j int) { s.Layout[i], s.Layout[j] = s.Layout[j], s.Layout[i] })

	s.Multiplier = 1
	s.NextMultiplier = payout.MinesMultiplier(1, mines, total)
	return s, nil
}

// Reveal opens a tile
func (e *MinesEngine) Reveal(ctx context.Context, s *domain.MinesState, tile int, src rng.Source) (MinesReveal, error) {
	if s.HitMine != nil || s.CashedOut {
		return MinesReveal{}, domain.ErrRoundNotActive
	}
	if tile < 0 || tile >= s.Total() {
		return MinesReveal{}, fmt.Errorf("%w: tile %d is off the board", domain.ErrInvalidBetParameters, tile)
	}
	if s.IsRevealed(tile) {
		return MinesReveal{}, fmt.Errorf("%w: tile %d is already revealed", domain.ErrInvalidBetParameters, tile)
	}

	log := logger.FromContext(ctx)

	if s.SafeRevealed >= s.MaxSafeReveals {
		if !s.Layout[tile] {
			e.moveMineOnto(s, tile, src)
			log.Debug(LogMsgMineForced, "tile", tile, "safe_revealed", s.SafeRevealed)
		}
		s.Revealed = append(s.Revealed, tile)
		hit := tile
		s.HitMine = &hit
		s.Multiplier = 0
		s.NextMultiplier = 0
		s.MinePositions = minePositions(s)
		return MinesReveal{Tile: tile, HitMine: true, Finished: true}, nil
	}

	if s.Layout[tile] {
		e.moveMineAway(s, tile, src)
		log.Debug(LogMsgMineRelocated, "tile", tile)
	}
	s.Revealed = append(s.Revealed, tile)
	s.SafeRevealed++
	s.Multiplier = payout.MinesMultiplier(s.SafeRevealed, s.Mines, s.Total())

	if s.SafeRevealed == s.SafeSpots() {
		s.NextMultiplier = s.Multiplier
		s.CashedOut = true
		s.MinePositions = minePositions(s)
		return MinesReveal{Tile: tile, Finished: true}, nil
	}
	s.NextMultiplier = payout.MinesMultiplier(s.SafeRevealed+1, s.Mines, s.Total())
	return MinesReveal{Tile: tile}, nil
}

// CashOut ends the round at the current ladder multiplier.
// Cashing out an untouched board returns the stake as a push.
func (e *MinesEngine) CashOut(s *domain.MinesState) (domain.OutcomeKind, decimal.Decimal, error) {
	if s.HitMine != nil || s.CashedOut {
		return "", decimal.Zero, domain.ErrRoundNotActive
	}
	s.CashedOut = true
	s.MinePositions = minePositions(s)
	kind, multiplier := e.Result(s)
	return kind, multiplier, nil
}

// Result returns the realized outcome of a finished board
func (e *MinesEngine) Result(s *domain.MinesState) (domain.OutcomeKind, decimal.Decimal) {
	if s.HitMine != nil {
		return domain.OutcomeLoss, decimal.Zero
	}
	if s.SafeRevealed == 0 {
		return domain.OutcomePush, decimal.NewFromInt(1)
	}
	return domain.OutcomeWin, payout.Multiplier(s.Multiplier)
}

// moveMineAway relocates the mine under tile to another unrevealed safe tile
func (e *MinesEngine) moveMineAway(s *domain.MinesState, tile int, src rng.Source) {
	target, err := sampleWhere(src, intRange(0, s.Total()-1), func(i int) bool {
		return i != tile && !s.Layout[i] && !s.IsRevealed(i)
	}, nil)
	if err != nil {
		// unreachable: below the limit at least one unrevealed safe tile remains
		return
	}
	s.Layout[tile] = false
	s.Layout[target] = true
}

// moveMineOnto swaps a mine from another unrevealed tile onto tile
func (e *MinesEngine) moveMineOnto(s *domain.MinesState, tile int, src rng.Source) {
	source, err := sampleWhere(src, intRange(0, s.Total()-1), func(i int) bool {
		return i != tile && s.Layout[i] && !s.IsRevealed(i)
	}, nil)
	if err != nil {
		s.Layout[tile] = true
		return
	}
	s.Layout[source] = false
	s.Layout[tile] = true
}

func (e *MinesEngine) supportsGrid(size int) bool {
	for _, s := range e.table.GridSizes {
		if s == size {
			return true
		}
	}
	return false
}

func minePositions(s *domain.MinesState) []int {
	out := make([]int, 0, s.Mines)
	for i, mine := range s.Layout {
		if mine {
			out = append(out, i)
		}
	}
	return out
}
