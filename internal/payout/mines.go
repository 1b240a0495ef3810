package payout

import (
	"fmt"
	"math"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/utils"
)

// ValidateMinesBoard checks that the board has a known cap and a sane mine count
func ValidateMinesBoard(mines, total int) error {
	if _, ok := minesBaseCaps[total]; !ok {
		return fmt.Errorf("%w: unsupported board of %d tiles", domain.ErrInvalidBetParameters, total)
	}
	if mines < 1 || mines >= total {
		return fmt.Errorf("%w: mines must be between 1 and %d", domain.ErrInvalidBetParameters, total-1)
	}
	return nil
}

// MinesCap returns the highest multiplier a board can pay.
// It grows with mine density and never drops below MinesMinCap.
func MinesCap(mines, total int) float64 {
	base, ok := minesBaseCaps[total]
	if !ok || total < 2 {
		return MinesMinCap
	}
	density := float64(mines) / float64(total-1)
	return math.Max(MinesMinCap, base*(0.3+0.7*density))
}

// MinesMultiplier returns the ladder multiplier after revealed safe tiles
func MinesMultiplier(revealed, mines, total int) float64 {
	if revealed <= 0 {
		return 1
	}
	safeSpots := total - mines
	if safeSpots <= 0 {
		return 1
	}
	if revealed > safeSpots {
		revealed = safeSpots
	}

	mineBonus := 1 + MinesBonusWeight*float64(mines)/float64(total)
	mult := 1.0
	for i := 0; i < revealed; i++ {
		remainingSafe := float64(safeSpots - i)
		remainingTotal := float64(total - i)
		mult *= (remainingTotal / remainingSafe) * mineBonus
	}

	if float64(mines) >= MinesHighDensityRatio*float64(total) {
		mult *= 1 + MinesHighDensityBonus*float64(revealed)/float64(safeSpots)
	}

	mult *= MinesHouseShave
	return utils.Clamp(mult, 1, MinesCap(mines, total))
}

// MinesLadder returns the multiplier after each possible number of safe reveals, starting at 0
func MinesLadder(mines, total int) []float64 {
	safeSpots := total - mines
	if safeSpots < 0 {
		safeSpots = 0
	}
	ladder := make([]float64, safeSpots+1)
	for i := range ladder {
		ladder[i] = MinesMultiplier(i, mines, total)
	}
	return ladder
}
