package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

func TestMinesMultiplier_Reference(t *testing.T) {
	tests := []struct {
		name     string
		revealed int
		mines    int
		total    int
		expected float64
	}{
		{"5x5 five mines one reveal", 1, 5, 25, 25.0 / 20.0 * 1.1 * 0.97},
		{"3x3 one mine one reveal", 1, 1, 9, 9.0 / 8.0 * (1 + 0.5/9.0) * 0.97},
		{"3x3 dense board gets density bonus", 1, 6, 9, 9.0 / 3.0 * (1 + 0.5*6.0/9.0) * (1 + 0.3/3.0) * 0.97},
		{"dense board clamps to cap", 3, 6, 9, 16 * (0.3 + 0.7*6.0/8.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, MinesMultiplier(tt.revealed, tt.mines, tt.total), 1e-9)
		})
	}
}

func TestMinesMultiplier_StartsAtOne(t *testing.T) {
	for _, total := range []int{9, 16, 25} {
		for mines := 1; mines < total; mines++ {
			assert.Equal(t, 1.0, MinesMultiplier(0, mines, total), "mines=%d total=%d", mines, total)
		}
	}
}

func TestMinesMultiplier_NonDecreasingAndCapped(t *testing.T) {
	for _, total := range []int{9, 16, 25} {
		for mines := 1; mines < total; mines++ {
			cap := MinesCap(mines, total)
			ladder := MinesLadder(mines, total)
			require.Len(t, ladder, total-mines+1)

			for i := 1; i < len(ladder); i++ {
				assert.GreaterOrEqual(t, ladder[i], ladder[i-1], "mines=%d total=%d step=%d", mines, total, i)
				assert.LessOrEqual(t, ladder[i], cap)
				assert.GreaterOrEqual(t, ladder[i], 1.0)
			}
		}
	}
}

func TestMinesCap(t *testing.T) {
	assert.InDelta(t, 48*(0.3+0.7*5.0/24.0), MinesCap(5, 25), 1e-9)
	assert.InDelta(t, 16*(0.3+0.7*1.0/8.0), MinesCap(1, 9), 1e-9)
	assert.InDelta(t, 24*(0.3+0.7*15.0/15.0), MinesCap(15, 16), 1e-9)
	assert.Equal(t, MinesMinCap, MinesCap(1, 10), "unknown board falls back to the floor")
}

func TestValidateMinesBoard(t *testing.T) {
	assert.NoError(t, ValidateMinesBoard(5, 25))
	assert.NoError(t, ValidateMinesBoard(8, 9))

	err := ValidateMinesBoard(0, 25)
	assert.ErrorIs(t, err, domain.ErrInvalidBetParameters)

	err = ValidateMinesBoard(25, 25)
	assert.ErrorIs(t, err, domain.ErrInvalidBetParameters)

	err = ValidateMinesBoard(3, 36)
	assert.ErrorIs(t, err, domain.ErrInvalidBetParameters)
}
