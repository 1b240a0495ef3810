package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/validation"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.Len(t, cat.Slots.Symbols, 7)
	assert.Equal(t, "50", cat.SlotsMaxMultiplier().String())

	straight, err := cat.RouletteMultiplier(domain.RouletteStraight)
	require.NoError(t, err)
	assert.Equal(t, "35", straight.String())

	dozen, err := cat.RouletteMultiplier(domain.RouletteDozen)
	require.NoError(t, err)
	assert.Equal(t, "3", dozen.String())

	red, err := cat.RouletteMultiplier(domain.RouletteRed)
	require.NoError(t, err)
	assert.Equal(t, "2", red.String())

	assert.Equal(t, 2.5, cat.Blackjack.Natural)
	assert.True(t, cat.SupportsGridSize(5))
	assert.False(t, cat.SupportsGridSize(6))
}

func TestPlinkoTables(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	for _, risk := range []domain.PlinkoRisk{domain.PlinkoLow, domain.PlinkoMedium, domain.PlinkoHigh} {
		assert.Equal(t, []int{8, 12, 16}, cat.PlinkoRows(risk))
		for _, rows := range cat.PlinkoRows(risk) {
			table, err := cat.PlinkoTableFor(risk, rows)
			require.NoError(t, err)
			assert.Len(t, table, rows+1)

			for i := range table {
				assert.Equal(t, table[i], table[len(table)-1-i], "table %s/%d must be symmetric", risk, rows)
			}
		}
	}

	highest, err := cat.PlinkoMaxMultiplier(domain.PlinkoHigh, 16)
	require.NoError(t, err)
	assert.Equal(t, "1000", highest.String())

	_, err = cat.PlinkoTableFor("extreme", 8)
	assert.ErrorIs(t, err, domain.ErrInvalidBetParameters)

	_, err = cat.PlinkoTableFor(domain.PlinkoLow, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidBetParameters)
}

func TestParse_RejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "slots: [unterminated"},
		{"missing sections", "slots:\n  symbols: []\n"},
		{"negative weight", `
slots:
  symbols:
    - {name: a, weight: -1, multiplier: 2}
    - {name: b, weight: 1, multiplier: 2}
roulette: {multipliers: {straight: 35, red: 2, black: 2, odd: 2, even: 2, low: 2, high: 2, dozen: 3, column: 3}}
blackjack: {win: 2, natural: 2.5, max_multiplier: 4}
mines: {grid_sizes: [5]}
plinko: {tables: {low: {"8": [1, 1, 1, 1, 1, 1, 1, 1, 1]}}}
`},
		{"plinko bucket count mismatch", `
slots:
  symbols:
    - {name: a, weight: 1, multiplier: 2}
    - {name: b, weight: 1, multiplier: 2}
roulette: {multipliers: {straight: 35, red: 2, black: 2, odd: 2, even: 2, low: 2, high: 2, dozen: 3, column: 3}}
blackjack: {win: 2, natural: 2.5, max_multiplier: 4}
mines: {grid_sizes: [5]}
plinko: {tables: {low: {"12": [1, 1, 1, 1, 1, 1, 1, 1, 1]}}}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), validation.NewSchemaValidator())
			assert.ErrorIs(t, err, domain.ErrCatalogInvalid)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.yaml")
	require.NoError(t, os.WriteFile(path, defaultCatalogYAML, 0o600))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cat.Slots.Symbols, 7)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
