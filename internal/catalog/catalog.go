// Package catalog loads the per-game payout tables.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/validation"
)

//go:embed data/games.yaml
var defaultCatalogYAML []byte

//go:embed data/games.schema.json
var catalogSchema []byte

// SchemaName is the name the catalog schema is registered under
const SchemaName = "games.schema.json"

// SlotSymbol is one symbol on the reel strip
type SlotSymbol struct {
	Name       string  `yaml:"name" json:"name"`
	Weight     float64 `yaml:"weight" json:"weight"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
}

// SlotsTable holds the reel strip
type SlotsTable struct {
	Symbols []SlotSymbol `yaml:"symbols" json:"symbols"`
}

// RouletteTable maps each bet type to its total-return multiplier
type RouletteTable struct {
	Multipliers map[domain.RouletteBetType]float64 `yaml:"multipliers" json:"multipliers"`
}

// BlackjackTable holds the blackjack returns
type BlackjackTable struct {
	Win           float64 `yaml:"win" json:"win"`
	Natural       float64 `yaml:"natural" json:"natural"`
	MaxMultiplier float64 `yaml:"max_multiplier" json:"max_multiplier"`
}

// MinesTable lists the playable board sizes
type MinesTable struct {
	GridSizes []int `yaml:"grid_sizes" json:"grid_sizes"`
}

// PlinkoTable holds bucket multipliers per risk and row count.
// Row keys are strings in the file format.
type PlinkoTable struct {
	Tables map[domain.PlinkoRisk]map[string][]float64 `yaml:"tables" json:"tables"`
}

// Catalog is the full set of game tables
type Catalog struct {
	Slots     SlotsTable     `yaml:"slots" json:"slots"`
	Roulette  RouletteTable  `yaml:"roulette" json:"roulette"`
	Blackjack BlackjackTable `yaml:"blackjack" json:"blackjack"`
	Mines     MinesTable     `yaml:"mines" json:"mines"`
	Plinko    PlinkoTable    `yaml:"plinko" json:"plinko"`

	plinko map[domain.PlinkoRisk]map[int][]float64
}

// Default returns the embedded catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML, validation.NewSchemaValidator())
}

// Load reads a catalog file from disk, falling back to the embedded one when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data, validation.NewSchemaValidator())
}

// Parse validates a YAML catalog against the schema and builds the lookup tables
func Parse(data []byte, validator validation.SchemaValidator) (*Catalog, error) {
	if err := validator.RegisterSchema(SchemaName, catalogSchema); err != nil {
		return nil, err
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogInvalid, err)
	}
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogInvalid, err)
	}
	if err := validator.ValidateBytes(asJSON, SchemaName); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogInvalid, err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogInvalid, err)
	}
	if err := cat.buildPlinko(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Catalog) buildPlinko() error {
	c.plinko = make(map[domain.PlinkoRisk]map[int][]float64, len(c.Plinko.Tables))
	for risk, rows := range c.Plinko.Tables {
		c.plinko[risk] = make(map[int][]float64, len(rows))
		for key, multipliers := range rows {
			rowCount, err := strconv.Atoi(key)
			if err != nil {
				return fmt.Errorf("%w: invalid row key %q for risk %s", domain.ErrCatalogInvalid, key, risk)
			}
			if len(multipliers) != rowCount+1 {
				return fmt.Errorf("%w: plinko %s/%d has %d buckets, expected %d",
					domain.ErrCatalogInvalid, risk, rowCount, len(multipliers), rowCount+1)
			}
			copied := make([]float64, len(multipliers))
			copy(copied, multipliers)
			c.plinko[risk][rowCount] = copied
		}
	}
	return nil
}

// PlinkoTableFor returns the bucket multipliers for a risk and row count
func (c *Catalog) PlinkoTableFor(risk domain.PlinkoRisk, rows int) ([]float64, error) {
	byRows, ok := c.plinko[risk]
	if !ok {
		return nil, fmt.Errorf("%w: unknown plinko risk %q", domain.ErrInvalidBetParameters, risk)
	}
	table, ok := byRows[rows]
	if !ok {
		return nil, fmt.Errorf("%w: no plinko table for %d rows", domain.ErrInvalidBetParameters, rows)
	}
	return table, nil
}

// PlinkoRows returns the row counts available for a risk level, ascending
func (c *Catalog) PlinkoRows(risk domain.PlinkoRisk) []int {
	rows := make([]int, 0, len(c.plinko[risk]))
	for r := range c.plinko[risk] {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}

// PlinkoMaxMultiplier returns the highest bucket of a table
func (c *Catalog) PlinkoMaxMultiplier(risk domain.PlinkoRisk, rows int) (decimal.Decimal, error) {
	table, err := c.PlinkoTableFor(risk, rows)
	if err != nil {
		return decimal.Zero, err
	}
	highest := 0.0
	for _, m := range table {
		if m > highest {
			highest = m
		}
	}
	return decimal.NewFromFloat(highest), nil
}

// RouletteMultiplier returns the multiplier paid by a winning bet type
func (c *Catalog) RouletteMultiplier(betType domain.RouletteBetType) (decimal.Decimal, error) {
	m, ok := c.Roulette.Multipliers[betType]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrInvalidBetParameters, betType)
	}
	return decimal.NewFromFloat(m), nil
}

// SlotsMaxMultiplier returns the best three-of-a-kind payout
func (c *Catalog) SlotsMaxMultiplier() decimal.Decimal {
	highest := 0.0
	for _, s := range c.Slots.Symbols {
		if s.Multiplier > highest {
			highest = s.Multiplier
		}
	}
	return decimal.NewFromFloat(highest)
}

// SupportsGridSize reports whether a mines board of size×size tiles is playable
func (c *Catalog) SupportsGridSize(size int) bool {
	for _, s := range c.Mines.GridSizes {
		if s == size {
			return true
		}
	}
	return false
}
