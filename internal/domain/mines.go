package domain

// Supported mines grid sizes (tiles per side)
var MinesGridSizes = []int{3, 4, 5}

// MinesState is the board of one mines round.
// Layout and MaxSafeReveals are engine-private and never serialized.
type MinesState struct {
	GridSize       int     `json:"grid_size"`
	Mines          int     `json:"mines"`
	Revealed       []int   `json:"revealed"`
	SafeRevealed   int     `json:"safe_revealed"`
	Multiplier     float64 `json:"multiplier"`
	NextMultiplier float64 `json:"next_multiplier"`
	HitMine        *int    `json:"hit_mine,omitempty"`
	MinePositions  []int   `json:"mine_positions,omitempty"` // filled once the round is over
	CashedOut      bool    `json:"cashed_out"`

	Layout         []bool `json:"-"`
	MaxSafeReveals int    `json:"-"`
}

// Total returns the number of tiles on the board
func (s MinesState) Total() int {
	return s.GridSize * s.GridSize
}

// SafeSpots returns the number of non-mine tiles
func (s MinesState) SafeSpots() int {
	return s.Total() - s.Mines
}

// IsRevealed reports whether a tile has already been opened
func (s MinesState) IsRevealed(tile int) bool {
	for _, r := range s.Revealed {
		if r == tile {
			return true
		}
	}
	return false
}
