package domain

// RouletteBetType is the kind of roulette wager
type RouletteBetType string

const (
	RouletteStraight RouletteBetType = "straight"
	RouletteRed      RouletteBetType = "red"
	RouletteBlack    RouletteBetType = "black"
	RouletteOdd      RouletteBetType = "odd"
	RouletteEven     RouletteBetType = "even"
	RouletteLow      RouletteBetType = "low"  // 1-18
	RouletteHigh     RouletteBetType = "high" // 19-36
	RouletteDozen    RouletteBetType = "dozen"
	RouletteColumn   RouletteBetType = "column"
)

// Roulette pocket colors
const (
	ColorRed   = "red"
	ColorBlack = "black"
	ColorGreen = "green"
)

// RoulettePockets is the number of pockets on a European wheel (0-36)
const RoulettePockets = 37

var redPockets = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true,
	12: true, 14: true, 16: true, 18: true, 19: true,
	21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

// PocketColor returns the color of a pocket on a European wheel
func PocketColor(n int) string {
	switch {
	case n == 0:
		return ColorGreen
	case redPockets[n]:
		return ColorRed
	default:
		return ColorBlack
	}
}

// RouletteBet is a single wager on the table.
// Selection carries the number for straight bets and 1-3 for dozen and column bets.
type RouletteBet struct {
	Type      RouletteBetType `json:"type"`
	Selection *int            `json:"selection,omitempty"`
}

// RequiresSelection reports whether the bet type needs a Selection value
func (b RouletteBet) RequiresSelection() bool {
	switch b.Type {
	case RouletteStraight, RouletteDozen, RouletteColumn:
		return true
	}
	return false
}

// Covers reports whether pocket n wins for this bet
func (b RouletteBet) Covers(n int) bool {
	if n < 0 || n >= RoulettePockets {
		return false
	}
	sel := 0
	if b.Selection != nil {
		sel = *b.Selection
	}
	switch b.Type {
	case RouletteStraight:
		return b.Selection != nil && n == sel
	case RouletteRed:
		return PocketColor(n) == ColorRed
	case RouletteBlack:
		return PocketColor(n) == ColorBlack
	case RouletteOdd:
		return n != 0 && n%2 == 1
	case RouletteEven:
		return n != 0 && n%2 == 0
	case RouletteLow:
		return n >= 1 && n <= 18
	case RouletteHigh:
		return n >= 19 && n <= 36
	case RouletteDozen:
		return n != 0 && (n-1)/12+1 == sel
	case RouletteColumn:
		return n != 0 && (n-1)%3+1 == sel
	}
	return false
}

// RouletteState is the visible result of a roulette spin
type RouletteState struct {
	Bet    RouletteBet `json:"bet"`
	Number int         `json:"number"`
	Color  string      `json:"color"`
}
