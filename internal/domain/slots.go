package domain

import "github.com/shopspring/decimal"

// SlotsReelCount is the number of reels on the machine
const SlotsReelCount = 3

// SlotsState is the visible result of a slots spin
type SlotsState struct {
	Reels      [SlotsReelCount]string `json:"reels"`
	Symbol     string                 `json:"symbol,omitempty"` // winning symbol when all reels match
	Multiplier decimal.Decimal        `json:"multiplier"`
}

// AllMatch reports whether every reel shows the same symbol
func (s SlotsState) AllMatch() bool {
	return s.Reels[0] == s.Reels[1] && s.Reels[1] == s.Reels[2]
}
