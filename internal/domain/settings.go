package domain

import "time"

// RateScope is the layer a win rate override applies to
type RateScope string

const (
	ScopeGlobal RateScope = "global"
	ScopeGame   RateScope = "game"
	ScopeUser   RateScope = "user"
)

// WinRates holds every configured layer for one (user, game) pair.
// A nil layer is not configured.
type WinRates struct {
	Global *float64
	Game   *float64
	User   *float64
}

// WinRateOverride is one stored rate layer
type WinRateOverride struct {
	Scope       RateScope `json:"scope"`
	Game        GameType  `json:"game,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	Probability float64   `json:"probability"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ForcedMode is the direction of a forced outcome
type ForcedMode string

const (
	ForceWin  ForcedMode = "win"
	ForceLoss ForcedMode = "loss"
)

// ForcedOutcome is a per-user-per-game counter of rounds whose result is fixed
type ForcedOutcome struct {
	UserID    string     `json:"user_id"`
	Game      GameType   `json:"game"`
	Mode      ForcedMode `json:"mode"`
	Remaining int        `json:"remaining"`
	UpdatedAt time.Time  `json:"updated_at"`
}
