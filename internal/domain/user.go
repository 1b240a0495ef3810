package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile is a player account with its authoritative balance
type Profile struct {
	UserID    string          `json:"user_id"`
	Username  string          `json:"username"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LeaderboardEntry aggregates a player's settled rounds
type LeaderboardEntry struct {
	UserID   string          `json:"user_id"`
	Username string          `json:"username"`
	Rounds   int             `json:"rounds"`
	Wagered  decimal.Decimal `json:"wagered"`
	Paid     decimal.Decimal `json:"paid"`
	Net      decimal.Decimal `json:"net"`
}
