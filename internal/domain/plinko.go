package domain

import "github.com/shopspring/decimal"

// PlinkoRisk selects a payout table
type PlinkoRisk string

const (
	PlinkoLow    PlinkoRisk = "low"
	PlinkoMedium PlinkoRisk = "medium"
	PlinkoHigh   PlinkoRisk = "high"
)

// PlinkoParams are chosen by the player before the drop
type PlinkoParams struct {
	Rows int        `json:"rows"`
	Risk PlinkoRisk `json:"risk"`
}

// PlinkoState is the ball path and landing bucket of one drop.
// Path holds one step per row, 0 for left and 1 for right.
type PlinkoState struct {
	Rows       int             `json:"rows"`
	Risk       PlinkoRisk      `json:"risk"`
	Path       []int           `json:"path"`
	Bucket     int             `json:"bucket"`
	Multiplier decimal.Decimal `json:"multiplier"`
}
