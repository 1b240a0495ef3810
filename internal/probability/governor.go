package probability

import (
	"github.com/shopspring/decimal"
)

// Governor decides whether a bet's best case would pay out too much
type Governor interface {
	WouldExceedLimit(userID string, maxPayout, balance decimal.Decimal) bool
}

// ProfitGovernor limits the best-case payout relative to the player's balance,
// and optionally to an absolute ceiling.
type ProfitGovernor struct {
	ratio    decimal.Decimal
	absolute decimal.Decimal
}

// NewProfitGovernor builds a governor. absolute <= 0 disables the absolute ceiling.
func NewProfitGovernor(ratio, absolute float64) *ProfitGovernor {
	if ratio <= 0 {
		ratio = DefaultMaxProfitRatio
	}
	return &ProfitGovernor{
		ratio:    decimal.NewFromFloat(ratio),
		absolute: decimal.NewFromFloat(absolute),
	}
}

// WouldExceedLimit is a pure predicate on its arguments
func (g *ProfitGovernor) WouldExceedLimit(_ string, maxPayout, balance decimal.Decimal) bool {
	if maxPayout.GreaterThan(balance.Mul(g.ratio)) {
		return true
	}
	return g.absolute.IsPositive() && maxPayout.GreaterThan(g.absolute)
}
