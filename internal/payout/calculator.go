// Package payout converts settled outcomes into credit amounts.
package payout

import (
	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

// Payout returns the amount credited for a settled round.
// A win pays stake × multiplier, a push returns the stake and a loss returns
// at most the stake (partial returns from ladder games with a multiplier below 1).
func Payout(stake decimal.Decimal, kind domain.OutcomeKind, multiplier decimal.Decimal) decimal.Decimal {
	if !stake.IsPositive() {
		return decimal.Zero
	}

	switch kind {
	case domain.OutcomeWin:
		if multiplier.IsNegative() {
			return decimal.Zero
		}
		return stake.Mul(multiplier).Round(domain.MoneyPlaces)
	case domain.OutcomePush:
		return stake
	default:
		if !multiplier.IsPositive() {
			return decimal.Zero
		}
		return stake.Mul(decimal.Min(multiplier, decimal.NewFromInt(1))).Round(domain.MoneyPlaces)
	}
}

// Multiplier converts a float ladder multiplier into the rounded decimal used for payouts
func Multiplier(m float64) decimal.Decimal {
	return decimal.NewFromFloat(m).Round(multiplierPlaces)
}

// MaxPayout returns stake × maxMultiplier, the figure handed to the max-profit governor
func MaxPayout(stake, maxMultiplier decimal.Decimal) decimal.Decimal {
	return stake.Mul(maxMultiplier).Round(domain.MoneyPlaces)
}
