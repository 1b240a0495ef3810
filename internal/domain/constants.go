package domain

// Ledger reference suffixes, appended to a round ID
const (
	RefSuffixStake  = ":stake"
	RefSuffixDouble = ":double"
	RefSuffixPayout = ":payout"
	RefPrefixSignup = "signup:"
)

// Money precision used for stakes, balances and payouts
const MoneyPlaces int32 = 2
