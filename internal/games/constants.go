package games

// MaxResampleAttempts bounds rejection sampling before an engine falls back
const MaxResampleAttempts = 64

// Blackjack dealer rules
const (
	DealerStandTotal = 17
	BlackjackTarget  = 21
	maxDealerCards   = 12
)

// DefaultMinesInstantLossShare scales the chance that a mines round allows no safe reveals
const DefaultMinesInstantLossShare = 0.30

// Log messages
const (
	LogMsgResampleExhausted = "Resample exhausted, using deterministic fallback"
	LogMsgMineRelocated     = "Mine relocated to keep reveal safe"
	LogMsgMineForced        = "Reveal limit reached, mine placed under tile"
)

var (
	cardRanks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	cardSuits = []string{"♠", "♥", "♦", "♣"}
)
