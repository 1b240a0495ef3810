package probability

import "time"

// Defaults used when configuration leaves a value unset
const (
	DefaultFallbackProbability = 0.15
	DefaultGovernedProbability = 0.05
	DefaultMaxProfitRatio      = 10.0
	DefaultSettingsTimeout     = 2 * time.Second
)

// Log messages
const (
	LogMsgRatesUnavailable      = "Win rates unavailable, using fallback probability"
	LogMsgRatesInvalid          = "Configured win rate out of range, using fallback probability"
	LogMsgForcedLookupFailed    = "Forced outcome lookup failed, ignoring"
	LogMsgForcedOutcomeConsumed = "Forced outcome consumed"
	LogMsgGovernorClamped       = "Max-profit governor clamped win probability"
	LogMsgProbabilityResolved   = "Win probability resolved"
)
