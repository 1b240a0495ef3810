package settings

// Log messages
const (
	LogMsgWinRateSet         = "Win rate override set"
	LogMsgWinRateCleared     = "Win rate override cleared"
	LogMsgForcedOutcomeSet   = "Forced outcome set"
	LogMsgForcedOutcomeClear = "Forced outcome cleared"
	LogMsgPublishFailed      = "Failed to publish event"
)

// MaxForcedRounds caps how many rounds one forced outcome may cover
const MaxForcedRounds = 1000
