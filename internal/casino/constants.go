package casino

import "time"

// Defaults
const (
	DefaultLedgerTimeout      = 3 * time.Second
	DefaultFinishedRoundCache = 10000
	ledgerAttempts            = 2 // first try plus one retry
)

// Ledger stages, used as metric labels and in contact_support events
const (
	StageDebit     = "debit"
	StageDouble    = "double"
	StageCredit    = "credit"
	StageRecordBet = "record_bet"
	StageStart     = "start"
)

// Log messages
const (
	LogMsgRoundOpened        = "Round opened"
	LogMsgRoundSettled       = "Round settled"
	LogMsgLedgerRetry        = "Ledger write failed, retrying"
	LogMsgContactSupport     = "Round moved to contact_support"
	LogMsgLifecycleFailed    = "Round lifecycle transition failed"
	LogMsgBalanceLookupError = "Failed to read balance"
	LogMsgPublishFailed      = "Failed to publish round event"
)
