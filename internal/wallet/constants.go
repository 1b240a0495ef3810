package wallet

// Log messages
const (
	LogMsgTransactionRequested = "Wallet transaction requested"
	LogMsgTransactionResolved  = "Wallet transaction resolved"
	LogMsgPublishFailed        = "Failed to publish event"
)

// MaxNoteLength bounds operator and player notes
const MaxNoteLength = 256
