package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Settings errors
	ErrMsgConfigUnavailable = "win rate configuration unavailable"

	// Bet errors
	ErrMsgInsufficientBalance    = "insufficient balance"
	ErrMsgInvalidBetParameters   = "invalid bet parameters"
	ErrMsgResampleExhausted      = "no candidate outcome satisfies the decision"
	ErrMsgLedgerWriteFailure     = "ledger write failed, please contact support"
	ErrMsgInvalidProbability     = "probability must be between 0 and 1"
	ErrMsgInvalidForcedOutcome   = "invalid forced outcome"
	ErrMsgUnsupportedGame        = "unsupported game"
	ErrMsgUnsupportedBetType     = "unsupported bet type"
	ErrMsgUnsupportedAction      = "unsupported action"
	ErrMsgInvalidAmount          = "amount must be positive"
	ErrMsgRoundNotFound          = "round not found"
	ErrMsgRoundNotActive         = "round is not in progress"
	ErrMsgRoundOwnership         = "round belongs to another user"
	ErrMsgTransactionNotFound    = "transaction not found"
	ErrMsgTransactionNotPending  = "transaction is not pending"
	ErrMsgDuplicateLedgerRef     = "ledger reference already applied"
	ErrMsgCatalogInvalid         = "game catalog is invalid"
	ErrMsgBalanceWouldGoNegative = "balance would go negative"

	// User errors
	ErrMsgUserNotFound      = "user not found"
	ErrMsgUserAlreadyExists = "user already exists"

	// Database/System errors
	ErrMsgConnectionTimeout = "connection timeout"
	ErrMsgDatabaseError     = "database error"
	ErrMsgTxClosed          = "tx is closed"
	ErrMsgShuttingDown      = "service is shutting down"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Round errors
	ErrConfigUnavailable    = errors.New(ErrMsgConfigUnavailable)
	ErrInsufficientBalance  = errors.New(ErrMsgInsufficientBalance)
	ErrInvalidBetParameters = errors.New(ErrMsgInvalidBetParameters)
	ErrLedgerWriteFailure   = errors.New(ErrMsgLedgerWriteFailure)
	ErrResampleExhausted    = errors.New(ErrMsgResampleExhausted)
	ErrRoundNotFound        = errors.New(ErrMsgRoundNotFound)
	ErrRoundNotActive       = errors.New(ErrMsgRoundNotActive)
	ErrRoundOwnership       = errors.New(ErrMsgRoundOwnership)

	// Settings errors
	ErrInvalidProbability   = errors.New(ErrMsgInvalidProbability)
	ErrInvalidForcedOutcome = errors.New(ErrMsgInvalidForcedOutcome)
	ErrUnsupportedGame      = errors.New(ErrMsgUnsupportedGame)
	ErrCatalogInvalid       = errors.New(ErrMsgCatalogInvalid)

	// Wallet errors
	ErrInvalidAmount          = errors.New(ErrMsgInvalidAmount)
	ErrTransactionNotFound    = errors.New(ErrMsgTransactionNotFound)
	ErrTransactionNotPending  = errors.New(ErrMsgTransactionNotPending)
	ErrDuplicateLedgerRef     = errors.New(ErrMsgDuplicateLedgerRef)
	ErrBalanceWouldGoNegative = errors.New(ErrMsgBalanceWouldGoNegative)

	// User errors
	ErrUserNotFound      = errors.New(ErrMsgUserNotFound)
	ErrUserAlreadyExists = errors.New(ErrMsgUserAlreadyExists)

	// System errors
	ErrConnectionTimeout = errors.New(ErrMsgConnectionTimeout)
	ErrDatabaseError     = errors.New(ErrMsgDatabaseError)
	ErrShuttingDown      = errors.New(ErrMsgShuttingDown)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
