package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Ledger Operations
const (
	ErrMsgFailedToLockBalance    = "failed to lock balance"
	ErrMsgFailedToCheckReference = "failed to check ledger reference"
	ErrMsgFailedToUpdateBalance  = "failed to update balance"
	ErrMsgFailedToAppendEntry    = "failed to append ledger entry"
	ErrMsgFailedToRecordBet      = "failed to record bet"
	ErrMsgFailedToGetBets        = "failed to get recent bets"
	ErrMsgFailedToGetLeaderboard = "failed to get leaderboard"
	ErrMsgInvalidStoredAmount    = "invalid stored amount"
)

// Error Messages - User Operations
const (
	ErrMsgFailedToInsertUser        = "failed to insert user"
	ErrMsgFailedToGetUser           = "failed to get user"
	ErrMsgFailedToGetUserByUsername = "failed to get user by username"
)

// Error Messages - Settings Operations
const (
	ErrMsgFailedToGetWinRates   = "failed to get win rates"
	ErrMsgFailedToConsumeForced = "failed to consume forced outcome"
	ErrMsgFailedToUpsertWinRate = "failed to upsert win rate"
	ErrMsgFailedToDeleteWinRate = "failed to delete win rate"
	ErrMsgFailedToListWinRates  = "failed to list win rates"
	ErrMsgFailedToUpsertForced  = "failed to upsert forced outcome"
	ErrMsgFailedToDeleteForced  = "failed to delete forced outcome"
	ErrMsgFailedToListForced    = "failed to list forced outcomes"
)

// Error Messages - Wallet Operations
const (
	ErrMsgFailedToInsertTransaction  = "failed to insert transaction"
	ErrMsgFailedToGetTransaction     = "failed to get transaction"
	ErrMsgFailedToListTransactions   = "failed to list transactions"
	ErrMsgFailedToResolveTransaction = "failed to resolve transaction"
)
