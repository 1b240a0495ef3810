package sqlite

import "fmt"

// Error Messages
const (
	ErrMsgFailedToBeginTransaction   = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction  = "failed to commit transaction"
	ErrMsgFailedToLockBalance        = "failed to read balance"
	ErrMsgFailedToCheckReference     = "failed to check ledger reference"
	ErrMsgFailedToUpdateBalance      = "failed to update balance"
	ErrMsgFailedToAppendEntry        = "failed to append ledger entry"
	ErrMsgFailedToRecordBet          = "failed to record bet"
	ErrMsgFailedToGetBets            = "failed to get recent bets"
	ErrMsgFailedToGetLeaderboard     = "failed to get leaderboard"
	ErrMsgFailedToInsertUser         = "failed to insert user"
	ErrMsgFailedToGetUser            = "failed to get user"
	ErrMsgFailedToGetWinRates        = "failed to get win rates"
	ErrMsgFailedToConsumeForced      = "failed to consume forced outcome"
	ErrMsgFailedToUpsertWinRate      = "failed to upsert win rate"
	ErrMsgFailedToDeleteWinRate      = "failed to delete win rate"
	ErrMsgFailedToListWinRates       = "failed to list win rates"
	ErrMsgFailedToUpsertForced       = "failed to upsert forced outcome"
	ErrMsgFailedToDeleteForced       = "failed to delete forced outcome"
	ErrMsgFailedToListForced         = "failed to list forced outcomes"
	ErrMsgFailedToInsertTransaction  = "failed to insert transaction"
	ErrMsgFailedToGetTransaction     = "failed to get transaction"
	ErrMsgFailedToListTransactions   = "failed to list transactions"
	ErrMsgFailedToResolveTransaction = "failed to resolve transaction"
)

func wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
