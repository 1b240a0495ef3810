package repository

import "context"

// Store is everything one database backend provides
type Store interface {
	Ledger
	BetLog
	User
	Settings
	Wallet

	Ping(ctx context.Context) error
	Close()
}
