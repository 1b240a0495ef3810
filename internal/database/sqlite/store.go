// Package sqlite implements the casino store on an embedded SQLite file for development
// and single-node deployments. Money is stored as integer cents.
package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/repository"
)

// Store implements repository.Store
type Store struct {
	db *sql.DB
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps a database opened with database.OpenSQLite
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *Store) Close() {
	_ = s.db.Close()
}

// sqlTx adapts *sql.Tx to repository.Tx
type sqlTx struct {
	*sql.Tx
}

func (t sqlTx) Commit(context.Context) error   { return t.Tx.Commit() }
func (t sqlTx) Rollback(context.Context) error { return t.Tx.Rollback() }

func (s *Store) begin(ctx context.Context) (sqlTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return sqlTx{}, wrap(ErrMsgFailedToBeginTransaction, err)
	}
	return sqlTx{tx}, nil
}

func toCents(d decimal.Decimal) int64 {
	return d.Round(domain.MoneyPlaces).Shift(domain.MoneyPlaces).IntPart()
}

func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -domain.MoneyPlaces)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
