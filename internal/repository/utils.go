package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Rolling back after commit is expected; pgx and database/sql word it differently
		if err.Error() != domain.ErrMsgTxClosed && !errors.Is(err, sql.ErrTxDone) {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
