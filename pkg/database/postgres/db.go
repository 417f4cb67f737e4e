package pg

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/code-payments/reward-center/pkg/retry"
	"github.com/code-payments/reward-center/pkg/retry/backoff"
)

const (
	defaultMaxAttempts = 5
	defaultBaseBackoff = 10 * time.Millisecond
	defaultMaxBackoff  = 250 * time.Millisecond
)

// ExecuteRetryable retries fn while it fails with a serialization failure. The
// strategies default to a bounded binary exponential backoff when none are
// provided.
func ExecuteRetryable(fn func() error, strategies ...retry.Strategy) error {
	if len(strategies) == 0 {
		strategies = []retry.Strategy{
			retry.Limit(defaultMaxAttempts),
			retry.Backoff(backoff.BinaryExponential(defaultBaseBackoff), defaultMaxBackoff),
		}
	}

	strategies = append([]retry.Strategy{retry.RetriableWhen(IsSerializationFailure)}, strategies...)

	_, err := retry.Retry(fn, strategies...)
	return err
}

// ExecuteInTx executes fn within the scope of a new DB transaction. The
// transaction is committed when fn succeeds, and rolled back otherwise.
func ExecuteInTx(ctx context.Context, db *sqlx.DB, isolation sql.IsolationLevel, fn func(tx *sqlx.Tx) error) error {
	if isolation == sql.LevelDefault {
		isolation = sql.LevelReadCommitted // Postgres default
	}

	tx, err := db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: isolation,
	})
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		// We always need to execute a Rollback() so sql.DB releases the connection.
		if rollBackErr := tx.Rollback(); rollBackErr != nil {
			return errors.Wrap(rollBackErr, "failed to rollback transaction")
		}
		return err
	}

	return tx.Commit()
}
