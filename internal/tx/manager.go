package tx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/observability"
)

// Manager runs units of work against the roast database.
type Manager struct {
	DB *sql.DB
}

const maxAttempts = 5

var ErrRetryExhausted = errors.New("transaction retry exhausted")

// WithTx runs fn in a read-committed transaction. Serialization failures and
// deadlocks rerun fn from scratch, so fn must not keep state between calls.
func (m *Manager) WithTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	var last error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := m.run(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		last = err
		observability.GetLogger(ctx).Warn("retrying transaction",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return fmt.Errorf("%w: %v", ErrRetryExhausted, last)
}

func (m *Manager) run(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	tx, err := m.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func isRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return true
	}
	return false
}
