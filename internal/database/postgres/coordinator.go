package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/logger"
	"github.com/lootvault/lootvault/internal/metrics"
	"github.com/lootvault/lootvault/internal/repository"
)

// Postgres SQLSTATE codes that mean the unit lost an optimistic race
// and should be retried from scratch.
const (
	sqlstateSerializationFailure = "40001"
	sqlstateDeadlockDetected     = "40P01"
)

// MaxConflictRetries bounds how often a unit is re-executed before the
// conflict is surfaced to the caller.
const MaxConflictRetries = 5

// Coordinator executes units of work as SERIALIZABLE transactions.
// A serialization failure aborts the whole unit and re-runs it against
// fresh reads, so callers observe all-or-nothing semantics without
// explicit locks.
type Coordinator struct {
	db *pgxpool.Pool
}

// NewCoordinator creates a Coordinator backed by the given pool.
func NewCoordinator(db *pgxpool.Pool) *Coordinator {
	return &Coordinator{db: db}
}

var _ repository.Coordinator = (*Coordinator)(nil)

// Execute runs fn atomically, retrying on serialization conflicts up
// to MaxConflictRetries. The name labels the unit in logs and metrics.
func (c *Coordinator) Execute(ctx context.Context, name string, fn repository.UnitFn) error {
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 1; attempt <= MaxConflictRetries; attempt++ {
		err := c.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isConflict(err) {
			return err
		}

		lastErr = err
		metrics.TransactionConflicts.WithLabelValues(name).Inc()
		log.Warn("Transaction conflict, retrying unit", "unit", name, "attempt", attempt)

		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				return fmt.Errorf("%w: unit %s", domain.ErrOperationTimedOut, name)
			}
			return ctxErr
		}
	}

	metrics.TransactionRetriesExhausted.WithLabelValues(name).Inc()
	return fmt.Errorf("%w: unit %s gave up after %d attempts: %v",
		domain.ErrTransactionConflict, name, MaxConflictRetries, lastErr)
}

func (c *Coordinator) runOnce(ctx context.Context, fn repository.UnitFn) error {
	tx, err := c.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	if err := fn(ctx, &txStore{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.ErrOperationTimedOut
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isConflict reports whether the error is a retryable optimistic-race
// failure rather than a domain error.
func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == sqlstateSerializationFailure || pgErr.Code == sqlstateDeadlockDetected
}

// txStore adapts a pgx transaction to the repository.Store view.
type txStore struct {
	q pgx.Tx
}

var _ repository.Store = (*txStore)(nil)

func (s *txStore) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return getUser(ctx, s.q, userID)
}

func (s *txStore) UpdateUserTickets(ctx context.Context, userID string, tickets int) error {
	return updateUserTickets(ctx, s.q, userID, tickets)
}

func (s *txStore) UpdateUserShowcase(ctx context.Context, userID string, entryIDs []string) error {
	return updateUserShowcase(ctx, s.q, userID, entryIDs)
}

func (s *txStore) GetEntry(ctx context.Context, entryID string) (*domain.InventoryEntry, error) {
	return getEntry(ctx, s.q, entryID)
}

func (s *txStore) GetStackEntry(ctx context.Context, userID string, itemID int) (*domain.InventoryEntry, error) {
	return getStackEntry(ctx, s.q, userID, itemID)
}

func (s *txStore) InsertEntry(ctx context.Context, entry *domain.InventoryEntry) error {
	return insertEntry(ctx, s.q, entry)
}

func (s *txStore) UpdateEntry(ctx context.Context, entry *domain.InventoryEntry) error {
	return updateEntry(ctx, s.q, entry)
}

func (s *txStore) DeleteEntry(ctx context.Context, entryID string) error {
	return deleteEntry(ctx, s.q, entryID)
}

func (s *txStore) GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error) {
	return getTrade(ctx, s.q, tradeID)
}

func (s *txStore) UpdateTradeStatus(ctx context.Context, tradeID string, status domain.TradeStatus, resolvedAt time.Time) error {
	return updateTradeStatus(ctx, s.q, tradeID, status, resolvedAt)
}

func (s *txStore) GetMission(ctx context.Context, missionID int) (*domain.Mission, error) {
	return getMission(ctx, s.q, missionID)
}

func (s *txStore) GetProgress(ctx context.Context, progressID string) (*domain.MissionProgress, error) {
	return getProgress(ctx, s.q, progressID)
}

func (s *txStore) UpdateProgress(ctx context.Context, progress *domain.MissionProgress) error {
	return updateProgress(ctx, s.q, progress)
}
