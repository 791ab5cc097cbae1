package repository

import (
	"context"
	"time"

	"github.com/lootvault/lootvault/internal/domain"
)

// Store is the transactional view handed to a unit of work by the
// Coordinator. Every read observes the unit's consistent snapshot and
// every write is committed atomically with the rest of the unit.
type Store interface {
	// Users
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateUserTickets(ctx context.Context, userID string, tickets int) error
	UpdateUserShowcase(ctx context.Context, userID string, entryIDs []string) error

	// Inventory entries
	GetEntry(ctx context.Context, entryID string) (*domain.InventoryEntry, error)
	GetStackEntry(ctx context.Context, userID string, itemID int) (*domain.InventoryEntry, error)
	InsertEntry(ctx context.Context, entry *domain.InventoryEntry) error
	UpdateEntry(ctx context.Context, entry *domain.InventoryEntry) error
	DeleteEntry(ctx context.Context, entryID string) error

	// Trades
	GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error)
	UpdateTradeStatus(ctx context.Context, tradeID string, status domain.TradeStatus, resolvedAt time.Time) error

	// Mission progress
	GetMission(ctx context.Context, missionID int) (*domain.Mission, error)
	GetProgress(ctx context.Context, progressID string) (*domain.MissionProgress, error)
	UpdateProgress(ctx context.Context, progress *domain.MissionProgress) error
}

// UnitFn is the body of an atomic unit of work. It may be re-executed
// from scratch after a conflict, so it must not perform non-idempotent
// side effects outside the Store.
type UnitFn func(ctx context.Context, store Store) error

// Coordinator executes units of work against the durable store with
// optimistic-conflict retry. A unit either commits fully or leaves no
// trace; after the retry budget is exhausted the error is
// domain.ErrTransactionConflict.
type Coordinator interface {
	Execute(ctx context.Context, name string, fn UnitFn) error
}
