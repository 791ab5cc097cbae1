package repository

import (
	"context"

	"github.com/lootvault/lootvault/internal/domain"
)

// Inventory provides non-transactional reads over inventory entries.
// All mutations go through a Coordinator unit via Store.
type Inventory interface {
	ListEntriesByUser(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
	GetEntry(ctx context.Context, entryID string) (*domain.InventoryEntry, error)
}
