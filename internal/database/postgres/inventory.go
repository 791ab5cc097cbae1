package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lootvault/lootvault/internal/domain"
)

// InventoryRepository implements non-transactional inventory reads
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// ListEntriesByUser returns every entry a user owns, stacks first
func (r *InventoryRepository) ListEntriesByUser(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+entryColumns+`
		FROM inventory_entries
		WHERE user_id = $1
		ORDER BY kind, item_id, created_at
	`, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory entries: %w", err)
	}
	return entries, nil
}

// GetEntry returns one inventory entry by id
func (r *InventoryRepository) GetEntry(ctx context.Context, entryID string) (*domain.InventoryEntry, error) {
	return getEntry(ctx, r.db, entryID)
}
