package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lootvault/lootvault/internal/domain"
)

// ItemRepository implements catalog access for PostgreSQL
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `item_id, item_name, rarity, box_id, base_points, drop_weight, power, created_at, updated_at`

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	err := row.Scan(
		&item.ID, &item.Name, &item.Rarity, &item.BoxID,
		&item.BasePoints, &item.DropWeight, &item.Power, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}
	return &item, nil
}

// GetBox returns a box definition
func (r *ItemRepository) GetBox(ctx context.Context, boxID int) (*domain.Box, error) {
	return scanBox(r.db.QueryRow(ctx, `
		SELECT `+boxColumns+` FROM boxes WHERE box_id = $1
	`, boxID))
}

const boxColumns = `box_id, box_name, description, ticket_cost, active, created_at, updated_at`

func scanBox(row pgx.Row) (*domain.Box, error) {
	var box domain.Box
	err := row.Scan(
		&box.ID, &box.Name, &box.Description, &box.TicketCost, &box.Active, &box.CreatedAt, &box.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBoxNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan box: %w", err)
	}
	return &box, nil
}

// ListBoxes returns every box definition
func (r *ItemRepository) ListBoxes(ctx context.Context) ([]domain.Box, error) {
	rows, err := r.db.Query(ctx, `SELECT `+boxColumns+` FROM boxes ORDER BY box_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list boxes: %w", err)
	}
	defer rows.Close()

	var boxes []domain.Box
	for rows.Next() {
		box, err := scanBox(rows)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, *box)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read boxes: %w", err)
	}
	return boxes, nil
}

// CreateBox inserts a new box definition
func (r *ItemRepository) CreateBox(ctx context.Context, box *domain.Box) (*domain.Box, error) {
	return scanBox(r.db.QueryRow(ctx, `
		INSERT INTO boxes (box_name, description, ticket_cost, active)
		VALUES ($1, $2, $3, $4)
		RETURNING `+boxColumns+`
	`, box.Name, box.Description, box.TicketCost, box.Active))
}

// UpdateBox applies a box definition change
func (r *ItemRepository) UpdateBox(ctx context.Context, box *domain.Box) (*domain.Box, error) {
	return scanBox(r.db.QueryRow(ctx, `
		UPDATE boxes
		SET box_name = $1, description = $2, ticket_cost = $3, active = $4, updated_at = NOW()
		WHERE box_id = $5
		RETURNING `+boxColumns+`
	`, box.Name, box.Description, box.TicketCost, box.Active, box.ID))
}

// ListBoxItems returns the weighted pool of a box
func (r *ItemRepository) ListBoxItems(ctx context.Context, boxID int) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+` FROM items WHERE box_id = $1 ORDER BY item_id
	`, boxID)
	if err != nil {
		return nil, fmt.Errorf("failed to list box items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// GetItem returns a catalog item by id
func (r *ItemRepository) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	return scanItem(r.db.QueryRow(ctx, `
		SELECT `+itemColumns+` FROM items WHERE item_id = $1
	`, itemID))
}

// ListItems returns the entire catalog
func (r *ItemRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// CreateItem inserts a new catalog item
func (r *ItemRepository) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	return scanItem(r.db.QueryRow(ctx, `
		INSERT INTO items (item_name, rarity, box_id, base_points, drop_weight, power)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+itemColumns+`
	`, item.Name, item.Rarity, item.BoxID, item.BasePoints, item.DropWeight, item.Power))
}

// UpdateItem applies an admin catalog edit
func (r *ItemRepository) UpdateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	return scanItem(r.db.QueryRow(ctx, `
		UPDATE items
		SET item_name = $1, rarity = $2, box_id = $3, base_points = $4,
		    drop_weight = $5, power = $6, updated_at = NOW()
		WHERE item_id = $7
		RETURNING `+itemColumns+`
	`, item.Name, item.Rarity, item.BoxID, item.BasePoints, item.DropWeight, item.Power, item.ID))
}

// DeleteItem removes a catalog item
func (r *ItemRepository) DeleteItem(ctx context.Context, itemID int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func collectItems(rows pgx.Rows) ([]domain.Item, error) {
	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	return items, nil
}
