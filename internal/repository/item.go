package repository

import (
	"context"

	"github.com/lootvault/lootvault/internal/domain"
)

// Item provides read and admin access to the item catalog and boxes.
// Reads outside a unit of work need no coordination; the catalog only
// changes through admin edits.
type Item interface {
	GetBox(ctx context.Context, boxID int) (*domain.Box, error)
	ListBoxes(ctx context.Context) ([]domain.Box, error)
	ListBoxItems(ctx context.Context, boxID int) ([]domain.Item, error)
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)

	// Admin catalog edits
	CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	UpdateItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	DeleteItem(ctx context.Context, itemID int) error

	// Catalog seeding
	CreateBox(ctx context.Context, box *domain.Box) (*domain.Box, error)
	UpdateBox(ctx context.Context, box *domain.Box) (*domain.Box, error)
}
