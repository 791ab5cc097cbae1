package repository

import (
	"context"

	"github.com/lootvault/lootvault/internal/domain"
)

// User provides account lookup and registration. Ticket balance
// mutations run through the Coordinator via Store.
type User interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, username string) (*domain.User, error)
}
