package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lootvault/lootvault/internal/domain"
)

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetUser returns the user with the given id
func (r *UserRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return getUser(ctx, r.db, userID)
}

// GetUserByUsername returns the user with the given username
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var (
		user        domain.User
		showcaseRaw []byte
	)
	err := r.db.QueryRow(ctx, `
		SELECT user_id, username, tickets, showcase_entries, created_at, updated_at
		FROM users
		WHERE username = $1
	`, username).Scan(
		&user.ID, &user.Username, &user.Tickets, &showcaseRaw, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	if user.ShowcaseEntries, err = decodeStringList(showcaseRaw); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new account with a zero ticket balance
func (r *UserRepository) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username)
		VALUES ($1)
		RETURNING user_id, username, tickets, created_at, updated_at
	`, username).Scan(&user.ID, &user.Username, &user.Tickets, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}
