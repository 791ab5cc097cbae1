package economy

import (
	"context"
	"fmt"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/logger"
	"github.com/lootvault/lootvault/internal/metrics"
	"github.com/lootvault/lootvault/internal/repository"
)

// Service defines the interface for ticket ledger operations
type Service interface {
	GetBalance(ctx context.Context, userID string) (int, error)
	GrantTickets(ctx context.Context, userID string, amount int) (int, error)
	DebitTickets(ctx context.Context, userID string, amount int) (int, error)
}

type service struct {
	coord    repository.Coordinator
	userRepo repository.User
}

// NewService creates a new economy service
func NewService(coord repository.Coordinator, userRepo repository.User) Service {
	return &service{
		coord:    coord,
		userRepo: userRepo,
	}
}

// GetBalance returns the user's current ticket balance
func (s *service) GetBalance(ctx context.Context, userID string) (int, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get user: %w", err)
	}
	return user.Tickets, nil
}

// GrantTickets credits tickets to the user's balance and returns the new balance
func (s *service) GrantTickets(ctx context.Context, userID string, amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: grant amount must be positive", domain.ErrInvalidInput)
	}

	var balance int
	err := s.coord.Execute(ctx, "economy.grant_tickets", func(ctx context.Context, store repository.Store) error {
		newBalance, err := GrantIn(ctx, store, userID, amount)
		if err != nil {
			return err
		}
		balance = newBalance
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.FromContext(ctx).Debug("tickets granted",
		"user_id", userID, "amount", amount, "balance", balance)
	metrics.TicketsGranted.Add(float64(amount))
	return balance, nil
}

// DebitTickets deducts tickets from the user's balance and returns the new balance.
// Returns ErrInsufficientTickets when the balance cannot cover the amount.
func (s *service) DebitTickets(ctx context.Context, userID string, amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: debit amount must be positive", domain.ErrInvalidInput)
	}

	var balance int
	err := s.coord.Execute(ctx, "economy.debit_tickets", func(ctx context.Context, store repository.Store) error {
		user, err := store.GetUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		if user.Tickets < amount {
			return fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientTickets, user.Tickets, amount)
		}
		balance = user.Tickets - amount
		return store.UpdateUserTickets(ctx, userID, balance)
	})
	if err != nil {
		return 0, err
	}

	logger.FromContext(ctx).Debug("tickets debited",
		"user_id", userID, "amount", amount, "balance", balance)
	metrics.TicketsDebited.Add(float64(amount))
	return balance, nil
}

// GrantIn credits tickets inside an already-open unit of work. Callers that
// bundle a grant with other mutations (mission claims) use this to keep the
// whole operation atomic.
func GrantIn(ctx context.Context, store repository.Store, userID string, amount int) (int, error) {
	user, err := store.GetUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get user: %w", err)
	}
	balance := user.Tickets + amount
	if err := store.UpdateUserTickets(ctx, userID, balance); err != nil {
		return 0, err
	}
	return balance, nil
}
