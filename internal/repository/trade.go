package repository

import (
	"context"
	"time"

	"github.com/lootvault/lootvault/internal/domain"
)

// Trade provides trade persistence outside the atomic accept path.
// Creation and listing need no cross-entity coordination; accept,
// reject and cancel run through the Coordinator.
type Trade interface {
	CreateTrade(ctx context.Context, trade *domain.Trade) (*domain.Trade, error)
	GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error)
	ListTradesByUser(ctx context.Context, userID string, status domain.TradeStatus) ([]domain.Trade, error)
	ListExpiredPending(ctx context.Context, olderThan time.Time) ([]domain.Trade, error)
}
