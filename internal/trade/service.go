package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/event"
	"github.com/lootvault/lootvault/internal/inventory"
	"github.com/lootvault/lootvault/internal/logger"
	"github.com/lootvault/lootvault/internal/repository"
)

// MaxTradeEntries caps how many entries one side of a trade may name.
const MaxTradeEntries = 20

// Service defines the trade escrow interface
type Service interface {
	ProposeTrade(ctx context.Context, proposerID, counterpartyID string, offered, requested []string) (*domain.Trade, error)
	AcceptTrade(ctx context.Context, tradeID, callerID string) (*domain.Trade, error)
	RejectTrade(ctx context.Context, tradeID, callerID string) (*domain.Trade, error)
	CancelTrade(ctx context.Context, tradeID, callerID string) (*domain.Trade, error)
	GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error)
	ListTrades(ctx context.Context, userID string, status domain.TradeStatus) ([]domain.Trade, error)
	ExpirePending(ctx context.Context, olderThan time.Time) (int, error)
}

type service struct {
	coord     repository.Coordinator
	tradeRepo repository.Trade
	userRepo  repository.User
	invRepo   repository.Inventory
	publisher event.Bus
	now       func() time.Time
}

// NewService creates a new trade service
func NewService(coord repository.Coordinator, tradeRepo repository.Trade, userRepo repository.User, invRepo repository.Inventory, publisher event.Bus) Service {
	return &service{
		coord:     coord,
		tradeRepo: tradeRepo,
		userRepo:  userRepo,
		invRepo:   invRepo,
		publisher: publisher,
		now:       time.Now,
	}
}

// ProposeTrade records a new pending trade. Ownership of the named
// entries is checked here for early feedback but only enforced
// authoritatively at accept time; nothing is escrowed.
func (s *service) ProposeTrade(ctx context.Context, proposerID, counterpartyID string, offered, requested []string) (*domain.Trade, error) {
	if proposerID == counterpartyID {
		return nil, fmt.Errorf("%w: cannot trade with yourself", domain.ErrInvalidInput)
	}
	if len(offered) == 0 && len(requested) == 0 {
		return nil, fmt.Errorf("%w: trade names no entries", domain.ErrInvalidInput)
	}
	if len(offered) > MaxTradeEntries || len(requested) > MaxTradeEntries {
		return nil, fmt.Errorf("%w: at most %d entries per side", domain.ErrInvalidInput, MaxTradeEntries)
	}

	if _, err := s.userRepo.GetUser(ctx, proposerID); err != nil {
		return nil, fmt.Errorf("get proposer: %w", err)
	}
	if _, err := s.userRepo.GetUser(ctx, counterpartyID); err != nil {
		return nil, fmt.Errorf("get counterparty: %w", err)
	}

	if err := s.checkOwnership(ctx, offered, proposerID); err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, requested, counterpartyID); err != nil {
		return nil, err
	}

	trade, err := s.tradeRepo.CreateTrade(ctx, &domain.Trade{
		ProposerID:        proposerID,
		CounterpartyID:    counterpartyID,
		OfferedEntryIDs:   offered,
		RequestedEntryIDs: requested,
		Status:            domain.TradePending,
	})
	if err != nil {
		return nil, fmt.Errorf("create trade: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event.NewTradeProposedEvent(trade)); err != nil {
			logger.FromContext(ctx).Warn("publish trade.proposed failed", "error", err)
		}
	}

	logger.FromContext(ctx).Info("trade proposed",
		"trade_id", trade.ID,
		"proposer_id", proposerID,
		"counterparty_id", counterpartyID,
		"offered", len(offered),
		"requested", len(requested))

	return trade, nil
}

func (s *service) checkOwnership(ctx context.Context, entryIDs []string, ownerID string) error {
	for _, entryID := range entryIDs {
		entry, err := s.invRepo.GetEntry(ctx, entryID)
		if err != nil {
			return fmt.Errorf("load entry %s: %w", entryID, err)
		}
		if entry.UserID != ownerID {
			return fmt.Errorf("%w: entry %s", domain.ErrEntryNotOwned, entryID)
		}
	}
	return nil
}

// AcceptTrade atomically executes a pending trade: both sides'
// ownership is re-verified against current state, items move in both
// directions, and transferred entries leave both users' showcases. Only
// the counterparty may accept. A trade already in a terminal status
// fails with ErrTradeAlreadyProcessed.
func (s *service) AcceptTrade(ctx context.Context, tradeID, callerID string) (*domain.Trade, error) {
	var accepted *domain.Trade

	err := s.coord.Execute(ctx, "trade.accept", func(ctx context.Context, store repository.Store) error {
		trade, err := store.GetTrade(ctx, tradeID)
		if err != nil {
			return fmt.Errorf("get trade: %w", err)
		}
		if trade.Status != domain.TradePending {
			return fmt.Errorf("%w: trade %s is %s", domain.ErrTradeAlreadyProcessed, tradeID, trade.Status)
		}
		if trade.CounterpartyID != callerID {
			return fmt.Errorf("%w: user %s", domain.ErrNotTradeCounterparty, callerID)
		}

		if err := inventory.TransferOwnership(ctx, store, trade.OfferedEntryIDs, trade.ProposerID, trade.CounterpartyID); err != nil {
			return err
		}
		if err := inventory.TransferOwnership(ctx, store, trade.RequestedEntryIDs, trade.CounterpartyID, trade.ProposerID); err != nil {
			return err
		}

		moved := append(append([]string{}, trade.OfferedEntryIDs...), trade.RequestedEntryIDs...)
		if err := removeFromShowcase(ctx, store, trade.ProposerID, moved); err != nil {
			return err
		}
		if err := removeFromShowcase(ctx, store, trade.CounterpartyID, moved); err != nil {
			return err
		}

		resolvedAt := s.now()
		if err := store.UpdateTradeStatus(ctx, tradeID, domain.TradeAccepted, resolvedAt); err != nil {
			return fmt.Errorf("update trade status: %w", err)
		}

		trade.Status = domain.TradeAccepted
		trade.ResolvedAt = &resolvedAt
		accepted = trade
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishResolved(ctx, accepted)
	logger.FromContext(ctx).Info("trade accepted", "trade_id", tradeID, "caller_id", callerID)
	return accepted, nil
}

// RejectTrade marks a pending trade rejected. Only the counterparty
// may reject.
func (s *service) RejectTrade(ctx context.Context, tradeID, callerID string) (*domain.Trade, error) {
	return s.resolve(ctx, "trade.reject", tradeID, domain.TradeRejected, func(trade *domain.Trade) error {
		if trade.CounterpartyID != callerID {
			return fmt.Errorf("%w: user %s", domain.ErrNotTradeCounterparty, callerID)
		}
		return nil
	})
}

// CancelTrade marks a pending trade cancelled. Only the proposer may
// cancel.
func (s *service) CancelTrade(ctx context.Context, tradeID, callerID string) (*domain.Trade, error) {
	return s.resolve(ctx, "trade.cancel", tradeID, domain.TradeCancelled, func(trade *domain.Trade) error {
		if trade.ProposerID != callerID {
			return fmt.Errorf("%w: user %s", domain.ErrNotTradeProposer, callerID)
		}
		return nil
	})
}

func (s *service) resolve(ctx context.Context, unit, tradeID string, status domain.TradeStatus, authorize func(*domain.Trade) error) (*domain.Trade, error) {
	var resolved *domain.Trade

	err := s.coord.Execute(ctx, unit, func(ctx context.Context, store repository.Store) error {
		trade, err := store.GetTrade(ctx, tradeID)
		if err != nil {
			return fmt.Errorf("get trade: %w", err)
		}
		if trade.Status != domain.TradePending {
			return fmt.Errorf("%w: trade %s is %s", domain.ErrTradeAlreadyProcessed, tradeID, trade.Status)
		}
		if err := authorize(trade); err != nil {
			return err
		}

		resolvedAt := s.now()
		if err := store.UpdateTradeStatus(ctx, tradeID, status, resolvedAt); err != nil {
			return fmt.Errorf("update trade status: %w", err)
		}

		trade.Status = status
		trade.ResolvedAt = &resolvedAt
		resolved = trade
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishResolved(ctx, resolved)
	logger.FromContext(ctx).Info("trade resolved", "trade_id", tradeID, "status", status)
	return resolved, nil
}

func (s *service) publishResolved(ctx context.Context, trade *domain.Trade) {
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event.NewTradeResolvedEvent(trade)); err != nil {
			logger.FromContext(ctx).Warn("publish trade.resolved failed", "error", err)
		}
	}
}

// GetTrade returns a trade by id
func (s *service) GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error) {
	trade, err := s.tradeRepo.GetTrade(ctx, tradeID)
	if err != nil {
		return nil, fmt.Errorf("get trade: %w", err)
	}
	return trade, nil
}

// ListTrades returns trades involving the user, optionally filtered by
// status (empty status means all).
func (s *service) ListTrades(ctx context.Context, userID string, status domain.TradeStatus) ([]domain.Trade, error) {
	trades, err := s.tradeRepo.ListTradesByUser(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return trades, nil
}

// ExpirePending cancels every pending trade created before olderThan.
// Each cancellation is its own unit so one conflicted trade does not
// block the sweep. Returns how many trades were cancelled.
func (s *service) ExpirePending(ctx context.Context, olderThan time.Time) (int, error) {
	expired, err := s.tradeRepo.ListExpiredPending(ctx, olderThan)
	if err != nil {
		return 0, fmt.Errorf("list expired trades: %w", err)
	}

	log := logger.FromContext(ctx)
	cancelled := 0
	for _, t := range expired {
		trade := t
		_, err := s.resolve(ctx, "trade.expire", trade.ID, domain.TradeCancelled, func(*domain.Trade) error { return nil })
		if err != nil {
			// Already resolved between listing and cancel is fine.
			log.Warn("expire trade failed", "trade_id", trade.ID, "error", err)
			continue
		}
		cancelled++
	}
	return cancelled, nil
}

func removeFromShowcase(ctx context.Context, store repository.Store, userID string, entryIDs []string) error {
	user, err := store.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if len(user.ShowcaseEntries) == 0 {
		return nil
	}

	moved := make(map[string]struct{}, len(entryIDs))
	for _, id := range entryIDs {
		moved[id] = struct{}{}
	}

	kept := user.ShowcaseEntries[:0]
	removed := false
	for _, id := range user.ShowcaseEntries {
		if _, gone := moved[id]; gone {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		return nil
	}
	return store.UpdateUserShowcase(ctx, userID, kept)
}
