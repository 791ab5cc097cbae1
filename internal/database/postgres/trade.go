package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lootvault/lootvault/internal/domain"
)

// TradeRepository implements trade persistence for PostgreSQL
type TradeRepository struct {
	db *pgxpool.Pool
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *pgxpool.Pool) *TradeRepository {
	return &TradeRepository{db: db}
}

// CreateTrade inserts a new pending trade
func (r *TradeRepository) CreateTrade(ctx context.Context, trade *domain.Trade) (*domain.Trade, error) {
	proposerID, err := parseUserUUID(trade.ProposerID)
	if err != nil {
		return nil, err
	}
	counterpartyID, err := parseUserUUID(trade.CounterpartyID)
	if err != nil {
		return nil, err
	}
	offeredRaw, err := encodeJSON(trade.OfferedEntryIDs)
	if err != nil {
		return nil, err
	}
	requestedRaw, err := encodeJSON(trade.RequestedEntryIDs)
	if err != nil {
		return nil, err
	}

	created := *trade
	err = r.db.QueryRow(ctx, `
		INSERT INTO trades (proposer_id, counterparty_id, offered_entry_ids, requested_entry_ids, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING trade_id, status, created_at, updated_at
	`, proposerID, counterpartyID, offeredRaw, requestedRaw, domain.TradePending).
		Scan(&created.ID, &created.Status, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}
	return &created, nil
}

// GetTrade returns a trade by id
func (r *TradeRepository) GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error) {
	return getTrade(ctx, r.db, tradeID)
}

// ListTradesByUser returns trades where the user is proposer or
// counterparty, optionally filtered by status (empty matches all)
func (r *TradeRepository) ListTradesByUser(ctx context.Context, userID string, status domain.TradeStatus) ([]domain.Trade, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT trade_id, proposer_id, counterparty_id, offered_entry_ids, requested_entry_ids,
		       status, created_at, updated_at, resolved_at
		FROM trades
		WHERE (proposer_id = $1 OR counterparty_id = $1)
	`
	args := []any{uid}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	defer rows.Close()

	return collectTrades(rows)
}

// ListExpiredPending returns pending trades created before the cutoff
func (r *TradeRepository) ListExpiredPending(ctx context.Context, olderThan time.Time) ([]domain.Trade, error) {
	rows, err := r.db.Query(ctx, `
		SELECT trade_id, proposer_id, counterparty_id, offered_entry_ids, requested_entry_ids,
		       status, created_at, updated_at, resolved_at
		FROM trades
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at
	`, domain.TradePending, olderThan)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired trades: %w", err)
	}
	defer rows.Close()

	return collectTrades(rows)
}

func collectTrades(rows pgx.Rows) ([]domain.Trade, error) {
	var trades []domain.Trade
	for rows.Next() {
		var (
			trade        domain.Trade
			offeredRaw   []byte
			requestedRaw []byte
		)
		err := rows.Scan(
			&trade.ID, &trade.ProposerID, &trade.CounterpartyID, &offeredRaw, &requestedRaw,
			&trade.Status, &trade.CreatedAt, &trade.UpdatedAt, &trade.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		if trade.OfferedEntryIDs, err = decodeStringList(offeredRaw); err != nil {
			return nil, err
		}
		if trade.RequestedEntryIDs, err = decodeStringList(requestedRaw); err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trades: %w", err)
	}
	return trades, nil
}
