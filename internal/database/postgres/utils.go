package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/logger"
)

// DBTX is the subset of pgx operations shared by *pgxpool.Pool and
// pgx.Tx. Query helpers take it so the same SQL serves both plain
// reads and coordinator units.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// parseUserUUID parses a user ID string to uuid.UUID with consistent error message.
// Use this instead of repeating uuid.Parse + error wrapping throughout the codebase.
func parseUserUUID(userID string) (uuid.UUID, error) {
	u, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid user id", domain.ErrInvalidInput)
	}
	return u, nil
}

// parseEntryUUID parses an inventory entry id.
func parseEntryUUID(entryID string) (uuid.UUID, error) {
	u, err := uuid.Parse(entryID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid entry id", domain.ErrInvalidInput)
	}
	return u, nil
}

// parseTradeUUID parses a trade id.
func parseTradeUUID(tradeID string) (uuid.UUID, error) {
	u, err := uuid.Parse(tradeID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid trade id", domain.ErrInvalidInput)
	}
	return u, nil
}

// parseProgressUUID parses a mission progress row id.
func parseProgressUUID(progressID string) (uuid.UUID, error) {
	u, err := uuid.Parse(progressID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid progress id", domain.ErrInvalidInput)
	}
	return u, nil
}

// decodeStringList unmarshals a JSONB array of strings. A NULL or
// empty payload decodes to nil.
func decodeStringList(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode string list: %w", err)
	}
	return out, nil
}

// decodeIntList unmarshals a JSONB array of integers.
func decodeIntList(raw []byte) ([]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []int
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode int list: %w", err)
	}
	return out, nil
}

// encodeJSON marshals a value for a JSONB column, mapping nil slices
// to empty arrays so the column constraint holds.
func encodeJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode jsonb value: %w", err)
	}
	if string(raw) == "null" {
		return []byte("[]"), nil
	}
	return raw, nil
}
