package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lootvault/lootvault/internal/domain"
)

// Low-level queries shared between the pool-backed repositories and
// the coordinator's transactional store. All take DBTX so the same
// SQL runs inside or outside a unit of work.

func getUser(ctx context.Context, q DBTX, userID string) (*domain.User, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, username, tickets, showcase_entries, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`
	var (
		user        domain.User
		showcaseRaw []byte
	)
	err = q.QueryRow(ctx, query, uid).Scan(
		&user.ID, &user.Username, &user.Tickets, &showcaseRaw, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ShowcaseEntries, err = decodeStringList(showcaseRaw); err != nil {
		return nil, err
	}
	return &user, nil
}

func updateUserTickets(ctx context.Context, q DBTX, userID string, tickets int) error {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, `
		UPDATE users SET tickets = $1, updated_at = NOW() WHERE user_id = $2
	`, tickets, uid)
	if err != nil {
		return fmt.Errorf("failed to update tickets: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func updateUserShowcase(ctx context.Context, q DBTX, userID string, entryIDs []string) error {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return err
	}
	raw, err := encodeJSON(entryIDs)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, `
		UPDATE users SET showcase_entries = $1, updated_at = NOW() WHERE user_id = $2
	`, raw, uid)
	if err != nil {
		return fmt.Errorf("failed to update showcase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

const entryColumns = `entry_id, user_id, item_id, kind, quantity, points, rarity_level, created_at, updated_at`

func scanEntry(row pgx.Row) (*domain.InventoryEntry, error) {
	var (
		entry domain.InventoryEntry
		level *int
	)
	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.ItemID, &entry.Kind,
		&entry.Quantity, &entry.Points, &level, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan inventory entry: %w", err)
	}
	if level != nil {
		entry.RarityLevel = *level
	}
	return &entry, nil
}

func getEntry(ctx context.Context, q DBTX, entryID string) (*domain.InventoryEntry, error) {
	eid, err := parseEntryUUID(entryID)
	if err != nil {
		return nil, err
	}
	return scanEntry(q.QueryRow(ctx, `
		SELECT `+entryColumns+` FROM inventory_entries WHERE entry_id = $1
	`, eid))
}

func getStackEntry(ctx context.Context, q DBTX, userID string, itemID int) (*domain.InventoryEntry, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	return scanEntry(q.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM inventory_entries
		WHERE user_id = $1 AND item_id = $2 AND kind = 'stacked'
	`, uid, itemID))
}

func insertEntry(ctx context.Context, q DBTX, entry *domain.InventoryEntry) error {
	uid, err := parseUserUUID(entry.UserID)
	if err != nil {
		return err
	}

	var level *int
	if entry.Kind == domain.EntryUnique {
		level = &entry.RarityLevel
	}

	err = q.QueryRow(ctx, `
		INSERT INTO inventory_entries (user_id, item_id, kind, quantity, points, rarity_level)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING entry_id, created_at, updated_at
	`, uid, entry.ItemID, entry.Kind, entry.Quantity, entry.Points, level).
		Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert inventory entry: %w", err)
	}
	return nil
}

func updateEntry(ctx context.Context, q DBTX, entry *domain.InventoryEntry) error {
	eid, err := parseEntryUUID(entry.ID)
	if err != nil {
		return err
	}
	uid, err := parseUserUUID(entry.UserID)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, `
		UPDATE inventory_entries
		SET user_id = $1, quantity = $2, points = $3, updated_at = NOW()
		WHERE entry_id = $4
	`, uid, entry.Quantity, entry.Points, eid)
	if err != nil {
		return fmt.Errorf("failed to update inventory entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func deleteEntry(ctx context.Context, q DBTX, entryID string) error {
	eid, err := parseEntryUUID(entryID)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, `DELETE FROM inventory_entries WHERE entry_id = $1`, eid)
	if err != nil {
		return fmt.Errorf("failed to delete inventory entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func getTrade(ctx context.Context, q DBTX, tradeID string) (*domain.Trade, error) {
	tid, err := parseTradeUUID(tradeID)
	if err != nil {
		return nil, err
	}

	var (
		trade        domain.Trade
		offeredRaw   []byte
		requestedRaw []byte
	)
	err = q.QueryRow(ctx, `
		SELECT trade_id, proposer_id, counterparty_id, offered_entry_ids, requested_entry_ids,
		       status, created_at, updated_at, resolved_at
		FROM trades
		WHERE trade_id = $1
	`, tid).Scan(
		&trade.ID, &trade.ProposerID, &trade.CounterpartyID, &offeredRaw, &requestedRaw,
		&trade.Status, &trade.CreatedAt, &trade.UpdatedAt, &trade.ResolvedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTradeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}

	if trade.OfferedEntryIDs, err = decodeStringList(offeredRaw); err != nil {
		return nil, err
	}
	if trade.RequestedEntryIDs, err = decodeStringList(requestedRaw); err != nil {
		return nil, err
	}
	return &trade, nil
}

func updateTradeStatus(ctx context.Context, q DBTX, tradeID string, status domain.TradeStatus, resolvedAt time.Time) error {
	tid, err := parseTradeUUID(tradeID)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, `
		UPDATE trades SET status = $1, resolved_at = $2, updated_at = NOW() WHERE trade_id = $3
	`, status, resolvedAt, tid)
	if err != nil {
		return fmt.Errorf("failed to update trade status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTradeNotFound
	}
	return nil
}

func getMission(ctx context.Context, q DBTX, missionID int) (*domain.Mission, error) {
	var (
		mission    domain.Mission
		rewardsRaw []byte
	)
	err := q.QueryRow(ctx, `
		SELECT mission_id, kind, mission_name, description, requirement,
		       reward_tickets, day_rewards, active, created_at, updated_at
		FROM missions
		WHERE mission_id = $1
	`, missionID).Scan(
		&mission.ID, &mission.Kind, &mission.Name, &mission.Description, &mission.Requirement,
		&mission.Reward.Tickets, &rewardsRaw, &mission.Active, &mission.CreatedAt, &mission.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mission: %w", err)
	}

	if mission.DayRewards, err = decodeDayRewards(rewardsRaw); err != nil {
		return nil, err
	}
	return &mission, nil
}

func getProgress(ctx context.Context, q DBTX, progressID string) (*domain.MissionProgress, error) {
	pid, err := parseProgressUUID(progressID)
	if err != nil {
		return nil, err
	}

	var (
		progress domain.MissionProgress
		daysRaw  []byte
	)
	err = q.QueryRow(ctx, `
		SELECT progress_id, user_id, mission_id, progress, completed, claimed,
		       claimed_days, last_claim_at, next_eligible_at, created_at, updated_at
		FROM user_mission_progress
		WHERE progress_id = $1
	`, pid).Scan(
		&progress.ID, &progress.UserID, &progress.MissionID, &progress.Progress,
		&progress.Completed, &progress.Claimed, &daysRaw,
		&progress.LastClaimAt, &progress.NextEligibleAt, &progress.CreatedAt, &progress.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProgressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mission progress: %w", err)
	}

	if progress.ClaimedDays, err = decodeIntList(daysRaw); err != nil {
		return nil, err
	}
	return &progress, nil
}

func updateProgress(ctx context.Context, q DBTX, progress *domain.MissionProgress) error {
	pid, err := parseProgressUUID(progress.ID)
	if err != nil {
		return err
	}
	daysRaw, err := encodeJSON(progress.ClaimedDays)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, `
		UPDATE user_mission_progress
		SET progress = $1, completed = $2, claimed = $3, claimed_days = $4,
		    last_claim_at = $5, next_eligible_at = $6, updated_at = NOW()
		WHERE progress_id = $7
	`, progress.Progress, progress.Completed, progress.Claimed, daysRaw,
		progress.LastClaimAt, progress.NextEligibleAt, pid)
	if err != nil {
		return fmt.Errorf("failed to update mission progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProgressNotFound
	}
	return nil
}
