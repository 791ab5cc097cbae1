package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lootvault/lootvault/internal/domain"
)

// MissionRepository implements mission persistence for PostgreSQL
type MissionRepository struct {
	db *pgxpool.Pool
}

// NewMissionRepository creates a new MissionRepository
func NewMissionRepository(db *pgxpool.Pool) *MissionRepository {
	return &MissionRepository{db: db}
}

// ListActiveMissions returns all active mission definitions
func (r *MissionRepository) ListActiveMissions(ctx context.Context) ([]domain.Mission, error) {
	rows, err := r.db.Query(ctx, `
		SELECT mission_id, kind, mission_name, description, requirement,
		       reward_tickets, day_rewards, active, created_at, updated_at
		FROM missions
		WHERE active = TRUE
		ORDER BY mission_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}
	defer rows.Close()

	var missions []domain.Mission
	for rows.Next() {
		mission, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		missions = append(missions, *mission)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read missions: %w", err)
	}
	return missions, nil
}

// GetMission returns a mission definition by id
func (r *MissionRepository) GetMission(ctx context.Context, missionID int) (*domain.Mission, error) {
	return getMission(ctx, r.db, missionID)
}

// ListProgressByUser returns all progress rows for a user
func (r *MissionRepository) ListProgressByUser(ctx context.Context, userID string) ([]domain.MissionProgress, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT progress_id, user_id, mission_id, progress, completed, claimed,
		       claimed_days, last_claim_at, next_eligible_at, created_at, updated_at
		FROM user_mission_progress
		WHERE user_id = $1
		ORDER BY mission_id
	`, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list mission progress: %w", err)
	}
	defer rows.Close()

	var progresses []domain.MissionProgress
	for rows.Next() {
		var (
			progress domain.MissionProgress
			daysRaw  []byte
		)
		err := rows.Scan(
			&progress.ID, &progress.UserID, &progress.MissionID, &progress.Progress,
			&progress.Completed, &progress.Claimed, &daysRaw,
			&progress.LastClaimAt, &progress.NextEligibleAt, &progress.CreatedAt, &progress.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mission progress: %w", err)
		}
		if progress.ClaimedDays, err = decodeIntList(daysRaw); err != nil {
			return nil, err
		}
		progresses = append(progresses, progress)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mission progress: %w", err)
	}
	return progresses, nil
}

// GetProgress returns one progress row by id
func (r *MissionRepository) GetProgress(ctx context.Context, progressID string) (*domain.MissionProgress, error) {
	return getProgress(ctx, r.db, progressID)
}

// CreateProgress inserts a fresh progress row for a user+mission pair.
// The (user, mission) unique constraint makes auto-start idempotent;
// a conflicting insert is ignored and the existing row returned.
func (r *MissionRepository) CreateProgress(ctx context.Context, progress *domain.MissionProgress) (*domain.MissionProgress, error) {
	uid, err := parseUserUUID(progress.UserID)
	if err != nil {
		return nil, err
	}

	created := *progress
	var daysRaw []byte
	err = r.db.QueryRow(ctx, `
		INSERT INTO user_mission_progress (user_id, mission_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, mission_id) DO UPDATE SET updated_at = user_mission_progress.updated_at
		RETURNING progress_id, progress, completed, claimed, claimed_days, last_claim_at, next_eligible_at, created_at, updated_at
	`, uid, progress.MissionID).Scan(
		&created.ID, &created.Progress, &created.Completed, &created.Claimed, &daysRaw,
		&created.LastClaimAt, &created.NextEligibleAt, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mission progress: %w", err)
	}
	if created.ClaimedDays, err = decodeIntList(daysRaw); err != nil {
		return nil, err
	}
	return &created, nil
}

func scanMission(row pgx.Row) (*domain.Mission, error) {
	var (
		mission    domain.Mission
		rewardsRaw []byte
	)
	err := row.Scan(
		&mission.ID, &mission.Kind, &mission.Name, &mission.Description, &mission.Requirement,
		&mission.Reward.Tickets, &rewardsRaw, &mission.Active, &mission.CreatedAt, &mission.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan mission: %w", err)
	}

	if mission.DayRewards, err = decodeDayRewards(rewardsRaw); err != nil {
		return nil, err
	}
	return &mission, nil
}
