package mission

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/economy"
	"github.com/lootvault/lootvault/internal/event"
	"github.com/lootvault/lootvault/internal/logger"
	"github.com/lootvault/lootvault/internal/metrics"
	"github.com/lootvault/lootvault/internal/repository"
)

// ClaimDayResult describes a successful streak day claim.
type ClaimDayResult struct {
	MissionID  int  `json:"mission_id"`
	Day        int  `json:"day"`
	Tickets    int  `json:"tickets"`
	Balance    int  `json:"balance"`
	Progress   int  `json:"progress"`
	Completed  bool `json:"completed"`
	StreakDone bool `json:"streak_done"`
}

// ClaimRewardResult describes a successful regular mission claim.
type ClaimRewardResult struct {
	MissionID int `json:"mission_id"`
	Tickets   int `json:"tickets"`
	Balance   int `json:"balance"`
}

// Service defines the mission tracking interface
type Service interface {
	ListMissions(ctx context.Context) ([]domain.Mission, error)
	ListProgress(ctx context.Context, userID string) ([]domain.MissionProgress, error)
	EnsureProgress(ctx context.Context, userID string, missionID int) (*domain.MissionProgress, error)
	RecordProgress(ctx context.Context, userID string, missionID, progress int) (*domain.MissionProgress, error)
	ClaimDay(ctx context.Context, userID string, missionID, day int) (*ClaimDayResult, error)
	ClaimReward(ctx context.Context, userID string, missionID int) (*ClaimRewardResult, error)
}

type service struct {
	coord       repository.Coordinator
	missionRepo repository.Mission
	publisher   event.Bus
	now         func() time.Time
}

// NewService creates a new mission service
func NewService(coord repository.Coordinator, missionRepo repository.Mission, publisher event.Bus) Service {
	return &service{
		coord:       coord,
		missionRepo: missionRepo,
		publisher:   publisher,
		now:         time.Now,
	}
}

// ListMissions returns all active missions
func (s *service) ListMissions(ctx context.Context) ([]domain.Mission, error) {
	missions, err := s.missionRepo.ListActiveMissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list missions: %w", err)
	}
	return missions, nil
}

// ListProgress returns all of the user's mission progress rows
func (s *service) ListProgress(ctx context.Context, userID string) ([]domain.MissionProgress, error) {
	progress, err := s.missionRepo.ListProgressByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return progress, nil
}

// EnsureProgress starts the user on a mission, returning the existing
// row when already started. Creation is idempotent, so concurrent
// ensures converge on one row.
func (s *service) EnsureProgress(ctx context.Context, userID string, missionID int) (*domain.MissionProgress, error) {
	if _, err := s.missionRepo.GetMission(ctx, missionID); err != nil {
		return nil, fmt.Errorf("get mission: %w", err)
	}

	progress, err := s.missionRepo.CreateProgress(ctx, &domain.MissionProgress{
		UserID:    userID,
		MissionID: missionID,
	})
	if err != nil {
		return nil, fmt.Errorf("create progress: %w", err)
	}
	return progress, nil
}

// RecordProgress advances a regular mission to the given percentage.
// Progress never moves backwards; reaching 100 marks the mission
// completed but leaves the reward unclaimed.
func (s *service) RecordProgress(ctx context.Context, userID string, missionID, value int) (*domain.MissionProgress, error) {
	if value < 0 || value > 100 {
		return nil, fmt.Errorf("%w: progress %d out of range [0,100]", domain.ErrInvalidInput, value)
	}

	row, err := s.EnsureProgress(ctx, userID, missionID)
	if err != nil {
		return nil, err
	}

	var updated *domain.MissionProgress
	err = s.coord.Execute(ctx, "mission.record_progress", func(ctx context.Context, store repository.Store) error {
		mission, err := store.GetMission(ctx, missionID)
		if err != nil {
			return fmt.Errorf("get mission: %w", err)
		}
		if mission.Kind != domain.MissionRegular {
			return fmt.Errorf("%w: mission %d", domain.ErrNotRegularMission, missionID)
		}

		progress, err := store.GetProgress(ctx, row.ID)
		if err != nil {
			return fmt.Errorf("get progress: %w", err)
		}
		if value <= progress.Progress {
			updated = progress
			return nil
		}

		progress.Progress = value
		if value == 100 {
			progress.Completed = true
		}
		if err := store.UpdateProgress(ctx, progress); err != nil {
			return fmt.Errorf("update progress: %w", err)
		}
		updated = progress
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ClaimDay claims the named day of a daily-streak mission. Days are
// claimed strictly in order, at most one per calendar day. The final
// day completes the mission and implicitly claims it; there is no
// separate completion reward for streaks.
func (s *service) ClaimDay(ctx context.Context, userID string, missionID, day int) (*ClaimDayResult, error) {
	row, err := s.EnsureProgress(ctx, userID, missionID)
	if err != nil {
		return nil, err
	}

	var result *ClaimDayResult
	err = s.coord.Execute(ctx, "mission.claim_day", func(ctx context.Context, store repository.Store) error {
		mission, err := store.GetMission(ctx, missionID)
		if err != nil {
			return fmt.Errorf("get mission: %w", err)
		}
		if mission.Kind != domain.MissionDailyStreak || mission.Days() == 0 {
			return fmt.Errorf("%w: mission %d", domain.ErrNotStreakMission, missionID)
		}
		days := mission.Days()
		if day < 1 || day > days {
			return fmt.Errorf("%w: day %d of %d", domain.ErrDayOutOfRange, day, days)
		}

		progress, err := store.GetProgress(ctx, row.ID)
		if err != nil {
			return fmt.Errorf("get progress: %w", err)
		}

		if progress.HasClaimedDay(day) {
			return fmt.Errorf("%w: day %d", domain.ErrDayAlreadyClaimed, day)
		}
		if next := progress.NextUnclaimedDay(days); day != next {
			return fmt.Errorf("%w: day %d before day %d", domain.ErrDayNotYetEligible, day, next)
		}

		now := s.now()
		if err := checkEligibility(progress, now); err != nil {
			return err
		}

		tickets := mission.DayRewards[day-1].Tickets
		balance, err := economy.GrantIn(ctx, store, userID, tickets)
		if err != nil {
			return err
		}

		progress.ClaimedDays = append(progress.ClaimedDays, day)
		progress.LastClaimAt = &now
		progress.Progress = int(math.Round(100 * float64(len(progress.ClaimedDays)) / float64(days)))

		if day == days {
			progress.Completed = true
			progress.Claimed = true
			progress.NextEligibleAt = nil
		} else {
			next := startOfNextDay(now)
			progress.NextEligibleAt = &next
		}

		if err := store.UpdateProgress(ctx, progress); err != nil {
			return fmt.Errorf("update progress: %w", err)
		}

		result = &ClaimDayResult{
			MissionID:  missionID,
			Day:        day,
			Tickets:    tickets,
			Balance:    balance,
			Progress:   progress.Progress,
			Completed:  progress.Completed,
			StreakDone: progress.Claimed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishDayClaimed(ctx, userID, result)
	logger.FromContext(ctx).Info("mission day claimed",
		"user_id", userID,
		"mission_id", missionID,
		"day", result.Day,
		"tickets", result.Tickets,
		"completed", result.Completed)

	return result, nil
}

// checkEligibility gates one claim per calendar day. Three cases in
// order: a fresh streak with no claim timestamp yet is always eligible,
// even when a stale next_eligible_at is present; a streak carrying
// next_eligible_at waits until that instant; rows without
// next_eligible_at fall back to comparing calendar dates against the
// last claim.
func checkEligibility(progress *domain.MissionProgress, now time.Time) error {
	if len(progress.ClaimedDays) == 0 && progress.LastClaimAt == nil {
		return nil
	}
	if progress.NextEligibleAt != nil {
		if now.Before(*progress.NextEligibleAt) {
			return fmt.Errorf("%w: eligible at %s", domain.ErrTooEarly, progress.NextEligibleAt.Format(time.RFC3339))
		}
		return nil
	}
	if progress.LastClaimAt != nil && sameCalendarDay(*progress.LastClaimAt, now) {
		return fmt.Errorf("%w", domain.ErrAlreadyClaimedToday)
	}
	return nil
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfNextDay(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day+1, 0, 0, 0, 0, now.Location())
}

// ClaimReward claims a completed regular mission's reward once.
func (s *service) ClaimReward(ctx context.Context, userID string, missionID int) (*ClaimRewardResult, error) {
	row, err := s.EnsureProgress(ctx, userID, missionID)
	if err != nil {
		return nil, err
	}

	var result *ClaimRewardResult
	err = s.coord.Execute(ctx, "mission.claim_reward", func(ctx context.Context, store repository.Store) error {
		mission, err := store.GetMission(ctx, missionID)
		if err != nil {
			return fmt.Errorf("get mission: %w", err)
		}
		if mission.Kind != domain.MissionRegular {
			return fmt.Errorf("%w: mission %d", domain.ErrNotRegularMission, missionID)
		}

		progress, err := store.GetProgress(ctx, row.ID)
		if err != nil {
			return fmt.Errorf("get progress: %w", err)
		}
		if !progress.Completed {
			return fmt.Errorf("%w: mission %d", domain.ErrNotCompleted, missionID)
		}
		if progress.Claimed {
			return fmt.Errorf("%w: mission %d", domain.ErrAlreadyClaimed, missionID)
		}

		balance, err := economy.GrantIn(ctx, store, userID, mission.Reward.Tickets)
		if err != nil {
			return err
		}

		progress.Claimed = true
		if err := store.UpdateProgress(ctx, progress); err != nil {
			return fmt.Errorf("update progress: %w", err)
		}

		result = &ClaimRewardResult{
			MissionID: missionID,
			Tickets:   mission.Reward.Tickets,
			Balance:   balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event.NewMissionCompletedEvent(userID, missionID, result.Tickets)); err != nil {
			logger.FromContext(ctx).Warn("publish mission.completed failed", "error", err)
		}
	}
	metrics.TicketsGranted.Add(float64(result.Tickets))

	logger.FromContext(ctx).Info("mission reward claimed",
		"user_id", userID,
		"mission_id", missionID,
		"tickets", result.Tickets)

	return result, nil
}

func (s *service) publishDayClaimed(ctx context.Context, userID string, result *ClaimDayResult) {
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event.NewMissionDayClaimedEvent(userID, result.MissionID, result.Day, result.Tickets)); err != nil {
			logger.FromContext(ctx).Warn("publish mission.day_claimed failed", "error", err)
		}
		if result.Completed {
			if err := s.publisher.Publish(ctx, event.NewMissionCompletedEvent(userID, result.MissionID, result.Tickets)); err != nil {
				logger.FromContext(ctx).Warn("publish mission.completed failed", "error", err)
			}
		}
	}
	metrics.TicketsGranted.Add(float64(result.Tickets))
}
