package repository

import (
	"context"

	"github.com/lootvault/lootvault/internal/domain"
)

// Mission provides mission definitions and progress rows outside the
// atomic claim path.
type Mission interface {
	ListActiveMissions(ctx context.Context) ([]domain.Mission, error)
	GetMission(ctx context.Context, missionID int) (*domain.Mission, error)
	ListProgressByUser(ctx context.Context, userID string) ([]domain.MissionProgress, error)
	GetProgress(ctx context.Context, progressID string) (*domain.MissionProgress, error)
	CreateProgress(ctx context.Context, progress *domain.MissionProgress) (*domain.MissionProgress, error)
}
