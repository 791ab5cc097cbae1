package worker

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/event"
)

// stubMissionRepo serves a fixed mission list
type stubMissionRepo struct {
	missions []domain.Mission
}

func (s *stubMissionRepo) ListActiveMissions(ctx context.Context) ([]domain.Mission, error) {
	return s.missions, nil
}

func (s *stubMissionRepo) GetMission(ctx context.Context, missionID int) (*domain.Mission, error) {
	return nil, domain.ErrMissionNotFound
}

func (s *stubMissionRepo) ListProgressByUser(ctx context.Context, userID string) ([]domain.MissionProgress, error) {
	return nil, nil
}

func (s *stubMissionRepo) GetProgress(ctx context.Context, progressID string) (*domain.MissionProgress, error) {
	return nil, domain.ErrProgressNotFound
}

func (s *stubMissionRepo) CreateProgress(ctx context.Context, progress *domain.MissionProgress) (*domain.MissionProgress, error) {
	return progress, nil
}

func newTestPublisher(t *testing.T) (*event.ResilientPublisher, *event.MemoryBus) {
	t.Helper()
	bus := event.NewMemoryBus()
	pub, err := event.NewResilientPublisher(bus, 1, time.Millisecond, filepath.Join(t.TempDir(), "dead_letters.jsonl"))
	require.NoError(t, err)
	return pub, bus
}

func TestMissionRefreshWorker_AnnouncesStreakMissionsOnly(t *testing.T) {
	repo := &stubMissionRepo{missions: []domain.Mission{
		{ID: 1, Kind: domain.MissionDailyStreak, Name: "Login streak"},
		{ID: 2, Kind: domain.MissionRegular, Name: "Collector"},
		{ID: 3, Kind: domain.MissionDailyStreak, Name: "Weekly streak"},
	}}

	pub, bus := newTestPublisher(t)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = pub.Shutdown(ctx)
	}()

	var mu sync.Mutex
	var got []domain.MissionDayAvailablePayload
	bus.Subscribe(event.Type(domain.EventTypeMissionDayAvailable), func(ctx context.Context, evt event.Event) error {
		mu.Lock()
		defer mu.Unlock()
		if p, ok := evt.Payload.(domain.MissionDayAvailablePayload); ok {
			got = append(got, p)
		}
		return nil
	})

	w := NewMissionRefreshWorker(repo, pub)
	w.announceRollover()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2, "only streak missions announce rollover")
	assert.Equal(t, 1, got[0].MissionID)
	assert.Equal(t, 3, got[1].MissionID)
	assert.Equal(t, time.Now().Format("2006-01-02"), got[0].Date)
}

func TestMissionRefreshWorker_NilPublisher(t *testing.T) {
	repo := &stubMissionRepo{missions: []domain.Mission{
		{ID: 1, Kind: domain.MissionDailyStreak},
	}}

	w := NewMissionRefreshWorker(repo, nil)
	w.announceRollover()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))
}

func TestTimeUntilNextMidnight(t *testing.T) {
	d := timeUntilNextMidnight()
	assert.Greater(t, d, time.Duration(0))
	assert.LessOrEqual(t, d, 24*time.Hour)
}
