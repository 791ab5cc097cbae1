package worker

import (
	"context"
	"sync"
	"time"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/event"
	"github.com/lootvault/lootvault/internal/logger"
	"github.com/lootvault/lootvault/internal/repository"
)

// MissionRefreshWorker announces day rollover for active streak missions at
// local midnight. The announcement is advisory; claim eligibility is enforced
// by the mission service regardless of whether this worker runs.
type MissionRefreshWorker struct {
	missionRepo repository.Mission
	publisher   *event.ResilientPublisher
	timer       *time.Timer
	shutdown    chan struct{}
	wg          sync.WaitGroup
	mu          sync.Mutex
}

// NewMissionRefreshWorker creates a new MissionRefreshWorker
func NewMissionRefreshWorker(missionRepo repository.Mission, publisher *event.ResilientPublisher) *MissionRefreshWorker {
	return &MissionRefreshWorker{
		missionRepo: missionRepo,
		publisher:   publisher,
		shutdown:    make(chan struct{}),
	}
}

// Start schedules the first rollover announcement
func (w *MissionRefreshWorker) Start() {
	w.scheduleNext()
}

// scheduleNext calculates the time until the next local midnight and arms the timer
func (w *MissionRefreshWorker) scheduleNext() {
	duration := timeUntilNextMidnight()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}

	// Two-stage scheduling to prevent tight-loop rescheduling caused by
	// timers firing early.
	if duration > 1*time.Hour {
		waitDuration := duration - 45*time.Minute
		w.timer = time.AfterFunc(waitDuration, func() {
			w.scheduleNext()
		})
		w.mu.Unlock()

		log.Info(LogMsgMissionRolloverStandby, "next_check_at", time.Now().Add(waitDuration))
		return
	}

	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// If the timer fired early, reschedule for the remainder.
		rem := timeUntilNextMidnight()
		if rem > 10*time.Second && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.announceRollover()
		w.scheduleNext()
	})
	w.mu.Unlock()

	log.Info(LogMsgMissionRolloverApproach, "next_rollover_at", time.Now().Add(duration))
}

// announceRollover publishes a day_available event for each active streak mission
func (w *MissionRefreshWorker) announceRollover() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		log := logger.FromContext(ctx)
		log.Info(LogMsgMissionRolloverStarting)

		missions, err := w.missionRepo.ListActiveMissions(ctx)
		if err != nil {
			log.Error(LogMsgMissionRolloverFailed, "error", err)
			return
		}

		date := time.Now().Format("2006-01-02")
		announced := 0
		for _, m := range missions {
			if m.Kind != domain.MissionDailyStreak {
				continue
			}
			if w.publisher != nil {
				w.publisher.PublishWithRetry(ctx, event.NewMissionDayAvailableEvent(m.ID, date))
			}
			announced++
		}

		log.Info(LogMsgMissionRolloverDone, "date", date, "streak_missions", announced)
	}()
}

// Shutdown cancels the pending timer and waits for in-flight announcements
func (w *MissionRefreshWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down mission refresh worker")

	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Mission refresh worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Mission refresh worker shutdown timeout")
		return ctx.Err()
	}
}

// timeUntilNextMidnight calculates the duration until the next local midnight
func timeUntilNextMidnight() time.Duration {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
