package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/lootvault/lootvault/internal/database/schema"
	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/repository"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()

	if !testing.Short() {
		terminate = setupTestDB(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}

	os.Exit(code)
}

func setupTestDB(ctx context.Context) func() {
	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("lootvault_test"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return func() {}
	}
	terminate := func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		terminate()
		return func() {}
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		fmt.Printf("WARNING: Failed to create pool: %v\n", err)
		terminate()
		return func() {}
	}

	if _, err := pool.Exec(ctx, schema.SchemaSQL); err != nil {
		fmt.Printf("WARNING: Failed to apply schema: %v\n", err)
		pool.Close()
		terminate()
		return func() {}
	}

	testPool = pool
	return terminate
}

func requireDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
	return testPool
}

func createTestUser(t *testing.T, db *pgxpool.Pool, username string) *domain.User {
	t.Helper()
	user, err := NewUserRepository(db).CreateUser(context.Background(), username)
	require.NoError(t, err)
	return user
}

func createTestBox(t *testing.T, db *pgxpool.Pool, name string) (*domain.Box, *domain.Item) {
	t.Helper()
	repo := NewItemRepository(db)
	ctx := context.Background()

	box, err := repo.CreateBox(ctx, &domain.Box{Name: name, TicketCost: 10, Active: true})
	require.NoError(t, err)

	item, err := repo.CreateItem(ctx, &domain.Item{
		Name:       name + " coin",
		Rarity:     domain.RarityCommon,
		BoxID:      box.ID,
		DropWeight: 1,
	})
	require.NoError(t, err)

	return box, item
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := requireDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "integration_alice")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, 0, user.Tickets)

	got, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "integration_alice", got.Username)

	byName, err := repo.GetUserByUsername(ctx, "integration_alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = repo.GetUserByUsername(ctx, "integration_nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestItemRepository_CatalogRoundTrip(t *testing.T) {
	db := requireDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	box, item := createTestBox(t, db, "integration vault")

	gotBox, err := repo.GetBox(ctx, box.ID)
	require.NoError(t, err)
	assert.Equal(t, "integration vault", gotBox.Name)
	assert.Equal(t, 10, gotBox.TicketCost)

	items, err := repo.ListBoxItems(ctx, box.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)

	box.TicketCost = 25
	updated, err := repo.UpdateBox(ctx, box)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.TicketCost)

	_, err = repo.GetBox(ctx, 999999)
	assert.ErrorIs(t, err, domain.ErrBoxNotFound)
}

func TestCoordinator_ConcurrentTicketUpdates(t *testing.T) {
	db := requireDB(t)
	coord := NewCoordinator(db)
	user := createTestUser(t, db, "integration_concurrent")
	ctx := context.Background()

	const goroutines = 8
	const perGoroutine = 5

	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				// The retry budget can be exhausted under this much
				// contention; the typed conflict error tells callers
				// the unit is safe to resubmit.
				for {
					err := coord.Execute(ctx, "test.increment", func(ctx context.Context, store repository.Store) error {
						u, err := store.GetUser(ctx, user.ID)
						if err != nil {
							return err
						}
						return store.UpdateUserTickets(ctx, user.ID, u.Tickets+1)
					})
					if err == nil {
						break
					}
					if !errors.Is(err, domain.ErrTransactionConflict) {
						errs <- err
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := NewUserRepository(db).GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, goroutines*perGoroutine, got.Tickets)
}

func TestCoordinator_RollsBackFailedUnit(t *testing.T) {
	db := requireDB(t)
	coord := NewCoordinator(db)
	user := createTestUser(t, db, "integration_rollback")
	_, item := createTestBox(t, db, "rollback vault")
	ctx := context.Background()

	err := coord.Execute(ctx, "test.rollback", func(ctx context.Context, store repository.Store) error {
		entry := &domain.InventoryEntry{
			UserID:   user.ID,
			ItemID:   item.ID,
			Kind:     domain.EntryStacked,
			Quantity: 3,
		}
		if err := store.InsertEntry(ctx, entry); err != nil {
			return err
		}
		return fmt.Errorf("forced failure")
	})
	require.Error(t, err)

	entries, err := NewInventoryRepository(db).ListEntriesByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries, "insert should not survive the rollback")
}

func TestInventoryRepository_StackUniqueness(t *testing.T) {
	db := requireDB(t)
	coord := NewCoordinator(db)
	user := createTestUser(t, db, "integration_stacks")
	_, item := createTestBox(t, db, "stack vault")
	ctx := context.Background()

	err := coord.Execute(ctx, "test.seed_stack", func(ctx context.Context, store repository.Store) error {
		return store.InsertEntry(ctx, &domain.InventoryEntry{
			UserID: user.ID, ItemID: item.ID, Kind: domain.EntryStacked, Quantity: 2,
		})
	})
	require.NoError(t, err)

	// A second stack row for the same (user,item) violates the partial
	// unique index; the merge path must update the existing row instead.
	err = coord.Execute(ctx, "test.duplicate_stack", func(ctx context.Context, store repository.Store) error {
		return store.InsertEntry(ctx, &domain.InventoryEntry{
			UserID: user.ID, ItemID: item.ID, Kind: domain.EntryStacked, Quantity: 1,
		})
	})
	require.Error(t, err)

	// Unique entries are exempt from the stacking constraint
	err = coord.Execute(ctx, "test.uniques", func(ctx context.Context, store repository.Store) error {
		for i := 0; i < 2; i++ {
			entry := &domain.InventoryEntry{
				UserID: user.ID, ItemID: item.ID, Kind: domain.EntryUnique,
				Quantity: 1, RarityLevel: 100 + i,
			}
			if err := store.InsertEntry(ctx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	entries, err := NewInventoryRepository(db).ListEntriesByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestTradeRepository_Lifecycle(t *testing.T) {
	db := requireDB(t)
	coord := NewCoordinator(db)
	tradeRepo := NewTradeRepository(db)
	proposer := createTestUser(t, db, "integration_proposer")
	counterparty := createTestUser(t, db, "integration_counterparty")
	_, item := createTestBox(t, db, "trade vault")
	ctx := context.Background()

	var offered domain.InventoryEntry
	err := coord.Execute(ctx, "test.seed_trade", func(ctx context.Context, store repository.Store) error {
		offered = domain.InventoryEntry{
			UserID: proposer.ID, ItemID: item.ID, Kind: domain.EntryUnique,
			Quantity: 1, RarityLevel: 500,
		}
		return store.InsertEntry(ctx, &offered)
	})
	require.NoError(t, err)

	trade, err := tradeRepo.CreateTrade(ctx, &domain.Trade{
		ProposerID:      proposer.ID,
		CounterpartyID:  counterparty.ID,
		OfferedEntryIDs: []string{offered.ID},
		Status:          domain.TradePending,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, trade.ID)

	got, err := tradeRepo.GetTrade(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradePending, got.Status)
	assert.Equal(t, []string{offered.ID}, got.OfferedEntryIDs)

	pending, err := tradeRepo.ListTradesByUser(ctx, proposer.ID, domain.TradePending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	err = coord.Execute(ctx, "test.resolve_trade", func(ctx context.Context, store repository.Store) error {
		return store.UpdateTradeStatus(ctx, trade.ID, domain.TradeRejected, time.Now())
	})
	require.NoError(t, err)

	got, err = tradeRepo.GetTrade(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeRejected, got.Status)
	require.NotNil(t, got.ResolvedAt)

	expired, err := tradeRepo.ListExpiredPending(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, expired, "resolved trades never show up as expired pending")
}

func TestMissionRepository_ProgressRoundTrip(t *testing.T) {
	db := requireDB(t)
	coord := NewCoordinator(db)
	missionRepo := NewMissionRepository(db)
	user := createTestUser(t, db, "integration_mission")
	ctx := context.Background()

	dayRewards, err := json.Marshal([]domain.Reward{{Tickets: 5}, {Tickets: 10}, {Tickets: 20}})
	require.NoError(t, err)

	var missionID int
	err = db.QueryRow(ctx, `
		INSERT INTO missions (kind, mission_name, day_rewards)
		VALUES ('daily_streak', 'integration streak', $1)
		RETURNING mission_id
	`, string(dayRewards)).Scan(&missionID)
	require.NoError(t, err)

	mission, err := missionRepo.GetMission(ctx, missionID)
	require.NoError(t, err)
	assert.Equal(t, domain.MissionDailyStreak, mission.Kind)
	assert.Equal(t, 3, mission.Days())
	assert.Equal(t, domain.Reward{Tickets: 10}, mission.DayRewards[1])

	progress, err := missionRepo.CreateProgress(ctx, &domain.MissionProgress{
		UserID:    user.ID,
		MissionID: missionID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, progress.ID)
	assert.Empty(t, progress.ClaimedDays)

	now := time.Now().UTC()
	next := now.Add(24 * time.Hour)
	err = coord.Execute(ctx, "test.claim_day", func(ctx context.Context, store repository.Store) error {
		p, err := store.GetProgress(ctx, progress.ID)
		if err != nil {
			return err
		}
		p.ClaimedDays = append(p.ClaimedDays, 1)
		p.LastClaimAt = &now
		p.NextEligibleAt = &next
		return store.UpdateProgress(ctx, p)
	})
	require.NoError(t, err)

	got, err := missionRepo.GetProgress(ctx, progress.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got.ClaimedDays)
	require.NotNil(t, got.LastClaimAt)
	assert.WithinDuration(t, now, *got.LastClaimAt, time.Second)

	// The conflicting re-insert returns the existing row with its
	// claimed days intact, not a blank-looking one.
	again, err := missionRepo.CreateProgress(ctx, &domain.MissionProgress{
		UserID:    user.ID,
		MissionID: missionID,
	})
	require.NoError(t, err)
	assert.Equal(t, progress.ID, again.ID)
	assert.Equal(t, []int{1}, again.ClaimedDays)
}

func TestEventLogRepository_RoundTrip(t *testing.T) {
	db := requireDB(t)
	repo := NewEventLogRepository(db)
	ctx := context.Background()

	payload := json.RawMessage(`{"user_id":"u1","delta":10}`)
	require.NoError(t, repo.LogEvent(ctx, "integration.test", payload))
	require.NoError(t, repo.LogEvent(ctx, "integration.test", payload))
	require.NoError(t, repo.LogEvent(ctx, "integration.other", payload))

	events, err := repo.GetEventsByType(ctx, "integration.test", 10)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.JSONEq(t, string(payload), string(events[0].Payload))

	limited, err := repo.GetEventsByType(ctx, "integration.test", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	deleted, err := repo.CleanupOldEvents(ctx, 30)
	require.NoError(t, err)
	assert.Zero(t, deleted, "fresh events survive the retention window")
}
