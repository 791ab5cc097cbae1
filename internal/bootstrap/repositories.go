package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lootvault/lootvault/internal/database/postgres"
	"github.com/lootvault/lootvault/internal/eventlog"
	"github.com/lootvault/lootvault/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Coordinator repository.Coordinator
	User        repository.User
	Item        repository.Item
	Inventory   repository.Inventory
	Trade       repository.Trade
	Mission     repository.Mission
	EventLog    eventlog.Repository
}

// InitializeRepositories creates all repository implementations. The
// coordinator wraps the same pool and carries every multi-row write.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Coordinator: postgres.NewCoordinator(dbPool),
		User:        postgres.NewUserRepository(dbPool),
		Item:        postgres.NewItemRepository(dbPool),
		Inventory:   postgres.NewInventoryRepository(dbPool),
		Trade:       postgres.NewTradeRepository(dbPool),
		Mission:     postgres.NewMissionRepository(dbPool),
		EventLog:    postgres.NewEventLogRepository(dbPool),
	}
}
