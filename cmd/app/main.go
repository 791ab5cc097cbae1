package main

import (
	"context"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lootvault/lootvault/internal/bootstrap"
	"github.com/lootvault/lootvault/internal/config"
	"github.com/lootvault/lootvault/internal/database"
	"github.com/lootvault/lootvault/internal/economy"
	"github.com/lootvault/lootvault/internal/eventlog"
	"github.com/lootvault/lootvault/internal/inventory"
	"github.com/lootvault/lootvault/internal/mission"
	"github.com/lootvault/lootvault/internal/server"
	"github.com/lootvault/lootvault/internal/trade"
	"github.com/lootvault/lootvault/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load .env before validation so file-provided values count
	_ = godotenv.Load()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		log.Fatalf("Environment validation failed: %v", err)
	}
	for _, warning := range warnings {
		log.Printf("Warning: %s", warning)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	eventBus, resilientPublisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	eventLogService := eventlog.NewService(repos.EventLog)
	if err := bootstrap.RegisterEventHandlers(eventBus, eventLogService); err != nil {
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	sseHub := bootstrap.InitializeSSEHub(eventBus)

	if err := bootstrap.SyncCatalog(context.Background(), repos.Item); err != nil {
		slog.Error("Failed to sync catalog", "error", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	inventoryService := inventory.NewService(repos.Coordinator, repos.Item, repos.Inventory, repos.User, eventBus, rng)
	tradeService := trade.NewService(repos.Coordinator, repos.Trade, repos.User, repos.Inventory, eventBus)
	missionService := mission.NewService(repos.Coordinator, repos.Mission, eventBus)
	economyService := economy.NewService(repos.Coordinator, repos.User)

	tradeExpiryWorker := worker.NewTradeExpiryWorker(tradeService, cfg.TradeExpiryInterval)
	tradeExpiryWorker.Start()

	missionRefreshWorker := worker.NewMissionRefreshWorker(repos.Mission, resilientPublisher)
	missionRefreshWorker.Start()

	// Maintenance pool runs one-shot housekeeping jobs off the request path
	maintenancePool := worker.NewPool(bootstrap.MaintenancePoolWorkers, bootstrap.MaintenancePoolQueueSize)
	maintenancePool.Start()
	maintenancePool.Enqueue(eventlog.NewCleanupJob(eventLogService, bootstrap.EventLogRetentionDays))

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool,
		inventoryService, tradeService, missionService, economyService,
		repos.Item, repos.User, sseHub)

	// Run the server in a goroutine so signal handling stays on main
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-quit:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	maintenancePool.Stop()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:               srv,
		TradeExpiryWorker:    tradeExpiryWorker,
		MissionRefreshWorker: missionRefreshWorker,
		SSEHub:               sseHub,
		ResilientPublisher:   resilientPublisher,
	})
}
