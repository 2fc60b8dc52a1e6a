package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Budget-Projection-Backend/internal/api"
	"github.com/ndewijer/Budget-Projection-Backend/internal/config"
	"github.com/ndewijer/Budget-Projection-Backend/internal/database"
	"github.com/ndewijer/Budget-Projection-Backend/internal/logger"
	"github.com/ndewijer/Budget-Projection-Backend/internal/repository"
	"github.com/ndewijer/Budget-Projection-Backend/internal/scheduler"
	"github.com/ndewijer/Budget-Projection-Backend/internal/service"
	"github.com/ndewijer/Budget-Projection-Backend/internal/version"
)

// refreshTimeout bounds a single scheduled or startup projection refresh.
const refreshTimeout = 2 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log.Info().Str("version", version.Version).Msg("Starting budget projection backend")

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	dbVersion, err := database.Migrate(context.Background(), db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}
	log.Info().Str("path", cfg.Database.Path).Int("schema_version", dbVersion).Msg("Connected to database")

	// Create repositories
	accountRepo := repository.NewAccountRepository(db)
	paycheckRepo := repository.NewPaycheckRepository(db)
	billRepo := repository.NewBillRepository(db)
	bucketRepo := repository.NewBucketRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	materializedRepo := repository.NewMaterializedRepository(db)

	// Create projection services
	tokens, err := service.NewLineTokenCodec(cfg.Projection.LineTokenKey, cfg.Projection.LineTokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create line token codec")
	}
	if cfg.Projection.LineTokenKey == "" {
		log.Warn().Msg("No line token key configured, line tokens will not survive a restart")
	}

	loader := service.NewSnapshotLoader(
		accountRepo,
		paycheckRepo,
		billRepo,
		bucketRepo,
		transactionRepo,
		cfg.Projection.DefaultAccountID,
	)
	projectionService := service.NewProjectionService(loader, transactionRepo, tokens, cfg.Projection.HorizonMonths)
	materializedService := service.NewMaterializedService(materializedRepo, projectionService)
	projectionService.SetNotifier(materializedService)

	// Create entity services; every write invalidates the materialized projection
	services := api.Services{
		System:       service.NewSystemService(db),
		Account:      service.NewAccountService(db, accountRepo, materializedService),
		Paycheck:     service.NewPaycheckService(db, paycheckRepo, transactionRepo, accountRepo, materializedService),
		Bill:         service.NewBillService(billRepo, accountRepo, materializedService),
		Bucket:       service.NewBucketService(bucketRepo, accountRepo, materializedService),
		Transaction:  service.NewTransactionService(transactionRepo, accountRepo, paycheckRepo, bucketRepo, materializedService),
		Projection:   projectionService,
		Materialized: materializedService,
	}

	// Background refresh
	var sched *scheduler.Scheduler
	if cfg.Projection.RefreshSchedule != "" {
		sched, err = scheduler.New(cfg.Projection.RefreshSchedule, materializedService, log, refreshTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create refresh scheduler")
		}
		sched.Start()
	}
	go initialRefresh(materializedService, log)

	// Create router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if sched != nil {
		sched.Stop(ctx)
	}
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server exited")
}

// initialRefresh materializes the default window once at startup so the first
// read does not have to calculate on demand.
func initialRefresh(ms *service.MaterializedService, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(logger.WithContext(context.Background(), log), refreshTimeout)
	defer cancel()

	if _, err := ms.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("Initial projection refresh failed")
	}
}
