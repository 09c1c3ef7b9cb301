package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"planets-galaxy/internal/galaxy"
	"planets-galaxy/internal/hyperlane"
	"planets-galaxy/internal/shared/config"
	"planets-galaxy/internal/shared/database"
	"planets-galaxy/internal/shared/errors"
	"planets-galaxy/internal/shared/logger"
	"planets-galaxy/internal/shared/redis"
	"planets-galaxy/internal/universe"
)

func main() {
	if err := config.Init(); err != nil {
		log.Fatal("Failed to initialize configuration:", err)
	}
	logger.Init()

	cfg := config.GlobalConfig
	appLogger := slog.With("component", "generator")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore := openStore(ctx, cfg, appLogger)
	defer closeStore()

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		appLogger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("Failed to close Redis client", "error", err)
		}
	}()

	var lock universe.Lock = redis.NewMemoryLock()
	if redisClient != nil {
		lock = redis.NewLock(redisClient, cfg.Redis.LockTTL, slog.Default())
	}

	opts := universe.Options{
		Scale:           galaxy.Scale(cfg.Generator.Scale),
		FieldsPerSector: cfg.Generator.FieldsPerSector,
		Tuning: hyperlane.Tuning{
			DetourProbability: cfg.Generator.DetourProbability,
			AxisBias:          cfg.Generator.AxisBias,
		},
		LanesFile: cfg.Generator.LanesFile,
	}

	service := universe.NewService(store, lock, opts, slog.Default())
	appLogger.Info("Services initialized", "store", cfg.Generator.Store)

	result, err := service.Generate(ctx, cfg.Generator.Seed)
	if err != nil {
		appLogger.Error("Galaxy generation failed",
			"seed", cfg.Generator.Seed,
			"error", err,
			"type", errors.GetType(err),
			"retryable", errors.IsRetryable(err),
		)
		closeStore()
		os.Exit(1)
	}

	if result.Skipped {
		appLogger.Info("Nothing to do, galaxy already exists", "seed", cfg.Generator.Seed)
		stored, err := service.Inspect(ctx, cfg.Generator.Seed)
		if err != nil {
			appLogger.Error("Failed to read stored galaxy", "error", err, "type", errors.GetType(err))
			return
		}
		appLogger.Info("Stored galaxy",
			"galaxy_id", stored.Galaxy.ID,
			"name", stored.Galaxy.Name,
			"sectors", stored.Sectors,
			"systems", stored.Systems,
			"lanes", stored.Lanes,
			"tiles", stored.Tiles,
		)
		return
	}

	for _, d := range result.Diagnostics {
		appLogger.Warn("Placement skipped", "diagnostic", d.String())
	}
	appLogger.Info("Galaxy ready",
		"galaxy_id", result.Galaxy.ID,
		"name", result.Galaxy.Name,
		"sectors", result.Sectors,
		"systems", result.Systems,
		"tiles", result.Tiles,
	)
}

// openStore connects the configured backend. The returned func is safe to
// call more than once.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (universe.Store, func()) {
	if cfg.Generator.Store == "memory" {
		logger.Info("Using in-memory store, results are not persisted")
		return universe.NewMemoryStore(), func() {}
	}

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	logger.Info("Running database migrations")
	if err := db.RunMigrations(ctx); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		_ = db.Close()
		os.Exit(1)
	}
	logger.Info("Migrations completed successfully")

	closed := false
	return universe.NewPostgresStore(db, cfg.Database, slog.Default()), func() {
		if closed {
			return
		}
		closed = true
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}
}
