package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creator-ads/internal/adapter/http"
	"creator-ads/internal/adapter/kafka"
	"creator-ads/internal/adapter/logbus"
	"creator-ads/internal/adapter/memory"
	"creator-ads/internal/adapter/postgres"
	"creator-ads/internal/adapter/redislock"
	"creator-ads/internal/adapter/tiktok"
	"creator-ads/internal/adapter/usecase"
	"creator-ads/internal/config"
	"creator-ads/internal/core/port"
	"creator-ads/internal/db"
	"creator-ads/internal/worker"
)

// main is the entry point of the creator-ads service. It loads configuration
// and the payout policy, opens the store, wires the event bus and the
// engagement source, then starts the HTTP server and the payout sweeper. On
// receiving a termination signal it gracefully shuts both down.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	logger := cfg.Log.New(os.Stdout)

	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		logger.Error("policy error", slog.Any("error", err))
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	repo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("store error", slog.Any("error", err))
		return
	}
	defer closeStore()

	var (
		events   port.EventPublisher = logbus.NewPublisher(logger)
		notifier port.Notifier       = logbus.NewNotifier(logger)
	)
	if cfg.Kafka.Enabled() {
		publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix)
		if err != nil {
			logger.Error("kafka error", slog.Any("error", err))
			return
		}
		defer publisher.Close()
		events = publisher
		notifier = kafka.NewNotifier(publisher)
		logger.Info("publishing events to kafka", slog.Any("brokers", cfg.Kafka.Brokers))
	}

	var lock port.SweepLock
	if cfg.Redis.Enabled() {
		rdb, err := redislock.Connect(ctx, cfg.Redis.Addr)
		if err != nil {
			logger.Error("redis error", slog.Any("error", err))
			return
		}
		defer rdb.Close()
		lock = redislock.New(rdb, cfg.Redis.LockKey, cfg.Redis.LockTTL)
	}

	// The fixture catalogue stands in for the TikTok API.
	videos := tiktok.NewCatalogue(tiktok.DemoVideos()...)
	source := tiktok.NewLimited(videos, videos, cfg.TikTok.Timeout, cfg.TikTok.RPS, cfg.TikTok.Burst)

	campaigns := usecase.NewCampaignUseCase(repo, policy, events, logger)
	applications := usecase.NewApplicationUseCase(repo, source, source, notifier, events, policy, logger)
	payouts := usecase.NewPayoutUseCase(repo, source, events, policy, cfg.Payout.Workers, logger)
	sweeper := worker.NewSweeper(payouts, lock, cfg.Payout.Interval, logger)

	sweepDone := make(chan struct{})
	if cfg.Payout.Enabled {
		go func() {
			defer close(sweepDone)
			sweeper.Run(ctx)
		}()
	} else {
		close(sweepDone)
	}

	handler := httpadapter.NewHandler(
		usecase.NewEstimator(policy),
		campaigns,
		applications,
		sweeper,
		httpadapter.NewAuthenticator(cfg.Auth.Secret, cfg.Auth.Issuer),
		logger,
	)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	exitCode = 0

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer stop()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
	<-sweepDone
}

// openStore returns the configured repository and a function releasing it.
// In dev, or with PSQL_SEED set, the demo data is loaded.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (port.Repository, func(), error) {
	seed := cfg.Env == "dev" || cfg.Psql.Seed

	switch cfg.StoreDriver {
	case "memory":
		store := memory.NewStore()
		if seed {
			users, campaigns := db.Demo(time.Now().UTC())
			for _, u := range users {
				store.PutUser(u)
			}
			for _, c := range campaigns {
				if err := store.CreateCampaign(ctx, &c); err != nil {
					return nil, nil, err
				}
			}
			logger.Info("demo data loaded", slog.Int("users", len(users)), slog.Int("campaigns", len(campaigns)))
		}
		return store, func() {}, nil

	case "postgres":
		// Optionally run migrations if configured. We use the Psql sub-config.
		if cfg.Psql.RunMigrations {
			from, err := db.Migrate(cfg.Psql.Addr.String())
			if err != nil {
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
			logger.Info("migrations applied", slog.Uint64("from_version", uint64(from)))
		}

		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection: %w", err)
		}
		if seed {
			if err = db.Seed(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("seed: %w", err)
			}
			logger.Info("demo data seeded")
		}
		return postgres.NewRepository(pool), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
