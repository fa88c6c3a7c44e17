package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/oggyb/duo-match/internal/app"
	"github.com/oggyb/duo-match/internal/cache"
	"github.com/oggyb/duo-match/internal/config"
	"github.com/oggyb/duo-match/internal/db"
	"github.com/oggyb/duo-match/internal/logger"
	"github.com/oggyb/duo-match/internal/metrics"
	"github.com/oggyb/duo-match/internal/observability"
	"github.com/oggyb/duo-match/internal/server"
	"github.com/oggyb/duo-match/internal/service/explore"
)

var version = "dev"

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L() // slog.Logger pointer

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Error("failed to init tracing", "err", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		os.Exit(1)
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(ctx); err != nil {
		log.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}
	defer redisCache.Close()
	if cfg.OTEL.Enabled {
		if err := redisCache.InstrumentTracing(); err != nil {
			log.Error("failed to instrument redis", "err", err)
			os.Exit(1)
		}
	}

	appCtx := app.New(cfg, database, redisCache, log, metrics.New(prometheus.DefaultRegisterer))

	registrars := []server.Registrar{
		explore.NewRegistrar(appCtx),
	}

	g, ctx := errgroup.WithContext(ctx)

	addr := cfg.GRPC.Host + ":" + cfg.GRPC.Port
	g.Go(func() error {
		log.Info("starting gRPC server", "addr", addr, "env", cfg.App.ENV)
		return server.StartGRPCServer(ctx, addr, log, registrars...)
	})

	if cfg.Admin.Addr != "" {
		admin := server.NewAdminRouter(prometheus.DefaultGatherer,
			server.HealthCheck{Name: "db", Check: func(ctx context.Context) error {
				sqlDB, err := database.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			}},
			server.HealthCheck{Name: "redis", Check: redisCache.Ping},
		)
		g.Go(func() error {
			return server.StartAdminServer(ctx, cfg.Admin.Addr, admin, log)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
