package app

import (
	"log/slog"

	"github.com/oggyb/duo-match/internal/cache"
	"github.com/oggyb/duo-match/internal/config"
	"github.com/oggyb/duo-match/internal/metrics"
	"gorm.io/gorm"
)

// AppContext holds shared dependencies (Config, DB, Redis, Logger, Metrics).
// RedisCache and Metrics may be nil; services then skip caching and
// instrumentation.
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

// New creates a new AppContext
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger, m *metrics.Metrics) *AppContext {
	return &AppContext{
		Config:     cfg,
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
		Metrics:    m,
	}
}
