package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/oggyb/duo-match/internal/config"
)

// NewDB initializes the database connection using driver + DSN from config.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.Log.Level == "debug" {
		logLevel = logger.Info // log SQL queries
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if cfg.OTEL.Enabled {
		if err := db.Use(tracing.NewPlugin()); err != nil {
			return nil, fmt.Errorf("failed to register tracing plugin: %w", err)
		}
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Dialector picks the gorm driver for name.
func Dialector(name, dsn string) (gorm.Dialector, error) {
	switch name {
	case "mysql", "":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", name)
	}
}

// Migrate ensures schema is in sync with models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Couple{}, &Member{}, &Candidate{}, &DecisionRecord{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
