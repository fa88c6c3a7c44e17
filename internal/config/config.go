package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	ENV string
}

type LogConfig struct {
	Level     string
	Format    string
	Component string
	Source    bool
}

type DBConfig struct {
	Driver   string // mysql | postgres | sqlite
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type GRPCConfig struct {
	Host string
	Port string
}

type AdminConfig struct {
	Addr string // serves /metrics and /healthz; empty disables it
}

// MatchConfig tunes the decision write path and the feed caches.
type MatchConfig struct {
	MaxAttempts    int           // read-modify-write attempts per action
	RetryBaseDelay time.Duration // first backoff interval after a conflict
	HiddenCacheTTL time.Duration
	PageSize       int
}

type OTELConfig struct {
	Enabled     bool
	Endpoint    string
	Insecure    bool
	ServiceName string
	SampleRatio float64
}

type Config struct {
	App   AppConfig
	Log   LogConfig
	DB    DBConfig
	Redis RedisConfig
	GRPC  GRPCConfig
	Admin AdminConfig
	Match MatchConfig
	OTEL  OTELConfig
}

func New() *Config {
	// optional .env for local runs
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.App.ENV = getEnvDefault("APP_ENV", "development")

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "grpc_server")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// Database
	cfg.DB.Driver = strings.ToLower(getEnvDefault("DB_DRIVER", "mysql"))
	cfg.DB.DSN = os.Getenv("DB_DSN")
	if cfg.DB.DSN == "" {
		cfg.DB.Host = getEnvDefault("DB_HOST", "localhost")
		cfg.DB.User = getEnvDefault("DB_USER", "root")
		cfg.DB.Password = getEnvDefault("DB_PASSWORD", "root")
		cfg.DB.Name = getEnvDefault("DB_NAME", "duo")

		switch cfg.DB.Driver {
		case "postgres":
			cfg.DB.Port = getEnvDefault("DB_PORT", "5432")
			cfg.DB.DSN = fmt.Sprintf(
				"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
				cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name,
				getEnvDefault("DB_SSLMODE", "disable"),
			)
		case "sqlite":
			cfg.DB.DSN = getEnvDefault("DB_PATH", "duo.db")
		default:
			cfg.DB.Port = getEnvDefault("DB_PORT", "3306")
			cfg.DB.DSN = fmt.Sprintf(
				"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
				cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name,
			)
		}
	}

	// Redis
	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	// gRPC
	cfg.GRPC.Host = getEnvDefault("GRPC_HOST", "127.0.0.1")
	cfg.GRPC.Port = getEnvDefault("GRPC_PORT", "50051")

	cfg.Admin.Addr = os.Getenv("ADMIN_ADDR")
	if _, set := os.LookupEnv("ADMIN_ADDR"); !set {
		cfg.Admin.Addr = "127.0.0.1:9090"
	}

	// Match engine
	cfg.Match.MaxAttempts = getEnvInt("MATCH_MAX_ATTEMPTS", 5)
	cfg.Match.RetryBaseDelay = time.Duration(getEnvInt("MATCH_RETRY_BASE_MS", 10)) * time.Millisecond
	cfg.Match.HiddenCacheTTL = getEnvDuration("HIDDEN_CACHE_TTL", time.Hour)
	cfg.Match.PageSize = getEnvInt("MATCH_PAGE_SIZE", 20)

	// Tracing
	cfg.OTEL.Enabled = isTruthy(os.Getenv("OTEL_ENABLED"))
	cfg.OTEL.Endpoint = getEnvDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	cfg.OTEL.Insecure = isTruthy(getEnvDefault("OTEL_EXPORTER_OTLP_INSECURE", "true"))
	cfg.OTEL.ServiceName = getEnvDefault("OTEL_SERVICE_NAME", "duo-match")
	cfg.OTEL.SampleRatio = getEnvFloat("OTEL_TRACES_SAMPLER_ARG", 1.0)

	return cfg
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be mysql, postgres or sqlite, got %q", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("database DSN is empty")
	}
	if c.Match.MaxAttempts < 1 {
		return fmt.Errorf("MATCH_MAX_ATTEMPTS must be >= 1")
	}
	if c.Match.RetryBaseDelay < 0 {
		return fmt.Errorf("MATCH_RETRY_BASE_MS must be >= 0")
	}
	if c.Match.PageSize < 1 {
		return fmt.Errorf("MATCH_PAGE_SIZE must be >= 1")
	}
	if c.OTEL.SampleRatio < 0 || c.OTEL.SampleRatio > 1 {
		return fmt.Errorf("OTEL_TRACES_SAMPLER_ARG must be within [0,1]")
	}
	return nil
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(k string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
