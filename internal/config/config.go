package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before they reach koanf.
// A double underscore separates nesting levels:
// SPENDX_DATABASE__MAX_OPEN_CONNS -> database.max_open_conns.
const EnvPrefix = "SPENDX_"

type Config struct {
	Env      string         `koanf:"env" validate:"required,oneof=development production test"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Feed     FeedConfig     `koanf:"feed" validate:"required"`
	Recorder RecorderConfig `koanf:"recorder" validate:"required"`
}

type ServerConfig struct {
	Port           string  `koanf:"port" validate:"required,numeric"`
	GinMode        string  `koanf:"gin_mode" validate:"required,oneof=debug release test"`
	RateLimitRPS   float64 `koanf:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"gte=0"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            string        `koanf:"port" validate:"required,numeric"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gt=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"gt=0"`
	MigrationsPath  string        `koanf:"migrations_path"`
}

// FeedConfig controls the websocket summary feed.
type FeedConfig struct {
	Interval time.Duration `koanf:"interval" validate:"gt=0"`
}

// RecorderConfig sizes the investment recorder worker pool.
type RecorderConfig struct {
	Workers   int `koanf:"workers" validate:"gt=0"`
	QueueSize int `koanf:"queue_size" validate:"gt=0"`
}

// DSN returns the lib/pq keyword/value connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func Default() *Config {
	return &Config{
		Env: "development",
		Server: ServerConfig{
			Port:           "8080",
			GinMode:        "debug",
			RateLimitRPS:   50,
			RateLimitBurst: 100,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "spendx",
			Password:        "spendx",
			Name:            "spendx",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			MigrationsPath:  "db/migrations",
		},
		Feed: FeedConfig{
			Interval: 5 * time.Second,
		},
		Recorder: RecorderConfig{
			Workers:   5,
			QueueSize: 100,
		},
	}
}

// Load reads SPENDX_* environment variables over Default and validates the result.
// Callers load .env beforehand.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
