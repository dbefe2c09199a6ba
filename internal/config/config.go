package config

import (
	"fmt"

	"github.com/caarlos0/env/v8"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	HTTP      HTTP
	Storage   Storage
	Telegram  Telegram
	Kafka     Kafka
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // text or json
}

type HTTP struct {
	Addr           string   `env:"HTTP_ADDR" envDefault:":4000"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

type Storage struct {
	Driver           string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath       string `env:"SQLITE_PATH" envDefault:"./uangjajan.db"`
	PostgresEndpoint string `env:"POSTGRES_ENDPOINT"`
}

type Telegram struct {
	Token   string `env:"TG_TOKEN"` // bot is disabled when empty
	Timeout int    `env:"TIMEOUT" envDefault:"60"`
}

type Kafka struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","` // events are disabled when empty
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"ledger.entries"`
}

// Load parses the environment into Config and checks the storage settings
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config, parse env error: %w", err)
	}
	switch cfg.Storage.Driver {
	case DriverSQLite:
		if cfg.Storage.SQLitePath == "" {
			return nil, fmt.Errorf("config, SQLITE_PATH is required for driver %s", DriverSQLite)
		}
	case DriverPostgres:
		if cfg.Storage.PostgresEndpoint == "" {
			return nil, fmt.Errorf("config, POSTGRES_ENDPOINT is required for driver %s", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("config, unknown STORAGE_DRIVER: %q", cfg.Storage.Driver)
	}
	return &cfg, nil
}
