package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret  string        `env:"JWT_SECRET, required"`
	AccessTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=60m"`
	RefreshTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=24h"`

	LoginRateMax    int64         `env:"LOGIN_RATE_MAX,    default=10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW, default=1m"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=messaging"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// Missing required variables (the JWT secret) fail the process at startup.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
