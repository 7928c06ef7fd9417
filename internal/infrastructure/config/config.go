package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8090"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
}

// APIConfig points the console at the benchmark backend.
type APIConfig struct {
	// BaseURL is the REST API root the console proxies.
	BaseURL string `env:"API_BASE_URL, default=http://127.0.0.1:8000/api"`
	// ServiceEndpoint is the fixed OpenAI-compatible gateway URL surfaced
	// next to issued credentials.
	ServiceEndpoint string        `env:"SERVICE_ENDPOINT, default=http://127.0.0.1:8000/v1"`
	Timeout         time.Duration `env:"API_TIMEOUT, default=15s"`
}

// SessionConfig selects where the operator's token pair is persisted.
type SessionConfig struct {
	// Backend is "file" or "redis".
	Backend   string `env:"SESSION_BACKEND, default=file"`
	StatePath string `env:"SESSION_STATE_PATH, default=.console/session.json"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
