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

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// AuthConfig carries the per-kind signing keys and expiries. Expiries are
// milliseconds, matching the wire-level expires_in contract (seconds) after
// division. Loaded once at startup and immutable afterwards.
type AuthConfig struct {
	AccessTokenSecret      string `env:"AUTH_ACCESS_TOKEN_SECRET"`
	AccessTokenExpiration  int64  `env:"AUTH_ACCESS_TOKEN_EXPIRATION_MS,  default=900000"`
	RefreshTokenSecret     string `env:"AUTH_REFRESH_TOKEN_SECRET"`
	RefreshTokenExpiration int64  `env:"AUTH_REFRESH_TOKEN_EXPIRATION_MS, default=1209600000"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=social_graph"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// AccessTokenTTL converts the configured access expiry to a duration.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenExpiration) * time.Millisecond
}

// RefreshTokenTTL converts the configured refresh expiry to a duration.
func (a AuthConfig) RefreshTokenTTL() time.Duration {
	return time.Duration(a.RefreshTokenExpiration) * time.Millisecond
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
