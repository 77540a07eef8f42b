// internal/config/config.go
//
// Process configuration, read from the environment.
// A .env file in the working directory is loaded first (development);
// variables already set in the environment take precedence over it.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the CLI and API read.
type Config struct {
	LogLevel     string `env:"LOG_LEVEL"     envDefault:"info"`
	Port         string `env:"PORT"          envDefault:"5175"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	// Word source. WordsDB takes precedence; otherwise the list files are
	// read, falling back to the embedded lists.
	WordsDB      string `env:"WORDS_DB"`
	AnswersFile  string `env:"WORDS_ANSWERS_FILE"`
	AllowedFile  string `env:"WORDS_ALLOWED_FILE"`
	MinFrequency int64  `env:"MIN_FREQUENCY" envDefault:"20"`

	RankWorkers int           `env:"RANK_WORKERS" envDefault:"0"`
	RankTimeout time.Duration `env:"RANK_TIMEOUT" envDefault:"30s"`

	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"24h"`

	// JWTSecret empty leaves the API open.
	JWTSecret      string `env:"JWT_SECRET"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`

	DailySalt string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
}

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the environment without touching .env.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address for the API.
func (c Config) Addr() string { return ":" + c.Port }

// AuthEnabled reports whether the API requires a bearer token.
func (c Config) AuthEnabled() bool { return c.JWTSecret != "" }

// TokenTTL is the lifetime of minted API tokens.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresDays) * 24 * time.Hour
}
