package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "PORT", "MIN_FREQUENCY", "RANK_TIMEOUT", "JWT_SECRET", "REDIS_URL", "WORDS_DB", "CACHE_TTL", "JWT_EXPIRES_DAYS", "DAILY_SALT"} {
		t.Setenv(k, "") // restored after the test
		require.NoError(t, os.Unsetenv(k))
	}
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":5175", cfg.Addr())
	assert.Equal(t, int64(20), cfg.MinFrequency)
	assert.Equal(t, 30*time.Second, cfg.RankTimeout)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 14*24*time.Hour, cfg.TokenTTL())
	assert.False(t, cfg.AuthEnabled())
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "local_dev_salt", cfg.DailySalt)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("RANK_WORKERS", "3")
	t.Setenv("RANK_TIMEOUT", "2s")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRES_DAYS", "1")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, 3, cfg.RankWorkers)
	assert.Equal(t, 2*time.Second, cfg.RankTimeout)
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
}

func TestParseError(t *testing.T) {
	t.Setenv("RANK_WORKERS", "lots")
	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
