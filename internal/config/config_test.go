package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRedisAddrEmptyDisablesLeaderboard(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Redis.Addr, "no default address; operators opt in to the leaderboard")
}

func TestLoadRedisAddrFromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestClockSkewToleranceDefaults(t *testing.T) {
	assert.Equal(t, 5*time.Minute, GamificationConfig{}.ClockSkewTolerance())
	assert.Equal(t, 5*time.Minute, GamificationConfig{ClockSkewToleranceMinutes: -1}.ClockSkewTolerance())
	assert.Equal(t, 10*time.Minute, GamificationConfig{ClockSkewToleranceMinutes: 10}.ClockSkewTolerance())
}
