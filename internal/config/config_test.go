package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 4096, cfg.LLM.MaxTokens)
	assert.Equal(t, 3, cfg.Generation.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Generation.MinInterval)
	assert.Equal(t, 60*time.Second, cfg.Generation.AttemptTimeout)
	assert.Equal(t, 2000, cfg.Generation.ChunkTokens)
	assert.Equal(t, 10, cfg.Generation.MaxItems)
	assert.Equal(t, 100, cfg.Generation.MaterialMinLength)
	assert.Equal(t, 50000, cfg.Generation.MaterialMaxLength)
	assert.Equal(t, 10, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 500, cfg.Cache.Capacity)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("REDIS_ADDRESS", "redis.example:6379")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_SERVER", "http://ollama.example:11434")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "redis.example:6379", cfg.Redis.Address)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "http://ollama.example:11434", cfg.LLM.ServerURL)
}
