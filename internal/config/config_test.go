package config_test

import (
	"testing"
	"time"

	"github.com/mgalli/ratiolens/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:3593", cfg.AddonHost)
	assert.Equal(t, ":3593", cfg.ServerListenAddr)
	assert.Equal(t, 30*24*time.Hour, cfg.RatioCacheTTL)
	assert.Equal(t, 2*time.Second, cfg.MinFetchInterval)
}

func TestLoadAddonHostNormalized(t *testing.T) {
	t.Setenv("ADDON_HOST", "https://ratiolens.example.com/some/path")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://ratiolens.example.com", cfg.AddonHost)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RATIO_CACHE_TTL", "24h")
	t.Setenv("MIN_FETCH_INTERVAL", "500ms")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.RatioCacheTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.MinFetchInterval)
}
