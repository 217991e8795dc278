package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("REMOTE_BASE_URL", "https://api.example.com/api")
	t.Setenv("SERVER_PORT", "4100")
	t.Setenv("CACHE_TYPE", "sqlite")
	t.Setenv("CACHE_PATH", "/tmp/test-cache.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api", cfg.Remote.BaseURL)
	assert.Equal(t, 4100, cfg.Server.Port)
	assert.Equal(t, "/tmp/test-cache.db", cfg.Cache.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 15*time.Second, cfg.Remote.RequestTimeout)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REMOTE_BASE_URL", "https://api.example.com/api")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 3002, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Cache.Type)
	assert.Equal(t, 10*time.Second, cfg.Remote.UpdateTimeout)
}

func TestValidate(t *testing.T) {
	t.Run("missing remote base URL", func(t *testing.T) {
		cfg := &Config{Cache: CacheConfig{Type: "sqlite", Path: "x.db"}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown cache type", func(t *testing.T) {
		cfg := &Config{
			Remote: RemoteConfig{BaseURL: "https://api.example.com"},
			Cache:  CacheConfig{Type: "memcached"},
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("redis backend needs an address", func(t *testing.T) {
		cfg := &Config{
			Remote: RemoteConfig{BaseURL: "https://api.example.com"},
			Cache:  CacheConfig{Type: "redis"},
		}
		assert.Error(t, cfg.Validate())

		cfg.Cache.RedisAddr = "localhost:6379"
		assert.NoError(t, cfg.Validate())
	})
}
