package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Remote       RemoteConfig
	Cache        CacheConfig
	Logging      LoggingConfig
	GeminiAPIKey string
}

// ServerConfig configures the local HTTP API the browser UI talks to.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RemoteConfig points at the remote profile service.
type RemoteConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	UpdateTimeout  time.Duration
}

// CacheConfig selects and configures the local cache backend.
type CacheConfig struct {
	Type          string // "sqlite" or "redis"
	Path          string // sqlite file path
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_HOST", "127.0.0.1")
	viper.SetDefault("SERVER_PORT", 3002)
	viper.SetDefault("REMOTE_REQUEST_TIMEOUT_SEC", 15)
	viper.SetDefault("REMOTE_UPDATE_TIMEOUT_SEC", 10)
	viper.SetDefault("CACHE_TYPE", "sqlite")
	viper.SetDefault("CACHE_PATH", "matchbook-cache.db")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("LOG_LEVEL", "info")

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Remote: RemoteConfig{
			BaseURL:        viper.GetString("REMOTE_BASE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("REMOTE_REQUEST_TIMEOUT_SEC")) * time.Second,
			UpdateTimeout:  time.Duration(viper.GetInt("REMOTE_UPDATE_TIMEOUT_SEC")) * time.Second,
		},
		Cache: CacheConfig{
			Type:          viper.GetString("CACHE_TYPE"),
			Path:          viper.GetString("CACHE_PATH"),
			RedisAddr:     viper.GetString("REDIS_ADDR"),
			RedisPassword: viper.GetString("REDIS_PASSWORD"),
			RedisDB:       viper.GetInt("REDIS_DB"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Remote.BaseURL == "" {
		return fmt.Errorf("remote profile service base URL is required")
	}
	switch c.Cache.Type {
	case "sqlite":
		if c.Cache.Path == "" {
			return fmt.Errorf("cache path is required for the sqlite backend")
		}
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("redis address is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache type %q (want sqlite or redis)", c.Cache.Type)
	}
	return nil
}

// GetAddr returns the local listen address.
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
