package container

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/matchbook-app/matchbook-client/internal/cache"
	redcache "github.com/matchbook-app/matchbook-client/internal/cache/redis"
	"github.com/matchbook-app/matchbook-client/internal/cache/sqlite"
	"github.com/matchbook-app/matchbook-client/internal/config"
	deliveryhttp "github.com/matchbook-app/matchbook-client/internal/delivery/http"
	"github.com/matchbook-app/matchbook-client/internal/delivery/http/handler"
	"github.com/matchbook-app/matchbook-client/internal/gateway/httpapi"
	"github.com/matchbook-app/matchbook-client/internal/infrastructure/gemini"
	"github.com/matchbook-app/matchbook-client/internal/infrastructure/logging"
	"github.com/matchbook-app/matchbook-client/internal/infrastructure/server"
	"github.com/matchbook-app/matchbook-client/internal/store"
	"github.com/matchbook-app/matchbook-client/internal/usecase/onboarding"
	"github.com/matchbook-app/matchbook-client/internal/usecase/syncengine"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Cache   cache.Store
	Store   *store.Store
	Engine  *syncengine.Engine
	Machine *onboarding.Machine
	Server  *server.Server
	Gemini  *gemini.GeminiClient
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	logger, err := logging.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize local cache
	localCache, err := newCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	// Initialize remote gateway
	remoteGateway := httpapi.NewClient(cfg.Remote.BaseURL, cfg.Remote.RequestTimeout, logger)

	// Initialize Gemini client (optional)
	var geminiClient *gemini.GeminiClient
	if cfg.GeminiAPIKey != "" {
		geminiClient, err = gemini.NewGeminiClient(cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("failed to initialize gemini client, bio suggestions disabled", zap.Error(err))
			geminiClient = nil
		}
	}

	// Initialize core
	profileStore := store.New()
	engine := syncengine.New(profileStore, localCache, remoteGateway, logger, cfg.Remote.UpdateTimeout)
	machine := onboarding.NewMachine(remoteGateway, engine, profileStore, logger)

	// Initialize handlers
	onboardingHandler := handler.NewOnboardingHandler(machine)
	profileHandler := handler.NewProfileHandler(machine, engine, geminiClient)

	// Initialize router
	router := deliveryhttp.NewRouter(onboardingHandler, profileHandler)
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, logger)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Cache:   localCache,
		Store:   profileStore,
		Engine:  engine,
		Machine: machine,
		Server:  srv,
		Gemini:  geminiClient,
	}, nil
}

func newCache(cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Type {
	case "redis":
		return redcache.New(redcache.Config{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	default:
		return sqlite.New(cfg.Cache.Path)
	}
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			return fmt.Errorf("failed to close cache: %w", err)
		}
	}

	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	return nil
}
