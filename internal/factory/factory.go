package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcoot/duelroom/internal/api"
	"github.com/mcoot/duelroom/internal/config"
	"github.com/mcoot/duelroom/internal/dependencies/clock"
	"github.com/mcoot/duelroom/internal/dependencies/random"
	"github.com/mcoot/duelroom/internal/games"
	"github.com/mcoot/duelroom/internal/model"
	"github.com/mcoot/duelroom/internal/realtime"
	"github.com/mcoot/duelroom/internal/services/janitor"
	"github.com/mcoot/duelroom/internal/services/room"
	"github.com/mcoot/duelroom/internal/services/session"
	"github.com/mcoot/duelroom/internal/services/turntimer"
	"github.com/mcoot/duelroom/internal/storage"
	"github.com/mcoot/duelroom/internal/storage/memory"
	redisstorage "github.com/mcoot/duelroom/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = config.StorageMemory
	StorageTypeRedis  = config.StorageRedis
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Catalog   *games.Catalog
	Registry  *room.Registry
	Scheduler *turntimer.Scheduler
	Gateway   *realtime.Gateway
	Session   *session.Controller
	Janitor   *janitor.Janitor

	logger *slog.Logger
	closer io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// FlushOnStart clears the Redis key space left by a previous run
	FlushOnStart bool
	// TurnDurations overrides the countdown of individual games
	TurnDurations map[model.GameType]time.Duration
	// JanitorSchedule is the cron spec of the stale-seat sweep
	// If empty, janitor.DefaultSchedule is used
	JanitorSchedule string
	// ActionsPerSecond and ActionBurst limit inbound websocket actions per
	// connection. If ActionBurst is zero, the gateway defaults are kept.
	ActionsPerSecond float64
	ActionBurst      int
}

// FromConfig translates loaded server configuration into factory configuration
func FromConfig(cfg *config.Config, logger *slog.Logger) (Config, error) {
	durations, err := cfg.TurnDurations()
	if err != nil {
		return Config{}, err
	}

	out := Config{
		Logger:           logger,
		StorageType:      cfg.Storage.Type,
		FlushOnStart:     cfg.Redis.FlushOnStart,
		TurnDurations:    durations,
		JanitorSchedule:  cfg.Janitor.Schedule,
		ActionsPerSecond: cfg.Realtime.ActionsPerSecond,
		ActionBurst:      cfg.Realtime.ActionBurst,
	}
	if cfg.Storage.Type == StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Redis.URL
		if cfg.Redis.PoolSize > 0 {
			redisCfg.PoolSize = cfg.Redis.PoolSize
		}
		if cfg.Redis.RoomTTL > 0 {
			redisCfg.RoomTTL = cfg.Redis.RoomTTL
		}
		if cfg.Redis.GameStateTTL > 0 {
			redisCfg.GameStateTTL = cfg.Redis.GameStateTTL
		}
		out.RedisConfig = &redisCfg
	}
	return out, nil
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	var closer io.Closer
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		if cfg.FlushOnStart {
			if err := redisStore.Flush(context.Background()); err != nil {
				_ = redisStore.Close()
				return nil, fmt.Errorf("flush redis: %w", err)
			}
			logger.Info("flushed stale room data from redis")
		}
		store = redisStore
		closer = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	app := newWithDependencies(store, clk, rnd, cfg.TurnDurations, cfg.JanitorSchedule, logger)
	app.closer = closer
	if cfg.ActionBurst > 0 {
		app.Gateway.SetRateLimit(cfg.ActionsPerSecond, cfg.ActionBurst)
	}
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	durations map[model.GameType]time.Duration,
	janitorSchedule string,
	logger *slog.Logger,
) *App {
	catalog := games.NewCatalog(rnd)
	for t, d := range durations {
		catalog.SetTurnDuration(t, d)
	}

	registry := room.NewRegistry(store, catalog, clk, rnd, logger)
	scheduler := turntimer.New(clk, logger)
	gateway := realtime.NewGateway(logger)
	controller := session.NewController(registry, store, catalog, scheduler, gateway, logger)
	gateway.Bind(controller)
	sweeper := janitor.New(registry, gateway, controller, janitorSchedule, logger)

	return &App{
		Storage:   store,
		Clock:     clk,
		Random:    rnd,
		Catalog:   catalog,
		Registry:  registry,
		Scheduler: scheduler,
		Gateway:   gateway,
		Session:   controller,
		Janitor:   sweeper,
		logger:    logger,
	}
}

// Router returns the HTTP handler serving the API and the websocket endpoint
func (a *App) Router() http.Handler {
	return api.NewRouter(api.RouterConfig{
		Logger:   a.logger,
		Catalog:  a.Catalog,
		Rooms:    a.Session,
		Realtime: a.Gateway,
	})
}

// Close stops background work and releases external connections
func (a *App) Close() error {
	a.Janitor.Stop()
	a.Gateway.Close()
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}
