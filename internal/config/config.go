package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mcoot/duelroom/internal/model"
)

// EnvPrefix is prepended to every environment override, e.g.
// DUELROOM_SERVER_PORT or DUELROOM_TIMERS_CONNECT4
const EnvPrefix = "DUELROOM"

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config is the server configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Janitor  JanitorConfig  `mapstructure:"janitor"`
	Realtime RealtimeConfig `mapstructure:"realtime"`
	Log      LogConfig      `mapstructure:"log"`

	// Timers overrides per-game turn countdowns. Zero disables a game's timer.
	Timers map[string]time.Duration `mapstructure:"timers"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=0"`
}

type StorageConfig struct {
	Type string `mapstructure:"type" validate:"oneof=memory redis"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size" validate:"min=0"`
	RoomTTL      time.Duration `mapstructure:"room_ttl" validate:"min=0"`
	GameStateTTL time.Duration `mapstructure:"game_state_ttl" validate:"min=0"`

	// FlushOnStart drops every key under the store prefix at startup
	FlushOnStart bool `mapstructure:"flush_on_start"`
}

type JanitorConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// RealtimeConfig limits how fast one connection may send actions
type RealtimeConfig struct {
	ActionsPerSecond float64 `mapstructure:"actions_per_second" validate:"gt=0"`
	ActionBurst      int     `mapstructure:"action_burst" validate:"min=1"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("storage.type", StorageMemory)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.room_ttl", 6*time.Hour)
	v.SetDefault("redis.game_state_ttl", 6*time.Hour)
	v.SetDefault("redis.flush_on_start", true)

	v.SetDefault("janitor.enabled", true)
	v.SetDefault("janitor.schedule", "@every 1m")

	v.SetDefault("realtime.actions_per_second", 20.0)
	v.SetDefault("realtime.action_burst", 40)

	v.SetDefault("log.level", "info")

	// timers have no defaults; binding makes env overrides visible to Unmarshal
	for _, t := range model.AllGameTypes {
		_ = v.BindEnv("timers." + string(t))
	}
}

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are skipped and existing variables are never overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration from defaults, an optional config file and the
// environment, in increasing order of precedence. An empty file searches
// for config.yaml in . and ./config.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and cross-field requirements
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Storage.Type == StorageRedis && c.Redis.URL == "" {
		return errors.New("invalid config: redis.url is required when storage.type is redis")
	}
	if _, err := c.TurnDurations(); err != nil {
		return err
	}
	return nil
}

// TurnDurations returns the configured timer overrides keyed by game
func (c *Config) TurnDurations() (map[model.GameType]time.Duration, error) {
	out := make(map[model.GameType]time.Duration, len(c.Timers))
	for name, d := range c.Timers {
		t := model.GameType(strings.ToLower(name))
		if !t.Valid() {
			return nil, fmt.Errorf("invalid config: %w: timers.%s", model.ErrUnknownGameType, name)
		}
		if d < 0 {
			return nil, fmt.Errorf("invalid config: timers.%s must not be negative", name)
		}
		out[t] = d
	}
	return out, nil
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Addr returns the server listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
