package server

import (
	"context"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/janwillms/graphboard/pkg/session"
)

// Session backend names accepted in config.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config holds the serve command's settings, loaded from a TOML file with
// flag overrides applied on top.
type Config struct {
	Addr     string        `toml:"addr"`
	LogLevel string        `toml:"log_level"`
	Session  SessionConfig `toml:"session"`
}

// SessionConfig selects and configures the session storage backend.
type SessionConfig struct {
	Backend string      `toml:"backend"` // memory (default), redis, mongo
	TTL     Duration    `toml:"ttl"`
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// RedisConfig mirrors [session.RedisConfig] with TOML tags.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig mirrors [session.MongoConfig] with TOML tags.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Duration wraps time.Duration so TOML values can be written as "24h".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Addr:     ":8080",
		LogLevel: "info",
		Session: SessionConfig{
			Backend: BackendMemory,
			TTL:     Duration(session.DefaultTTL),
			Mongo: MongoConfig{
				Database:   "graphboard",
				Collection: "sessions",
			},
		},
	}
}

// LoadConfig reads a TOML config file on top of the defaults.
// An empty path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = Duration(session.DefaultTTL)
	}
	return cfg, nil
}

// NewSessionStore builds the configured session backend.
// The returned close function releases backend connections; it is a no-op
// for the memory backend.
func NewSessionStore(ctx context.Context, cfg SessionConfig) (session.Store, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.Backend {
	case "", BackendMemory:
		return session.NewMemoryStore(), noop, nil

	case BackendRedis:
		store, err := session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func(context.Context) error { return store.Close() }, nil

	case BackendMongo:
		store, err := session.NewMongoStore(ctx, session.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
