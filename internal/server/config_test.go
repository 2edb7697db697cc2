package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/janwillms/graphboard/pkg/session"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.Session.Backend != BackendMemory {
		t.Errorf("Backend = %q, want %q", cfg.Session.Backend, BackendMemory)
	}
	if time.Duration(cfg.Session.TTL) != session.DefaultTTL {
		t.Errorf("TTL = %v, want %v", time.Duration(cfg.Session.TTL), session.DefaultTTL)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
addr = ":9090"
log_level = "debug"

[session]
backend = "redis"
ttl = "2h"

[session.redis]
addr = "localhost:6379"
db = 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Session.Backend != BackendRedis {
		t.Errorf("Backend = %q, want redis", cfg.Session.Backend)
	}
	if time.Duration(cfg.Session.TTL) != 2*time.Hour {
		t.Errorf("TTL = %v, want 2h", time.Duration(cfg.Session.TTL))
	}
	if cfg.Session.Redis.Addr != "localhost:6379" || cfg.Session.Redis.DB != 3 {
		t.Errorf("Redis = %+v", cfg.Session.Redis)
	}
	// Untouched sections keep their defaults.
	if cfg.Session.Mongo.Database != "graphboard" {
		t.Errorf("Mongo.Database = %q, want graphboard", cfg.Session.Mongo.Database)
	}
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[session]\nttl = \"soon\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() with bad duration succeeded, want error")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadConfig() with missing file succeeded, want error")
	}
}

func TestNewSessionStoreMemory(t *testing.T) {
	store, closeFn, err := NewSessionStore(context.Background(), SessionConfig{Backend: BackendMemory})
	if err != nil {
		t.Fatalf("NewSessionStore() error = %v", err)
	}
	if store == nil {
		t.Fatal("NewSessionStore() returned nil store")
	}
	if err := closeFn(context.Background()); err != nil {
		t.Errorf("close error = %v", err)
	}
}

func TestNewSessionStoreUnknownBackend(t *testing.T) {
	if _, _, err := NewSessionStore(context.Background(), SessionConfig{Backend: "etcd"}); err == nil {
		t.Error("NewSessionStore(etcd) succeeded, want error")
	}
}
