package store

import (
	"fmt"
	"log/slog"
	"time"
)

// Config carries backend-specific settings. Only the fields for the selected
// backend are consulted.
type Config struct {
	// Badger
	BadgerPath string // empty means in-memory (tests)

	// Redis
	RedisAddr     string
	RedisPassword string

	// Memory
	DataFile      string // empty disables persistence
	FlushInterval time.Duration

	Logger *slog.Logger
}

// New creates a Store for the named backend.
//
// Supported backends:
//
//	"badger" - embedded Badger database (default)
//	"redis"  - remote Redis with the JSON module
//	"memory" - in-memory, optionally flushed to a JSON file
func New(backend string, cfg Config) (Store, error) {
	switch backend {
	case "badger", "":
		return NewBadgerStore(cfg.BadgerPath, cfg.Logger)
	case "redis":
		return NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
	case "memory":
		return NewMemoryStore(cfg.DataFile, cfg.FlushInterval, cfg.Logger)
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: badger, redis, memory)", backend)
	}
}
