// Package factory selects and constructs the persistence backend once per
// process. Selection reads a single configuration value; anything unknown
// or broken degrades to the local adapter so the directory keeps working.
package factory

import (
	"context"
	"sync"

	"github.com/tooldex/tooldex/internal/identity"
	"github.com/tooldex/tooldex/internal/kv"
	"github.com/tooldex/tooldex/internal/logger"
	"github.com/tooldex/tooldex/internal/store"
	"github.com/tooldex/tooldex/internal/store/local"
	"github.com/tooldex/tooldex/internal/store/postgres"
	"github.com/tooldex/tooldex/internal/store/rest"
	"github.com/tooldex/tooldex/internal/store/surreal"
)

// Backend identifiers accepted by the factory.
const (
	BackendLocal    = "local"
	BackendRest     = "rest"
	BackendPostgres = "postgres"
	BackendSurreal  = "surreal"
)

// Config carries the backend choice plus the connection details each
// remote adapter needs. Only the selected backend's fields are read.
type Config struct {
	Backend     string
	APIBaseURL  string
	PostgresDSN string
	Surreal     surreal.Config
}

// Open constructs the adapter for cfg.Backend. Managed backends that fail
// to initialize log a warning and fall back to the local adapter — once,
// here at construction, never per call.
func Open(ctx context.Context, cfg Config, kvStore kv.Store, log logger.Logger) store.Adapter {
	switch cfg.Backend {
	case BackendRest:
		log.Info("using rest persistence backend",
			logger.String("base_url", cfg.APIBaseURL))
		return rest.New(cfg.APIBaseURL, kvStore)

	case BackendPostgres:
		adapter, err := postgres.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Warn("postgres backend unavailable, falling back to local adapter",
				logger.Error(err))
			return local.New(kvStore)
		}
		log.Info("using postgres persistence backend")
		return adapter

	case BackendSurreal:
		adapter, err := surreal.New(cfg.Surreal)
		if err != nil {
			log.Warn("surrealdb backend unavailable, falling back to local adapter",
				logger.Error(err))
			return local.New(kvStore)
		}
		log.Info("using surrealdb persistence backend")
		return adapter

	case BackendLocal, "":
		log.Info("using local persistence backend")
		return local.New(kvStore)

	default:
		log.Warn("unknown persistence backend, using local adapter",
			logger.String("backend", cfg.Backend))
		return local.New(kvStore)
	}
}

// OpenAuth picks the authenticator matching the store backend. The rest
// backend owns its accounts remotely; every other backend keeps users in
// its own users collection.
func OpenAuth(cfg Config, adapter store.Adapter, kvStore kv.Store) identity.Authenticator {
	if cfg.Backend == BackendRest {
		return identity.NewRest(cfg.APIBaseURL, kvStore)
	}
	return identity.NewStoreAuth(adapter, kvStore)
}

var (
	defaultOnce    sync.Once
	defaultAdapter store.Adapter
)

// Default returns the process-wide adapter, constructing it on first use.
// The first caller's configuration pins the backend for the session;
// later calls reuse the same instance regardless of arguments.
func Default(ctx context.Context, cfg Config, kvStore kv.Store, log logger.Logger) store.Adapter {
	defaultOnce.Do(func() {
		defaultAdapter = Open(ctx, cfg, kvStore, log)
	})
	return defaultAdapter
}
