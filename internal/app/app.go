package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tooldex/tooldex/internal/analytics"
	"github.com/tooldex/tooldex/internal/catalog"
	"github.com/tooldex/tooldex/internal/collections"
	"github.com/tooldex/tooldex/internal/compare"
	"github.com/tooldex/tooldex/internal/config"
	"github.com/tooldex/tooldex/internal/httpserver"
	"github.com/tooldex/tooldex/internal/httpserver/deps"
	"github.com/tooldex/tooldex/internal/kv"
	"github.com/tooldex/tooldex/internal/logger"
	"github.com/tooldex/tooldex/internal/prefs"
	"github.com/tooldex/tooldex/internal/redis"
	"github.com/tooldex/tooldex/internal/scheduler"
	"github.com/tooldex/tooldex/internal/store/factory"
	"github.com/tooldex/tooldex/internal/store/surreal"
	"github.com/tooldex/tooldex/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	reloader    *scheduler.CatalogReloader
	gc          *scheduler.GarbageCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// The kv medium underpins sessions, preferences, shortlists, and the
	// local store adapter; nothing works without it, so fail fast.
	kvStore, redisClient := openKV(cfg, loggerClient)

	// Catalog index and its reload trigger.
	catalogIndex := catalog.NewIndex()
	reloadTrigger := make(chan struct{}, 1)
	reloader := scheduler.NewCatalogReloader(
		cfg.CatalogFile,
		catalogIndex,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	// Persistence backend; managed backends that fail to come up degrade
	// to the local adapter inside the factory.
	storeCfg := factory.Config{
		Backend:     cfg.Backend,
		APIBaseURL:  cfg.APIBaseURL,
		PostgresDSN: cfg.PostgresDSN,
		Surreal: surreal.Config{
			URL:       cfg.SurrealURL,
			User:      cfg.SurrealUser,
			Password:  cfg.SurrealPassword,
			Namespace: cfg.SurrealNamespace,
			Database:  cfg.SurrealDatabase,
		},
	}
	adapter := factory.Default(context.Background(), storeCfg, kvStore, loggerClient)
	auth := factory.OpenAuth(storeCfg, adapter, kvStore)

	gcTrigger := make(chan struct{}, 1)
	gc := scheduler.NewGarbageCollector(adapter, loggerClient, cfg.GCInterval, cfg.GCMaxAge, gcTrigger)

	d := deps.Deps{
		Logger:    loggerClient,
		StartTime: time.Now(),
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,

		Backend: cfg.Backend,

		Catalog:     catalogIndex,
		Store:       adapter,
		Auth:        auth,
		KV:          kvStore,
		Prefs:       prefs.New(kvStore),
		Reviews:     collections.NewReviews(adapter),
		Submissions: collections.NewSubmissions(adapter),
		Chat:        collections.NewChat(kvStore),
		Favorites:   compare.NewFavorites(kvStore),
		Comparison:  compare.NewComparison(kvStore),
		Analytics:   analytics.NewRecorder(kvStore, loggerClient),
		Debouncer:   analytics.NewSearchDebouncer(),

		JWTSecret: []byte(cfg.JWTSecret),
		TokenTTL:  cfg.TokenTTL,

		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,

		RedisClient: redisClient,

		ReloadTrigger: reloadTrigger,
		GCTrigger:     gcTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		reloader:    reloader,
		gc:          gc,
	}
}

// openKV builds the configured kv medium. The redis client is returned
// separately so /infra can ping it.
func openKV(cfg *config.Config, log logger.Logger) (kv.Store, *goredis.Client) {
	switch cfg.KVMedium {
	case "memory":
		log.Info("using in-memory kv store")
		return kv.NewMemory(), nil

	case "redis":
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			log.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		return kv.NewRedis(client), client

	default:
		fileStore, err := kv.NewFile(cfg.DataDir)
		if err != nil {
			log.Errorf("Failed to open kv directory %s: %v", cfg.DataDir, err)
			os.Exit(1)
		}
		log.Info("using file kv store", logger.String("dir", cfg.DataDir))
		return fileStore, nil
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting tooldex v%s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Infof("tooldex %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start catalog reloader (initial load plus periodic refresh).
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	// Start garbage collector.
	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ tooldex stopped cleanly")
	return nil
}
