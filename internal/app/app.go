package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cloudnav/cloudnav/internal/config"
	"github.com/cloudnav/cloudnav/internal/httpserver"
	"github.com/cloudnav/cloudnav/internal/httpserver/deps"
	"github.com/cloudnav/cloudnav/internal/kv"
	"github.com/cloudnav/cloudnav/internal/logger"
	"github.com/cloudnav/cloudnav/internal/redis"
	"github.com/cloudnav/cloudnav/internal/scheduler"
	"github.com/cloudnav/cloudnav/internal/seed"
	"github.com/cloudnav/cloudnav/internal/store/kvstore"
	"github.com/cloudnav/cloudnav/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	snapshotter *scheduler.Snapshotter
	gc          *scheduler.GarbageCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Backend selection happens here, once: the rest of the program only
	// sees the kv.Adapter interface. Redis wins when both are configured.
	var (
		adapter     kv.Adapter
		redisClient *goredis.Client
	)
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		adapter = kv.NewRedis(client)
	} else {
		loggerClient.Infof("Using HTTP KV backend at %s", cfg.KVAPIURL)
		adapter = kv.NewHTTP(cfg.KVAPIURL, cfg.KVAPIToken, loggerClient)
	}

	store := kvstore.NewStore(adapter)

	// Seed the backend on first boot, before the API starts serving.
	if cfg.SeedFile != "" {
		seedStore(store, cfg.SeedFile, loggerClient)
	}

	snapshotTrigger := make(chan struct{}, 1)

	snapshotter := scheduler.NewSnapshotter(
		store,
		loggerClient,
		cfg.SnapshotInterval,
		snapshotTrigger,
	)

	gc := scheduler.NewGarbageCollector(
		store,
		loggerClient,
		cfg.GCInterval,
		cfg.SnapshotKeep,
	)

	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		Store:           store,
		Password:        cfg.Password,
		SnapshotTrigger: snapshotTrigger,
		RateLimitBurst:  cfg.RateLimitBurst,
		RateLimitPerMin: cfg.RateLimitPerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		snapshotter: snapshotter,
		gc:          gc,
	}
}

// seedStore writes the seed envelope when the backend holds nothing yet.
// An already-populated store is never overwritten.
func seedStore(store *kvstore.Store, seedFile string, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	raw, err := store.LoadRaw(ctx)
	if err != nil {
		log.Warn("failed to check store before seeding", logger.Error(err))
		return
	}
	if raw != "" {
		log.Debug("store already populated, skipping seed")
		return
	}

	env, err := seed.NewLoader(seedFile).Load()
	if err != nil {
		log.Errorf("Failed to load seed file: %v", err)
		os.Exit(1)
	}
	if err := store.SaveEnvelope(ctx, env); err != nil {
		log.Errorf("Failed to write seed envelope: %v", err)
		os.Exit(1)
	}
	log.Info("store seeded",
		logger.String("file", seedFile),
		logger.Int("links", len(env.Links)),
		logger.Int("categories", len(env.Categories)))
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting CloudNav v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("CloudNav %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.snapshotter.Start(ctx); err != nil {
		return fmt.Errorf("failed to start snapshotter: %w", err)
	}
	a.logger.Info("snapshotter started",
		logger.Duration("interval", a.cfg.SnapshotInterval))

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

	a.snapshotter.Stop()
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

	a.logger.Info("✅ CloudNav stopped cleanly")
	return nil
}
