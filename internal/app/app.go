package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mkoval/markd/internal/config"
	"github.com/mkoval/markd/internal/httpserver"
	"github.com/mkoval/markd/internal/httpserver/deps"
	"github.com/mkoval/markd/internal/logger"
	"github.com/mkoval/markd/internal/notify"
	"github.com/mkoval/markd/internal/redis"
	"github.com/mkoval/markd/internal/reminders"
	"github.com/mkoval/markd/internal/scheduler"
	sqlitestore "github.com/mkoval/markd/internal/store/sqlite"
	"github.com/mkoval/markd/internal/version"
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	server       *httpserver.Server
	store        *sqlitestore.Store
	redisClient  *goredis.Client
	checker      *scheduler.Checker
	seedReloader *scheduler.SeedReloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	store, err := sqlitestore.Open(cfg.DBPath)
	if err != nil {
		loggerClient.Errorf("Failed to open database at %s: %v", cfg.DBPath, err)
		os.Exit(1)
	}
	loggerClient.Info("database opened", logger.String("path", cfg.DBPath))

	// Redis is optional: without an address the event sink is disabled
	// and reminders only reach the webhook sink.
	var redisClient *goredis.Client
	var eventSink notify.EventSink
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
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
		eventSink = notify.NewRedisEventSink(redisClient, cfg.EventChannel)
		loggerClient.Info("redis event sink initialized",
			logger.String("channel", cfg.EventChannel))
	} else {
		loggerClient.Info("redis not configured, reminder events disabled")
	}

	var userSink notify.UserSink
	if cfg.NotifyURL != "" {
		userSink = notify.NewWebhookSink(cfg.NotifyURL)
		loggerClient.Info("webhook notifications enabled",
			logger.String("url", cfg.NotifyURL))
	} else {
		loggerClient.Info("webhook URL not configured, user notifications disabled")
	}

	notifier := notify.New(userSink, eventSink, loggerClient)
	reminderSvc := reminders.New(store, loggerClient)

	// Manual check trigger shared with the HTTP layer.
	checkTrigger := make(chan struct{}, 1)
	checker := scheduler.NewChecker(store, notifier, loggerClient, cfg.CheckInterval, checkTrigger)

	var seedReloader *scheduler.SeedReloader
	var seedReloadTrigger chan struct{}
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured, initializing seed reloader",
			logger.String("file", cfg.SeedFile))
		seedReloadTrigger = make(chan struct{}, 1)
		seedReloader = scheduler.NewSeedReloader(
			cfg.SeedFile,
			store,
			loggerClient,
			cfg.SeedReloadInterval,
			seedReloadTrigger,
		)
	} else {
		loggerClient.Info("seed file not configured, seeding disabled")
	}

	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		Store:             store,
		Reminders:         reminderSvc,
		Validate:          validator.New(),
		CheckTrigger:      checkTrigger,
		SeedReloadTrigger: seedReloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:          cfg,
		logger:       loggerClient,
		server:       server,
		store:        store,
		redisClient:  redisClient,
		checker:      checker,
		seedReloader: seedReloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting markd v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("markd %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.seedReloader != nil {
		if err := a.seedReloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start seed reloader: %w", err)
		}
		a.logger.Info("seed reloader started",
			logger.Duration("interval", a.cfg.SeedReloadInterval))
	}

	if err := a.checker.Start(ctx); err != nil {
		return fmt.Errorf("failed to start reminder checker: %w", err)
	}
	a.logger.Info("reminder checker started",
		logger.Duration("interval", a.cfg.CheckInterval))

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

	a.checker.Stop()

	if a.seedReloader != nil {
		a.seedReloader.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close database: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ markd stopped cleanly")
	return nil
}
