package app

import (
	"context"
	"cryptodesk/internal/platform/db"
	httpserver "cryptodesk/internal/platform/http"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cryptodesk/internal/adapters"
	"cryptodesk/internal/adapters/cache"
	"cryptodesk/internal/adapters/httpclient"
	"cryptodesk/internal/adapters/postgres"
	"cryptodesk/internal/adapters/snapshot"
	"cryptodesk/internal/api"
	"cryptodesk/internal/api/adminauth"
	"cryptodesk/internal/config"
	"cryptodesk/internal/ledger"
	ledgerhandler "cryptodesk/internal/ledger/handler"
	"cryptodesk/internal/market"
	markethandler "cryptodesk/internal/market/handler"
	"cryptodesk/internal/scheduler"
	"cryptodesk/internal/ticker"
	tickerhandler "cryptodesk/internal/ticker/handler"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and background tasks
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")
	if appCfg.Admin.APIKey == "" {
		logrus.Warn("ADMIN_API_KEY is empty, account and admin endpoints will answer 500")
	}

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations, snapshot load)
	startupCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	// DB pool and schema
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if err = db.Migrate(startupCtx, appCfg.DbServer.GetURL()); err != nil {
		logrus.WithError(err).Error("Failed to apply migrations")
		return err
	}
	logrus.Info("✅ Migrations applied")

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External clients
	priceClient := httpclient.NewCoinGeckoClient(
		baseHTTPClient,
		strings.TrimSuffix(appCfg.PriceProvider.BaseURL, "/"),
		appCfg.PriceProvider.APIKey,
	)

	// Price snapshot persistence
	store, closeStore, err := newSnapshotStore(startupCtx, appCfg)
	if err != nil {
		logrus.WithError(err).Error("Failed to init price snapshot store")
		return err
	}
	defer closeStore()
	logrus.Infof("✅ Price snapshot store ready (%s)", appCfg.PriceCache.Store)

	// Caches
	priceCache := market.NewPriceCache(priceClient, store, time.Duration(appCfg.PriceCache.TTLSeconds)*time.Second, nil)
	priceCache.LoadSnapshot(startupCtx)
	marketsCache := market.NewMarketsCache(
		priceClient,
		priceCache,
		time.Duration(appCfg.MarketsCache.TTLSeconds)*time.Second,
		appCfg.MarketsCache.Limit,
		nil,
	)
	userCache, err := cache.NewUserCache(appCfg.UserCache.MaxItems, time.Duration(appCfg.UserCache.TTLSeconds)*time.Second)
	if err != nil {
		logrus.WithError(err).Error("Failed to init user cache")
		return err
	}
	defer userCache.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)

	// Background tasks
	supervisor := scheduler.NewSupervisor()
	// Ensure background tasks stop before DB pool closes
	defer func() {
		if shutDownErr := supervisor.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Supervisor shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := supervisor.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start supervisor")
		return startErr
	}
	logrus.Info("✅ Supervisor activation successful")

	depositWorker := ledger.NewDepositWorker(
		ledgerRepo,
		supervisor,
		time.Duration(appCfg.Deposits.MaturationSeconds)*time.Second,
		time.Duration(appCfg.Deposits.PollIntervalMillis)*time.Millisecond,
		nil,
	)
	if err = depositWorker.StartIfPending(startupCtx); err != nil {
		// Not fatal: the worker also starts on the next deposit.
		logrus.WithError(err).Warn("Failed to resume pending deposits")
	}

	// Services
	ledgerService := ledger.NewService(userRepo, userCache, ledgerRepo, priceCache, depositWorker, nil)
	addressBook := ledger.NewAddressBook(appCfg.Deposits.Addresses)
	hub := ticker.NewHub(appCfg.Ticker.BufferSize)
	broadcaster := ticker.NewBroadcaster(
		priceClient,
		hub,
		supervisor,
		time.Duration(appCfg.Ticker.IntervalMillis)*time.Millisecond,
		nil,
	)

	// Handlers and router
	router := api.NewRouter(api.Handlers{
		Market: markethandler.NewMarketHandler(priceCache, marketsCache, market.SupportedSymbols()),
		Ledger: ledgerhandler.NewLedgerHandler(ledgerService, addressBook),
		Ticker: tickerhandler.NewTickerHandler(broadcaster),
	}, adminauth.New(appCfg.Admin.APIKey))

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop background tasks and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// newSnapshotStore picks the price snapshot backend. The returned func releases it.
func newSnapshotStore(ctx context.Context, cfg *config.AppConfig) (adapters.SnapshotStore, func(), error) {
	switch strings.ToLower(cfg.PriceCache.Store) {
	case "", "file":
		return snapshot.NewFileStore(cfg.PriceCache.FilePath), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Redis.Addr, err)
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				logrus.WithError(err).Warn("Failed to close redis client")
			}
		}
		return snapshot.NewRedisStore(client, cfg.PriceCache.RedisKey), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown price cache store %q", cfg.PriceCache.Store)
	}
}
