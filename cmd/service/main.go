// Package main is the entry point for the quotebot service.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quotebot/internal/adapters/cache/redis"
	"github.com/jsamuelsen/quotebot/internal/adapters/clients"
	"github.com/jsamuelsen/quotebot/internal/adapters/clients/telegram"
	"github.com/jsamuelsen/quotebot/internal/adapters/http"
	"github.com/jsamuelsen/quotebot/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotebot/internal/adapters/store/bolt"
	"github.com/jsamuelsen/quotebot/internal/adapters/store/datastore"
	"github.com/jsamuelsen/quotebot/internal/app"
	"github.com/jsamuelsen/quotebot/internal/platform/config"
	"github.com/jsamuelsen/quotebot/internal/platform/logging"
	"github.com/jsamuelsen/quotebot/internal/platform/telemetry"
	"github.com/jsamuelsen/quotebot/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// quoteStore is what the service needs from a store backend.
type quoteStore interface {
	ports.QuoteStore
	ports.HealthChecker
	io.Closer
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast). The owner chat id and
	// bot token are not required here; the webhook checks them per request.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	loc, err := cfg.Quotes.Location()
	if err != nil {
		return err
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("store", cfg.Store.Backend),
		slog.Bool("cache", cfg.Cache.Enabled),
		slog.Bool("telegram_configured", cfg.Telegram.Configured()),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		Insecure:     cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	metrics, err := telemetry.NewCommandMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("registering command metrics: %w", err)
	}

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry(
		ports.WithCheckTimeout(cfg.Server.HealthTimeout),
		ports.WithCacheTTL(cfg.Server.HealthCacheTTL),
	)

	// 6. Open the quote store
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeWithLog(logger, "quote store", store)

	if err := healthRegistry.Register(store); err != nil {
		return fmt.Errorf("registering store health check: %w", err)
	}

	// 7. Optional read cache
	var cache ports.Cache
	if cfg.Cache.Enabled {
		redisCache := redis.New(redis.Config{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			Logger:   logger,
		})
		defer closeWithLog(logger, "redis cache", redisCache)

		if err := healthRegistry.Register(redisCache); err != nil {
			return fmt.Errorf("registering cache health check: %w", err)
		}

		cache = redisCache
	}

	// 8. Telegram Bot API client and reply sender
	telegramClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Telegram.BaseURL,
		ServiceName: telegram.ServiceName,
		Timeout:     cfg.Client.Timeout,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		RedactPath:  telegram.RedactPath,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating telegram client: %w", err)
	}

	sender := telegram.NewSender(telegram.SenderConfig{
		Client:  telegramClient,
		Token:   cfg.Telegram.BotToken,
		Metrics: metrics,
		Logger:  logger,
	})

	if err := healthRegistry.Register(sender); err != nil {
		return fmt.Errorf("registering telegram health check: %w", err)
	}

	// 9. Application services
	dispatcher := app.NewDispatcher(app.DispatcherConfig{
		Store:       store,
		Sender:      sender,
		Cache:       cache,
		OwnerChatID: cfg.Telegram.OwnerChatID,
		Location:    loc,
		Logger:      logger,
	})

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Store:    store,
		Cache:    cache,
		CacheTTL: cfg.Cache.TTL,
		Location: loc,
		Logger:   logger,
	})

	// 10. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	webhookHandler := handlers.NewWebhookHandler(handlers.WebhookConfig{
		Dispatcher: dispatcher,
		Configured: cfg.Telegram.Configured,
		Metrics:    metrics,
	})
	quoteHandler := handlers.NewQuoteHandler(quoteService)

	// 11. Create HTTP server and router
	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		HealthHandler:  healthHandler,
		WebhookHandler: webhookHandler,
		QuoteHandler:   quoteHandler,
		Timeout:        cfg.Server.RequestTimeout,
	})

	// 12. Start server (non-blocking)
	serverErr, err := server.Start()
	if err != nil {
		return err
	}

	// 13. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// openStore opens the configured quote store backend.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (quoteStore, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendDatastore:
		store, err := datastore.New(ctx, datastore.Config{
			ProjectID: cfg.Store.Datastore.ProjectID,
			Kind:      cfg.Store.Datastore.Kind,
			Namespace: cfg.Store.Datastore.Namespace,
			Logger:    logger,
		})
		if err != nil {
			return nil, fmt.Errorf("opening datastore: %w", err)
		}

		return store, nil

	default:
		store, err := bolt.Open(bolt.Config{
			Path:    cfg.Store.Bolt.Path,
			Timeout: cfg.Store.Bolt.Timeout,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("opening bolt store: %w", err)
		}

		return store, nil
	}
}

func closeWithLog(logger *slog.Logger, name string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Error("close failed", slog.String("resource", name), slog.Any("error", err))
	}
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight webhooks
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
