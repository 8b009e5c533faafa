// Package main is the entry point for quotectl.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsamuelsen/quotebot/internal/adapters/clients"
	"github.com/jsamuelsen/quotebot/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotebot/internal/adapters/store/bolt"
	"github.com/jsamuelsen/quotebot/internal/cli"
	"github.com/jsamuelsen/quotebot/internal/platform/config"
	"github.com/jsamuelsen/quotebot/internal/platform/logging"
)

// Build-time variables, injected via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := cli.Run(ctx, setup, cli.BuildInfo{Version: Version, Commit: Commit}, os.Args[1:], os.Stdin, os.Stdout)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the shared configuration, opens the local state file and
// points a client at the read API. Logs go to stderr.
func setup(_ context.Context) (*cli.Env, func(), error) {
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	loc, err := cfg.Quotes.Location()
	if err != nil {
		return nil, nil, err
	}

	logger := logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "quotectl",
		Version: Version,
	}, os.Stderr)

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.CLI.APIBaseURL,
		ServiceName: acl.QuoteAPIServiceName,
		Timeout:     cfg.Client.Timeout,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating API client: %w", err)
	}

	state, err := bolt.Open(bolt.Config{
		Path:    cfg.CLI.StatePath,
		Timeout: cfg.Store.Bolt.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("opening state file: %w", err)
	}

	cleanup := func() {
		if err := state.Close(); err != nil {
			logger.Error("closing state file", slog.Any("error", err))
		}
	}

	return &cli.Env{
		API:      acl.NewQuoteClient(acl.QuoteClientConfig{Client: httpClient, Logger: logger}),
		Device:   state,
		Location: loc,
		Logger:   logger,
	}, cleanup, nil
}
