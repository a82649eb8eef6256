package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/api/feed"
	"github.com/feral-file/world-conquest/internal/api/middleware"
	"github.com/feral-file/world-conquest/internal/api/server"
	"github.com/feral-file/world-conquest/internal/api/shared/executor"
	"github.com/feral-file/world-conquest/internal/battle"
	"github.com/feral-file/world-conquest/internal/config"
	"github.com/feral-file/world-conquest/internal/emitter"
	"github.com/feral-file/world-conquest/internal/logger"
	"github.com/feral-file/world-conquest/internal/messaging"
	"github.com/feral-file/world-conquest/internal/providers/jetstream"
	"github.com/feral-file/world-conquest/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		Environment:     cfg.Environment,
		Service:         "api",
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting World Conquest API")

	// Connect to database. TranslateError maps unique violations to gorm.ErrDuplicatedKey.
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Initialize store
	dataStore := store.NewPGStore(db, jsonAdapter, clockAdapter)

	// Change feed publishers: NATS for observers, the websocket hub for browsers
	var publishers []messaging.Publisher

	var hub feed.Hub
	if cfg.Feed.Enabled {
		hub = feed.NewHub(feed.Config{
			SendBuffer:     cfg.Feed.SendBuffer,
			WriteTimeout:   cfg.Feed.WriteTimeout,
			PingInterval:   cfg.Feed.PingInterval,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		}, jsonAdapter)
		publishers = append(publishers, hub)
	}

	var natsClosed <-chan struct{}
	if cfg.NATS.URL != "" {
		natsPublisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
			URL:             cfg.NATS.URL,
			StreamName:      cfg.NATS.StreamName,
			MaxReconnects:   cfg.NATS.MaxReconnects,
			ReconnectWait:   cfg.NATS.ReconnectWait,
			ConnectionName:  cfg.NATS.ConnectionName,
			MaxAge:          cfg.NATS.MaxAge,
			DuplicateWindow: cfg.NATS.DuplicateWindow,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.Fatal("Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer natsPublisher.Close()
		natsClosed = natsPublisher.CloseChan()
		publishers = append(publishers, natsPublisher)
		logger.InfoCtx(ctx, "Connected to NATS JetStream", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS url not configured, change events are not published to NATS")
	}

	errCh := make(chan error, 2)

	// The emitter relays the changes journal to every publisher
	var notifier executor.Notifier
	if len(publishers) > 0 {
		changeEmitter := emitter.NewEmitter(
			messaging.NewFanout(publishers...),
			dataStore,
			emitter.Config{
				FeedName:     cfg.Emitter.FeedName,
				BatchSize:    cfg.Emitter.BatchSize,
				PollInterval: cfg.Emitter.PollInterval,
				StartCursor:  cfg.Emitter.StartCursor,
			},
			clockAdapter,
		)
		defer changeEmitter.Close()
		notifier = changeEmitter

		go func() {
			if err := changeEmitter.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("emitter: %w", err)
			}
		}()
	}

	// Battle resolver
	resolverOpts := []battle.Option{battle.WithTrials(cfg.Battle.OddsTrials)}
	if cfg.Battle.Seed != 0 {
		resolverOpts = append(resolverOpts, battle.WithSimulationSource(battle.NewSource(cfg.Battle.Seed+1)))
	}
	resolver := battle.NewResolver(battle.NewSource(cfg.Battle.Seed), resolverOpts...)

	exec := executor.NewExecutor(dataStore, resolver, notifier, clockAdapter)

	// Create and start server
	srv := server.New(server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		WriteRateLimit: middleware.RateLimitConfig{
			RequestsPerSecond: cfg.Server.WriteRateLimit,
			Burst:             cfg.Server.WriteBurst,
		},
	}, exec, hub)

	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case <-natsClosed:
		logger.WarnCtx(ctx, "NATS connection closed unexpectedly")
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("message", "API component failed"))
	}
	cancel()

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("message", "Server forced to shutdown"))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
