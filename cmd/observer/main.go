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

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/config"
	"github.com/feral-file/world-conquest/internal/logger"
	"github.com/feral-file/world-conquest/internal/messaging"
	"github.com/feral-file/world-conquest/internal/providers/jetstream"
	"github.com/feral-file/world-conquest/internal/statesync"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	interval   = flag.Duration("summary-interval", time.Minute, "How often to log a snapshot summary")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadObserverConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		Environment:     cfg.Environment,
		Service:         "observer",
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting World Conquest observer", zap.Int("period", int(cfg.Period)))

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(cfg.HTTPTimeout, jsonAdapter)

	tables, err := cfg.FeedTables()
	if err != nil {
		logger.Fatal("Invalid table filter", zap.Error(err))
	}

	// Change feed source
	var source messaging.Subscriber
	switch cfg.FeedSource {
	case config.FEED_SOURCE_NATS:
		source, err = jetstream.NewSubscriber(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			ConsumerName:   cfg.NATS.ConsumerName,
			AckWait:        cfg.NATS.AckWait,
			MaxDeliver:     cfg.NATS.MaxDeliver,
			Tables:         tables,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.Fatal("Failed to create NATS subscriber", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		logger.InfoCtx(ctx, "Connected to NATS JetStream", zap.String("stream", cfg.NATS.StreamName))
	default:
		source = statesync.NewWebsocketSource(statesync.WebsocketConfig{
			URL:         cfg.FeedURL,
			Tables:      tables,
			ReadTimeout: cfg.FeedReadTimeout,
		}, adapter.NewWebsocketDialer(cfg.HTTPTimeout), jsonAdapter)
	}
	defer source.Close()

	client := statesync.NewClient(statesync.Config{
		QueueSize:        cfg.Sync.QueueSize,
		FetchConcurrency: cfg.Sync.FetchConcurrency,
		WarningBuffer:    cfg.Sync.WarningBuffer,
	}, statesync.NewHTTPFetcher(cfg.APIURL, httpClient), jsonAdapter, clockAdapter)
	defer client.Close()

	errCh := make(chan error, 2)
	go func() {
		if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, statesync.ErrClientClosed) {
			errCh <- fmt.Errorf("apply loop: %w", err)
		}
	}()

	// Follow reloads once the feed is live; this first load only fails fast on a bad API
	scope := statesync.Scope{Period: cfg.Period}
	if err := client.Start(ctx, scope); err != nil {
		logger.Fatal("Failed to load snapshot", zap.Error(err))
	}
	logSummary(ctx, client.Snapshot())

	go func() {
		if err := client.Follow(ctx, source, scope); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("follow: %w", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case sig := <-sigCh:
			logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
			cancel()
			logger.Info("Observer stopped")
			return
		case err := <-errCh:
			logger.ErrorCtx(ctx, err, zap.String("message", "Observer component failed"))
			cancel()
			logger.Info("Observer stopped")
			return
		case w := <-client.Warnings():
			logger.WarnCtx(ctx, "Collection could not be refreshed",
				zap.String("collection", w.Collection),
				zap.Error(w.Err))
		case <-ticker.C:
			logSummary(ctx, client.Snapshot())
		}
	}
}

func logSummary(ctx context.Context, snap statesync.Snapshot) {
	owned := 0
	for _, t := range snap.Territories {
		if t.OwnedBy(snap.ActiveClassID) {
			owned++
		}
	}

	logger.InfoCtx(ctx, "Snapshot",
		zap.String("active_class", snap.ActiveClassID),
		zap.Int("students", len(snap.Students)),
		zap.Int("territories", len(snap.Territories)),
		zap.Int("owned_territories", owned),
		zap.Int("inventory", len(snap.Inventory)),
		zap.Int("battles", len(snap.Battles)),
		zap.Int64("cursor", snap.Cursor))
}
