package emitter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/logger"
	"github.com/feral-file/world-conquest/internal/messaging"
	"github.com/feral-file/world-conquest/internal/store"
)

// ErrPublisherClosed is returned by Run when the publisher shuts down underneath it
var ErrPublisherClosed = errors.New("publisher closed")

// Config holds the configuration for the change emitter
type Config struct {
	// FeedName keys the stored cursor, one per downstream feed
	FeedName string
	// BatchSize is the number of journal rows read per query
	BatchSize int
	// PollInterval bounds how long a committed change can wait without a Notify
	PollInterval time.Duration
	// StartCursor overrides the stored cursor when positive
	StartCursor int64
}

// Emitter defines the interface for the change emitter
//
//go:generate mockgen -source=emitter.go -destination=../mocks/emitter.go -package=mocks -mock_names=Emitter=MockEmitter
type Emitter interface {
	// Run relays the changes journal to the publisher until ctx is cancelled
	Run(ctx context.Context) error
	// Notify wakes the emitter after a commit. It never blocks.
	Notify()
	// Close closes the emitter and cleans up resources
	Close()
}

// emitter relays committed journal rows, in cursor order, to the publisher
type emitter struct {
	publisher messaging.Publisher
	store     store.Store
	config    Config
	clock     adapter.Clock
	wake      chan struct{}
}

// NewEmitter creates a new change emitter
func NewEmitter(
	pub messaging.Publisher,
	st store.Store,
	cfg Config,
	clock adapter.Clock,
) Emitter {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}

	return &emitter{
		publisher: pub,
		store:     st,
		config:    cfg,
		clock:     clock,
		wake:      make(chan struct{}, 1),
	}
}

func (e *emitter) Notify() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// startCursor determines where relaying resumes
func (e *emitter) startCursor(ctx context.Context) (int64, error) {
	if e.config.StartCursor > 0 {
		logger.InfoCtx(ctx, "Starting from configured cursor", zap.String("feed", e.config.FeedName), zap.Int64("cursor", e.config.StartCursor))
		return e.config.StartCursor, nil
	}

	cursor, found, err := e.store.GetFeedCursor(ctx, e.config.FeedName)
	if err != nil {
		return 0, fmt.Errorf("failed to get feed cursor: %w", err)
	}
	if found {
		logger.InfoCtx(ctx, "Resuming from last relayed cursor", zap.String("feed", e.config.FeedName), zap.Int64("cursor", cursor))
		return cursor, nil
	}

	// Clients load a fresh snapshot on connect, so history before the first start is not replayed
	latest, err := e.store.GetLatestChangeCursor(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest change cursor: %w", err)
	}
	logger.InfoCtx(ctx, "Starting from latest cursor", zap.String("feed", e.config.FeedName), zap.Int64("cursor", latest))
	return latest, nil
}

// Run starts the change emitter
func (e *emitter) Run(ctx context.Context) error {
	cursor, err := e.startCursor(ctx)
	if err != nil {
		return err
	}

	for {
		cursor, err = e.relay(ctx, cursor)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to relay changes"), zap.Int64("cursor", cursor))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.publisher.CloseChan():
			return ErrPublisherClosed
		case <-e.wake:
		case <-e.clock.After(e.config.PollInterval):
		}
	}
}

// relay publishes every journal row after cursor and returns the last relayed cursor.
// The store makes journal rows visible in cursor order, so no row can appear behind the cursor.
func (e *emitter) relay(ctx context.Context, cursor int64) (int64, error) {
	for {
		anchor := cursor
		rows, err := e.store.GetChanges(ctx, store.ChangesQueryFilter{
			Anchor: &anchor,
			Limit:  e.config.BatchSize,
		})
		if err != nil {
			return cursor, fmt.Errorf("failed to get changes after %d: %w", cursor, err)
		}
		if len(rows) == 0 {
			return cursor, nil
		}

		var publishErr error
		for _, row := range rows {
			event := row.ToEvent()
			if err := e.publisher.PublishEvent(ctx, &event); err != nil {
				publishErr = fmt.Errorf("failed to publish change %s: %w", event.ID, err)
				break
			}
			cursor = row.Cursor
		}

		if cursor > anchor {
			if err := e.store.SetFeedCursor(ctx, e.config.FeedName, cursor); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("message", "Failed to save feed cursor"), zap.Int64("cursor", cursor))
			}
		}

		if publishErr != nil {
			return cursor, publishErr
		}
		if len(rows) < e.config.BatchSize {
			return cursor, nil
		}
	}
}

// Close closes the emitter and cleans up resources
func (e *emitter) Close() {
	e.publisher.Close()
}
