package jetstream

import (
	"context"
	"fmt"
	"sync"

	natsjs "github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/logger"
	"github.com/feral-file/world-conquest/internal/messaging"
)

type publisher struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	streamName string
	json       adapter.JSON
	closeOnce  sync.Once
	closed     chan struct{}
}

// NewPublisher connects to NATS and makes sure the change stream exists
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	nc, js, err := natsJS.Connect(cfg.URL, connectOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	err = js.EnsureStream(ctx, natsjs.StreamConfig{
		Name:       cfg.StreamName,
		Subjects:   []string{allChangesSubject},
		Retention:  natsjs.LimitsPolicy,
		MaxAge:     cfg.MaxAge,
		Duplicates: cfg.DuplicateWindow,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc:         nc,
		js:         js,
		streamName: cfg.StreamName,
		json:       jsonAdapter,
		closed:     make(chan struct{}),
	}, nil
}

// PublishEvent publishes a change event to NATS JetStream
func (p *publisher) PublishEvent(ctx context.Context, event *domain.ChangeEvent) error {
	if !event.Valid() {
		return fmt.Errorf("invalid change event %s", event.ID)
	}

	logger.DebugCtx(ctx, "Publishing change event",
		zap.String("id", event.ID),
		zap.Int64("cursor", event.Cursor),
		zap.String("subject", event.Subject()))

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// The event id doubles as the message id so relay retries are dropped by the server
	_, err = p.js.Publish(ctx, event.Subject(), data, natsjs.WithMsgID(event.ID))
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Close closes the NATS connection
func (p *publisher) Close() {
	p.closeOnce.Do(func() {
		if p.nc != nil {
			p.nc.Close()
		}
		close(p.closed)
	})
}

func (p *publisher) CloseChan() <-chan struct{} {
	return p.closed
}
