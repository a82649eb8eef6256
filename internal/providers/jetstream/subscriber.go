package jetstream

import (
	"context"
	"fmt"

	natsjs "github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/logger"
	"github.com/feral-file/world-conquest/internal/messaging"
)

const messageBufferSize = 100

type subscriber struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	json   adapter.JSON
	config Config
}

// NewSubscriber connects to NATS for consuming change events
func NewSubscriber(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Subscriber, error) {
	nc, js, err := natsJS.Connect(cfg.URL, connectOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &subscriber{
		nc:     nc,
		js:     js,
		json:   jsonAdapter,
		config: cfg,
	}, nil
}

// durable reports whether messages need explicit acknowledgement
func (s *subscriber) durable() bool {
	return s.config.ConsumerName != ""
}

func (s *subscriber) consumer(ctx context.Context) (adapter.Consumer, error) {
	subjects := filterSubjects(s.config.Tables)

	if !s.durable() {
		return s.js.OrderedConsumer(ctx, s.config.StreamName, natsjs.OrderedConsumerConfig{
			FilterSubjects: subjects,
			DeliverPolicy:  natsjs.DeliverNewPolicy,
		})
	}

	return s.js.CreateOrUpdateConsumer(ctx, s.config.StreamName, natsjs.ConsumerConfig{
		Durable:        s.config.ConsumerName,
		AckPolicy:      natsjs.AckExplicitPolicy,
		AckWait:        s.config.AckWait,
		MaxDeliver:     s.config.MaxDeliver,
		MaxAckPending:  1,
		FilterSubjects: subjects,
	})
}

// Subscribe consumes change events and hands them to handler one by one
func (s *subscriber) Subscribe(ctx context.Context, handler messaging.EventHandler, ready func()) error {
	logger.InfoCtx(ctx, "Subscribing to change events",
		zap.String("stream", s.config.StreamName),
		zap.String("consumer", s.config.ConsumerName))

	consumer, err := s.consumer(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to create consumer: %w", domain.ErrSubscriptionFailed, err)
	}

	msgChan := make(chan adapter.Message, messageBufferSize)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		select {
		case msgChan <- msg:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("%w: failed to start consuming: %w", domain.ErrSubscriptionFailed, err)
	}
	defer sub.Stop()

	logger.InfoCtx(ctx, "Started consuming change events")
	if ready != nil {
		ready()
	}

	// Handled inline so events reach the handler in stream order
	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Stopping change event subscription")
			return ctx.Err()
		case <-sub.Closed():
			return fmt.Errorf("%w: consumer closed", domain.ErrSubscriptionFailed)
		case msg := <-msgChan:
			s.handleMessage(ctx, msg, handler)
		}
	}
}

// handleMessage processes a single NATS message
func (s *subscriber) handleMessage(ctx context.Context, msg adapter.Message, handler messaging.EventHandler) {
	var event domain.ChangeEvent
	if err := s.json.Unmarshal(msg.Data(), &event); err != nil || !event.Valid() {
		if err == nil {
			err = fmt.Errorf("malformed change event on %s", msg.Subject())
		}
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to decode change event"))
		// Terminate message for unparseable data
		if s.durable() {
			if err := msg.Term(); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
			}
		}
		return
	}

	logger.DebugCtx(ctx, "Received change event",
		zap.String("id", event.ID),
		zap.Int64("cursor", event.Cursor),
		zap.String("subject", msg.Subject()))

	if err := handler(event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to handle change event"), zap.String("id", event.ID))
		if s.durable() {
			if err := msg.Nak(); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("message", "Failed to nak message"))
			}
		}
		return
	}

	if s.durable() {
		if err := msg.Ack(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to ack message"))
		}
	}
}

// Close drains the NATS connection
func (s *subscriber) Close() {
	if s.nc == nil {
		return
	}

	if err := s.nc.Drain(); err != nil {
		logger.Error(err, zap.String("message", "Failed to drain NATS connection"))
		s.nc.Close()
	}
}
