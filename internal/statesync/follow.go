package statesync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/logger"
	"github.com/feral-file/world-conquest/internal/messaging"
)

const (
	RECONNECT_INITIAL_INTERVAL = time.Second
	RECONNECT_MAX_INTERVAL     = 30 * time.Second
	// A subscription that lasted this long resets the reconnect backoff
	STABLE_SUBSCRIPTION = time.Minute
)

// eventGate holds feed events back while the snapshot reloads
type eventGate struct {
	mu      sync.Mutex
	open    bool
	pending []domain.ChangeEvent
	apply   messaging.EventHandler
}

func (g *eventGate) handle(event domain.ChangeEvent) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.open {
		g.pending = append(g.pending, event)
		return nil
	}
	return g.apply(event)
}

// release merges the held events in delivery order and lets later events through
func (g *eventGate) release(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, event := range g.pending {
		err := g.apply(event)
		if domain.IsValidation(err) {
			logger.WarnCtx(ctx, "Dropping malformed change event", zap.String("event", event.ID), zap.Error(err))
			continue
		}
		if err != nil {
			return err
		}
	}
	g.pending = nil
	g.open = true
	return nil
}

func (c *client) Follow(ctx context.Context, sub messaging.Subscriber, scope Scope) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Closing the client ends the subscription
	go func() {
		select {
		case <-c.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = RECONNECT_INITIAL_INTERVAL
	b.MaxInterval = RECONNECT_MAX_INTERVAL
	b.MaxElapsedTime = 0
	b.Reset()

	for attempt := 0; ; attempt++ {
		started := c.clock.Now()
		err := c.followOnce(ctx, sub, scope)
		if ctx.Err() != nil {
			return c.followErr(ctx, ctx.Err())
		}
		if errors.Is(err, ErrClientClosed) {
			return c.followErr(ctx, err)
		}

		if c.clock.Since(started) >= STABLE_SUBSCRIPTION {
			b.Reset()
		}
		wait := b.NextBackOff()

		logger.WarnCtx(ctx, "Change feed disconnected, reconnecting",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait))

		select {
		case <-ctx.Done():
			return c.followErr(ctx, ctx.Err())
		case <-c.clock.After(wait):
		}
	}
}

// followOnce runs one subscription. Once it is live the scope is reloaded, so changes
// committed while disconnected are picked up and none falls between the load and the feed.
func (c *client) followOnce(ctx context.Context, sub messaging.Subscriber, scope Scope) error {
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	gate := &eventGate{
		apply: func(event domain.ChangeEvent) error {
			return c.Apply(ctx, event)
		},
	}

	ready := make(chan struct{})
	var readyOnce sync.Once
	done := make(chan error, 1)
	go func() {
		done <- sub.Subscribe(subCtx, gate.handle, func() {
			readyOnce.Do(func() { close(ready) })
		})
	}()

	select {
	case err := <-done:
		return err
	case <-ready:
	}

	err := c.Start(subCtx, scope)
	if err == nil {
		err = gate.release(ctx)
	}
	if err != nil {
		cancel()
		<-done
		return err
	}

	return <-done
}

// followErr turns a shutdown caused by Close into a clean return
func (c *client) followErr(ctx context.Context, err error) error {
	select {
	case <-c.done:
		logger.InfoCtx(ctx, "Stopped following change feed")
		return nil
	default:
	}
	if errors.Is(err, ErrClientClosed) {
		return nil
	}
	return err
}
