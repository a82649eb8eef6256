package statesync

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/logger"
	"github.com/feral-file/world-conquest/internal/messaging"
)

// WebsocketConfig holds the websocket feed source configuration
type WebsocketConfig struct {
	// URL of the feed endpoint, e.g. ws://localhost:8080/api/v1/feed
	URL    string
	Tables []domain.Table
	// ReadTimeout closes a silent connection. Zero waits forever.
	ReadTimeout time.Duration
}

type websocketSource struct {
	config WebsocketConfig
	dialer adapter.WebsocketDialer
	json   adapter.JSON

	mu     sync.Mutex
	conn   adapter.WebsocketConn
	closed bool
}

// NewWebsocketSource creates a subscriber reading change events from the API's websocket feed.
// Events cannot be acknowledged, so handler failures are logged and skipped.
func NewWebsocketSource(cfg WebsocketConfig, dialer adapter.WebsocketDialer, json adapter.JSON) messaging.Subscriber {
	return &websocketSource{
		config: cfg,
		dialer: dialer,
		json:   json,
	}
}

func (w *websocketSource) feedURL() (string, error) {
	u, err := url.Parse(w.config.URL)
	if err != nil {
		return "", fmt.Errorf("invalid feed url: %w", err)
	}
	if len(w.config.Tables) > 0 {
		names := make([]string, len(w.config.Tables))
		for i, t := range w.config.Tables {
			names[i] = string(t)
		}
		q := u.Query()
		q.Set("tables", strings.Join(names, ","))
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (w *websocketSource) Subscribe(ctx context.Context, handler messaging.EventHandler, ready func()) error {
	feedURL, err := w.feedURL()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSubscriptionFailed, err)
	}

	conn, err := w.dialer.Dial(ctx, feedURL)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSubscriptionFailed, err)
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		_ = conn.Close()
		return fmt.Errorf("%w: source closed", domain.ErrSubscriptionFailed)
	}
	w.conn = conn
	w.mu.Unlock()

	logger.InfoCtx(ctx, "Connected to change feed", zap.String("url", feedURL))
	// The hub registers a client before completing the upgrade
	if ready != nil {
		ready()
	}

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer func() {
		if stop() {
			_ = conn.Close()
		}
		w.mu.Lock()
		w.conn = nil
		w.mu.Unlock()
	}()

	for {
		if w.config.ReadTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(w.config.ReadTimeout))
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %v", domain.ErrSubscriptionFailed, err)
		}

		var event domain.ChangeEvent
		if err := w.json.Unmarshal(data, &event); err != nil {
			logger.WarnCtx(ctx, "Skipping undecodable change event", zap.Error(err))
			continue
		}
		if !event.Valid() {
			logger.WarnCtx(ctx, "Skipping invalid change event", zap.String("event", event.ID))
			continue
		}

		if err := handler(event); err != nil {
			logger.WarnCtx(ctx, "Failed to handle change event",
				zap.String("event", event.ID),
				zap.Int64("cursor", event.Cursor),
				zap.Error(err))
		}
	}
}

func (w *websocketSource) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	if w.conn != nil {
		_ = w.conn.Close()
	}
}
