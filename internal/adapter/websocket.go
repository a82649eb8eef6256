package adapter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebsocketConn is the read side of a websocket connection
type WebsocketConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	SetReadDeadline(t time.Time) error
	Close() error
}

// WebsocketDialer opens websocket connections, mockable in tests
//
//go:generate mockgen -source=websocket.go -destination=../mocks/websocket.go -package=mocks -mock_names=WebsocketDialer=MockWebsocketDialer,WebsocketConn=MockWebsocketConn
type WebsocketDialer interface {
	Dial(ctx context.Context, url string) (WebsocketConn, error)
}

// RealWebsocketDialer implements WebsocketDialer with gorilla/websocket
type RealWebsocketDialer struct {
	dialer *websocket.Dialer
}

// NewWebsocketDialer creates a dialer with the given handshake timeout
func NewWebsocketDialer(handshakeTimeout time.Duration) WebsocketDialer {
	return &RealWebsocketDialer{
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		},
	}
}

func (d *RealWebsocketDialer) Dial(ctx context.Context, url string) (WebsocketConn, error) {
	conn, resp, err := d.dialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket handshake failed with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to dial websocket: %w", err)
	}
	return conn, nil
}
