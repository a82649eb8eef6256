package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/feral-file/world-conquest/internal/adapter"
	apierrors "github.com/feral-file/world-conquest/internal/api/shared/errors"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/logger"
	"github.com/feral-file/world-conquest/internal/messaging"
)

// ErrHubClosed is returned when publishing to a closed hub
var ErrHubClosed = errors.New("feed hub closed")

// Config holds the websocket feed configuration
type Config struct {
	// SendBuffer is the number of events queued per client before it is dropped
	SendBuffer   int
	WriteTimeout time.Duration
	PingInterval time.Duration
	// AllowedOrigins restricts browser origins. Empty allows any origin.
	AllowedOrigins []string
}

// Hub broadcasts change events to websocket clients
type Hub interface {
	messaging.Publisher
	// ServeWS upgrades the request and streams change events until the client leaves.
	// GET /api/v1/feed?tables=<table1>,<table2>
	ServeWS(c *gin.Context)
	// Clients returns the number of connected clients
	Clients() int
}

type client struct {
	id     string
	tables map[domain.Table]bool
	send   chan []byte

	once      sync.Once
	done      chan struct{}
	closeCode int
	closeText string
}

func (cl *client) wants(table domain.Table) bool {
	return len(cl.tables) == 0 || cl.tables[table]
}

func (cl *client) stop(code int, text string) {
	cl.once.Do(func() {
		cl.closeCode = code
		cl.closeText = text
		close(cl.done)
	})
}

type hub struct {
	config   Config
	json     adapter.JSON
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client

	closeOnce sync.Once
	closed    chan struct{}
}

// NewHub creates a websocket feed hub
func NewHub(cfg Config, jsonAdapter adapter.JSON) Hub {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 256
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 30 * time.Second
	}

	h := &hub{
		config:  cfg,
		json:    jsonAdapter,
		clients: make(map[string]*client),
		closed:  make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 16 * 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *hub) checkOrigin(r *http.Request) bool {
	if len(h.config.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(h.config.AllowedOrigins, r.Header.Get("Origin"))
}

// ParseTables parses a comma separated table filter
func ParseTables(raw string) ([]domain.Table, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var tables []domain.Table
	for _, part := range strings.Split(raw, ",") {
		t := domain.Table(strings.TrimSpace(part))
		if !domain.IsValidTable(t) {
			return nil, fmt.Errorf("unknown table %q", t)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (h *hub) ServeWS(c *gin.Context) {
	tables, err := ParseTables(c.Query("tables"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError("Invalid tables filter", err.Error()))
		return
	}

	select {
	case <-h.closed:
		c.JSON(http.StatusServiceUnavailable, apierrors.NewUnavailableError("Feed is shutting down"))
		return
	default:
	}

	cl := &client{
		id:     uuid.NewString(),
		tables: make(map[domain.Table]bool, len(tables)),
		send:   make(chan []byte, h.config.SendBuffer),
		done:   make(chan struct{}),
	}
	for _, t := range tables {
		cl.tables[t] = true
	}

	// Registered before the handshake completes so events published once the client sees
	// the upgrade are queued for it
	h.add(cl)
	defer h.remove(cl)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already written the HTTP error
		logger.WarnCtx(c.Request.Context(), "Failed to upgrade feed connection", zap.Error(err))
		return
	}
	defer conn.Close()

	logger.InfoCtx(c.Request.Context(), "Feed client connected", zap.String("client", cl.id), zap.Any("tables", tables))

	go h.readPump(conn, cl)
	h.writePump(conn, cl)

	logger.InfoCtx(c.Request.Context(), "Feed client disconnected", zap.String("client", cl.id), zap.String("reason", cl.closeText))
}

// readPump discards client frames and detects disconnects
func (h *hub) readPump(conn *websocket.Conn, cl *client) {
	pongWait := 2 * h.config.PingInterval

	conn.SetReadLimit(1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			cl.stop(websocket.CloseNormalClosure, "client left")
			return
		}
	}
}

func (h *hub) writePump(conn *websocket.Conn, cl *client) {
	ticker := time.NewTicker(h.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-cl.send:
			_ = conn.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				cl.stop(websocket.CloseAbnormalClosure, "write failed")
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(h.config.WriteTimeout)); err != nil {
				cl.stop(websocket.CloseAbnormalClosure, "ping failed")
				return
			}
		case <-cl.done:
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(cl.closeCode, cl.closeText), time.Now().Add(time.Second))
			return
		}
	}
}

func (h *hub) add(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[cl.id] = cl
}

func (h *hub) remove(cl *client) {
	h.mu.Lock()
	delete(h.clients, cl.id)
	h.mu.Unlock()
	cl.stop(websocket.CloseNormalClosure, "bye")
}

func (h *hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// PublishEvent queues the event for every interested client without blocking.
// Clients whose queue is full are disconnected and reload on reconnect.
func (h *hub) PublishEvent(ctx context.Context, event *domain.ChangeEvent) error {
	select {
	case <-h.closed:
		return ErrHubClosed
	default:
	}

	data, err := h.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		if cl.wants(event.Table) {
			targets = append(targets, cl)
		}
	}
	h.mu.RUnlock()

	for _, cl := range targets {
		select {
		case cl.send <- data:
		default:
			logger.WarnCtx(ctx, "Dropping slow feed client", zap.String("client", cl.id), zap.Int64("cursor", event.Cursor))
			cl.stop(websocket.CloseTryAgainLater, "client too slow")
		}
	}

	return nil
}

// Close disconnects every client
func (h *hub) Close() {
	h.closeOnce.Do(func() {
		close(h.closed)

		h.mu.RLock()
		for _, cl := range h.clients {
			cl.stop(websocket.CloseGoingAway, "server shutting down")
		}
		h.mu.RUnlock()
	})
}

func (h *hub) CloseChan() <-chan struct{} {
	return h.closed
}
