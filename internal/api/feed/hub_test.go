package feed_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/api/feed"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/logger"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

func startHub(t *testing.T) (feed.Hub, *httptest.Server) {
	hub := feed.NewHub(feed.Config{
		SendBuffer:   16,
		WriteTimeout: time.Second,
		PingInterval: 10 * time.Second,
	}, adapter.NewJSON())

	router := gin.New()
	router.GET("/api/v1/feed", hub.ServeWS)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return hub, server
}

func dial(t *testing.T, server *httptest.Server, hub feed.Hub, query string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/feed" + query
	before := hub.Clients()

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return hub.Clients() == before+1 }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func event(table domain.Table, cursor int64) *domain.ChangeEvent {
	return &domain.ChangeEvent{
		ID:         "01JAB7Q4Z8K9W3T2M5N6P7R8S9",
		Cursor:     cursor,
		Table:      table,
		Type:       domain.ChangeTypeInsert,
		RecordID:   "record-1",
		Record:     json.RawMessage(`{"id":"record-1"}`),
		OccurredAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) domain.ChangeEvent {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got domain.ChangeEvent
	require.NoError(t, json.Unmarshal(data, &got))
	return got
}

func TestHub_BroadcastsEvents(t *testing.T) {
	hub, server := startHub(t)
	first := dial(t, server, hub, "")
	second := dial(t, server, hub, "")

	err := hub.PublishEvent(context.Background(), event(domain.TableTerritories, 7))
	require.NoError(t, err)

	for _, conn := range []*websocket.Conn{first, second} {
		got := readEvent(t, conn)
		assert.Equal(t, domain.TableTerritories, got.Table)
		assert.Equal(t, domain.ChangeTypeInsert, got.Type)
		assert.Equal(t, int64(7), got.Cursor)
		assert.JSONEq(t, `{"id":"record-1"}`, string(got.Record))
	}
}

func TestHub_PreservesOrder(t *testing.T) {
	hub, server := startHub(t)
	conn := dial(t, server, hub, "")

	for cursor := int64(1); cursor <= 5; cursor++ {
		require.NoError(t, hub.PublishEvent(context.Background(), event(domain.TableStamps, cursor)))
	}

	for cursor := int64(1); cursor <= 5; cursor++ {
		assert.Equal(t, cursor, readEvent(t, conn).Cursor)
	}
}

func TestHub_TableFilter(t *testing.T) {
	hub, server := startHub(t)
	conn := dial(t, server, hub, "?tables=battles,class_inventory")

	require.NoError(t, hub.PublishEvent(context.Background(), event(domain.TableTerritories, 1)))
	require.NoError(t, hub.PublishEvent(context.Background(), event(domain.TableBattles, 2)))

	got := readEvent(t, conn)
	assert.Equal(t, domain.TableBattles, got.Table)
	assert.Equal(t, int64(2), got.Cursor)
}

func TestHub_InvalidTableFilter(t *testing.T) {
	hub, server := startHub(t)

	resp, err := http.Get(server.URL + "/api/v1/feed?tables=armies")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, hub.Clients())
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub, server := startHub(t)
	conn := dial(t, server, hub, "")

	hub.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))

	err = hub.PublishEvent(context.Background(), event(domain.TableClasses, 1))
	assert.ErrorIs(t, err, feed.ErrHubClosed)

	select {
	case <-hub.CloseChan():
	default:
		t.Fatal("close channel should be closed")
	}
}

func TestHub_ClientLeaves(t *testing.T) {
	hub, server := startHub(t)
	conn := dial(t, server, hub, "")

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestParseTables(t *testing.T) {
	tables, err := feed.ParseTables(" territories , battles")
	require.NoError(t, err)
	assert.Equal(t, []domain.Table{domain.TableTerritories, domain.TableBattles}, tables)

	tables, err = feed.ParseTables("")
	require.NoError(t, err)
	assert.Nil(t, tables)

	_, err = feed.ParseTables("territories,armies")
	assert.Error(t, err)
}
