package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/world-conquest/internal/api/middleware"
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

func newRouter(allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(allowedOrigins))
	router.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/panic", func(c *gin.Context) { panic("boom") })
	return router
}

func TestRequestID(t *testing.T) {
	router := newRouter(nil)

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, w.Header().Get(middleware.REQUEST_ID_HEADER), 36)
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(middleware.REQUEST_ID_HEADER, "req-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get(middleware.REQUEST_ID_HEADER))
	})
}

func TestRecovery(t *testing.T) {
	router := newRouter(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"internal_error"`)
}

func TestSetupCORS(t *testing.T) {
	router := newRouter([]string{"https://map.example.org"})

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("Origin", "https://map.example.org")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "https://map.example.org", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("Origin", "https://elsewhere.example.org")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RateLimit(middleware.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2}))
	router.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.POST("/ok", func(c *gin.Context) { c.String(http.StatusCreated, "created") })

	post := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/ok", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusCreated, post("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusCreated, post("10.0.0.1:5001").Code)

	w := post("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"rate_limited"`)

	// Limits are per client
	assert.Equal(t, http.StatusCreated, post("10.0.0.2:5000").Code)

	// Reads are not limited
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.RemoteAddr = "10.0.0.1:5003"
	r := httptest.NewRecorder()
	router.ServeHTTP(r, req)
	assert.Equal(t, http.StatusOK, r.Code)
}
