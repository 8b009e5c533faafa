package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebot/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebot/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// captureLogs routes the context logger of every request to a buffer.
func captureLogs(buf *bytes.Buffer) gin.HandlerFunc {
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Next()
	}
}

// lastEntry decodes the final JSON line in buf.
func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines[len(lines)-1], "no log output")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))

	return entry
}

func TestTrackedIDs(t *testing.T) {
	ids := map[string]struct {
		middleware gin.HandlerFunc
		header     string
		fromGin    func(*gin.Context) string
		fromCtx    func(context.Context) string
	}{
		"request":     {RequestID(), HeaderRequestID, GetRequestID, RequestIDFromContext},
		"correlation": {CorrelationID(), HeaderCorrelationID, GetCorrelationID, CorrelationIDFromContext},
	}

	incoming := []struct {
		name      string
		value     string
		preserved bool
	}{
		{name: "absent", value: ""},
		{name: "upstream", value: "quotectl-list-42", preserved: true},
		{name: "with newline", value: "abc\ninjected=1"},
		{name: "with space", value: "two words"},
		{name: "too long", value: strings.Repeat("x", maxIDLength+1)},
	}

	for idName, id := range ids {
		for _, in := range incoming {
			t.Run(idName+"/"+in.name, func(t *testing.T) {
				var fromGin, fromCtx string

				router := gin.New()
				router.Use(id.middleware)
				router.GET("/api/v1/quotes/today", func(c *gin.Context) {
					fromGin = id.fromGin(c)
					fromCtx = id.fromCtx(c.Request.Context())
					c.Status(http.StatusOK)
				})

				req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/today", http.NoBody)
				if in.value != "" {
					req.Header.Set(id.header, in.value)
				}

				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				require.NotEmpty(t, fromGin)
				assert.Equal(t, fromGin, fromCtx)
				assert.Equal(t, fromGin, w.Header().Get(id.header))

				if in.preserved {
					assert.Equal(t, in.value, fromGin)
				} else {
					assert.NotEqual(t, in.value, fromGin)
					assert.True(t, validID(fromGin))
				}
			})
		}
	}
}

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFromContext(ctx))
	assert.Empty(t, CorrelationIDFromContext(ctx))

	ctx = ContextWithRequestID(ctx, "request-123")
	ctx = ContextWithCorrelationID(ctx, "correlation-456")

	assert.Equal(t, "request-123", RequestIDFromContext(ctx))
	assert.Equal(t, "correlation-456", CorrelationIDFromContext(ctx))
}

func TestRequestID_EnrichesLogger(t *testing.T) {
	var buf bytes.Buffer

	router := gin.New()
	router.Use(captureLogs(&buf), RequestID(), CorrelationID())
	router.POST("/telegram/webhook", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info("handled")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", http.NoBody)
	req.Header.Set(HeaderRequestID, "req-42")
	req.Header.Set(HeaderCorrelationID, "corr-7")
	router.ServeHTTP(httptest.NewRecorder(), req)

	entry := lastEntry(t, &buf)
	assert.Equal(t, "req-42", entry[logging.KeyRequestID])
	assert.Equal(t, "corr-7", entry[logging.KeyCorrelationID])
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		status    int
		outcome   string
		skip      []string
		wantLevel string
	}{
		{name: "ok", path: "/api/v1/quotes/today", status: http.StatusOK, wantLevel: "INFO"},
		{name: "not found", path: "/api/v1/quotes/2024-05-08", status: http.StatusNotFound, wantLevel: "WARN"},
		{name: "stranger", path: "/telegram/webhook", status: http.StatusForbidden, outcome: "forbidden", wantLevel: "WARN"},
		{name: "command failed", path: "/telegram/webhook", status: http.StatusInternalServerError, outcome: "error", wantLevel: "ERROR"},
		{name: "probe skipped", path: "/-/live", status: http.StatusOK},
		{name: "explicit skip", path: "/favicon.ico", status: http.StatusOK, skip: []string{"/favicon.ico"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			router := gin.New()
			router.Use(captureLogs(&buf), Logging(tt.skip...))
			router.GET(tt.path, func(c *gin.Context) {
				if tt.outcome != "" {
					c.Set(KeyOutcome, tt.outcome)
				}
				c.Status(tt.status)
			})

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path+"?cursor=abc", http.NoBody))

			if tt.wantLevel == "" {
				assert.Empty(t, buf.String())
				return
			}

			entry := lastEntry(t, &buf)
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "request completed", entry["msg"])
			assert.Equal(t, tt.path, entry["path"])
			assert.InDelta(t, float64(tt.status), entry["status"], 0)

			if tt.outcome != "" {
				assert.Equal(t, tt.outcome, entry[KeyOutcome])
			} else {
				assert.NotContains(t, entry, KeyOutcome)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer

	router := gin.New()
	router.Use(Recovery(), captureLogs(&buf))
	router.GET("/api/v1/quotes/today", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/v1/quotes/:date", func(*gin.Context) { panic("boom") })
	router.POST("/telegram/webhook", func(*gin.Context) { panic("boom") })

	t.Run("no panic", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/quotes/today", http.NoBody))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("read api gets envelope", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/quotes/2024-05-07", http.NoBody))

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
	})

	t.Run("webhook gets token", func(t *testing.T) {
		buf.Reset()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/telegram/webhook", http.NoBody))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, panicToken, w.Body.String())

		entry := lastEntry(t, &buf)
		assert.Equal(t, "panic recovered", entry["msg"])
		assert.Equal(t, "boom", entry["error"])
		assert.Contains(t, entry["stack"], "runtime/debug.Stack")
	})
}

func TestTimeout(t *testing.T) {
	t.Run("sets deadline", func(t *testing.T) {
		var deadline time.Time
		var ok bool

		router := gin.New()
		router.Use(Timeout(5 * time.Second))
		router.GET("/api/v1/quotes/today", func(c *gin.Context) {
			deadline, ok = c.Request.Context().Deadline()
			c.Status(http.StatusOK)
		})

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/quotes/today", http.NoBody))

		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
	})

	for _, d := range []time.Duration{0, -1} {
		t.Run("disabled "+d.String(), func(t *testing.T) {
			var ok bool

			router := gin.New()
			router.Use(Timeout(d))
			router.GET("/api/v1/quotes/today", func(c *gin.Context) {
				_, ok = c.Request.Context().Deadline()
				c.Status(http.StatusOK)
			})

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/quotes/today", http.NoBody))

			assert.False(t, ok)
		})
	}

	t.Run("overrun is logged, response left to handler", func(t *testing.T) {
		var buf bytes.Buffer

		router := gin.New()
		router.Use(captureLogs(&buf), Timeout(10*time.Millisecond))
		router.POST("/telegram/webhook", func(c *gin.Context) {
			<-c.Request.Context().Done()
			c.String(http.StatusInternalServerError, "error")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/telegram/webhook", http.NoBody))

		assert.Equal(t, "error", w.Body.String())

		entry := lastEntry(t, &buf)
		assert.Equal(t, "request deadline exceeded", entry["msg"])
		assert.Equal(t, "/telegram/webhook", entry["route"])
	})
}
