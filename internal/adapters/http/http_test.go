package http

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebot/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotebot/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotebot/internal/app"
	"github.com/jsamuelsen/quotebot/internal/mocks"
	"github.com/jsamuelsen/quotebot/internal/platform/config"
	"github.com/jsamuelsen/quotebot/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// deadlineDispatcher answers every message with a fixed outcome and keeps
// the context it saw.
type deadlineDispatcher struct {
	outcome app.Outcome
	ctx     context.Context
}

func (d *deadlineDispatcher) Dispatch(ctx context.Context, _ app.Message) (app.Outcome, error) {
	d.ctx = ctx
	return d.outcome, nil
}

type routerFixture struct {
	engine     *gin.Engine
	store      *mocks.MockQuoteStore
	dispatcher *deadlineDispatcher
}

func newRouterFixture(t *testing.T, timeout time.Duration) *routerFixture {
	t.Helper()

	store := mocks.NewMockQuoteStore(t)
	dispatcher := &deadlineDispatcher{
		outcome: app.Outcome{Command: "add", Status: app.StatusSaved},
	}

	svc := app.NewQuoteService(app.QuoteServiceConfig{
		Store:  store,
		Now:    func() time.Time { return time.Date(2024, 5, 7, 12, 0, 0, 0, time.UTC) },
		Logger: discardLogger(),
	})

	engine := gin.New()
	SetupRouter(engine, RouterConfig{
		ServiceName:   "quotebot-test",
		HealthHandler: handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.NewBuildInfo("1.2.3", "abc", "")),
		WebhookHandler: handlers.NewWebhookHandler(handlers.WebhookConfig{
			Dispatcher: dispatcher,
		}),
		QuoteHandler: handlers.NewQuoteHandler(svc),
		Timeout:      timeout,
	})

	return &routerFixture{engine: engine, store: store, dispatcher: dispatcher}
}

func (f *routerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	return w
}

func TestSetupRouter_Routes(t *testing.T) {
	f := newRouterFixture(t, 0)
	f.store.EXPECT().Get(mock.Anything, "2024-05-08").Return(nil, nil)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"liveness", http.MethodGet, "/-/live", "", http.StatusOK},
		{"readiness", http.MethodGet, "/-/ready", "", http.StatusOK},
		{"build info", http.MethodGet, "/-/build", "", http.StatusOK},
		{"metrics", http.MethodGet, "/-/metrics", "", http.StatusOK},
		{"webhook", http.MethodPost, "/telegram/webhook", `{"update_id":1}`, http.StatusOK},
		{"quote by date", http.MethodGet, "/api/v1/quotes/2024-05-08", "", http.StatusNotFound},
		{"malformed date", http.MethodGet, "/api/v1/quotes/tomorrow", "", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/v2/quotes", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			assert.Equal(t, tt.status, f.do(req).Code)
		})
	}
}

func TestSetupRouter_EchoesRequestID(t *testing.T) {
	f := newRouterFixture(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/-/live", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-42")

	w := f.do(req)

	assert.Equal(t, "req-42", w.Header().Get(middleware.HeaderRequestID))
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderCorrelationID))
}

func TestSetupRouter_WebhookCarriesDeadlineAndIDs(t *testing.T) {
	f := newRouterFixture(t, 5*time.Second)

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(`{"update_id":1}`))
	req.Header.Set(middleware.HeaderRequestID, "req-7")

	w := f.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(app.StatusSaved), w.Body.String())

	require.NotNil(t, f.dispatcher.ctx)
	deadline, ok := f.dispatcher.ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
	assert.Equal(t, "req-7", middleware.RequestIDFromContext(f.dispatcher.ctx))
}

func TestSetupRouter_NegativeTimeoutDisablesDeadline(t *testing.T) {
	f := newRouterFixture(t, -1)

	w := f.do(httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(`{}`)))
	require.Equal(t, http.StatusOK, w.Code)

	_, ok := f.dispatcher.ctx.Deadline()
	assert.False(t, ok)
}

func TestSetupRouter_NilHandlersSkipRoutes(t *testing.T) {
	engine := gin.New()
	SetupRouter(engine, RouterConfig{ServiceName: "quotebot-test"})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/live", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Port:            18080,
		Host:            "127.0.0.1",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
		RequestTimeout:  time.Second,
		MaxRequestSize:  16,
	}
}

func TestNew(t *testing.T) {
	srv := New(testServerConfig(), discardLogger())

	assert.Equal(t, "127.0.0.1:18080", srv.Addr())
	assert.NotNil(t, srv.Engine())
	assert.Equal(t, int64(16), srv.Config().MaxRequestSize)
}

func TestServer_MaxBodySize(t *testing.T) {
	srv := New(testServerConfig(), discardLogger())
	srv.Engine().POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too large")
			return
		}

		c.String(http.StatusOK, "ok")
	})

	small := httptest.NewRecorder()
	srv.Engine().ServeHTTP(small, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("tiny")))
	assert.Equal(t, http.StatusOK, small.Code)

	large := httptest.NewRecorder()
	srv.Engine().ServeHTTP(large, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 64))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, large.Code)
}

func TestServer_StartAndShutdown(t *testing.T) {
	cfg := testServerConfig()
	cfg.Port = 0

	srv := New(cfg, discardLogger())
	errCh, err := srv.Start()
	require.NoError(t, err)
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr(), "bound address replaces port 0")

	resp, err := http.Get("http://" + srv.Addr() + "/missing")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))

	for err := range errCh {
		assert.NoError(t, err)
	}
}

func TestServer_StartFailsWhenAddressInUse(t *testing.T) {
	cfg := testServerConfig()
	cfg.Port = 0

	first := New(cfg, discardLogger())
	_, err := first.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Shutdown(context.Background()) })

	_, port, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	cfg.Port, err = strconv.Atoi(port)
	require.NoError(t, err)

	_, err = New(cfg, discardLogger()).Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on")
}
