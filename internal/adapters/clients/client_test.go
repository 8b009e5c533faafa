package clients

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebot/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotebot/internal/platform/config"
	"github.com/jsamuelsen/quotebot/internal/platform/logging"
)

// downstream is a test server that counts hits.
type downstream struct {
	*httptest.Server
	hits atomic.Int32
}

// newDownstream starts a server running handler and a client aimed at it.
// tweak, when set, edits the client config before New.
func newDownstream(t *testing.T, handler http.HandlerFunc, tweak func(*Config)) (*downstream, *Client) {
	t.Helper()

	d := &downstream{}
	d.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(d.Close)

	cfg := &Config{
		ServiceName: "telegram",
		BaseURL:     d.URL,
		Timeout:     5 * time.Second,
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Second,
			HalfOpenLimit: 2,
		},
	}
	if tweak != nil {
		tweak(cfg)
	}

	client, err := New(cfg)
	require.NoError(t, err)

	return d, client
}

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(code) }
}

// drain performs n GETs and closes their bodies.
func drain(t *testing.T, client *Client, n int) {
	t.Helper()

	for range n {
		resp, err := client.Get(context.Background(), "/bot1:x/getMe")
		require.NoError(t, err)
		_ = resp.Body.Close()
	}
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.ErrorContains(t, err, "config is required")

	_, err = New(&Config{})
	assert.ErrorContains(t, err, "service name is required")

	client, err := New(&Config{ServiceName: "quote-api", BaseURL: "http://localhost:8080/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.Equal(t, StateClosed, client.CircuitState())
	assert.Equal(t, defaultTimeout, client.http.Timeout)
}

func TestNewTransport(t *testing.T) {
	tr := newTransport(config.TransportConfig{})
	assert.Equal(t, defaultMaxIdleConns, tr.MaxIdleConns)
	assert.Equal(t, defaultMaxIdleConnsPerHost, tr.MaxIdleConnsPerHost)
	assert.Equal(t, defaultIdleConnTimeout, tr.IdleConnTimeout)

	tr = newTransport(config.TransportConfig{MaxIdleConns: 7, MaxIdleConnsPerHost: 3, IdleConnTimeout: time.Second})
	assert.Equal(t, 7, tr.MaxIdleConns)
	assert.Equal(t, 3, tr.MaxIdleConnsPerHost)
	assert.Equal(t, time.Second, tr.IdleConnTimeout)
}

func TestClient_ForwardsRequestIDs(t *testing.T) {
	var gotRequest, gotCorrelation string

	_, client := newDownstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotRequest = r.Header.Get(middleware.HeaderRequestID)
		gotCorrelation = r.Header.Get(middleware.HeaderCorrelationID)
	}, nil)

	ctx := middleware.ContextWithRequestID(context.Background(), "req-123")
	ctx = middleware.ContextWithCorrelationID(ctx, "corr-456")

	resp, err := client.Get(ctx, "/api/v1/quotes/today")
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "req-123", gotRequest)
	assert.Equal(t, "corr-456", gotCorrelation)
}

// Each status is attempted once; only 5xx count toward opening the circuit.
func TestClient_StatusesAndCircuit(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantState State
	}{
		{name: "ok", status: http.StatusOK, wantState: StateClosed},
		{name: "bad request", status: http.StatusBadRequest, wantState: StateClosed},
		{name: "rate limited", status: http.StatusTooManyRequests, wantState: StateClosed},
		{name: "bad gateway", status: http.StatusBadGateway, wantState: StateOpen},
		{name: "unavailable", status: http.StatusServiceUnavailable, wantState: StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, client := newDownstream(t, status(tt.status), func(c *Config) { c.Circuit.MaxFailures = 2 })

			drain(t, client, 2)

			assert.Equal(t, int32(2), d.hits.Load(), "one attempt per call")
			assert.Equal(t, tt.wantState, client.CircuitState())
		})
	}
}

func TestClient_OpenCircuitShortCircuits(t *testing.T) {
	d, client := newDownstream(t, status(http.StatusServiceUnavailable), func(c *Config) { c.Circuit.MaxFailures = 2 })

	drain(t, client, 2)
	require.Equal(t, StateOpen, client.CircuitState())

	_, err := client.Get(context.Background(), "/bot1:x/getMe")
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), d.hits.Load(), "an open circuit sends nothing")
}

func TestClient_SlowDownstream(t *testing.T) {
	slow := func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
	}

	t.Run("client timeout counts as failure", func(t *testing.T) {
		_, client := newDownstream(t, slow, func(c *Config) {
			c.Timeout = 50 * time.Millisecond
			c.Circuit.MaxFailures = 1
		})

		_, err := client.Get(context.Background(), "/api/v1/quotes/today")
		require.ErrorIs(t, err, ErrRequestFailed)
		assert.Equal(t, StateOpen, client.CircuitState())
	})

	t.Run("caller deadline counts as failure", func(t *testing.T) {
		_, client := newDownstream(t, slow, func(c *Config) { c.Circuit.MaxFailures = 1 })

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := client.Get(ctx, "/api/v1/quotes/today")
		require.ErrorIs(t, err, ErrRequestFailed)
		assert.Equal(t, StateOpen, client.CircuitState())
	})
}

func TestClient_CancelledCallerDoesNotTripCircuit(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	_, client := newDownstream(t, func(http.ResponseWriter, *http.Request) {
		started <- struct{}{}
		<-release
	}, func(c *Config) { c.Circuit.MaxFailures = 1 })

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.Get(ctx, "/api/v1/quotes/today")
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, StateClosed, client.CircuitState())
}

func TestClient_PostSendsJSON(t *testing.T) {
	var gotBody, gotType string

	_, client := newDownstream(t, func(_ http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
	}, nil)

	resp, err := client.Post(context.Background(), "/bot1:x/sendMessage", strings.NewReader(`{"chat_id":42,"text":"hi"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "application/json", gotType)
	assert.JSONEq(t, `{"chat_id":42,"text":"hi"}`, gotBody)
}

func TestClient_RedactPathKeepsTokenOutOfLogs(t *testing.T) {
	var logs bytes.Buffer
	ctx := logging.WithContext(context.Background(),
		slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))

	client, err := New(&Config{
		ServiceName: "telegram",
		BaseURL:     "http://127.0.0.1:1",
		Timeout:     200 * time.Millisecond,
		RedactPath:  func(p string) string { return strings.ReplaceAll(p, "SECRET", "<token>") },
	})
	require.NoError(t, err)

	_, err = client.Post(ctx, "/botSECRET/sendMessage", strings.NewReader(`{}`))
	require.Error(t, err)

	assert.NotContains(t, err.Error(), "SECRET")
	assert.NotContains(t, logs.String(), "SECRET")
	assert.Contains(t, logs.String(), "sendMessage")
}

func TestClient_BuildURL(t *testing.T) {
	client, err := New(&Config{ServiceName: "quote-api", BaseURL: "http://localhost:8080"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/v1/quotes/today", client.buildURL("/api/v1/quotes/today"))
	assert.Equal(t, "http://localhost:8080/api/v1/quotes/today", client.buildURL("api/v1/quotes/today"))
}

func TestClient_CustomHTTPClient(t *testing.T) {
	d, _ := newDownstream(t, status(http.StatusNoContent), nil)

	custom, err := New(&Config{ServiceName: "quote-api", BaseURL: d.URL, HTTPClient: d.Client()})
	require.NoError(t, err)
	assert.Same(t, d.Client(), custom.http)

	resp, err := custom.Get(context.Background(), "/")
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, int32(1), d.hits.Load())
}

func TestTransportError(t *testing.T) {
	err := &url.Error{Op: "Post", URL: "http://host/botSECRET/sendMessage", Err: errors.New("connection refused")}

	assert.Equal(t, "connection refused", transportError(err))
	assert.Equal(t, "plain", transportError(errors.New("plain")))
}
