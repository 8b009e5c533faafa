//go:build integration

package integration

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quotebot/internal/adapters/clients"
	"github.com/jsamuelsen/quotebot/internal/adapters/clients/telegram"
	quotehttp "github.com/jsamuelsen/quotebot/internal/adapters/http"
	"github.com/jsamuelsen/quotebot/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotebot/internal/adapters/store/bolt"
	"github.com/jsamuelsen/quotebot/internal/app"
	"github.com/jsamuelsen/quotebot/internal/platform/config"
	"github.com/jsamuelsen/quotebot/internal/platform/telemetry"
	"github.com/jsamuelsen/quotebot/internal/ports"
)

const (
	testOwnerChatID = "4242"
	testBotToken    = "123456789:AAHdqTcvCH1vGWJxfSeofSAs0K5PALDsaw"
)

var fixedNow = time.Date(2024, 5, 7, 12, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

// sentMessage is one sendMessage call received by the fake Bot API.
type sentMessage struct {
	ChatID string
	Text   string
}

// fakeBotAPI records sendMessage calls. Failing makes every call answer 502.
type fakeBotAPI struct {
	server *httptest.Server

	mu      sync.Mutex
	sent    []sentMessage
	paths   []string
	failing bool
}

func newFakeBotAPI() *fakeBotAPI {
	f := &fakeBotAPI{}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))

	return f
}

func (f *fakeBotAPI) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.paths = append(f.paths, r.URL.Path)

	if f.failing {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":502,"description":"Bad Gateway"}`))

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if strings.HasSuffix(r.URL.Path, "/getMe") {
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"quotebot"}}`))
		return
	}

	var params map[string]string
	_ = json.NewDecoder(r.Body).Decode(&params)
	f.sent = append(f.sent, sentMessage{ChatID: params["chat_id"], Text: params["text"]})

	_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"}}}`))
}

func (f *fakeBotAPI) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]sentMessage(nil), f.sent...)
}

func (f *fakeBotAPI) setFailing(failing bool) {
	f.mu.Lock()
	f.failing = failing
	f.mu.Unlock()
}

func (f *fakeBotAPI) clearSent() {
	f.mu.Lock()
	f.sent = nil
	f.mu.Unlock()
}

func (f *fakeBotAPI) callPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.paths...)
}

func (f *fakeBotAPI) close() {
	f.server.Close()
}

// testApp is the service wired the way cmd/service wires it, over a temporary
// bolt file and the fake Bot API.
type testApp struct {
	server *httptest.Server
	store  *bolt.Store
	bot    *fakeBotAPI

	mu        sync.Mutex
	owner     string
	token     string
	configure bool
}

type appOption func(*testApp)

func withoutTelegramConfig() appOption {
	return func(a *testApp) { a.configure = false }
}

func newTestApp(dir string, opts ...appOption) (*testApp, error) {
	a := &testApp{owner: testOwnerChatID, token: testBotToken, configure: true, bot: newFakeBotAPI()}
	for _, opt := range opts {
		opt(a)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := func() time.Time { return fixedNow }

	store, err := bolt.Open(bolt.Config{Path: filepath.Join(dir, "quotes.db"), Timeout: time.Second, Logger: logger, Now: now})
	if err != nil {
		a.bot.close()
		return nil, err
	}
	a.store = store

	client, err := clients.New(&clients.Config{
		BaseURL:     a.bot.server.URL,
		ServiceName: telegram.ServiceName,
		Timeout:     2 * time.Second,
		Circuit:     config.CircuitBreakerConfig{MaxFailures: 100, Timeout: time.Second, HalfOpenLimit: 1},
		RedactPath:  telegram.RedactPath,
		Logger:      logger,
	})
	if err != nil {
		a.close()
		return nil, err
	}

	metrics, err := telemetry.NewCommandMetrics(prometheus.NewRegistry())
	if err != nil {
		a.close()
		return nil, err
	}

	token := ""
	if a.configure {
		token = a.token
	}

	sender := telegram.NewSender(telegram.SenderConfig{Client: client, Token: token, Metrics: metrics, Logger: logger})

	dispatcher := app.NewDispatcher(app.DispatcherConfig{
		Store:       store,
		Sender:      sender,
		OwnerChatID: a.owner,
		Now:         now,
		Logger:      logger,
	})

	registry := ports.NewHealthRegistry()
	_ = registry.Register(store)
	_ = registry.Register(sender)

	engine := gin.New()
	quotehttp.SetupRouter(engine, quotehttp.RouterConfig{
		ServiceName:   "quotebot-integration",
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "test", "")),
		WebhookHandler: handlers.NewWebhookHandler(handlers.WebhookConfig{
			Dispatcher: dispatcher,
			Configured: a.configured,
			Metrics:    metrics,
		}),
		QuoteHandler: handlers.NewQuoteHandler(app.NewQuoteService(app.QuoteServiceConfig{
			Store:  store,
			Now:    now,
			Logger: logger,
		})),
		Timeout: 5 * time.Second,
	})

	a.server = httptest.NewServer(engine)

	return a, nil
}

func (a *testApp) configured() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.configure
}

func (a *testApp) close() {
	if a.server != nil {
		a.server.Close()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
	a.bot.close()
}

// update renders a Telegram text message update.
func update(chatID, text string) string {
	b, _ := json.Marshal(map[string]any{
		"update_id": 1,
		"message": map[string]any{
			"message_id": 1,
			"date":       fixedNow.Unix(),
			"chat":       map[string]any{"id": json.Number(chatID), "type": "private"},
			"text":       text,
		},
	})

	return string(b)
}

// newTestAppT is newTestApp for plain Go tests.
func newTestAppT(t *testing.T, opts ...appOption) *testApp {
	t.Helper()

	a, err := newTestApp(t.TempDir(), opts...)
	if err != nil {
		t.Fatalf("starting app: %v", err)
	}
	t.Cleanup(a.close)

	return a
}
