package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebot/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotebot/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotebot/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds the webhook and read API when RouterConfig
// leaves Timeout unset.
const DefaultRequestTimeout = 20 * time.Second

// RouterConfig contains the handlers and settings for SetupRouter.
// A nil handler leaves its routes unregistered.
type RouterConfig struct {
	// ServiceName names the server spans.
	ServiceName string

	HealthHandler  *handlers.HealthHandler
	WebhookHandler *handlers.WebhookHandler
	QuoteHandler   *handlers.QuoteHandler

	// Timeout is the deadline placed on webhook and API requests. Zero
	// means DefaultRequestTimeout; negative disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips /-/ endpoints)
//  6. Timeout - request deadline on /telegram and /api/v1
//
// Route groups:
//   - /-/: probes, build info and Prometheus metrics
//   - /telegram/webhook: the bot webhook
//   - /api/v1/quotes: the read API
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging(),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutes(engine)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}

	if cfg.WebhookHandler != nil {
		webhook := engine.Group("")
		webhook.Use(middleware.Timeout(timeout))
		cfg.WebhookHandler.RegisterWebhookRoutes(webhook)
	}

	if cfg.QuoteHandler != nil {
		apiV1 := engine.Group("/api/v1")
		apiV1.Use(middleware.Timeout(timeout))
		cfg.QuoteHandler.RegisterQuoteRoutes(apiV1)
	}
}
