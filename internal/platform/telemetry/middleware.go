package telemetry

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotebot/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/quotebot/telemetry"

	// HeaderTraceID carries the request's trace id back to the caller.
	HeaderTraceID = "X-Trace-ID"

	// probePrefix is the operational surface: /-/live, /-/ready, /-/build, /-/metrics.
	probePrefix = "/-/"

	// unmatchedRoute labels requests no route matched, so arbitrary paths
	// cannot grow the metric label set.
	unmatchedRoute = "unmatched"
)

// serverMetrics holds the HTTP server instruments.
type serverMetrics struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

func newServerMetrics(meter metric.Meter) (*serverMetrics, error) {
	duration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	total, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	inFlight, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &serverMetrics{duration: duration, total: total, inFlight: inFlight}, nil
}

func isProbe(path string) bool {
	return strings.HasPrefix(path, probePrefix)
}

// route is the matched route template (/api/v1/quotes/:date), never the raw path.
func route(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}

	return unmatchedRoute
}

// Middleware echoes the trace id in X-Trace-ID and records request duration,
// count and in-flight gauge per route template. Probe routes are not
// measured. Pair it with TracingMiddleware, which must run first to open the span.
func Middleware() gin.HandlerFunc {
	m, err := newServerMetrics(otel.Meter(instrumentationName))
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		echoTraceID(c)

		if m == nil || isProbe(c.Request.URL.Path) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		start := time.Now()
		base := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route(c)),
		)

		m.inFlight.Add(ctx, 1, base)
		defer m.inFlight.Add(ctx, -1, base)

		c.Next()

		done := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route(c)),
			attribute.Int("http.status_code", c.Writer.Status()),
		)
		m.duration.Record(ctx, time.Since(start).Seconds(), done)
		m.total.Add(ctx, 1, done)
	}
}

// echoTraceID returns the trace id to the caller and adds it to the request logger.
func echoTraceID(c *gin.Context) {
	ctx := c.Request.Context()

	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.HasTraceID() {
		return
	}

	id := sc.TraceID().String()
	c.Header(HeaderTraceID, id)
	c.Request = c.Request.WithContext(logging.WithTraceID(ctx, id))
}

// TracingMiddleware opens a server span per request with otelgin. Kubernetes
// probes and Prometheus scrapes are not traced.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName,
		otelgin.WithFilter(func(r *http.Request) bool { return !isProbe(r.URL.Path) }),
	)
}
