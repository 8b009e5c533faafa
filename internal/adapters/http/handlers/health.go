// Package handlers holds the gin handlers: the Telegram webhook, the quote
// read API and the /-/ operational endpoints.
package handlers

import (
	"log/slog"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/quotebot/internal/platform/logging"
	"github.com/jsamuelsen/quotebot/internal/ports"
)

// BuildInfo is set at link time through ldflags on cmd/service.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// HealthHandler serves /-/live, /-/ready, /-/build and /-/metrics.
type HealthHandler struct {
	registry  ports.HealthRegistry
	buildInfo BuildInfo
	metrics   http.Handler
	started   time.Time

	mu         sync.Mutex
	lastStatus ports.HealthStatus
}

// NewHealthHandler serves metrics from the default Prometheus registry.
func NewHealthHandler(registry ports.HealthRegistry, buildInfo BuildInfo) *HealthHandler {
	return &HealthHandler{
		registry:  registry,
		buildInfo: buildInfo,
		metrics:   promhttp.Handler(),
		started:   time.Now(),
	}
}

type livenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Liveness answers 200 while the process runs. It checks nothing.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, livenessResponse{
		Status:  "ok",
		Version: h.buildInfo.Version,
		Uptime:  time.Since(h.started).Truncate(time.Second).String(),
	})
}

type readinessResponse struct {
	Status  string                        `json:"status"`
	Cached  bool                          `json:"cached,omitempty"`
	Checks  map[string]*ports.CheckResult `json:"checks,omitempty"`
	Checked time.Time                     `json:"checkedAt"`
}

// Readiness answers 503 only when a required check (the quote store) fails.
// A degraded result, with redis or Telegram down, keeps the instance in
// rotation because quotes can still be stored and read.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())
	h.noteTransition(c, result)

	code := http.StatusOK
	if result.Status == ports.HealthStatusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, readinessResponse{
		Status:  string(result.Status),
		Cached:  result.Cached,
		Checks:  result.Checks,
		Checked: result.Timestamp,
	})
}

// noteTransition logs when readiness changes, since probes themselves are
// kept out of the access log.
func (h *HealthHandler) noteTransition(c *gin.Context, result *ports.HealthResult) {
	h.mu.Lock()
	prev := h.lastStatus
	h.lastStatus = result.Status
	h.mu.Unlock()

	if prev == "" || prev == result.Status {
		return
	}

	level := slog.LevelInfo
	if result.Status != ports.HealthStatusHealthy {
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("from", string(prev)),
		slog.String("to", string(result.Status)),
	}
	for name, check := range result.Checks {
		if check.Status != ports.HealthStatusHealthy {
			attrs = append(attrs, slog.String("failing."+name, check.Message))
		}
	}

	ctx := c.Request.Context()
	logging.FromContext(ctx).LogAttrs(ctx, level, "readiness changed", attrs...)
}

func (h *HealthHandler) BuildInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildInfo)
}

// RegisterHealthRoutes registers the /-/ group. Probes answer HEAD as well
// as GET.
func (h *HealthHandler) RegisterHealthRoutes(engine *gin.Engine) {
	rg := engine.Group("/-")
	for _, method := range []string{http.MethodGet, http.MethodHead} {
		rg.Handle(method, "/live", h.Liveness)
		rg.Handle(method, "/ready", h.Readiness)
	}
	rg.GET("/build", h.BuildInfoHandler)
	rg.GET("/metrics", gin.WrapH(h.metrics))
}
