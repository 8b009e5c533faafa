package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebot/internal/platform/logging"
)

// KeyOutcome is the gin.Context key under which a handler leaves a short
// result, such as the webhook's status token, for the access log.
const KeyOutcome = "outcome"

// Logging writes one access line per request: info for 2xx and 3xx, warn for
// 4xx, error for 5xx. Probes under /-/ and skipPaths are not logged. The
// query string is left out because list cursors are opaque.
func Logging(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skip[path] || strings.HasPrefix(path, "/-/") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.Int("bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
		}

		if outcome := c.GetString(KeyOutcome); outcome != "" {
			attrs = append(attrs, slog.String(KeyOutcome, outcome))
		}

		ctx := c.Request.Context()
		logging.FromContext(ctx).LogAttrs(ctx, levelFor(status), "request completed", attrs...)
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
