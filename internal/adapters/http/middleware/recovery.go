package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotebot/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebot/internal/platform/logging"
)

// panicToken is the webhook's answer to a panic; it matches the "error"
// status token of a failed command.
const panicToken = "error"

// Recovery turns a panic into a 500 and logs it with its stack. The read API
// gets the JSON error envelope; every other route gets the plain "error"
// token the webhook uses. It must be first in the chain.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctx := c.Request.Context()
			tid := traceID(c)

			logging.FromContext(ctx).Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String(logging.KeyTraceID, tid),
			)

			c.Set(KeyOutcome, "panic")

			switch {
			case c.Writer.Written():
				c.Abort()
			case strings.HasPrefix(c.Request.URL.Path, "/api/"):
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred").WithTraceID(tid))
			default:
				c.Abort()
				c.String(http.StatusInternalServerError, panicToken)
			}
		}()

		c.Next()
	}
}

// traceID returns the active span's trace ID, or "".
func traceID(c *gin.Context) string {
	if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return ""
}
