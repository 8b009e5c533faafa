package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebot/internal/platform/logging"
)

// Timeout places a deadline on the request context and never writes a
// response: handlers see the cancelled context and answer in their own
// format. A request that outlives its deadline is logged so slow store or
// Telegram calls show up even when the handler swallowed the error.
// A non-positive timeout disables the middleware.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logging.FromContext(ctx).Warn("request deadline exceeded",
				slog.String("route", c.FullPath()),
				slog.Duration("timeout", timeout),
			)
		}
	}
}
