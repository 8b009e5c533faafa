// Package middleware provides the gin middleware chain shared by the
// webhook and the read API.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quotebot/internal/platform/logging"
)

const (
	// HeaderRequestID carries the per-request ID.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID carries an ID shared by every request of one
	// business transaction, e.g. all pages of one quotectl list.
	HeaderCorrelationID = "X-Correlation-ID"

	// maxIDLength bounds caller-supplied IDs; longer ones are replaced.
	maxIDLength = 128
)

// idKey is both the gin.Context key and the context.Context key of an ID.
type idKey string

// trackedID describes one ID header propagated through a request.
type trackedID struct {
	header string
	key    idKey
	logAs  func(context.Context, string) context.Context
}

var (
	requestID     = trackedID{header: HeaderRequestID, key: "request_id", logAs: logging.WithRequestID}
	correlationID = trackedID{header: HeaderCorrelationID, key: "correlation_id", logAs: logging.WithCorrelationID}
)

// RequestID takes X-Request-ID from the caller or generates a UUID. Telegram
// never sends one, so every webhook delivery gets a fresh ID.
func RequestID() gin.HandlerFunc { return requestID.middleware() }

// CorrelationID does the same for X-Correlation-ID.
func CorrelationID() gin.HandlerFunc { return correlationID.middleware() }

func GetRequestID(c *gin.Context) string     { return c.GetString(string(requestID.key)) }
func GetCorrelationID(c *gin.Context) string { return c.GetString(string(correlationID.key)) }

// RequestIDFromContext returns the request ID, or "". Outbound clients
// forward it.
func RequestIDFromContext(ctx context.Context) string { return requestID.from(ctx) }

func CorrelationIDFromContext(ctx context.Context) string { return correlationID.from(ctx) }

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return requestID.into(ctx, id)
}

func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return correlationID.into(ctx, id)
}

func (t trackedID) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(t.header)
		if !validID(id) {
			id = uuid.NewString()
		}

		c.Set(string(t.key), id)
		c.Header(t.header, id)
		c.Request = c.Request.WithContext(t.logAs(t.into(c.Request.Context(), id), id))

		c.Next()
	}
}

func (t trackedID) from(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(t.key).(string)

	return id
}

func (t trackedID) into(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, t.key, id)
}

// validID accepts non-empty printable ASCII up to maxIDLength, so a caller
// cannot inject line breaks or control codes into log lines.
func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}

	return true
}
