package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jsamuelsen/quotebot/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotebot/internal/app"
	"github.com/jsamuelsen/quotebot/internal/platform/logging"
)

const (
	// MissingConfigBody is the response when the owner id or bot token is unset.
	MissingConfigBody = "Missing OWNER_TELEGRAM_CHAT_ID or TELEGRAM_BOT_TOKEN env vars"

	statusMisconfig = "misconfigured"
)

// Dispatcher executes one chat message.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg app.Message) (app.Outcome, error)
}

// CommandRecorder counts handled updates.
type CommandRecorder interface {
	RecordCommand(command, status string)
}

// WebhookHandler receives Telegram updates and answers with a plain-text
// status token.
type WebhookHandler struct {
	dispatcher Dispatcher
	configured func() bool
	metrics    CommandRecorder
}

// WebhookConfig holds the webhook handler's dependencies.
type WebhookConfig struct {
	Dispatcher Dispatcher

	// Configured reports whether the owner chat id and bot token are set.
	// It is evaluated on every request.
	Configured func() bool

	// Metrics is optional.
	Metrics CommandRecorder
}

// NewWebhookHandler creates a webhook handler. It panics without a dispatcher.
func NewWebhookHandler(cfg WebhookConfig) *WebhookHandler {
	if cfg.Dispatcher == nil {
		panic("handlers: webhook requires a dispatcher")
	}

	configured := cfg.Configured
	if configured == nil {
		configured = func() bool { return true }
	}

	return &WebhookHandler{
		dispatcher: cfg.Dispatcher,
		configured: configured,
		metrics:    cfg.Metrics,
	}
}

// HandleUpdate handles POST /telegram/webhook.
//
// Status codes: 500 when secrets are missing or the command failed, 403
// for a non-owner chat, 200 otherwise. An undecodable body is logged and
// answered "ignored" so Telegram does not redeliver it.
func (h *WebhookHandler) HandleUpdate(c *gin.Context) {
	ctx := c.Request.Context()

	if !h.configured() {
		logging.FromContext(ctx).Error("webhook called without telegram configuration")
		h.respond(c, http.StatusInternalServerError, app.CommandNone, statusMisconfig, MissingConfigBody)

		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(c.Request.Body).Decode(&update); err != nil {
		logging.FromContext(ctx).Warn("undecodable telegram update", slog.Any("error", err))
		ignored := string(app.StatusIgnored)
		h.respond(c, http.StatusOK, app.CommandNone, ignored, ignored)

		return
	}

	msg := toMessage(&update)
	if msg.Text != "" {
		ctx = logging.WithChatID(ctx, msg.ChatID)
	}

	outcome, _ := h.dispatcher.Dispatch(ctx, msg)
	status := string(outcome.Status)
	h.respond(c, statusCode(outcome.Status), outcome.Command, status, status)
}

// RegisterWebhookRoutes registers the webhook on rg.
func (h *WebhookHandler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/telegram/webhook", h.HandleUpdate)
}

// respond counts the update, hands the status to the access log and writes
// body as plain text.
func (h *WebhookHandler) respond(c *gin.Context, code int, command, status, body string) {
	if h.metrics != nil {
		h.metrics.RecordCommand(command, status)
	}

	c.Set(middleware.KeyOutcome, status)
	c.String(code, body)
}

// toMessage extracts the chat id and text. Updates without a message,
// such as edits and callbacks, yield an empty message and are ignored.
func toMessage(u *tgbotapi.Update) app.Message {
	if u.Message == nil || u.Message.Chat == nil {
		return app.Message{}
	}

	return app.Message{ChatID: u.Message.Chat.ID, Text: u.Message.Text}
}

func statusCode(s app.Status) int {
	switch s {
	case app.StatusForbidden:
		return http.StatusForbidden
	case app.StatusError:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
