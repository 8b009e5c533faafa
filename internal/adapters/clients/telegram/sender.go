// Package telegram sends bot replies through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jsamuelsen/quotebot/internal/adapters/clients"
	"github.com/jsamuelsen/quotebot/internal/domain"
)

// ServiceName names the Bot API in errors, logs and spans.
const ServiceName = "telegram"

const maxResponseBody = 1 << 20

// ReplyRecorder counts outbound replies.
type ReplyRecorder interface {
	RecordReply(ok bool)
}

// SenderConfig configures a Sender.
type SenderConfig struct {
	// Client must have its BaseURL pointed at the Bot API and RedactPath set
	// to RedactPath.
	Client *clients.Client

	Token   string
	Metrics ReplyRecorder
	Logger  *slog.Logger
}

// Sender implements ports.ReplySender with a single sendMessage call per
// reply. There are no retries: a failed reply is reported to the caller.
type Sender struct {
	client  *clients.Client
	token   string
	metrics ReplyRecorder
	logger  *slog.Logger
}

// NewSender creates a Sender. It panics without a client.
func NewSender(cfg SenderConfig) *Sender {
	if cfg.Client == nil {
		panic("telegram: Sender requires a client")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Sender{
		client:  cfg.Client,
		token:   cfg.Token,
		metrics: cfg.Metrics,
		logger:  logger.With(slog.String("component", "telegram.Sender")),
	}
}

// SendText posts text to chatID. An empty token makes it a no-op.
func (s *Sender) SendText(ctx context.Context, chatID int64, text string) error {
	if s.token == "" {
		s.logger.WarnContext(ctx, "reply skipped, bot token not configured", slog.Int64("chat_id", chatID))
		return nil
	}

	params, err := tgbotapi.NewMessage(chatID, text).Params()
	if err != nil {
		return fmt.Errorf("building sendMessage params: %w", err)
	}

	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encoding sendMessage params: %w", err)
	}

	_, err = s.call(ctx, "sendMessage", body)
	s.record(err == nil)

	return err
}

// Name implements ports.HealthChecker.
func (s *Sender) Name() string {
	return ServiceName
}

// Optional marks the Bot API as non-critical for readiness; webhooks still
// dispatch and store quotes while replies fail.
func (s *Sender) Optional() bool {
	return true
}

// Check calls getMe to verify the token and connectivity.
func (s *Sender) Check(ctx context.Context) error {
	if s.token == "" {
		return errors.New("bot token not configured")
	}

	result, err := s.call(ctx, "getMe", nil)
	if err != nil {
		return err
	}

	var me tgbotapi.User
	if err := json.Unmarshal(result, &me); err != nil {
		return fmt.Errorf("decoding getMe result: %w", err)
	}

	if !me.IsBot {
		return errors.New("getMe: token does not belong to a bot")
	}

	return nil
}

// call invokes a Bot API method and returns its result. A transport failure,
// a non-2xx status or ok=false is an error.
func (s *Sender) call(ctx context.Context, method string, body []byte) (json.RawMessage, error) {
	path := "/bot" + s.token + "/" + method

	var (
		resp *http.Response
		err  error
	)
	if body == nil {
		resp, err = s.client.Get(ctx, path)
	} else {
		resp, err = s.client.Post(ctx, path, bytes.NewReader(body))
	}

	if err != nil {
		return nil, domain.NewUnavailableError(ServiceName, fmt.Sprintf("%s: %v", method, err))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", method, err)
	}

	var apiResp tgbotapi.APIResponse
	decodeErr := json.Unmarshal(raw, &apiResp)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		s.logger.WarnContext(ctx, "telegram call rejected",
			slog.String("method", method),
			slog.Int("status", resp.StatusCode),
			slog.String("description", apiResp.Description),
		)

		return nil, fmt.Errorf("failed sending Telegram message (%d)", resp.StatusCode)
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("decoding %s response: %w", method, decodeErr)
	}

	if !apiResp.Ok {
		return nil, fmt.Errorf("telegram %s: %s (%d)", method, apiResp.Description, apiResp.ErrorCode)
	}

	return apiResp.Result, nil
}

func (s *Sender) record(ok bool) {
	if s.metrics != nil {
		s.metrics.RecordReply(ok)
	}
}

// RedactPath hides the bot token in /bot<token>/<method> paths.
func RedactPath(path string) string {
	rest, ok := strings.CutPrefix(path, "/bot")
	if !ok {
		return path
	}

	_, method, found := strings.Cut(rest, "/")
	if !found {
		return "/bot<redacted>"
	}

	return "/bot<redacted>/" + method
}
