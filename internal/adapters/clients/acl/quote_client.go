package acl

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jsamuelsen/quotebot/internal/adapters/clients"
	"github.com/jsamuelsen/quotebot/internal/domain"
	"github.com/jsamuelsen/quotebot/internal/platform/logging"
)

// QuoteAPIServiceName names the read API in errors, logs and spans.
const QuoteAPIServiceName = "quote-api"

// QuoteClientConfig contains configuration for the quote client.
type QuoteClientConfig struct {
	// Client must have its BaseURL pointed at the quotebot service.
	Client *clients.Client

	Logger *slog.Logger
}

// QuoteClient reads daily quotes from the quotebot read API.
// It implements the CLI's QuoteAPI.
type QuoteClient struct {
	client *clients.Client
	logger *slog.Logger
}

// NewQuoteClient panics if Client is nil.
func NewQuoteClient(cfg QuoteClientConfig) *QuoteClient {
	if cfg.Client == nil {
		panic("QuoteClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteClient{
		client: cfg.Client,
		logger: logger.With(slog.String("service", QuoteAPIServiceName)),
	}
}

func (c *QuoteClient) ServiceName() string { return QuoteAPIServiceName }

// GetQuoteForDate fetches the quote scheduled for date.
// A date with nothing scheduled yields a domain.NotFoundError.
func (c *QuoteClient) GetQuoteForDate(ctx context.Context, date string) (*domain.DailyQuote, error) {
	return c.getQuote(ctx, "/api/v1/quotes/"+url.PathEscape(date), date)
}

// GetTodayQuote fetches the quote for the server's current date.
func (c *QuoteClient) GetTodayQuote(ctx context.Context) (*domain.DailyQuote, error) {
	return c.getQuote(ctx, "/api/v1/quotes/today", "today")
}

func (c *QuoteClient) getQuote(ctx context.Context, path, id string) (*domain.DailyQuote, error) {
	var wire quoteResponse
	if err := c.fetch(ctx, path, call{name: "get quote", entity: "quote", id: id}, &wire); err != nil {
		return nil, err
	}

	quote, err := wire.toDomain()
	if err != nil {
		return nil, err
	}

	c.logger.Log(ctx, logging.LevelTrace, "fetched quote", slog.String("date", quote.Date))

	return quote, nil
}

// ListQuotes fetches one page of quotes. An empty month lists from today
// onward. The returned cursor is empty on the last page.
func (c *QuoteClient) ListQuotes(ctx context.Context, month, cursor string, limit int) ([]*domain.DailyQuote, string, error) {
	q := url.Values{}
	if month != "" {
		q.Set("month", month)
	}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	path := "/api/v1/quotes"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page quotePageResponse
	if err := c.fetch(ctx, path, call{name: "list quotes", entity: "quotes", id: month}, &page); err != nil {
		return nil, "", err
	}

	quotes, err := page.toDomain()
	if err != nil {
		return nil, "", err
	}

	c.logger.Log(ctx, logging.LevelTrace, "fetched quote page",
		slog.Int("count", len(quotes)), slog.Bool("has_more", page.HasMore))

	return quotes, page.NextCursor, nil
}

// fetch issues a GET and decodes a 2xx body into out. Every failure comes
// back as a domain error.
func (c *QuoteClient) fetch(ctx context.Context, path string, cl call, out any) error {
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	resp, err := c.client.Get(ctx, path)
	if err != nil {
		return requestError(err, cl)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return responseError(resp, cl)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewUnavailableError(QuoteAPIServiceName, cl.name+": decoding response: "+err.Error())
	}

	return nil
}
