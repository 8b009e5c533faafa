package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quotebot/internal/domain"
	"github.com/jsamuelsen/quotebot/internal/ports"
)

const quoteCacheKeyPrefix = "quote:"

func quoteCacheKey(date string) string {
	return quoteCacheKeyPrefix + date
}

// QuoteService serves daily quotes to the read API.
// When a cache is configured, lookups are read-through and the dispatcher
// evicts entries on every write.
type QuoteService struct {
	store    ports.QuoteStore
	cache    ports.Cache
	cacheTTL int
	loc      *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Store ports.QuoteStore

	// Cache is optional.
	Cache ports.Cache

	// CacheTTL bounds how long a cached quote is served. Zero keeps it until evicted.
	CacheTTL time.Duration

	// Location decides which date is "today". Defaults to UTC.
	Location *time.Location

	Now    func() time.Time
	Logger *slog.Logger
}

// NewQuoteService creates a new quote service. It panics without a store.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Store == nil {
		panic("app: quote service requires a quote store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &QuoteService{
		store:    cfg.Store,
		cache:    cfg.Cache,
		cacheTTL: int(cfg.CacheTTL / time.Second),
		loc:      loc,
		now:      now,
		logger:   logger.With(slog.String("component", "app.QuoteService")),
	}
}

// Today returns today's date key in the service location.
func (s *QuoteService) Today() string {
	return domain.DateKey(s.now().In(s.loc))
}

// GetTodayQuote returns the quote scheduled for today.
func (s *QuoteService) GetTodayQuote(ctx context.Context) (*domain.DailyQuote, error) {
	return s.GetQuoteForDate(ctx, s.Today())
}

// GetQuoteForDate returns the quote scheduled for date.
// Returns a domain.ValidationError for a malformed date and a
// domain.NotFoundError when nothing is scheduled.
func (s *QuoteService) GetQuoteForDate(ctx context.Context, date string) (*domain.DailyQuote, error) {
	if !domain.IsDateKey(date) {
		return nil, domain.NewValidationErrorWithValue("date", "must match YYYY-MM-DD", date)
	}

	if quote, ok := s.fromCache(ctx, date); ok {
		return quote, nil
	}

	rec, err := s.store.Get(ctx, date)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load quote",
			slog.String("date", date),
			slog.Any("error", err),
		)

		return nil, fmt.Errorf("loading quote for %s: %w", date, err)
	}

	if rec == nil {
		return nil, domain.NewNotFoundError("quote", date)
	}

	quote := rec.ToDailyQuote()
	s.toCache(ctx, quote)

	return quote, nil
}

// QuotePage is one page of a ListQuotes result.
type QuotePage struct {
	Quotes []domain.DailyQuote

	// Next is the first date of the following page; empty on the last page.
	Next string
}

// ListQuotes returns up to limit quotes in ascending date order, starting at
// from (inclusive). An empty month lists from today onward, the same window
// the /list command uses; otherwise only that month is listed.
func (s *QuoteService) ListQuotes(ctx context.Context, month, from string, limit int) (*QuotePage, error) {
	start, end := s.Today(), domain.MaxDateKey
	if month != "" {
		if !domain.IsMonthKey(month) {
			return nil, domain.NewValidationErrorWithValue("month", "must match YYYY-MM", month)
		}

		start, end = domain.MonthRange(month)
	}

	if from != "" {
		if !domain.IsDateKey(from) {
			return nil, domain.NewValidationErrorWithValue("cursor", "must point at a YYYY-MM-DD date", from)
		}

		if from > start {
			start = from
		}
	}

	if limit <= 0 {
		return nil, domain.NewValidationErrorWithValue("limit", "must be positive", limit)
	}

	records, err := s.store.Range(ctx, start, end, limit+1)
	if err != nil {
		return nil, fmt.Errorf("listing quotes from %s: %w", start, err)
	}

	page := &QuotePage{Quotes: make([]domain.DailyQuote, 0, min(len(records), limit))}

	for i := range records {
		if i == limit {
			page.Next = records[i].Date
			break
		}

		page.Quotes = append(page.Quotes, *records[i].ToDailyQuote())
	}

	return page, nil
}

func (s *QuoteService) fromCache(ctx context.Context, date string) (*domain.DailyQuote, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, quoteCacheKey(date))
	if err != nil {
		if !domain.IsNotFound(err) {
			s.logger.WarnContext(ctx, "quote cache read failed",
				slog.String("date", date),
				slog.Any("error", err),
			)
		}

		return nil, false
	}

	var quote domain.DailyQuote
	if err := json.Unmarshal(data, &quote); err != nil {
		s.logger.WarnContext(ctx, "discarding undecodable cached quote",
			slog.String("date", date),
			slog.Any("error", err),
		)

		return nil, false
	}

	return &quote, true
}

func (s *QuoteService) toCache(ctx context.Context, quote *domain.DailyQuote) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(quote)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, quoteCacheKey(quote.Date), data, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "quote cache write failed",
			slog.String("date", quote.Date),
			slog.Any("error", err),
		)
	}
}
