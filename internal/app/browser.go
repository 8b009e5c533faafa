package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/quotebot/internal/domain"
	"github.com/jsamuelsen/quotebot/internal/ports"
)

// QuoteBrowser walks the quote calendar one day at a time.
//
// Each date resolves to one of four states (loading, success, empty, error).
// Resolved states are kept per date, so moving back to a date does not
// fetch it again; Refresh drops the kept state for the selected date.
// Every successful load is saved as the device snapshot.
type QuoteBrowser struct {
	reader    ports.QuoteReader
	snapshots ports.SnapshotStore
	onChange  func(domain.BrowserState)
	logger    *slog.Logger

	mu       sync.Mutex
	today    time.Time
	selected time.Time
	state    domain.BrowserState
	states   map[string]domain.BrowserState
}

// QuoteBrowserConfig holds the browser's dependencies.
type QuoteBrowserConfig struct {
	// Reader is required.
	Reader ports.QuoteReader

	// Snapshots, when set, receives every successfully loaded quote.
	Snapshots ports.SnapshotStore

	// OnChange is called on every state transition, including loading.
	OnChange func(domain.BrowserState)

	// Today is the date the browser opens on.
	Today time.Time

	Logger *slog.Logger
}

// NewQuoteBrowser creates a browser positioned on cfg.Today.
// Call Open to load the first state.
func NewQuoteBrowser(cfg QuoteBrowserConfig) *QuoteBrowser {
	if cfg.Reader == nil {
		panic("app: quote browser requires a quote reader")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	today := truncateDay(cfg.Today)

	return &QuoteBrowser{
		reader:    cfg.Reader,
		snapshots: cfg.Snapshots,
		onChange:  cfg.OnChange,
		logger:    logger.With(slog.String("component", "app.QuoteBrowser")),
		today:     today,
		selected:  today,
		state:     domain.LoadingState(domain.DateKey(today)),
		states:    make(map[string]domain.BrowserState),
	}
}

// Open loads the state for the initial date.
func (b *QuoteBrowser) Open(ctx context.Context) domain.BrowserState {
	return b.show(ctx, b.selectedDate())
}

// Prev moves one day back.
func (b *QuoteBrowser) Prev(ctx context.Context) domain.BrowserState {
	return b.show(ctx, b.move(-1))
}

// Next moves one day forward.
func (b *QuoteBrowser) Next(ctx context.Context) domain.BrowserState {
	return b.show(ctx, b.move(1))
}

// Today moves back to the date the browser opened on.
func (b *QuoteBrowser) Today(ctx context.Context) domain.BrowserState {
	b.mu.Lock()
	b.selected = b.today
	b.mu.Unlock()

	return b.show(ctx, domain.DateKey(b.today))
}

// Refresh forgets the state of the selected date and loads it again.
func (b *QuoteBrowser) Refresh(ctx context.Context) domain.BrowserState {
	date := b.selectedDate()

	b.mu.Lock()
	delete(b.states, date)
	b.mu.Unlock()

	return b.show(ctx, date)
}

// State returns the current state.
func (b *QuoteBrowser) State() domain.BrowserState {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// Selected returns the selected date key.
func (b *QuoteBrowser) Selected() string {
	return b.selectedDate()
}

func (b *QuoteBrowser) selectedDate() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return domain.DateKey(b.selected)
}

func (b *QuoteBrowser) move(days int) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.selected = b.selected.AddDate(0, 0, days)

	return domain.DateKey(b.selected)
}

func (b *QuoteBrowser) show(ctx context.Context, date string) domain.BrowserState {
	b.mu.Lock()
	cached, ok := b.states[date]
	b.mu.Unlock()

	if ok {
		b.set(cached)
		return cached
	}

	b.set(domain.LoadingState(date))

	state := b.load(ctx, date)

	b.mu.Lock()
	b.states[date] = state
	b.mu.Unlock()

	b.set(state)

	return state
}

func (b *QuoteBrowser) load(ctx context.Context, date string) domain.BrowserState {
	quote, err := b.reader.GetQuoteForDate(ctx, date)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.EmptyState(date)
		}

		b.logger.WarnContext(ctx, "failed to load quote",
			slog.String("date", date),
			slog.Any("error", err),
		)

		return domain.ErrorState(date, domain.LoadFailedMessage)
	}

	if quote == nil {
		return domain.EmptyState(date)
	}

	if b.snapshots != nil {
		snap := domain.Snapshot{Text: quote.Text, Date: quote.Date}
		if err := b.snapshots.SaveSnapshot(ctx, snap); err != nil {
			b.logger.WarnContext(ctx, "failed to save snapshot",
				slog.String("date", date),
				slog.Any("error", err),
			)
		}
	}

	return domain.SuccessState(quote)
}

func (b *QuoteBrowser) set(state domain.BrowserState) {
	b.mu.Lock()
	b.state = state
	b.mu.Unlock()

	if b.onChange != nil {
		b.onChange(state)
	}
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
