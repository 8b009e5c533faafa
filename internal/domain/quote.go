// Package domain contains core business entities and rules.
package domain

import (
	"time"
	"unicode/utf8"
)

const (
	// MaxQuoteLength is the maximum quote body length in characters.
	MaxQuoteLength = 600

	// DefaultAccentLine is stored when a command omits the accent segment.
	DefaultAccentLine = "every day matters"

	// DateLayout is the layout of a quote key (ISO calendar date).
	DateLayout = "2006-01-02"

	// MonthLayout is the layout of a month filter.
	MonthLayout = "2006-01"

	// ListPreviewLength is how many characters of each quote a listing shows.
	ListPreviewLength = 80

	// MaxDateKey is the upper bound used for open-ended range queries.
	MaxDateKey = "9999-12-31"
)

// Source records which chat command wrote a quote record.
type Source string

const (
	// SourceTelegram marks records written by /add.
	SourceTelegram Source = "telegram"

	// SourceTelegramUpdate marks records written by /update.
	SourceTelegramUpdate Source = "telegram-update"
)

// QuoteRecord is the stored quote document for one calendar day.
// Records are keyed by Date; there is at most one record per date.
type QuoteRecord struct {
	// Date is the document key in YYYY-MM-DD form.
	Date string

	// Text is the quote body.
	Text string

	// AccentLine is the short line shown under the quote.
	AccentLine string

	// Author may be empty.
	Author string

	// CreatedAt is assigned by the store on every write.
	CreatedAt time.Time

	// Source is the command that last wrote the record.
	Source Source
}

// QuoteWrite is the set of fields written by an upsert.
// The store assigns CreatedAt.
type QuoteWrite struct {
	Text       string
	AccentLine string
	Author     string
	Source     Source
}

// DailyQuote is the read-side view of a quote served to clients.
type DailyQuote struct {
	Date       string
	Text       string
	AccentLine string
	Author     string
}

// ToDailyQuote projects a stored record onto the client view.
func (r *QuoteRecord) ToDailyQuote() *DailyQuote {
	return &DailyQuote{
		Date:       r.Date,
		Text:       r.Text,
		AccentLine: r.AccentLine,
		Author:     r.Author,
	}
}

// Truncate returns at most n characters of s.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	runes := []rune(s)

	return string(runes[:n])
}

// DateKey formats t as a quote key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthKey formats t as a month filter.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// MonthRange returns the inclusive key range covering a month.
// The upper bound is always day 31; keys are compared as strings, so the
// bound does not need to be a valid calendar date.
func MonthRange(month string) (start, end string) {
	return month + "-01", month + "-31"
}
