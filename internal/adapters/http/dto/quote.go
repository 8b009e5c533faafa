package dto

import (
	"strings"

	"github.com/jsamuelsen/quotebot/internal/domain"
)

// QuoteResponse is the JSON view of a daily quote.
type QuoteResponse struct {
	Date       string `json:"date"`
	Text       string `json:"text"`
	AccentLine string `json:"accentLine"`
	Author     string `json:"author,omitempty"`
}

// FromDailyQuote converts a domain quote.
func FromDailyQuote(q *domain.DailyQuote) QuoteResponse {
	return QuoteResponse{
		Date:       q.Date,
		Text:       q.Text,
		AccentLine: q.AccentLine,
		Author:     q.Author,
	}
}

// QuoteDateParams binds the :date path segment.
type QuoteDateParams struct {
	Date string `uri:"date" validate:"required,isodate"`
}

// ListQuotesRequest binds GET /api/v1/quotes.
type ListQuotesRequest struct {
	PaginationRequest

	// Month limits the listing to one YYYY-MM month.
	Month string `form:"month" validate:"omitempty,yearmonth"`
}

// StartDate returns the first date of the requested page, or "" for the
// first page. A cursor is only valid with the month filter it was issued
// under.
func (r *ListQuotesRequest) StartDate() (string, error) {
	if r.Cursor == "" {
		return "", nil
	}

	c, err := DecodeCursor(r.Cursor)
	if err != nil {
		return "", err
	}

	if c.Month != r.Month || (r.Month != "" && !strings.HasPrefix(c.Date, r.Month+"-")) {
		return "", ErrInvalidCursor
	}

	return c.Date, nil
}

// NextCursor encodes the position of the following page, or "" when there
// is none.
func (r *ListQuotesRequest) NextCursor(next string) string {
	if next == "" {
		return ""
	}

	return EncodeCursor(&CursorData{Date: next, Month: r.Month})
}
