package acl

import (
	"fmt"

	"github.com/jsamuelsen/quotebot/internal/domain"
)

// quoteResponse is a quote as the read API serves it.
type quoteResponse struct {
	Date       string `json:"date"`
	Text       string `json:"text"`
	AccentLine string `json:"accentLine"`
	Author     string `json:"author"`
}

type quotePageResponse struct {
	Items      []quoteResponse `json:"items"`
	NextCursor string          `json:"nextCursor,omitempty"`
	HasMore    bool            `json:"hasMore"`
}

// toDomain checks the fields the calendar relies on before handing the quote
// to callers.
func (q *quoteResponse) toDomain() (*domain.DailyQuote, error) {
	if !domain.IsDateKey(q.Date) {
		return nil, domain.NewValidationErrorWithValue("date", "must match YYYY-MM-DD", q.Date)
	}

	if q.Text == "" {
		return nil, domain.NewValidationError("text", "is required")
	}

	return &domain.DailyQuote{
		Date:       q.Date,
		Text:       q.Text,
		AccentLine: q.AccentLine,
		Author:     q.Author,
	}, nil
}

func (p *quotePageResponse) toDomain() ([]*domain.DailyQuote, error) {
	quotes := make([]*domain.DailyQuote, 0, len(p.Items))
	for i := range p.Items {
		q, err := p.Items[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}
		quotes = append(quotes, q)
	}

	return quotes, nil
}
