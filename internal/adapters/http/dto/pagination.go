package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/jsamuelsen/quotebot/internal/domain"
)

const (
	// DefaultLimit holds a whole month.
	DefaultLimit = 31

	MaxLimit = 100
)

// ErrInvalidCursor is returned for a cursor this API did not issue, or one
// issued for a different month filter.
var ErrInvalidCursor = errors.New("invalid cursor")

// PaginationRequest carries the paging query parameters.
type PaginationRequest struct {
	// Cursor is the nextCursor of the previous page.
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit"  validate:"omitempty,gte=1,lte=100"`
}

// GetLimit returns the requested limit clamped to [1, MaxLimit].
func (p *PaginationRequest) GetLimit() int {
	switch {
	case p.Limit <= 0:
		return DefaultLimit
	case p.Limit > MaxLimit:
		return MaxLimit
	default:
		return p.Limit
	}
}

// PaginatedResponse is one page of items.
type PaginatedResponse[T any] struct {
	Items []T `json:"items"`

	// NextCursor is empty on the last page.
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}

// NewPaginatedResponse builds a page; nextCursor is "" on the last one.
func NewPaginatedResponse[T any](items []T, nextCursor string) *PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}

	return &PaginatedResponse[T]{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    nextCursor != "",
	}
}

// CursorData is a position in a listing: the first date of the next page
// and the month filter the listing was started with.
type CursorData struct {
	Date  string `json:"d"`
	Month string `json:"m,omitempty"`
}

// EncodeCursor encodes a cursor as URL-safe base64 JSON.
func EncodeCursor(data *CursorData) string {
	if data == nil {
		return ""
	}

	b, err := json.Marshal(data)
	if err != nil {
		return ""
	}

	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor reverses EncodeCursor and checks that Date is a date key.
func DecodeCursor(encoded string) (*CursorData, error) {
	b, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var data CursorData
	if err := json.Unmarshal(b, &data); err != nil || !domain.IsDateKey(data.Date) {
		return nil, ErrInvalidCursor
	}

	return &data, nil
}
