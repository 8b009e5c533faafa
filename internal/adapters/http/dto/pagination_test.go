package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationRequest_GetLimit(t *testing.T) {
	tests := []struct {
		limit, want int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{10, 10},
		{MaxLimit, MaxLimit},
		{MaxLimit + 1, MaxLimit},
	}

	for _, tt := range tests {
		p := PaginationRequest{Limit: tt.limit}
		assert.Equal(t, tt.want, p.GetLimit(), "limit %d", tt.limit)
	}
}

func TestDecodeCursor(t *testing.T) {
	c, err := DecodeCursor(EncodeCursor(&CursorData{Date: "2024-05-15", Month: "2024-05"}))
	require.NoError(t, err)
	assert.Equal(t, CursorData{Date: "2024-05-15", Month: "2024-05"}, *c)

	for name, bad := range map[string]string{
		"not base64":  "!!!",
		"not json":    "bm90IGpzb24",
		"empty":       "e30",
		"not a date":  EncodeCursor(&CursorData{Date: "soon"}),
		"padded form": "eyJkIjoiMjAyNC0wNS0xNSJ9==",
	} {
		_, err := DecodeCursor(bad)
		assert.ErrorIs(t, err, ErrInvalidCursor, name)
	}

	assert.Empty(t, EncodeCursor(nil))
}

func TestListQuotesRequest_StartDate(t *testing.T) {
	may := EncodeCursor(&CursorData{Date: "2024-05-20", Month: "2024-05"})
	open := EncodeCursor(&CursorData{Date: "2024-05-20"})
	stray := EncodeCursor(&CursorData{Date: "2024-06-02", Month: "2024-05"})

	tests := []struct {
		name    string
		req     ListQuotesRequest
		want    string
		wantErr bool
	}{
		{name: "first page", req: ListQuotesRequest{Month: "2024-05"}},
		{name: "same month", req: ListQuotesRequest{Month: "2024-05", PaginationRequest: PaginationRequest{Cursor: may}}, want: "2024-05-20"},
		{name: "no month", req: ListQuotesRequest{PaginationRequest: PaginationRequest{Cursor: open}}, want: "2024-05-20"},
		{name: "other month", req: ListQuotesRequest{Month: "2024-06", PaginationRequest: PaginationRequest{Cursor: may}}, wantErr: true},
		{name: "month dropped", req: ListQuotesRequest{PaginationRequest: PaginationRequest{Cursor: may}}, wantErr: true},
		{name: "month added", req: ListQuotesRequest{Month: "2024-05", PaginationRequest: PaginationRequest{Cursor: open}}, wantErr: true},
		{name: "date outside month", req: ListQuotesRequest{Month: "2024-05", PaginationRequest: PaginationRequest{Cursor: stray}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.StartDate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCursor)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListQuotesRequest_NextCursor(t *testing.T) {
	req := ListQuotesRequest{Month: "2024-05"}

	assert.Empty(t, req.NextCursor(""))

	c, err := DecodeCursor(req.NextCursor("2024-05-03"))
	require.NoError(t, err)
	assert.Equal(t, CursorData{Date: "2024-05-03", Month: "2024-05"}, *c)
}

func TestNewPaginatedResponse(t *testing.T) {
	last := NewPaginatedResponse([]string{"a"}, "")
	assert.False(t, last.HasMore)
	assert.Empty(t, last.NextCursor)

	more := NewPaginatedResponse([]string{"a", "b"}, "abc")
	assert.True(t, more.HasMore)
	assert.Equal(t, "abc", more.NextCursor)

	empty := NewPaginatedResponse[string](nil, "")
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
}
