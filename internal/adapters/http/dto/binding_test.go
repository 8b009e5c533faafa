package dto

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebot/internal/domain"
)

func TestValidate_ListQuotesRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       ListQuotesRequest
		wantField string
		wantMsg   string
	}{
		{name: "empty is valid", req: ListQuotesRequest{}},
		{name: "month", req: ListQuotesRequest{Month: "2024-05"}},
		{name: "bad month", req: ListQuotesRequest{Month: "2024-13"}, wantField: "month", wantMsg: "YYYY-MM"},
		{name: "bad limit", req: ListQuotesRequest{PaginationRequest: PaginationRequest{Limit: 101}}, wantField: "limit", wantMsg: "less than or equal to 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.req)

			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var re *RequestError
			require.ErrorAs(t, err, &re)
			assert.True(t, domain.IsValidation(err))
			assert.Contains(t, re.Fields[tt.wantField], tt.wantMsg)
		})
	}
}

func TestValidate_QuoteDateParams(t *testing.T) {
	require.NoError(t, Validate(&QuoteDateParams{Date: "2024-05-07"}))

	var re *RequestError
	require.ErrorAs(t, Validate(&QuoteDateParams{Date: "2024-02-30x"}), &re)
	assert.Contains(t, re.Fields["date"], "YYYY-MM-DD")

	require.ErrorAs(t, Validate(&QuoteDateParams{}), &re)
	assert.Equal(t, "this field is required", re.Fields["date"])
}

func TestBindQuery(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/quotes?month=2024-05&limit=5&cursor=abc", nil)

	var req ListQuotesRequest
	require.NoError(t, BindQuery(c, &req))

	assert.Equal(t, "2024-05", req.Month)
	assert.Equal(t, 5, req.Limit)
	assert.Equal(t, "abc", req.Cursor)
}

func TestBindQuery_Unconvertible(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/quotes?limit=many", nil)

	var req ListQuotesRequest
	err := BindQuery(c, &req)

	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, map[string]string{"query": "malformed query parameters"}, re.Fields)
}

func TestRequestError_Error(t *testing.T) {
	err := &RequestError{Fields: map[string]string{"month": "bad", "limit": "too big"}}

	assert.Equal(t, "invalid request: limit: too big; month: bad", err.Error())
	assert.True(t, domain.IsValidation(err))
}
