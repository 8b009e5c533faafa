package dto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebot/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHTTPStatusFromCode(t *testing.T) {
	tests := map[string]int{
		ErrorCodeNotFound:    http.StatusNotFound,
		ErrorCodeValidation:  http.StatusBadRequest,
		ErrorCodeBadRequest:  http.StatusBadRequest,
		ErrorCodeForbidden:   http.StatusForbidden,
		ErrorCodeUnavailable: http.StatusServiceUnavailable,
		ErrorCodeTimeout:     http.StatusGatewayTimeout,
		ErrorCodeInternal:    http.StatusInternalServerError,
		"SOMETHING_ELSE":     http.StatusInternalServerError,
	}

	for code, want := range tests {
		t.Run(code, func(t *testing.T) {
			assert.Equal(t, want, HTTPStatusFromCode(code))
		})
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails map[string]string
	}{
		{
			name:        "not found",
			err:         fmt.Errorf("loading: %w", domain.NewNotFoundError("quote", "2024-05-07")),
			wantStatus:  http.StatusNotFound,
			wantCode:    ErrorCodeNotFound,
			wantMessage: "2024-05-07",
		},
		{
			name:        "validation with field",
			err:         domain.NewValidationErrorWithValue("date", "must match YYYY-MM-DD", "May 7"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    ErrorCodeValidation,
			wantMessage: "date",
			wantDetails: map[string]string{"date": "must match YYYY-MM-DD"},
		},
		{
			name:        "forbidden",
			err:         fmt.Errorf("quote-api: %w", domain.ErrForbidden),
			wantStatus:  http.StatusForbidden,
			wantCode:    ErrorCodeForbidden,
			wantMessage: "123",
		},
		{
			name:        "unavailable hides reason",
			err:         domain.NewUnavailableError("redis", "dial tcp 10.0.0.1:6379"),
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    ErrorCodeUnavailable,
			wantMessage: "temporarily unavailable",
		},
		{
			name:        "deadline",
			err:         fmt.Errorf("store: %w", context.DeadlineExceeded),
			wantStatus:  http.StatusGatewayTimeout,
			wantCode:    ErrorCodeTimeout,
			wantMessage: "timeout",
		},
		{
			name:        "unknown",
			err:         errors.New("bolt: bucket missing"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    ErrorCodeInternal,
			wantMessage: "internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := MapDomainError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			require.NotNil(t, resp)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.wantMessage)
			assert.Equal(t, tt.wantDetails, resp.Error.Details)
		})
	}

	status, resp := MapDomainError(nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, resp)
}

func TestGetTraceID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Empty(t, GetTraceID(c))

	c.Request.Header.Set("X-Request-ID", "req-1")
	assert.Equal(t, "req-1", GetTraceID(c))
}

func TestHandleError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Request-ID", "req-1")

	HandleError(c, errors.New("bolt: bucket missing"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrorCodeInternal, resp.Error.Code)
	assert.Equal(t, "req-1", resp.TraceID)
	assert.NotContains(t, w.Body.String(), "bucket")
}

func TestHandleError_RequestError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, &RequestError{Fields: map[string]string{"month": "must be a month in YYYY-MM form"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrorCodeValidation, resp.Error.Code)
	assert.Equal(t, "request validation failed", resp.Error.Message)
	assert.Equal(t, "must be a month in YYYY-MM form", resp.Error.Details["month"])
}
