package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/jsamuelsen/quotebot/internal/adapters/clients"
	"github.com/jsamuelsen/quotebot/internal/domain"
)

// maxErrorBody bounds how much of a failed response is read for its envelope.
const maxErrorBody = 64 << 10

// Error codes the read API puts in its envelope.
const (
	codeNotFound    = "NOT_FOUND"
	codeValidation  = "VALIDATION_ERROR"
	codeBadRequest  = "BAD_REQUEST"
	codeForbidden   = "FORBIDDEN"
	codeUnavailable = "SERVICE_UNAVAILABLE"
)

// errorEnvelope is the read API's error body:
//
//	{"error":{"code":"NOT_FOUND","message":"...","details":{...}},"traceId":"..."}
type errorEnvelope struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
	TraceID string `json:"traceId,omitempty"`
}

// call identifies a request for error messages.
type call struct {
	name   string
	entity string
	id     string
}

// requestError maps a failure where no response arrived.
func requestError(err error, c call) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(QuoteAPIServiceName, "circuit breaker open")
	case errors.Is(err, clients.ErrRequestFailed):
		return domain.NewUnavailableError(QuoteAPIServiceName, c.name+": no response")
	default:
		return domain.NewUnavailableError(QuoteAPIServiceName, fmt.Sprintf("%s: %v", c.name, err))
	}
}

// responseError maps a non-2xx response. The envelope's code is trusted over
// the status; a body without one (a proxy page, an empty 502) falls back to
// the status.
func responseError(resp *http.Response, c call) error {
	var env errorEnvelope
	if resp.Body != nil {
		_ = json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&env)
	}

	code := env.Error.Code
	if code == "" {
		code = codeForStatus(resp.StatusCode)
	}

	msg := env.Error.Message
	if msg == "" {
		msg = fmt.Sprintf("%s: status %d", c.name, resp.StatusCode)
	}

	switch code {
	case codeNotFound:
		return domain.NewNotFoundError(c.entity, c.id)
	case codeValidation, codeBadRequest:
		if field, detail, ok := firstDetail(env.Error.Details); ok {
			return domain.NewValidationError(field, detail)
		}
		return domain.NewValidationError("", msg)
	case codeForbidden:
		return fmt.Errorf("%s %s: %w", QuoteAPIServiceName, c.name, domain.ErrForbidden)
	default:
		if resp.StatusCode == http.StatusTooManyRequests {
			msg = "rate limited"
		}
		return domain.NewUnavailableError(QuoteAPIServiceName, msg)
	}
}

// codeForStatus guesses the envelope code for a bare status. Unexpected
// 4xx answers mean the client and server disagree about the API, which the
// caller cannot fix, so they count as unavailable.
func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return codeNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return codeValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return codeForbidden
	default:
		return codeUnavailable
	}
}

// firstDetail picks the alphabetically first field so the error is stable.
func firstDetail(details map[string]string) (string, string, bool) {
	if len(details) == 0 {
		return "", "", false
	}

	fields := make([]string, 0, len(details))
	for f := range details {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	return fields[0], details[fields[0]], true
}
