// Package acl reads the quote calendar over its HTTP read API and keeps the
// API's JSON shapes out of the domain.
//
// Responses are validated before they become [domain.DailyQuote] values.
// Failures are mapped by the envelope's error code, or by status when the
// body has none:
//
//   - NOT_FOUND, 404: [domain.ErrNotFound]
//   - VALIDATION_ERROR, BAD_REQUEST, 400, 422: [domain.ErrValidation]
//   - FORBIDDEN, 401, 403: [domain.ErrForbidden]
//   - anything else, transport failures, an open circuit: [domain.ErrUnavailable]
package acl
