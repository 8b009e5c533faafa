// Package clients provides the instrumented HTTP client used by outbound
// adapters (Telegram, the read API).
package clients

import "errors"

// Client errors are infrastructure failures. Adapters translate them to
// domain errors before they leave the adapter.
var (
	// ErrCircuitOpen is returned without contacting the downstream while
	// the circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrRequestFailed wraps transport failures: dial errors, timeouts,
	// cancelled contexts.
	ErrRequestFailed = errors.New("request failed")
)
