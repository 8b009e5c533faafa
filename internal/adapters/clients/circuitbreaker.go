package clients

import (
	"sync"
	"time"

	"github.com/jsamuelsen/quotebot/internal/platform/config"
)

// State is the breaker's position.
type State int

const (
	// StateClosed lets every call through and counts consecutive failures.
	StateClosed State = iota

	// StateOpen rejects calls with ErrCircuitOpen until the cool-down has
	// passed since the breaker opened.
	StateOpen

	// StateHalfOpen admits up to HalfOpenLimit probes at a time.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Outcome classifies a finished call for the breaker.
type Outcome int

const (
	// OutcomeSuccess is any answer below 500.
	OutcomeSuccess Outcome = iota

	// OutcomeFailure is a transport error, a downstream timeout or a 5xx.
	OutcomeFailure

	// OutcomeIgnored releases an admitted call without counting it, for
	// example when the caller cancelled its own context.
	OutcomeIgnored
)

// CircuitBreaker fails calls to a downstream fast while it keeps failing,
// so a Telegram or read-API outage does not hold every webhook request for
// the whole client timeout. It never retries.
//
//	closed    --MaxFailures consecutive failures-->  open
//	open      --Timeout elapsed, next Allow-->       half-open
//	half-open --HalfOpenLimit consecutive successes--> closed
//	half-open --any failure-->                       open
type CircuitBreaker struct {
	mu       sync.Mutex
	cfg      config.CircuitBreakerConfig
	state    State
	streak   int // failures while closed, successes while half-open
	inFlight int // admitted half-open probes
	openedAt time.Time

	notify func(from, to State)
	now    func() time.Time
}

// NewCircuitBreaker creates a closed breaker. notify, when set, runs in its
// own goroutine on every state change.
func NewCircuitBreaker(cfg config.CircuitBreakerConfig, notify func(from, to State)) *CircuitBreaker {
	if cfg.MaxFailures < 1 {
		cfg.MaxFailures = config.DefaultClientCircuitMaxFailures
	}
	if cfg.HalfOpenLimit < 1 {
		cfg.HalfOpenLimit = config.DefaultClientCircuitHalfOpenLimit
	}

	return &CircuitBreaker{cfg: cfg, notify: notify, now: time.Now}
}

// Allow admits a call or returns ErrCircuitOpen. Every admitted call must be
// followed by exactly one Done.
func (cb *CircuitBreaker) Allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.now().Sub(cb.openedAt) < cb.cfg.Timeout {
			return ErrCircuitOpen
		}
		cb.moveTo(StateHalfOpen)
	}

	if cb.state == StateHalfOpen {
		if cb.inFlight >= cb.cfg.HalfOpenLimit {
			return ErrCircuitOpen
		}
		cb.inFlight++
	}

	return nil
}

// Done reports how an admitted call ended.
func (cb *CircuitBreaker) Done(outcome Outcome) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen && cb.inFlight > 0 {
		cb.inFlight--
	}

	switch outcome {
	case OutcomeSuccess:
		cb.succeeded()
	case OutcomeFailure:
		cb.failed()
	case OutcomeIgnored:
	}
}

func (cb *CircuitBreaker) succeeded() {
	switch cb.state {
	case StateClosed:
		cb.streak = 0
	case StateHalfOpen:
		cb.streak++
		if cb.streak >= cb.cfg.HalfOpenLimit {
			cb.moveTo(StateClosed)
		}
	case StateOpen:
	}
}

func (cb *CircuitBreaker) failed() {
	switch cb.state {
	case StateClosed:
		cb.streak++
		if cb.streak >= cb.cfg.MaxFailures {
			cb.moveTo(StateOpen)
		}
	case StateHalfOpen:
		cb.moveTo(StateOpen)
	case StateOpen:
		// A call admitted before the breaker opened; restart the cool-down.
		cb.openedAt = cb.now()
	}
}

// State returns the breaker's position without moving it.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// moveTo must be called with mu held.
func (cb *CircuitBreaker) moveTo(next State) {
	if cb.state == next {
		return
	}

	prev := cb.state
	cb.state = next
	cb.streak = 0
	cb.inFlight = 0

	if next == StateOpen {
		cb.openedAt = cb.now()
	}

	if cb.notify != nil {
		go cb.notify(prev, next)
	}
}
