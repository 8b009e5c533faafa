package ports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultCheckTimeout bounds a single check when the registry is built
// without WithCheckTimeout.
const DefaultCheckTimeout = 2 * time.Second

// ErrDuplicateChecker is returned when a checker name is registered twice.
var ErrDuplicateChecker = errors.New("duplicate health checker")

// HealthChecker is implemented by adapters that can report their health.
// The quote store, the read cache and the Telegram sender register one each.
type HealthChecker interface {
	// Name identifies the check in readiness responses.
	Name() string

	// Check returns nil when the component is usable.
	Check(ctx context.Context) error
}

// OptionalChecker marks a checker whose failure degrades the service
// instead of taking it out of rotation. The read cache and Telegram are
// optional: quotes are still stored and served without them.
type OptionalChecker interface {
	HealthChecker
	Optional() bool
}

// HealthRegistry aggregates health checks.
type HealthRegistry interface {
	Register(checker HealthChecker) error
	CheckAll(ctx context.Context) *HealthResult
}

// HealthStatus represents the overall health state.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResult is one readiness evaluation. Cached is set when the result
// was reused from an earlier probe.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
	Cached    bool                    `json:"cached,omitempty"`
}

// CheckResult is the outcome of one checker.
type CheckResult struct {
	Status    HealthStatus `json:"status"`
	Message   string       `json:"message,omitempty"`
	Optional  bool         `json:"optional,omitempty"`
	LatencyMS int64        `json:"latencyMs"`
}

// RegistryOption configures a DefaultHealthRegistry.
type RegistryOption func(*DefaultHealthRegistry)

// WithCheckTimeout bounds each check; a hung dependency then reports
// "context deadline exceeded" instead of stalling the probe.
func WithCheckTimeout(d time.Duration) RegistryOption {
	return func(r *DefaultHealthRegistry) {
		if d > 0 {
			r.checkTimeout = d
		}
	}
}

// WithCacheTTL reuses a result for ttl. Zero evaluates on every call.
func WithCacheTTL(ttl time.Duration) RegistryOption {
	return func(r *DefaultHealthRegistry) { r.cacheTTL = ttl }
}

// DefaultHealthRegistry runs its checks concurrently and is safe for
// concurrent use.
type DefaultHealthRegistry struct {
	checkTimeout time.Duration
	cacheTTL     time.Duration
	now          func() time.Time

	mu       sync.RWMutex
	checkers []HealthChecker
	last     *HealthResult
}

func NewHealthRegistry(opts ...RegistryOption) *DefaultHealthRegistry {
	r := &DefaultHealthRegistry{
		checkTimeout: DefaultCheckTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a checker. Names must be unique.
func (r *DefaultHealthRegistry) Register(checker HealthChecker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := checker.Name()
	for _, c := range r.checkers {
		if c.Name() == name {
			return fmt.Errorf("%w: %s", ErrDuplicateChecker, name)
		}
	}

	r.checkers = append(r.checkers, checker)
	r.last = nil

	return nil
}

// CheckAll evaluates every checker, or returns the cached result while it
// is younger than the cache TTL. A failing required check makes the result
// unhealthy; failing optional checks alone make it degraded.
func (r *DefaultHealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	last := r.last
	checkers := append([]HealthChecker(nil), r.checkers...)
	r.mu.RUnlock()

	if last != nil && r.now().Sub(last.Timestamp) < r.cacheTTL {
		cached := *last
		cached.Cached = true

		return &cached
	}

	result := r.evaluate(ctx, checkers)

	if r.cacheTTL > 0 {
		r.mu.Lock()
		r.last = result
		r.mu.Unlock()
	}

	return result
}

func (r *DefaultHealthRegistry) evaluate(ctx context.Context, checkers []HealthChecker) *HealthResult {
	result := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(checkers)),
		Timestamp: r.now(),
	}

	var (
		g  errgroup.Group
		mu sync.Mutex
	)

	for _, c := range checkers {
		g.Go(func() error {
			check := r.run(ctx, c)

			mu.Lock()
			defer mu.Unlock()

			result.Checks[c.Name()] = check
			result.Status = worse(result.Status, check)

			// A failed check is a result, not a group error.
			return nil
		})
	}

	_ = g.Wait()

	return result
}

func (r *DefaultHealthRegistry) run(ctx context.Context, c HealthChecker) *CheckResult {
	ctx, cancel := context.WithTimeout(ctx, r.checkTimeout)
	defer cancel()

	start := time.Now()
	err := c.Check(ctx)

	check := &CheckResult{
		Status:    HealthStatusHealthy,
		Optional:  isOptional(c),
		LatencyMS: time.Since(start).Milliseconds(),
	}

	if err != nil {
		check.Status = HealthStatusUnhealthy
		check.Message = err.Error()
	}

	return check
}

func isOptional(c HealthChecker) bool {
	oc, ok := c.(OptionalChecker)

	return ok && oc.Optional()
}

func worse(current HealthStatus, check *CheckResult) HealthStatus {
	if check.Status == HealthStatusHealthy || current == HealthStatusUnhealthy {
		return current
	}

	if check.Optional {
		return HealthStatusDegraded
	}

	return HealthStatusUnhealthy
}
