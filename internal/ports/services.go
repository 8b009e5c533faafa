// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrUnavailable, ...)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/jsamuelsen/quotebot/internal/domain"
)

// QuoteStore is the document store holding one quote record per date key.
// Every method is a single-document or single-range call; there are no
// multi-key transactions and no caching behind this interface.
type QuoteStore interface {
	// Get returns the record stored under date.
	// Returns (nil, nil) when no record exists.
	Get(ctx context.Context, date string) (*domain.QuoteRecord, error)

	// Upsert creates the record for date or merges the given fields into it.
	// The store assigns CreatedAt.
	Upsert(ctx context.Context, date string, write domain.QuoteWrite) error

	// Delete removes the record for date. Deleting a missing record is not an error.
	Delete(ctx context.Context, date string) error

	// Range returns records with start <= key <= end in ascending key order,
	// at most limit of them. An empty bound is unbounded on that side.
	Range(ctx context.Context, start, end string, limit int) ([]*domain.QuoteRecord, error)

	// Count returns the number of records with start <= key <= end.
	// An empty bound is unbounded on that side.
	Count(ctx context.Context, start, end string) (int64, error)
}

// ReplySender delivers a plain-text chat message.
// Implementations return an error when the provider is unreachable or
// rejects the message; they never retry.
type ReplySender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// QuoteReader fetches the quote for a date from the read API.
// Returns domain.ErrNotFound when no quote is scheduled.
type QuoteReader interface {
	GetQuoteForDate(ctx context.Context, date string) (*domain.DailyQuote, error)
}

// Cache defines the contract for caching operations.
// Implementations may use Redis or in-memory caches.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns domain.ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with optional TTL.
	// A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error

	// Delete removes a value from the cache.
	// Does not return an error if the key does not exist.
	Delete(ctx context.Context, key string) error
}

// SnapshotStore keeps the last quote shown to the user on this device,
// plus the daily reminder preference.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap domain.Snapshot) error
	LoadSnapshot(ctx context.Context) (domain.Snapshot, error)
	SaveReminder(ctx context.Context, pref domain.ReminderPreference) error
	LoadReminder(ctx context.Context) (domain.ReminderPreference, error)
}
