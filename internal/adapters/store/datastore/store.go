// Package datastore implements the quote store on Cloud Datastore.
// Each quote is one entity whose key name is the date.
package datastore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/datastore"
	"cloud.google.com/go/datastore/apiv1/datastorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jsamuelsen/quotebot/internal/domain"
	"github.com/jsamuelsen/quotebot/internal/ports"
)

const (
	// Name identifies the store in readiness checks.
	Name = "quote-store"

	serviceName = "datastore"

	keyProperty   = "__key__"
	countAlias    = "count"
	propText      = "text"
	propAccent    = "accentLine"
	propAuthor    = "author"
	propCreatedAt = "createdAt"
	propSource    = "source"
)

var (
	_ ports.QuoteStore    = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Config configures the Datastore store.
type Config struct {
	// ProjectID may be empty when DATASTORE_PROJECT_ID or the emulator provides it.
	ProjectID string
	Kind      string
	Namespace string

	Logger *slog.Logger
	Now    func() time.Time
}

// Store is a Cloud Datastore ports.QuoteStore.
type Store struct {
	client    *datastore.Client
	kind      string
	namespace string
	now       func() time.Time
	logger    *slog.Logger
}

type quoteEntity struct {
	Text       string    `datastore:"text,noindex"`
	AccentLine string    `datastore:"accentLine,noindex"`
	Author     string    `datastore:"author"`
	CreatedAt  time.Time `datastore:"createdAt"`
	Source     string    `datastore:"source"`
}

// New connects to Datastore. The connection is verified lazily by Check.
func New(ctx context.Context, cfg Config) (*Store, error) {
	projectID := cfg.ProjectID
	if projectID == "" {
		projectID = datastore.DetectProjectID
	}

	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("datastore: creating client: %w", err)
	}

	return newStore(client, cfg), nil
}

func newStore(client *datastore.Client, cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Store{
		client:    client,
		kind:      cfg.Kind,
		namespace: cfg.Namespace,
		now:       now,
		logger: logger.With(
			slog.String("component", "store.datastore"),
			slog.String("kind", cfg.Kind),
		),
	}
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Get returns the record for date, or nil when none exists.
func (s *Store) Get(ctx context.Context, date string) (*domain.QuoteRecord, error) {
	var e quoteEntity

	err := s.client.Get(ctx, s.key(date), &e)
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return nil, nil
	}

	if err != nil && !isFieldMismatch(err) {
		return nil, s.wrap("get "+date, err)
	}

	return toRecord(date, &e), nil
}

// Upsert merges write into the entity for date inside a transaction.
// Properties the write does not name are kept.
func (s *Store) Upsert(ctx context.Context, date string, write domain.QuoteWrite) error {
	key := s.key(date)
	createdAt := s.now().UTC()

	_, err := s.client.RunInTransaction(ctx, func(tx *datastore.Transaction) error {
		var props datastore.PropertyList

		if err := tx.Get(key, &props); err != nil && !errors.Is(err, datastore.ErrNoSuchEntity) {
			return err
		}

		merged := mergeProperties(props, write, createdAt)

		_, err := tx.Put(key, &merged)

		return err
	})
	if err != nil {
		return s.wrap("upsert "+date, err)
	}

	s.logger.DebugContext(ctx, "quote written", slog.String("date", date), slog.String("source", string(write.Source)))

	return nil
}

// Delete removes the entity for date.
func (s *Store) Delete(ctx context.Context, date string) error {
	if err := s.client.Delete(ctx, s.key(date)); err != nil {
		return s.wrap("delete "+date, err)
	}

	return nil
}

// Range returns up to limit records in [start, end] in key order.
func (s *Store) Range(ctx context.Context, start, end string, limit int) ([]*domain.QuoteRecord, error) {
	q := s.rangeQuery(start, end).Order(keyProperty)
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []*domain.QuoteRecord

	it := s.client.Run(ctx, q)
	for {
		var e quoteEntity

		key, err := it.Next(&e)
		if errors.Is(err, iterator.Done) {
			break
		}

		if err != nil && !isFieldMismatch(err) {
			return nil, s.wrap(fmt.Sprintf("range [%s, %s]", start, end), err)
		}

		out = append(out, toRecord(key.Name, &e))
	}

	return out, nil
}

// Count returns the number of entities in [start, end] using a server-side
// count aggregation.
func (s *Store) Count(ctx context.Context, start, end string) (int64, error) {
	aq := s.rangeQuery(start, end).NewAggregationQuery().WithCount(countAlias)

	res, err := s.client.RunAggregationQuery(ctx, aq)
	if err != nil {
		return 0, s.wrap(fmt.Sprintf("count [%s, %s]", start, end), err)
	}

	return countResult(res)
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return Name
}

// Check runs a keys-only query for one entity.
func (s *Store) Check(ctx context.Context) error {
	q := s.rangeQuery("", "").KeysOnly().Limit(1)

	if _, err := s.client.GetAll(ctx, q, nil); err != nil {
		return s.wrap("check", err)
	}

	return nil
}

func (s *Store) key(date string) *datastore.Key {
	k := datastore.NameKey(s.kind, date, nil)
	k.Namespace = s.namespace

	return k
}

func (s *Store) rangeQuery(start, end string) *datastore.Query {
	q := datastore.NewQuery(s.kind).Namespace(s.namespace)

	if start != "" {
		q = q.FilterField(keyProperty, ">=", s.key(start))
	}

	if end != "" {
		q = q.FilterField(keyProperty, "<=", s.key(end))
	}

	return q
}

// wrap maps transport-level failures to domain.UnavailableError.
func (s *Store) wrap(op string, err error) error {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return fmt.Errorf("datastore: %s: %w", op, domain.NewUnavailableError(serviceName, err.Error()))
	default:
		return fmt.Errorf("datastore: %s: %w", op, err)
	}
}

func toRecord(date string, e *quoteEntity) *domain.QuoteRecord {
	return &domain.QuoteRecord{
		Date:       date,
		Text:       e.Text,
		AccentLine: e.AccentLine,
		Author:     e.Author,
		CreatedAt:  e.CreatedAt,
		Source:     domain.Source(e.Source),
	}
}

// mergeProperties overlays the written fields onto an existing entity.
func mergeProperties(existing datastore.PropertyList, write domain.QuoteWrite, createdAt time.Time) datastore.PropertyList {
	updates := []datastore.Property{
		{Name: propText, Value: write.Text, NoIndex: true},
		{Name: propAccent, Value: write.AccentLine, NoIndex: true},
		{Name: propAuthor, Value: write.Author},
		{Name: propCreatedAt, Value: createdAt},
		{Name: propSource, Value: string(write.Source)},
	}

	merged := make(datastore.PropertyList, 0, len(existing)+len(updates))
	replaced := make(map[string]bool, len(updates))

	for _, p := range existing {
		for _, u := range updates {
			if p.Name == u.Name {
				p = u
				replaced[u.Name] = true

				break
			}
		}

		merged = append(merged, p)
	}

	for _, u := range updates {
		if !replaced[u.Name] {
			merged = append(merged, u)
		}
	}

	return merged
}

func countResult(res datastore.AggregationResult) (int64, error) {
	raw, ok := res[countAlias]
	if !ok {
		return 0, errors.New("datastore: count missing from aggregation result")
	}

	v, ok := raw.(*datastorepb.Value)
	if !ok {
		return 0, fmt.Errorf("datastore: unexpected count type %T", raw)
	}

	return v.GetIntegerValue(), nil
}

func isFieldMismatch(err error) bool {
	var mismatch *datastore.ErrFieldMismatch

	return errors.As(err, &mismatch)
}
