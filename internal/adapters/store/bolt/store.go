// Package bolt implements the quote store and the device snapshot store on
// an embedded bbolt file.
package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/jsamuelsen/quotebot/internal/domain"
	"github.com/jsamuelsen/quotebot/internal/ports"
)

const (
	// Name identifies the store in readiness checks.
	Name = "quote-store"

	fileMode = 0o600
	dirMode  = 0o750
)

var (
	quotesBucket = []byte("quotes")
	deviceBucket = []byte("device")

	errBucketMissing = errors.New("bucket missing")
)

var (
	_ ports.QuoteStore    = (*Store)(nil)
	_ ports.SnapshotStore = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Config configures the embedded store.
type Config struct {
	Path string

	// Timeout bounds how long Open waits for the file lock.
	Timeout time.Duration

	Logger *slog.Logger
	Now    func() time.Time
}

// Store is a bbolt-backed ports.QuoteStore and ports.SnapshotStore.
// Keys are date strings, so bbolt's byte ordering is date ordering.
type Store struct {
	db     *bbolt.DB
	now    func() time.Time
	logger *slog.Logger
}

type quoteDoc struct {
	Text       string        `json:"text"`
	AccentLine string        `json:"accentLine"`
	Author     string        `json:"author"`
	CreatedAt  time.Time     `json:"createdAt"`
	Source     domain.Source `json:"source"`
}

// Open opens or creates the store file and its buckets.
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("bolt: path is required")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), dirMode); err != nil {
		return nil, fmt.Errorf("bolt: creating data directory: %w", err)
	}

	db, err := bbolt.Open(cfg.Path, fileMode, &bbolt.Options{Timeout: cfg.Timeout})
	if err != nil {
		return nil, fmt.Errorf("bolt: opening %s: %w", cfg.Path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{quotesBucket, deviceBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("creating bucket %s: %w", name, err)
			}
		}

		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bolt: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Store{
		db:     db,
		now:    now,
		logger: logger.With(slog.String("component", "store.bolt"), slog.String("path", cfg.Path)),
	}, nil
}

// Close releases the file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the record for date, or nil when none exists.
func (s *Store) Get(ctx context.Context, date string) (*domain.QuoteRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec *domain.QuoteRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(quotesBucket)
		if b == nil {
			return errBucketMissing
		}

		data := b.Get([]byte(date))
		if data == nil {
			return nil
		}

		var err error
		rec, err = decodeQuote(date, data)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("bolt: get %s: %w", date, err)
	}

	return rec, nil
}

// Upsert merges the written fields into the record for date, stamping
// CreatedAt with the current UTC time. Fields it does not write, such as an
// imageUrl set by another tool, are kept.
func (s *Store) Upsert(ctx context.Context, date string, write domain.QuoteWrite) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fields, err := writeFields(write, s.now().UTC())
	if err != nil {
		return fmt.Errorf("bolt: encoding %s: %w", date, err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(quotesBucket)
		if b == nil {
			return errBucketMissing
		}

		data, err := mergeDoc(b.Get([]byte(date)), fields)
		if err != nil {
			return err
		}

		return b.Put([]byte(date), data)
	})
	if err != nil {
		return fmt.Errorf("bolt: upsert %s: %w", date, err)
	}

	s.logger.DebugContext(ctx, "quote written", slog.String("date", date), slog.String("source", string(write.Source)))

	return nil
}

// Delete removes the record for date.
func (s *Store) Delete(ctx context.Context, date string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(quotesBucket)
		if b == nil {
			return errBucketMissing
		}

		return b.Delete([]byte(date))
	})
	if err != nil {
		return fmt.Errorf("bolt: delete %s: %w", date, err)
	}

	return nil
}

// Range returns up to limit records in [start, end], ascending.
// A limit of zero or less returns every record in range.
func (s *Store) Range(ctx context.Context, start, end string, limit int) ([]*domain.QuoteRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []*domain.QuoteRecord

	err := s.scan(start, end, func(k, v []byte) (bool, error) {
		rec, err := decodeQuote(string(k), v)
		if err != nil {
			return false, err
		}

		out = append(out, rec)

		return limit <= 0 || len(out) < limit, nil
	})
	if err != nil {
		return nil, fmt.Errorf("bolt: range [%s, %s]: %w", start, end, err)
	}

	return out, nil
}

// Count returns the number of records in [start, end].
func (s *Store) Count(ctx context.Context, start, end string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var n int64

	err := s.scan(start, end, func(_, _ []byte) (bool, error) {
		n++
		return true, nil
	})
	if err != nil {
		return 0, fmt.Errorf("bolt: count [%s, %s]: %w", start, end, err)
	}

	return n, nil
}

// scan walks the quotes bucket from start to end inclusive until fn
// returns false or an error.
func (s *Store) scan(start, end string, fn func(k, v []byte) (bool, error)) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(quotesBucket)
		if b == nil {
			return errBucketMissing
		}

		c := b.Cursor()

		var k, v []byte
		if start == "" {
			k, v = c.First()
		} else {
			k, v = c.Seek([]byte(start))
		}

		for ; k != nil; k, v = c.Next() {
			if end != "" && string(k) > end {
				return nil
			}

			more, err := fn(k, v)
			if err != nil {
				return err
			}

			if !more {
				return nil
			}
		}

		return nil
	})
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return Name
}

// Check verifies the quotes bucket is readable.
func (s *Store) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(quotesBucket) == nil {
			return errBucketMissing
		}

		return nil
	})
}

// writeFields encodes the fields an upsert owns, keyed like quoteDoc.
func writeFields(write domain.QuoteWrite, createdAt time.Time) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(quoteDoc{
		Text:       write.Text,
		AccentLine: write.AccentLine,
		Author:     write.Author,
		CreatedAt:  createdAt,
		Source:     write.Source,
	})
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage

	return fields, json.Unmarshal(data, &fields)
}

// mergeDoc overlays fields on the stored document, if any.
func mergeDoc(existing []byte, fields map[string]json.RawMessage) ([]byte, error) {
	doc := make(map[string]json.RawMessage, len(fields))
	if existing != nil {
		if err := json.Unmarshal(existing, &doc); err != nil {
			return nil, fmt.Errorf("decoding stored document: %w", err)
		}
	}

	maps.Copy(doc, fields)

	return json.Marshal(doc)
}

func decodeQuote(date string, data []byte) (*domain.QuoteRecord, error) {
	var doc quoteDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", date, err)
	}

	return &domain.QuoteRecord{
		Date:       date,
		Text:       doc.Text,
		AccentLine: doc.AccentLine,
		Author:     doc.Author,
		CreatedAt:  doc.CreatedAt,
		Source:     doc.Source,
	}, nil
}
