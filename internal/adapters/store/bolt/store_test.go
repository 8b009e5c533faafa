package bolt

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/jsamuelsen/quotebot/internal/domain"
)

var fixedNow = time.Date(2024, 5, 7, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(Config{
		Path:    filepath.Join(t.TempDir(), "nested", "quotes.db"),
		Timeout: time.Second,
		Now:     func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func seed(t *testing.T, s *Store, dates ...string) {
	t.Helper()

	for _, d := range dates {
		require.NoError(t, s.Upsert(context.Background(), d, domain.QuoteWrite{
			Text:       "quote " + d,
			AccentLine: domain.DefaultAccentLine,
			Source:     domain.SourceTelegram,
		}))
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Config{})
	require.Error(t, err)
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)

	rec, err := s.Get(context.Background(), "2024-05-07")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStore_UpsertAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, "2024-05-07", domain.QuoteWrite{
		Text:       "Stay curious",
		AccentLine: "keep going",
		Author:     "Ada",
		Source:     domain.SourceTelegram,
	}))

	rec, err := s.Get(ctx, "2024-05-07")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "2024-05-07", rec.Date)
	assert.Equal(t, "Stay curious", rec.Text)
	assert.Equal(t, "keep going", rec.AccentLine)
	assert.Equal(t, "Ada", rec.Author)
	assert.Equal(t, domain.SourceTelegram, rec.Source)
	assert.Equal(t, fixedNow.UTC(), rec.CreatedAt)
	assert.Equal(t, time.UTC, rec.CreatedAt.Location())
}

func TestStore_UpsertOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seed(t, s, "2024-05-07")
	require.NoError(t, s.Upsert(ctx, "2024-05-07", domain.QuoteWrite{
		Text:   "replacement",
		Source: domain.SourceTelegramUpdate,
	}))

	rec, err := s.Get(ctx, "2024-05-07")
	require.NoError(t, err)
	assert.Equal(t, "replacement", rec.Text)
	assert.Equal(t, domain.SourceTelegramUpdate, rec.Source)

	n, err := s.Count(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStore_UpsertKeepsUnknownFields(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(quotesBucket).Put([]byte("2024-01-01"), []byte(`{"text":"old","author":"Ada","imageUrl":"x.png"}`))
	}))

	require.NoError(t, s.Upsert(ctx, "2024-01-01", domain.QuoteWrite{
		Text:   "new",
		Source: domain.SourceTelegramUpdate,
	}))

	var raw map[string]any
	require.NoError(t, s.db.View(func(tx *bbolt.Tx) error {
		return json.Unmarshal(tx.Bucket(quotesBucket).Get([]byte("2024-01-01")), &raw)
	}))

	assert.Equal(t, "x.png", raw["imageUrl"])
	assert.Equal(t, "new", raw["text"])
	assert.Equal(t, "", raw["author"])
	assert.Equal(t, string(domain.SourceTelegramUpdate), raw["source"])

	rec, err := s.Get(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "new", rec.Text)
	assert.Equal(t, fixedNow.UTC(), rec.CreatedAt)
}

func TestStore_UpsertCorruptDocument(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(quotesBucket).Put([]byte("2024-01-01"), []byte("not json"))
	}))

	err := s.Upsert(ctx, "2024-01-01", domain.QuoteWrite{Text: "new"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bolt: upsert 2024-01-01")
}

func TestStore_Delete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seed(t, s, "2024-05-07")
	require.NoError(t, s.Delete(ctx, "2024-05-07"))
	require.NoError(t, s.Delete(ctx, "2024-05-07"), "deleting a missing record is not an error")

	rec, err := s.Get(ctx, "2024-05-07")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStore_Range(t *testing.T) {
	s := openTestStore(t)
	seed(t, s, "2024-06-02", "2024-04-30", "2024-05-31", "2024-05-01", "2024-05-15")

	tests := []struct {
		name       string
		start, end string
		limit      int
		want       []string
	}{
		{name: "month", start: "2024-05-01", end: "2024-05-31", limit: 31, want: []string{"2024-05-01", "2024-05-15", "2024-05-31"}},
		{name: "limit", start: "2024-05-01", end: "2024-05-31", limit: 2, want: []string{"2024-05-01", "2024-05-15"}},
		{name: "open end", start: "2024-05-20", end: "", limit: 10, want: []string{"2024-05-31", "2024-06-02"}},
		{name: "open start", start: "", end: "2024-05-01", limit: 10, want: []string{"2024-04-30", "2024-05-01"}},
		{name: "no limit", start: "", end: "", limit: 0, want: []string{"2024-04-30", "2024-05-01", "2024-05-15", "2024-05-31", "2024-06-02"}},
		{name: "empty", start: "2025-01-01", end: domain.MaxDateKey, limit: 31, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := s.Range(context.Background(), tt.start, tt.end, tt.limit)
			require.NoError(t, err)

			var got []string
			for _, r := range recs {
				got = append(got, r.Date)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_Count(t *testing.T) {
	s := openTestStore(t)
	seed(t, s, "2024-04-30", "2024-05-01", "2024-05-15", "2024-05-31")

	n, err := s.Count(context.Background(), "2024-05-01", "2024-05-31")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = s.Count(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestStore_CancelledContext(t *testing.T) {
	s := openTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Get(ctx, "2024-05-07")
	require.ErrorIs(t, err, context.Canceled)

	err = s.Upsert(ctx, "2024-05-07", domain.QuoteWrite{Text: "x"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestStore_Check(t *testing.T) {
	s := openTestStore(t)

	assert.Equal(t, Name, s.Name())
	assert.NoError(t, s.Check(context.Background()))
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.db")

	s, err := Open(Config{Path: path, Timeout: time.Second})
	require.NoError(t, err)
	seed(t, s, "2024-05-07")
	require.NoError(t, s.Close())

	s, err = Open(Config{Path: path, Timeout: time.Second})
	require.NoError(t, err)
	defer s.Close()

	rec, err := s.Get(context.Background(), "2024-05-07")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "quote 2024-05-07", rec.Text)
}
