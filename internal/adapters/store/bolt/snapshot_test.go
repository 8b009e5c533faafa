package bolt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebot/internal/domain"
)

func TestSnapshot_DefaultsBeforeFirstSave(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Snapshot{}, snap)
	assert.Equal(t, domain.SnapshotFallbackText, snap.DisplayText())

	pref, err := s.LoadReminder(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultReminderPreference(), pref)
}

func TestSnapshot_SaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := domain.Snapshot{Text: "Stay curious", Date: "2024-05-07"}
	require.NoError(t, s.SaveSnapshot(ctx, want))

	got, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReminder_SaveOff(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveReminder(ctx, domain.ReminderPreference{}))

	pref, err := s.LoadReminder(ctx)
	require.NoError(t, err)
	assert.False(t, pref.Enabled)
	assert.Equal(t, "off", pref.String())
}

func TestReminder_SaveTime(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveReminder(ctx, domain.ReminderPreference{Enabled: true, Hour: 7, Minute: 30}))

	pref, err := s.LoadReminder(ctx)
	require.NoError(t, err)
	assert.Equal(t, "07:30", pref.String())
}

func TestSnapshot_SeparateFromQuotes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSnapshot(ctx, domain.Snapshot{Text: "x", Date: "2024-05-07"}))

	n, err := s.Count(ctx, "", "")
	require.NoError(t, err)
	assert.Zero(t, n)
}
