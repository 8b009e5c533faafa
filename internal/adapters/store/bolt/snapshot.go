package bolt

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/jsamuelsen/quotebot/internal/domain"
)

var (
	snapshotKey = []byte("snapshot")
	reminderKey = []byte("reminder")
)

// SaveSnapshot replaces the widget snapshot.
func (s *Store) SaveSnapshot(ctx context.Context, snap domain.Snapshot) error {
	return s.putDevice(ctx, snapshotKey, snap)
}

// LoadSnapshot returns the saved snapshot, or an empty one before the first save.
func (s *Store) LoadSnapshot(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot
	if _, err := s.getDevice(ctx, snapshotKey, &snap); err != nil {
		return domain.Snapshot{}, err
	}

	return snap, nil
}

// SaveReminder replaces the reminder preference.
func (s *Store) SaveReminder(ctx context.Context, pref domain.ReminderPreference) error {
	return s.putDevice(ctx, reminderKey, pref)
}

// LoadReminder returns the saved preference, or the 09:00 default.
func (s *Store) LoadReminder(ctx context.Context) (domain.ReminderPreference, error) {
	var pref domain.ReminderPreference

	found, err := s.getDevice(ctx, reminderKey, &pref)
	if err != nil {
		return domain.ReminderPreference{}, err
	}

	if !found {
		return domain.DefaultReminderPreference(), nil
	}

	return pref, nil
}

func (s *Store) putDevice(ctx context.Context, key []byte, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("bolt: encoding %s: %w", key, err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(deviceBucket)
		if b == nil {
			return errBucketMissing
		}

		return b.Put(key, data)
	})
	if err != nil {
		return fmt.Errorf("bolt: saving %s: %w", key, err)
	}

	return nil
}

func (s *Store) getDevice(ctx context.Context, key []byte, v any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var found bool

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(deviceBucket)
		if b == nil {
			return errBucketMissing
		}

		data := b.Get(key)
		if data == nil {
			return nil
		}

		found = true

		return json.Unmarshal(data, v)
	})
	if err != nil {
		return false, fmt.Errorf("bolt: loading %s: %w", key, err)
	}

	return found, nil
}
