package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jsamuelsen/quotebot/internal/domain"
	"github.com/jsamuelsen/quotebot/internal/ports"
)

// Reminder is a rendered daily notification.
type Reminder struct {
	Title   string
	Body    string
	Enabled bool
	Next    time.Time
}

// DeviceService reads and writes the on-device widget snapshot and
// reminder preference.
type DeviceService struct {
	store ports.SnapshotStore
	now   func() time.Time
}

// NewDeviceService creates a device service. now defaults to time.Now.
func NewDeviceService(store ports.SnapshotStore, now func() time.Time) *DeviceService {
	if now == nil {
		now = time.Now
	}

	return &DeviceService{store: store, now: now}
}

// Widget returns the snapshot shown by the home-screen widget.
func (s *DeviceService) Widget(ctx context.Context) (domain.Snapshot, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("loading snapshot: %w", err)
	}

	return snap, nil
}

// Reminder renders the notification for the current snapshot.
func (s *DeviceService) Reminder(ctx context.Context) (Reminder, error) {
	snap, err := s.Widget(ctx)
	if err != nil {
		return Reminder{}, err
	}

	pref, err := s.store.LoadReminder(ctx)
	if err != nil {
		return Reminder{}, fmt.Errorf("loading reminder preference: %w", err)
	}

	r := Reminder{
		Title:   domain.ReminderTitle,
		Body:    domain.ReminderText(snap),
		Enabled: pref.Enabled,
	}

	if pref.Enabled {
		r.Next = pref.NextReminder(s.now())
	}

	return r, nil
}

// SetReminder parses and saves a reminder preference ("HH:MM" or "off").
func (s *DeviceService) SetReminder(ctx context.Context, value string) (domain.ReminderPreference, error) {
	pref, err := domain.ParseReminderPreference(value)
	if err != nil {
		return domain.ReminderPreference{}, err
	}

	if err := s.store.SaveReminder(ctx, pref); err != nil {
		return domain.ReminderPreference{}, fmt.Errorf("saving reminder preference: %w", err)
	}

	return pref, nil
}
