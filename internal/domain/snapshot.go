package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// SnapshotFallbackText is shown before any quote has been loaded on this device.
	SnapshotFallbackText = "Open app to load today's quote"

	// ReminderFallbackText is the notification body when no snapshot text exists.
	ReminderFallbackText = "Your quote for today is ready."

	// ReminderTitle is the notification title.
	ReminderTitle = "Daily Quote"

	// ReminderPreviewLength is the number of snapshot characters shown in a reminder.
	ReminderPreviewLength = 90

	// LoadFailedMessage is the message carried by a browser error state.
	LoadFailedMessage = "Could not load quote. Tap retry."

	reminderTimeLayout = "15:04"
)

// Snapshot is the last quote successfully loaded on this device.
type Snapshot struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

// DisplayText returns the snapshot text, or the fallback when nothing was saved.
func (s Snapshot) DisplayText() string {
	if s.Text == "" {
		return SnapshotFallbackText
	}

	return s.Text
}

// ReminderText builds the body of the daily reminder from a snapshot.
func ReminderText(s Snapshot) string {
	content := Truncate(s.DisplayText(), ReminderPreviewLength)
	if strings.TrimSpace(content) == "" {
		return ReminderFallbackText
	}

	return content
}

// ReminderPreference is the daily reminder setting.
type ReminderPreference struct {
	Enabled bool `json:"enabled"`
	Hour    int  `json:"hour"`
	Minute  int  `json:"minute"`
}

// DefaultReminderPreference is 09:00, enabled.
func DefaultReminderPreference() ReminderPreference {
	return ReminderPreference{Enabled: true, Hour: 9, Minute: 0}
}

// String renders the preference as HH:MM, or "off".
func (p ReminderPreference) String() string {
	if !p.Enabled {
		return "off"
	}

	return fmt.Sprintf("%02d:%02d", p.Hour, p.Minute)
}

// ParseReminderPreference parses "HH:MM" or "off".
func ParseReminderPreference(s string) (ReminderPreference, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "off") {
		return ReminderPreference{}, nil
	}

	t, err := time.Parse(reminderTimeLayout, s)
	if err != nil {
		return ReminderPreference{}, NewValidationErrorWithValue("reminder time", "must be HH:MM or off", s)
	}

	return ReminderPreference{Enabled: true, Hour: t.Hour(), Minute: t.Minute()}, nil
}

// NextReminder returns the first reminder time strictly after now.
func (p ReminderPreference) NextReminder(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), p.Hour, p.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}
