package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Command prefixes recognized by the dispatcher, in routing order.
const (
	CommandAddForce = "/add --force"
	CommandAdd      = "/add"
	CommandUpdate   = "/update"
	CommandPreview  = "/preview"
	CommandDelete   = "/delete"
	CommandList     = "/list"
	CommandStats    = "/stats"
	CommandHelp     = "/help"
)

var (
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// CommandPayload is the parsed form of an /add or /update message.
type CommandPayload struct {
	Date       string
	QuoteText  string
	AccentLine string
	Author     string
	Force      bool
}

// IsDateKey reports whether s has the YYYY-MM-DD shape.
// It checks shape only; 2024-02-31 is accepted.
func IsDateKey(s string) bool {
	return dateRegex.MatchString(s)
}

// IsMonthKey reports whether s is a YYYY-MM month with a month number
// between 01 and 12.
func IsMonthKey(s string) bool {
	if !monthRegex.MatchString(s) {
		return false
	}

	_, err := time.Parse(MonthLayout, s)

	return err == nil
}

// ParseAddCommand parses "/add [--force] DATE | text | accent | author".
// Accent and author are optional. It returns false when the date is
// missing or malformed, or when the text is empty or too long.
func ParseAddCommand(raw string) (*CommandPayload, bool) {
	force := strings.HasPrefix(raw, CommandAddForce)

	rest := raw
	if force {
		rest = strings.TrimPrefix(rest, CommandAddForce)
	} else {
		rest = strings.TrimPrefix(rest, CommandAdd)
	}

	segments := strings.Split(strings.TrimSpace(rest), "|")
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}

	date := segment(segments, 0)
	text := segment(segments, 1)

	if date == "" || text == "" || !IsDateKey(date) {
		return nil, false
	}

	if utf8.RuneCountInString(text) > MaxQuoteLength {
		return nil, false
	}

	accent := segment(segments, 2)
	if accent == "" {
		accent = DefaultAccentLine
	}

	return &CommandPayload{
		Date:       date,
		QuoteText:  text,
		AccentLine: accent,
		Author:     segment(segments, 3),
		Force:      force,
	}, true
}

// ParseUpdateCommand parses "/update DATE | text | accent | author" with
// the same grammar as /add.
func ParseUpdateCommand(raw string) (*CommandPayload, bool) {
	return ParseAddCommand(strings.Replace(raw, CommandUpdate, CommandAdd, 1))
}

// ParseDateCommand strips command from raw and returns the remaining date.
func ParseDateCommand(raw, command string) (string, bool) {
	date := strings.TrimSpace(strings.TrimPrefix(raw, command))
	if !IsDateKey(date) {
		return "", false
	}

	return date, true
}

// ParseListCommand parses "/list [YYYY-MM]".
// An empty month with a nil error means no filter was given.
func ParseListCommand(raw string) (string, error) {
	month := strings.TrimSpace(strings.TrimPrefix(raw, CommandList))
	if month == "" {
		return "", nil
	}

	if !IsMonthKey(month) {
		return "", NewValidationErrorWithValue("month", "must match YYYY-MM", month)
	}

	return month, nil
}

func segment(segments []string, i int) string {
	if i < len(segments) {
		return segments[i]
	}

	return ""
}
