package app

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen/quotebot/internal/domain"
)

// ListLimit is the maximum number of records a /list reply shows.
const ListLimit = 31

const (
	addUsage     = "Invalid format/length. Use /add YYYY-MM-DD | quote text | accent(optional) | author(optional). Quote max length: 600"
	updateUsage  = "Invalid format/length. Use /update YYYY-MM-DD | quote text | accent(optional) | author(optional). Quote max length: 600"
	previewUsage = "Invalid format. Use /preview YYYY-MM-DD"
	deleteUsage  = "Invalid format. Use /delete YYYY-MM-DD"
	listUsage    = "Invalid format. Use /list [YYYY-MM]"
	emptyList    = "No matching quotes"
)

// HelpText lists every command the bot understands.
var HelpText = strings.Join([]string{
	"Commands:",
	"/add YYYY-MM-DD | quote text | accent(optional) | author(optional)",
	"/add --force YYYY-MM-DD | quote text | accent(optional) | author(optional)",
	"/update YYYY-MM-DD | quote text | accent(optional) | author(optional)",
	"/preview YYYY-MM-DD",
	"/list [YYYY-MM]",
	"/stats",
	"/delete YYYY-MM-DD",
	"/help",
}, "\n")

func savedReply(date string, force bool) string {
	if force {
		return "Force-saved quote for " + date
	}

	return "Saved quote for " + date
}

func duplicateReply(date string) string {
	return fmt.Sprintf("Quote already exists for %s. Use /update or /add --force.", date)
}

func missingUpdateReply(date string) string {
	return fmt.Sprintf("No quote exists for %s. Use /add to create it.", date)
}

func updatedReply(date string) string {
	return "Updated quote for " + date
}

func deletedReply(date string) string {
	return "Deleted " + date
}

func missingPreviewReply(date string) string {
	return "No quote scheduled for " + date
}

// previewReply renders a record; empty body, accent or author lines are omitted.
func previewReply(rec *domain.QuoteRecord) string {
	lines := []string{"Preview " + rec.Date}

	if rec.Text != "" {
		lines = append(lines, rec.Text)
	}

	if rec.AccentLine != "" {
		lines = append(lines, "Accent: "+rec.AccentLine)
	}

	if rec.Author != "" {
		lines = append(lines, "Author: "+rec.Author)
	}

	return strings.Join(lines, "\n")
}

func listReply(records []*domain.QuoteRecord) string {
	if len(records) == 0 {
		return emptyList
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, rec.Date+": "+domain.Truncate(rec.Text, domain.ListPreviewLength))
	}

	return strings.Join(lines, "\n")
}

func statsReply(total int64, month string, monthCount int64) string {
	return fmt.Sprintf("Stats\nTotal quotes: %d\n%s: %d", total, month, monthCount)
}

func errorReply(err error) string {
	return "Error: " + err.Error()
}
