package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// secretFields are attribute and struct field names whose values never
// reach a log line, whatever their content.
var secretFields = []string{
	"bot_token", "botToken", "BotToken", "token",
	"password", "Password",
	"secret", "webhook_secret", "secret_token",
	"authorization", "cookie",
	"api_key", "apiKey",
	"credentials",
}

// secretPatterns match secret values wherever they appear.
var secretPatterns = []*regexp.Regexp{
	// Telegram bot token, bare or inside a /bot<token>/method path.
	regexp.MustCompile(`\d{5,}:[A-Za-z0-9_-]{20,}`),

	// Redis URL with a password in the userinfo part.
	regexp.MustCompile(`^rediss?://[^@/]*:[^@/]*@`),

	// Authorization header values.
	regexp.MustCompile(`(?i)^(bearer|basic)\s+\S+$`),
}

// DefaultRedactOptions returns the masq options every handler applies.
func DefaultRedactOptions() []masq.Option {
	opts := make([]masq.Option, 0, len(secretFields)+len(secretPatterns)+1)

	for _, name := range secretFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	for _, re := range secretPatterns {
		opts = append(opts, masq.WithRegex(re))
	}

	return append(opts, masq.WithFieldPrefix("secret"))
}

// NewReplaceAttr returns a slog ReplaceAttr that redacts secrets, with
// extra masq options appended to the defaults:
//
//	replace := logging.NewReplaceAttr(masq.WithFieldName("owner_chat_id"))
func NewReplaceAttr(extra ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), extra...)...)
}
