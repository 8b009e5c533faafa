// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
//
// Application Layer Responsibilities:
//   - Route chat commands to the quote store and reply sender
//   - Serve quotes to the read API with an optional cache in front
//   - Drive the client-side daily quote browser
//
// What does NOT belong here:
//   - HTTP or Telegram wire formats (that's adapters)
//   - Store queries (that's store adapters)
//   - Command grammar (that's the domain layer)
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jsamuelsen/quotebot/internal/domain"
	"github.com/jsamuelsen/quotebot/internal/platform/logging"
	"github.com/jsamuelsen/quotebot/internal/ports"
)

// Status is the token returned to the webhook caller for one dispatch.
type Status string

// Dispatch statuses.
const (
	StatusIgnored              Status = "ignored"
	StatusForbidden            Status = "forbidden"
	StatusSaved                Status = "saved"
	StatusDuplicateAdd         Status = "duplicate-add"
	StatusInvalidAdd           Status = "invalid-add"
	StatusUpdated              Status = "updated"
	StatusMissingUpdateTarget  Status = "missing-update-target"
	StatusInvalidUpdate        Status = "invalid-update"
	StatusPreviewed            Status = "previewed"
	StatusMissingPreviewTarget Status = "missing-preview-target"
	StatusInvalidPreview       Status = "invalid-preview"
	StatusDeleted              Status = "deleted"
	StatusInvalidDelete        Status = "invalid-delete"
	StatusListed               Status = "listed"
	StatusInvalidList          Status = "invalid-list"
	StatusStats                Status = "stats"
	StatusHelp                 Status = "help"
	StatusUnknownCommand       Status = "unknown-command"
	StatusError                Status = "error"
)

// Command labels used in logs and metrics.
const (
	CommandNone    = "none"
	CommandUnknown = "unknown"
)

// Message is an inbound chat message.
type Message struct {
	ChatID int64
	Text   string
}

// Outcome is the result of dispatching one message.
type Outcome struct {
	Command string
	Status  Status
}

type handlerFunc func(ctx context.Context, chatID int64, text string) (Status, error)

type route struct {
	prefix  string
	command string
	handle  handlerFunc
}

// Dispatcher authenticates, routes and executes chat commands.
// Each call is independent; no state is kept between messages.
type Dispatcher struct {
	store   ports.QuoteStore
	sender  ports.ReplySender
	cache   ports.Cache
	owner   string
	loc     *time.Location
	now     func() time.Time
	logger  *slog.Logger
	routes  []route
	unknown route
}

// DispatcherConfig holds the dispatcher's dependencies.
type DispatcherConfig struct {
	// Store is required.
	Store ports.QuoteStore

	// Sender is required.
	Sender ports.ReplySender

	// Cache, when set, has its entry for a date evicted after every write.
	Cache ports.Cache

	// OwnerChatID is the only chat allowed to issue commands.
	OwnerChatID string

	// Location decides what "today" means for /list and /stats. Defaults to UTC.
	Location *time.Location

	// Now defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// NewDispatcher creates a dispatcher. It panics when the store or sender is nil.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.Store == nil {
		panic("app: dispatcher requires a quote store")
	}

	if cfg.Sender == nil {
		panic("app: dispatcher requires a reply sender")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	d := &Dispatcher{
		store:  cfg.Store,
		sender: cfg.Sender,
		cache:  cfg.Cache,
		owner:  cfg.OwnerChatID,
		loc:    loc,
		now:    now,
		logger: logger.With(slog.String("component", "app.Dispatcher")),
	}

	d.routes = []route{
		{prefix: domain.CommandAddForce, command: "add", handle: d.add},
		{prefix: domain.CommandAdd, command: "add", handle: d.add},
		{prefix: domain.CommandUpdate, command: "update", handle: d.update},
		{prefix: domain.CommandPreview, command: "preview", handle: d.preview},
		{prefix: domain.CommandDelete, command: "delete", handle: d.delete},
		{prefix: domain.CommandList, command: "list", handle: d.list},
		{prefix: domain.CommandStats, command: "stats", handle: d.stats},
		{prefix: domain.CommandHelp, command: "help", handle: d.help},
	}
	d.unknown = route{command: CommandUnknown, handle: d.unknownCommand}

	return d
}

// Dispatch handles one message.
//
// A message without text is ignored and a message from any chat but the
// owner's is forbidden; neither touches the store or sends a reply.
// The returned error is non-nil only for StatusError, after a best-effort
// "Error: ..." reply has been attempted.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) (Outcome, error) {
	logger := logging.FromContextOr(ctx, d.logger)

	if msg.Text == "" {
		return Outcome{Command: CommandNone, Status: StatusIgnored}, nil
	}

	if strconv.FormatInt(msg.ChatID, 10) != d.owner {
		logger.WarnContext(ctx, "rejected message from non-owner chat",
			slog.Int64("chat_id", msg.ChatID),
		)

		return Outcome{Command: CommandNone, Status: StatusForbidden}, nil
	}

	text := strings.TrimSpace(msg.Text)
	r := d.match(text)

	ctx = logging.WithContext(ctx, logger)
	ctx = logging.WithCommand(ctx, r.command)
	logger = logging.FromContext(ctx)

	status, err := r.handle(ctx, msg.ChatID, text)
	if err != nil {
		logger.ErrorContext(ctx, "command failed", slog.Any("error", err))

		if sendErr := d.sender.SendText(ctx, msg.ChatID, errorReply(err)); sendErr != nil {
			logger.WarnContext(ctx, "failed to send error reply",
				slog.Any("error", sendErr),
			)
		}

		return Outcome{Command: r.command, Status: StatusError}, err
	}

	logger.InfoContext(ctx, "command handled", slog.String("status", string(status)))

	return Outcome{Command: r.command, Status: status}, nil
}

func (d *Dispatcher) match(text string) route {
	for _, r := range d.routes {
		if strings.HasPrefix(text, r.prefix) {
			return r
		}
	}

	return d.unknown
}

func (d *Dispatcher) add(ctx context.Context, chatID int64, text string) (Status, error) {
	payload, ok := domain.ParseAddCommand(text)
	if !ok {
		return StatusInvalidAdd, d.reply(ctx, chatID, addUsage)
	}

	existing, err := d.store.Get(ctx, payload.Date)
	if err != nil {
		return "", fmt.Errorf("loading quote for %s: %w", payload.Date, err)
	}

	if existing != nil && !payload.Force {
		return StatusDuplicateAdd, d.reply(ctx, chatID, duplicateReply(payload.Date))
	}

	if err := d.write(ctx, payload, domain.SourceTelegram); err != nil {
		return "", err
	}

	return StatusSaved, d.reply(ctx, chatID, savedReply(payload.Date, payload.Force))
}

func (d *Dispatcher) update(ctx context.Context, chatID int64, text string) (Status, error) {
	payload, ok := domain.ParseUpdateCommand(text)
	if !ok {
		return StatusInvalidUpdate, d.reply(ctx, chatID, updateUsage)
	}

	existing, err := d.store.Get(ctx, payload.Date)
	if err != nil {
		return "", fmt.Errorf("loading quote for %s: %w", payload.Date, err)
	}

	if existing == nil {
		return StatusMissingUpdateTarget, d.reply(ctx, chatID, missingUpdateReply(payload.Date))
	}

	if err := d.write(ctx, payload, domain.SourceTelegramUpdate); err != nil {
		return "", err
	}

	return StatusUpdated, d.reply(ctx, chatID, updatedReply(payload.Date))
}

func (d *Dispatcher) preview(ctx context.Context, chatID int64, text string) (Status, error) {
	date, ok := domain.ParseDateCommand(text, domain.CommandPreview)
	if !ok {
		return StatusInvalidPreview, d.reply(ctx, chatID, previewUsage)
	}

	rec, err := d.store.Get(ctx, date)
	if err != nil {
		return "", fmt.Errorf("loading quote for %s: %w", date, err)
	}

	if rec == nil {
		return StatusMissingPreviewTarget, d.reply(ctx, chatID, missingPreviewReply(date))
	}

	return StatusPreviewed, d.reply(ctx, chatID, previewReply(rec))
}

func (d *Dispatcher) delete(ctx context.Context, chatID int64, text string) (Status, error) {
	date, ok := domain.ParseDateCommand(text, domain.CommandDelete)
	if !ok {
		return StatusInvalidDelete, d.reply(ctx, chatID, deleteUsage)
	}

	if err := d.store.Delete(ctx, date); err != nil {
		return "", fmt.Errorf("deleting quote for %s: %w", date, err)
	}

	d.evict(ctx, date)

	return StatusDeleted, d.reply(ctx, chatID, deletedReply(date))
}

func (d *Dispatcher) list(ctx context.Context, chatID int64, text string) (Status, error) {
	month, err := domain.ParseListCommand(text)
	if err != nil {
		return StatusInvalidList, d.reply(ctx, chatID, listUsage)
	}

	start, end := domain.DateKey(d.today()), domain.MaxDateKey
	if month != "" {
		start, end = domain.MonthRange(month)
	}

	records, err := d.store.Range(ctx, start, end, ListLimit)
	if err != nil {
		return "", fmt.Errorf("listing quotes: %w", err)
	}

	return StatusListed, d.reply(ctx, chatID, listReply(records))
}

func (d *Dispatcher) stats(ctx context.Context, chatID int64, _ string) (Status, error) {
	total, err := d.store.Count(ctx, "", "")
	if err != nil {
		return "", fmt.Errorf("counting quotes: %w", err)
	}

	month := domain.MonthKey(d.today())
	start, end := domain.MonthRange(month)

	monthCount, err := d.store.Count(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("counting quotes for %s: %w", month, err)
	}

	return StatusStats, d.reply(ctx, chatID, statsReply(total, month, monthCount))
}

func (d *Dispatcher) help(ctx context.Context, chatID int64, _ string) (Status, error) {
	return StatusHelp, d.reply(ctx, chatID, HelpText)
}

func (d *Dispatcher) unknownCommand(ctx context.Context, chatID int64, _ string) (Status, error) {
	return StatusUnknownCommand, d.reply(ctx, chatID, HelpText)
}

func (d *Dispatcher) write(ctx context.Context, payload *domain.CommandPayload, source domain.Source) error {
	err := d.store.Upsert(ctx, payload.Date, domain.QuoteWrite{
		Text:       payload.QuoteText,
		AccentLine: payload.AccentLine,
		Author:     payload.Author,
		Source:     source,
	})
	if err != nil {
		return fmt.Errorf("saving quote for %s: %w", payload.Date, err)
	}

	d.evict(ctx, payload.Date)

	return nil
}

// evict drops the cached read-API entry for date. Failures are logged only;
// the cache entry expires on its own.
func (d *Dispatcher) evict(ctx context.Context, date string) {
	if d.cache == nil {
		return
	}

	if err := d.cache.Delete(ctx, quoteCacheKey(date)); err != nil {
		logging.FromContextOr(ctx, d.logger).WarnContext(ctx, "failed to evict cached quote",
			slog.String("date", date),
			slog.Any("error", err),
		)
	}
}

func (d *Dispatcher) reply(ctx context.Context, chatID int64, text string) error {
	if err := d.sender.SendText(ctx, chatID, text); err != nil {
		return fmt.Errorf("sending reply: %w", err)
	}

	return nil
}

func (d *Dispatcher) today() time.Time {
	return d.now().In(d.loc)
}
