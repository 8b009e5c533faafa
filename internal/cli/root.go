// Package cli implements quotectl, the terminal client for the quote
// calendar. It reads quotes from the service's read API and keeps the
// device state (widget snapshot, reminder time) in a local bbolt file.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotebot/internal/domain"
	"github.com/jsamuelsen/quotebot/internal/ports"
)

// QuoteAPI is the read API as seen by the CLI.
type QuoteAPI interface {
	ports.QuoteReader
	ListQuotes(ctx context.Context, month, cursor string, limit int) ([]*domain.DailyQuote, string, error)
}

// Env holds what the commands run against.
type Env struct {
	API    QuoteAPI
	Device ports.SnapshotStore

	// Location decides which date is "today". Defaults to time.Local.
	Location *time.Location

	// Now defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// SetupFunc builds the Env once, on the first command that needs it.
// The returned cleanup runs after the command finishes.
type SetupFunc func(ctx context.Context) (*Env, func(), error)

// BuildInfo is the version shown by --version.
type BuildInfo struct {
	Version string
	Commit  string
}

type root struct {
	setup SetupFunc

	once    sync.Once
	env     *Env
	cleanup func()
	err     error
}

// Run builds the command tree, executes it with args and releases the Env.
func Run(ctx context.Context, setup SetupFunc, build BuildInfo, args []string, in io.Reader, out io.Writer) error {
	r := &root{setup: setup}
	defer r.close()

	cmd := r.command(build)
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(out)

	return cmd.ExecuteContext(ctx)
}

func (r *root) command(build BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quotectl",
		Short: "Browse the daily quote calendar from a terminal",
		Long: `quotectl reads the daily quote calendar from the quotebot read API.

It keeps the last loaded quote as the widget snapshot and stores the
daily reminder time next to it.`,
		Version:       fmt.Sprintf("%s (commit: %s)", build.Version, build.Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(
		newShowCommand(r),
		newListCommand(r),
		newBrowseCommand(r),
		newWidgetCommand(r),
		newRemindCommand(r),
		newReminderCommand(r),
	)

	return cmd
}

func (r *root) close() {
	if r.cleanup != nil {
		r.cleanup()
	}
}

// load returns the Env, building it on first use.
func (r *root) load(ctx context.Context) (*Env, error) {
	r.once.Do(func() {
		env, cleanup, err := r.setup(ctx)
		if err != nil {
			r.err = err
			return
		}

		if env.Location == nil {
			env.Location = time.Local
		}
		if env.Now == nil {
			env.Now = time.Now
		}
		if env.Logger == nil {
			env.Logger = slog.New(slog.DiscardHandler)
		}

		r.env, r.cleanup = env, cleanup
	})

	return r.env, r.err
}

// today returns the current date in the Env location.
func (e *Env) today() time.Time {
	return e.Now().In(e.Location)
}
