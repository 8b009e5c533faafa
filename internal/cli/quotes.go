package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotebot/internal/app"
	"github.com/jsamuelsen/quotebot/internal/domain"
)

func newShowCommand(r *root) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the quote for today or --date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := r.load(cmd.Context())
			if err != nil {
				return err
			}

			day := env.today()
			if date != "" {
				day, err = time.ParseInLocation(domain.DateLayout, date, env.Location)
				if err != nil || !domain.IsDateKey(date) {
					return domain.NewValidationErrorWithValue("date", "must be YYYY-MM-DD", date)
				}
			}

			state := newBrowser(env, day).Open(cmd.Context())
			printState(cmd.OutOrStdout(), state)

			if state.Status == domain.BrowserError {
				return fmt.Errorf("loading %s failed", state.Date)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date to show (YYYY-MM-DD)")

	return cmd
}

func newListCommand(r *root) *cobra.Command {
	var (
		month string
		limit int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scheduled quotes from today, or for --month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if month != "" && !domain.IsMonthKey(month) {
				return domain.NewValidationErrorWithValue("month", "must be YYYY-MM", month)
			}

			env, err := r.load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printed := 0
			cursor := ""

			for {
				quotes, next, err := env.API.ListQuotes(cmd.Context(), month, cursor, limit)
				if err != nil {
					return fmt.Errorf("listing quotes: %w", err)
				}

				for _, q := range quotes {
					fmt.Fprintf(out, "%s: %s\n", q.Date, domain.Truncate(q.Text, domain.ListPreviewLength))
				}
				printed += len(quotes)

				if !all || next == "" {
					break
				}
				cursor = next
			}

			if printed == 0 {
				fmt.Fprintln(out, "No matching quotes")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to list (YYYY-MM)")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size (server default when zero)")
	cmd.Flags().BoolVar(&all, "all", false, "follow the cursor through every page")

	return cmd
}

func newBrowseCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Walk the calendar interactively",
		Long: `Walk the calendar one day at a time. Commands, one per line:

  p, prev     previous day
  n, next     next day
  t, today    back to today
  r, refresh  reload the selected day
  q, quit     exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := r.load(cmd.Context())
			if err != nil {
				return err
			}

			return browse(cmd.Context(), newBrowser(env, env.today()), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// browse runs the prev/next/today/refresh loop until quit or end of input.
func browse(ctx context.Context, b *app.QuoteBrowser, in io.Reader, out io.Writer) error {
	printState(out, b.Open(ctx))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		var state domain.BrowserState

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "p", "prev":
			state = b.Prev(ctx)
		case "n", "next":
			state = b.Next(ctx)
		case "t", "today":
			state = b.Today(ctx)
		case "r", "refresh":
			state = b.Refresh(ctx)
		case "q", "quit", "exit":
			return nil
		case "":
			continue
		default:
			fmt.Fprintln(out, "commands: prev, next, today, refresh, quit")
			continue
		}

		printState(out, state)
	}
}

func newBrowser(env *Env, day time.Time) *app.QuoteBrowser {
	return app.NewQuoteBrowser(app.QuoteBrowserConfig{
		Reader:    env.API,
		Snapshots: env.Device,
		Today:     day,
		Logger:    env.Logger,
	})
}

// printState renders one browser state.
func printState(w io.Writer, s domain.BrowserState) {
	switch s.Status {
	case domain.BrowserSuccess:
		fmt.Fprintf(w, "%s\n%s\n", s.Date, s.Quote.Text)
		if s.Quote.AccentLine != "" {
			fmt.Fprintf(w, "  %s\n", s.Quote.AccentLine)
		}
		if s.Quote.Author != "" {
			fmt.Fprintf(w, "  - %s\n", s.Quote.Author)
		}
	case domain.BrowserEmpty:
		fmt.Fprintf(w, "%s\nNo quote scheduled for this day\n", s.Date)
	case domain.BrowserError:
		fmt.Fprintf(w, "%s\n%s\n", s.Date, s.Message)
	default:
		fmt.Fprintf(w, "%s\nLoading...\n", s.Date)
	}
}
