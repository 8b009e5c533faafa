package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotebot/internal/app"
)

func newWidgetCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "widget",
		Short: "Print the home-screen widget text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := r.load(cmd.Context())
			if err != nil {
				return err
			}

			snap, err := app.NewDeviceService(env.Device, env.Now).Widget(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), snap.DisplayText())

			return nil
		},
	}
}

func newRemindCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Print the daily reminder notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := r.load(cmd.Context())
			if err != nil {
				return err
			}

			reminder, err := app.NewDeviceService(env.Device, env.Now).Reminder(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, reminder.Title)
			fmt.Fprintln(out, reminder.Body)

			if reminder.Enabled {
				fmt.Fprintf(out, "next: %s\n", reminder.Next.In(env.Location).Format("2006-01-02 15:04"))
			} else {
				fmt.Fprintln(out, "reminder off")
			}

			return nil
		},
	}
}

func newReminderCommand(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminder",
		Short: "Manage the daily reminder time",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set HH:MM|off",
		Short: "Set the reminder time, or turn it off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := r.load(cmd.Context())
			if err != nil {
				return err
			}

			pref, err := app.NewDeviceService(env.Device, env.Now).SetReminder(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "reminder: %s\n", pref)

			return nil
		},
	})

	return cmd
}
