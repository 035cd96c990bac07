package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/timetracking"
	"github.com/cmlabs-hris/seeker-tracker/internal/tui"
)

func newStatusCmd(a *app) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the clock state and worked time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.identity(cmd.Context())
			if err != nil {
				return err
			}
			date, err := a.date(dateFlag)
			if err != nil {
				return err
			}

			view, err := a.tracking.View(cmd.Context(), id, date)
			if err != nil {
				return err
			}
			printView(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "day to show (YYYY-MM-DD, default today)")
	return cmd
}

func newLogCmd(a *app) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "List the day's clock entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.identity(cmd.Context())
			if err != nil {
				return err
			}
			date, err := a.date(dateFlag)
			if err != nil {
				return err
			}

			view, err := a.tracking.View(cmd.Context(), id, date)
			if err != nil {
				return err
			}
			printEntries(cmd.OutOrStdout(), view.Entries)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "day to list (YYYY-MM-DD, default today)")
	return cmd
}

// clockAction runs one mutating call for the logged-in seeker and prints the result.
func clockAction(a *app, done string, fn func(ctx context.Context, id identity.Identity) (timetracking.View, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := a.identity(cmd.Context())
		if err != nil {
			return err
		}

		view, err := fn(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), done)
		printView(cmd.OutOrStdout(), view)
		return nil
	}
}

func newInCmd(a *app) *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "in",
		Short: "Clock in",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = clockAction(a, "Clocked in", func(ctx context.Context, id identity.Identity) (timetracking.View, error) {
		return a.tracking.ClockIn(ctx, id, timetracking.ClockInRequest{
			Location:   location,
			DeviceInfo: a.deviceInfo(ctx),
		})
	})

	cmd.Flags().StringVar(&location, "location", "", "where you are working from")
	return cmd
}

func newBreakCmd(a *app) *cobra.Command {
	var breakType string

	cmd := &cobra.Command{
		Use:   "break",
		Short: "Start your break (one per day)",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = clockAction(a, "Break started", func(ctx context.Context, id identity.Identity) (timetracking.View, error) {
		return a.tracking.StartBreak(ctx, id, timetracking.StartBreakRequest{BreakType: breakType})
	})

	cmd.Flags().StringVar(&breakType, "type", string(timetracking.BreakLunch), "break type")
	return cmd
}

func newResumeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "End your break",
		Args:  cobra.NoArgs,
		RunE: clockAction(a, "Break ended", func(ctx context.Context, id identity.Identity) (timetracking.View, error) {
			return a.tracking.EndBreak(ctx, id)
		}),
	}
}

func newOutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "out",
		Short: "Clock out",
		Args:  cobra.NoArgs,
		RunE: clockAction(a, "Clocked out", func(ctx context.Context, id identity.Identity) (timetracking.View, error) {
			return a.tracking.ClockOut(ctx, id)
		}),
	}
}

func newWatchCmd(a *app) *cobra.Command {
	var dateFlag, location string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Open the live tracker",
		Long: `Open the live tracker. Elapsed time ticks every second while today is shown.

Keys: i clock in, b break, r resume, o clock out, ←/→ change day, t today, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.identity(cmd.Context())
			if err != nil {
				return err
			}
			date, err := a.date(dateFlag)
			if err != nil {
				return err
			}

			hired, err := a.resolver.IsHired(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !hired {
				fmt.Fprintln(cmd.OutOrStdout(), "Time tracking is available once you are hired by a company.")
				return nil
			}

			return tui.RunTrackerTUI(cmd.Context(), a.tracking, id, date, timetracking.ClockInRequest{
				Location:   location,
				DeviceInfo: a.deviceInfo(cmd.Context()),
			})
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "day to open (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&location, "location", "", "location sent when clocking in")
	return cmd
}
