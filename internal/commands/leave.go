package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/leave"
)

func newLeaveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Request leave and review your requests",
	}

	cmd.AddCommand(newLeaveApplyCmd(a))
	cmd.AddCommand(newLeaveListCmd(a))
	cmd.AddCommand(newLeaveDaysCmd(a))
	return cmd
}

func newLeaveApplyCmd(a *app) *cobra.Command {
	var req leave.CreateLeaveRequestRequest

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Submit a leave request",
		Long: `Submit a leave request. An end date before the start date is raised to the start date.

Examples:
  seeker-tracker leave apply --from 2026-03-12 --to 2026-03-13 --reason "Family event"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.identity(cmd.Context())
			if err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}

			form := req.ToForm(a.loc)
			days, _ := form.Days()

			requests, err := a.leaves.Submit(cmd.Context(), id, form)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Leave request submitted (%d %s)\n", days, plural(days, "day", "days"))
			if requests != nil {
				fmt.Fprintln(out)
				printLeaveRequests(out, requests)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.From, "from", "", "first day of leave (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.To, "to", "", "last day of leave (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Reason, "reason", "", "reason for the request")
	cmd.Flags().StringVar(&req.LeaveType, "type", leave.DefaultLeaveType, "leave type")
	return cmd
}

func newLeaveListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your leave requests, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.identity(cmd.Context())
			if err != nil {
				return err
			}

			requests, err := a.leaves.ListMyLeaveRequests(cmd.Context(), id)
			if err != nil {
				return err
			}
			printLeaveRequests(cmd.OutOrStdout(), requests)
			return nil
		},
	}
}

func newLeaveDaysCmd(a *app) *cobra.Command {
	var req leave.DaysRequest

	cmd := &cobra.Command{
		Use:   "days",
		Short: "Count the days a leave range covers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.leaves.ComputeDays(req)
			if err != nil {
				return err
			}
			if resp.Days == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Pick both dates to count the days")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s to %s: %d %s\n", resp.From, resp.To, *resp.Days, plural(*resp.Days, "day", "days"))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.From, "from", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.To, "to", "", "last day (YYYY-MM-DD)")
	return cmd
}
