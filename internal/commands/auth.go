package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/validator"
	"github.com/cmlabs-hris/seeker-tracker/internal/repository/local"
)

func newLoginCmd(a *app) *cobra.Command {
	var jobseekerID, token, employerID, role string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Remember who you are on this machine",
		Long: `Store your job seeker id and access token for later commands.

Examples:
  seeker-tracker login --jobseeker-id 42 --token eyJ...
  seeker-tracker login --jobseeker-id 42 --token eyJ... --employer-id 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if validator.IsEmpty(jobseekerID) {
				return fmt.Errorf("--jobseeker-id is required")
			}
			if !identity.Role(role).Valid() {
				return identity.ErrInvalidRole
			}

			profile, err := a.profiles.Save(cmd.Context(), local.Profile{
				JobseekerID: jobseekerID,
				EmployerID:  employerID,
				Role:        role,
				Token:       token,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Logged in as %s %s\n", profile.Role, profile.JobseekerID)

			hired, err := a.resolver.IsHired(cmd.Context(), profile.Identity())
			if err != nil {
				slog.Warn("hire check failed", "error", err)
				return nil
			}
			if !hired {
				fmt.Fprintln(out, "No hiring company found yet; time tracking becomes available once you are hired.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jobseekerID, "jobseeker-id", "", "your job seeker id")
	cmd.Flags().StringVar(&token, "token", "", "access token forwarded to the backend")
	cmd.Flags().StringVar(&employerID, "employer-id", "", "fallback company id when none can be resolved")
	cmd.Flags().StringVar(&role, "role", string(identity.RoleJobseeker), "jobseeker, student or employer")

	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.profiles.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
