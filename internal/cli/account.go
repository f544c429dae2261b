package cli

import (
	"github.com/spf13/cobra"

	"github.com/notelab/notelab-cli/internal/output"
)

func createLoginCmd(flags *Flags) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			session, err := a.accounts().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			output.Successf("Logged in as %s", session.User.Email)
			output.Plain("Add the token below to your config file or NOTELAB_TOKEN:")
			output.Plain(session.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func createLogoutCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.accounts().Logout(cmd.Context()); err != nil {
				return err
			}

			output.Success("Logged out")
			return nil
		},
	}
}

func createWhoamiCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile behind the current token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := a.accounts().Whoami(cmd.Context())
			if err != nil {
				return err
			}

			output.Plainf("%s (%s)", user.Email, user.ID)
			if user.Name != "" {
				output.Plain(user.Name)
			}
			return nil
		},
	}
}

func createSubscriptionCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "subscription",
		Short: "Show the account's subscription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			sub, err := a.accounts().CurrentSubscription(cmd.Context())
			if err != nil {
				return err
			}

			output.Plainf("Plan: %s (%s)", sub.Plan, sub.Status)
			if sub.RenewsAt != nil {
				output.Plainf("Renews at %s", sub.RenewsAt.Local().Format("2006-01-02"))
			}
			return nil
		},
	}
}
