package cli

import (
	"github.com/spf13/cobra"

	"github.com/notelab/notelab-cli/internal/agent"
	"github.com/notelab/notelab-cli/internal/output"
)

// createTokensCmd groups the coding-agent token dashboard commands.
func createTokensCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Manage coding-agent API tokens",
	}

	cmd.AddCommand(createTokensIssueCmd(flags))
	cmd.AddCommand(createTokensListCmd(flags))
	cmd.AddCommand(createTokensRevokeCmd(flags))
	cmd.AddCommand(createTokensUsageCmd(flags))
	cmd.AddCommand(createTokensQuotaCmd(flags))

	return cmd
}

func createTokensIssueCmd(flags *Flags) *cobra.Command {
	var name string
	var scopes []string
	var expiresInDays int

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a new agent token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			issued, err := a.agents().Issue(cmd.Context(), agent.IssueRequest{
				Name:          name,
				Scopes:        scopes,
				ExpiresInDays: expiresInDays,
			})
			if err != nil {
				return err
			}

			output.Successf("Token %s issued", issued.ID)
			output.Warn("The secret below is shown once and cannot be retrieved again:")
			output.Plain(issued.Secret)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Token name (required)")
	cmd.Flags().StringSliceVar(&scopes, "scope", nil, "Scopes to grant")
	cmd.Flags().IntVar(&expiresInDays, "expires-in", 0, "Expiry in days (0 = no expiry)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func createTokensListCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List agent tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			tokens, err := a.agents().List(cmd.Context())
			if err != nil {
				return err
			}

			for _, token := range tokens {
				line := token.ID + "  " + token.Name + "  " + token.MaskedToken
				if token.Revoked {
					line += "  (revoked)"
				}
				output.Plain(line)
			}
			output.Infof("%d tokens", len(tokens))
			return nil
		},
	}
}

func createTokensRevokeCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <token-id>",
		Short: "Revoke an agent token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.agents().Revoke(cmd.Context(), args[0]); err != nil {
				return err
			}

			output.Successf("Token %s revoked", args[0])
			return nil
		},
	}
}

func createTokensUsageCmd(flags *Flags) *cobra.Command {
	var tokenID string
	var limit int
	var cached bool

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show the token usage audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			var entries []agent.UsageEntry
			switch {
			case cached && a.history != nil:
				entries, err = a.history.CachedUsage(cmd.Context(), tokenID, limit)
			default:
				entries, err = a.agents().Usage(cmd.Context(), tokenID, limit)
				if err == nil && a.history != nil {
					if cacheErr := a.history.CacheUsage(cmd.Context(), tokenID, entries); cacheErr != nil {
						a.logger.WithError(cacheErr).Debug("Failed to cache usage rows")
					}
				}
			}
			if err != nil {
				return err
			}

			for _, entry := range entries {
				output.Plainf("%s  %s  %s  %d",
					entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
					entry.TokenID, entry.Operation, entry.Status)
			}
			output.Infof("%d entries", len(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenID, "token", "", "Scope the log to one token")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of rows")
	cmd.Flags().BoolVar(&cached, "cached", false, "Read from the local cache instead of the backend")

	return cmd
}

func createTokensQuotaCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show the agent-call quota",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			quota, err := a.agents().GetQuota(cmd.Context())
			if err != nil {
				return err
			}

			output.Plainf("Used %d of %d calls (%d remaining)", quota.Used, quota.Limit, quota.Remaining())
			output.Plainf("Resets at %s", quota.ResetsAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
}
