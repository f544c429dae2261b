package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notelab/notelab-cli/internal/output"
	"github.com/notelab/notelab-cli/internal/wellness"
)

// createWellnessCmd groups the wellness chat commands.
func createWellnessCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wellness",
		Short: "Wellness chat and streamed research",
	}

	cmd.AddCommand(createWellnessChatCmd(flags))
	cmd.AddCommand(createWellnessResearchCmd(flags))
	cmd.AddCommand(createWellnessHistoryCmd(flags))

	return cmd
}

func createWellnessChatCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Send a wellness chat message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			reply, err := a.wellnessChat().Send(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			output.Plain(reply.Content)
			return nil
		},
	}
}

func createWellnessResearchCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "research <query>",
		Short: "Run a streamed research query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.wellnessChat().Research(cmd.Context(), args[0], func(update wellness.ResearchUpdate) {
				if update.Result != nil {
					return
				}
				output.Infof("%s (%.0f%%)", update.Status, update.Progress*100)
			})
			if err != nil {
				return err
			}

			output.Plain(result.Summary)
			for _, source := range result.Sources {
				output.Plain("  " + source)
			}
			return nil
		},
	}
}

func createWellnessHistoryCmd(flags *Flags) *cobra.Command {
	var limit int
	var clear bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear the locally persisted wellness transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.history == nil {
				output.Warn("Local chat history is disabled")
				return nil
			}

			if clear {
				if err := a.history.ClearTranscript(cmd.Context(), "wellness"); err != nil {
					return err
				}
				output.Success("Wellness transcript cleared")
				return nil
			}

			messages, err := a.history.Transcript(cmd.Context(), "wellness", limit)
			if err != nil {
				return err
			}

			for _, msg := range messages {
				output.Plain(fmt.Sprintf("[%s] %s: %s",
					msg.CreatedAt.Local().Format("2006-01-02 15:04"), msg.Role, msg.Content))
			}
			output.Infof("%d messages", len(messages))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Show at most this many recent messages")
	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the transcript instead of showing it")

	return cmd
}
