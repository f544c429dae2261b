package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/notelab/notelab-cli/internal/gamification"
	"github.com/notelab/notelab-cli/internal/output"
)

func createAchievementsCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "Show achievement progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.game().Stats(cmd.Context())
			if err != nil {
				return err
			}

			completed := 0
			for _, p := range gamification.AchievementProgress(stats) {
				marker := " "
				if p.Completed {
					marker = "✓"
					completed++
				}
				output.Plain(fmt.Sprintf("[%s] %-20s %s (%d/%d)",
					marker, p.Achievement.Title, p.Achievement.Description, p.Count, p.Achievement.Goal))
			}
			output.Infof("%d of %d achievements unlocked", completed, len(gamification.Achievements))
			return nil
		},
	}
}

func createChallengesCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "challenges",
		Short: "Show today's challenges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			daily, err := a.game().DailyStats(cmd.Context())
			if err != nil {
				return err
			}

			for _, p := range gamification.DailyChallengeProgress(time.Now(), daily) {
				marker := " "
				if p.Completed {
					marker = "✓"
				}
				output.Plain(fmt.Sprintf("[%s] %-16s %s (%d/%d, %d pts)",
					marker, p.Challenge.Title, p.Challenge.Description, p.Count, p.Challenge.Goal, p.Challenge.Reward))
			}
			return nil
		},
	}
}
