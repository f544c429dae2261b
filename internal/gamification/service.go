package gamification

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/notelab/notelab-cli/internal/api"
	appErrors "github.com/notelab/notelab-cli/internal/errors"
)

// dailyChallengeCount is how many challenges are active per day.
const dailyChallengeCount = 3

// Stats is the backend's per-user counter snapshot, keyed by stat name.
type Stats map[string]int

// Progress pairs a definition with its completion ratio.
type Progress struct {
	Achievement Achievement
	Count       int
	Ratio       float64
	Completed   bool
}

// ChallengeProgress pairs a daily challenge with today's completion state.
type ChallengeProgress struct {
	Challenge Challenge
	Count     int
	Ratio     float64
	Completed bool
}

// Service fetches user stats and computes progress over the static tables.
type Service struct {
	client *api.Client
	logger *logrus.Logger
}

// NewService creates the gamification service.
func NewService(client *api.Client, logger *logrus.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Stats fetches the lifetime counter snapshot.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := s.client.Get(ctx, "/gamification/stats", &stats); err != nil {
		return nil, appErrors.WrapWithContext(err, "fetch user stats")
	}
	return stats, nil
}

// DailyStats fetches today's counter snapshot, used for challenge progress.
func (s *Service) DailyStats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := s.client.Get(ctx, "/gamification/stats/daily", &stats); err != nil {
		return nil, appErrors.WrapWithContext(err, "fetch daily stats")
	}
	return stats, nil
}

// AchievementProgress computes progress for every achievement against the
// given lifetime stats.
func AchievementProgress(stats Stats) []Progress {
	progress := make([]Progress, 0, len(Achievements))
	for _, ach := range Achievements {
		count := stats[ach.Stat]
		ratio := ratio(count, ach.Goal)
		progress = append(progress, Progress{
			Achievement: ach,
			Count:       count,
			Ratio:       ratio,
			Completed:   ratio >= 1,
		})
	}
	return progress
}

// DailyChallenges returns the challenges active on the given day. Selection
// rotates deterministically through the pool so every client agrees on the
// day's set without a backend call.
func DailyChallenges(day time.Time) []Challenge {
	offset := day.UTC().YearDay() % len(Challenges)

	selected := make([]Challenge, 0, dailyChallengeCount)
	for i := 0; i < dailyChallengeCount && i < len(Challenges); i++ {
		selected = append(selected, Challenges[(offset+i)%len(Challenges)])
	}
	return selected
}

// DailyChallengeProgress computes progress for the given day's challenges
// against today's stats.
func DailyChallengeProgress(day time.Time, daily Stats) []ChallengeProgress {
	challenges := DailyChallenges(day)

	progress := make([]ChallengeProgress, 0, len(challenges))
	for _, ch := range challenges {
		count := daily[ch.Stat]
		r := ratio(count, ch.Goal)
		progress = append(progress, ChallengeProgress{
			Challenge: ch,
			Count:     count,
			Ratio:     r,
			Completed: r >= 1,
		})
	}
	return progress
}

// ratio clamps count/goal to [0, 1]. A non-positive goal counts as complete.
func ratio(count, goal int) float64 {
	if goal <= 0 {
		return 1
	}
	if count >= goal {
		return 1
	}
	if count <= 0 {
		return 0
	}
	return float64(count) / float64(goal)
}
