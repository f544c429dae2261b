// Package gamification exposes achievement and daily-challenge definitions
// and computes progress against backend user stats. Definitions are plain
// configuration data; only the ratio math lives in code.
package gamification

// Stat keys reported by the backend stats endpoint.
const (
	StatNotebooksCreated = "notebooksCreated"
	StatSourcesAdded     = "sourcesAdded"
	StatChatMessages     = "chatMessages"
	StatResearchRuns     = "researchRuns"
	StatFilesViewed      = "filesViewed"
	StatStreakDays       = "streakDays"
)

// Achievement is a static definition: progress toward Goal is measured on
// the named stat.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Stat        string
	Goal        int
}

// Challenge is a daily goal with a point reward.
type Challenge struct {
	ID          string
	Title       string
	Description string
	Stat        string
	Goal        int
	Reward      int
}

// Achievements is the full static achievement table.
var Achievements = []Achievement{
	{ID: "first-notebook", Title: "First Steps", Description: "Create your first notebook", Stat: StatNotebooksCreated, Goal: 1},
	{ID: "notebook-collector", Title: "Collector", Description: "Create 10 notebooks", Stat: StatNotebooksCreated, Goal: 10},
	{ID: "first-source", Title: "Gathering Material", Description: "Attach a source to a notebook", Stat: StatSourcesAdded, Goal: 1},
	{ID: "source-hoarder", Title: "Archivist", Description: "Attach 50 sources", Stat: StatSourcesAdded, Goal: 50},
	{ID: "conversationalist", Title: "Conversationalist", Description: "Send 25 chat messages", Stat: StatChatMessages, Goal: 25},
	{ID: "chatterbox", Title: "Chatterbox", Description: "Send 200 chat messages", Stat: StatChatMessages, Goal: 200},
	{ID: "researcher", Title: "Researcher", Description: "Run 5 research queries", Stat: StatResearchRuns, Goal: 5},
	{ID: "deep-diver", Title: "Deep Diver", Description: "Run 50 research queries", Stat: StatResearchRuns, Goal: 50},
	{ID: "code-reader", Title: "Code Reader", Description: "View 20 repository files", Stat: StatFilesViewed, Goal: 20},
	{ID: "seven-day-streak", Title: "Week One", Description: "Use the app 7 days in a row", Stat: StatStreakDays, Goal: 7},
	{ID: "thirty-day-streak", Title: "Habitual", Description: "Use the app 30 days in a row", Stat: StatStreakDays, Goal: 30},
}

// Challenges is the pool daily challenges are drawn from.
var Challenges = []Challenge{
	{ID: "daily-chat", Title: "Check In", Description: "Send 3 chat messages today", Stat: StatChatMessages, Goal: 3, Reward: 10},
	{ID: "daily-source", Title: "Fresh Material", Description: "Attach 2 sources today", Stat: StatSourcesAdded, Goal: 2, Reward: 15},
	{ID: "daily-research", Title: "Curious Mind", Description: "Run a research query today", Stat: StatResearchRuns, Goal: 1, Reward: 20},
	{ID: "daily-notebook", Title: "Blank Page", Description: "Create a notebook today", Stat: StatNotebooksCreated, Goal: 1, Reward: 15},
	{ID: "daily-browse", Title: "Source Diving", Description: "View 5 repository files today", Stat: StatFilesViewed, Goal: 5, Reward: 10},
}
