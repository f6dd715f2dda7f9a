package rewards

// badgeCatalog is the canonical ordered list of badges.
// Keep IDs stable because clients store them.
func badgeCatalog() []Badge {
	return []Badge{
		{
			ID:          "starter",
			Name:        "Starter",
			Description: "Complete your first activity",
			Icon:        "🚀",
		},
		{
			ID:          "focus_10",
			Name:        "Focused Mind",
			Description: "Spend 10+ minutes in focus mode",
			Icon:        "🎯",
		},
		{
			ID:          "streak_3",
			Name:        "Streak x3",
			Description: "3-day streak",
			Icon:        "🔥",
		},
		{
			ID:          "streak_7",
			Name:        "Streak x7",
			Description: "7-day streak",
			Icon:        "🏆",
		},
		{
			ID:          "explorer",
			Name:        "Explorer",
			Description: "Complete 3 different activity types",
			Icon:        "🌍",
		},
	}
}

// badgeRules maps each catalog badge to its unlock predicate. Every
// state-mutating transition re-runs the full rule set, so unlock conditions
// cannot be missed regardless of call order.
var badgeRules = map[string]func(UserProgress) bool{
	"starter": func(p UserProgress) bool {
		return p.Activity.CompletedActivities >= 1
	},
	"focus_10": func(p UserProgress) bool {
		return p.Activity.FocusedMinutes >= 10
	},
	"streak_3": func(p UserProgress) bool {
		return p.Streak >= 3
	},
	"streak_7": func(p UserProgress) bool {
		return p.Streak >= 7
	},
	"explorer": func(p UserProgress) bool {
		return p.Activity.ActivityTypes.Len() >= 3
	},
}
