package events

import "time"

// Topic names used across the NeuroBridge backend.
const (
	TopicRewardEvents    = "rewards.events"
	TopicAnalyticsEvents = "analytics.events"
)

// BadgeEarned describes the payload produced when a badge unlocks for a user.
type BadgeEarned struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	BadgeID  string    `json:"badgeId"`
	Name     string    `json:"name"`
	EarnedAt time.Time `json:"earnedAt"`
}

// LevelUp is emitted when cumulative XP crosses a level threshold.
type LevelUp struct {
	ID     string    `json:"id"`
	UserID string    `json:"userId"`
	Level  int       `json:"level"`
	XP     int       `json:"xp"`
	At     time.Time `json:"at"`
}
