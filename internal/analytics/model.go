package analytics

import (
	"context"
	"time"
)

// EmotionName identifies the dominant emotion recorded for a day.
type EmotionName string

const (
	EmotionCalm       EmotionName = "calm"
	EmotionAnxious    EmotionName = "anxious"
	EmotionHappy      EmotionName = "happy"
	EmotionDistracted EmotionName = "distracted"
	EmotionBored      EmotionName = "bored"
)

// emotionOrder fixes iteration order for distributions.
var emotionOrder = []EmotionName{
	EmotionCalm,
	EmotionAnxious,
	EmotionHappy,
	EmotionDistracted,
	EmotionBored,
}

// DailyRecord is one day's aggregated activity and mood snapshot.
// Exactly one record exists per date; writing an existing date overwrites it.
type DailyRecord struct {
	Date                string      `json:"date" firestore:"date"`
	XPEarned            int         `json:"xpEarned" firestore:"xp_earned"`
	ActivitiesCompleted int         `json:"activitiesCompleted" firestore:"activities_completed"`
	FocusTime           int         `json:"focusTime" firestore:"focus_time"` // in minutes
	MoodScore           int         `json:"moodScore" firestore:"mood_score"` // 0-100 scale
	DominantEmotion     EmotionName `json:"dominantEmotion" firestore:"dominant_emotion"`
}

// Trend is a three-way classification derived by comparing first-half vs
// second-half averages of a record window.
type Trend string

const (
	TrendImproving  Trend = "improving"
	TrendDeclining  Trend = "declining"
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// WeeklySummary aggregates the last seven days of records.
type WeeklySummary struct {
	TotalXP         int     `json:"totalXp"`
	TotalActivities int     `json:"totalActivities"`
	TotalFocusTime  int     `json:"totalFocusTime"`
	AverageMood     float64 `json:"averageMood"`
	MoodTrend       Trend   `json:"moodTrend"`
	ActivityTrend   Trend   `json:"activityTrend"`
}

// MoodSlice is one emotion's share of a record window.
type MoodSlice struct {
	Emotion    EmotionName `json:"emotion"`
	Count      int         `json:"count"`
	Percentage float64     `json:"percentage"`
}

// EffortPoint is the XP earned on a single day.
type EffortPoint struct {
	Date string `json:"date"`
	XP   int    `json:"xp"`
}

// EmotionPoint is a day's mood mapped onto a -2..+2 integer scale.
type EmotionPoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// Overview sums the last thirty days for the summary card.
type Overview struct {
	TotalXP    int `json:"totalXp"`
	ActiveDays int `json:"activeDays"`
}

// RecordDailyInput is the caller-supplied portion of a daily record; the
// service stamps the date.
type RecordDailyInput struct {
	XPEarned            int         `json:"xpEarned" validate:"gte=0"`
	ActivitiesCompleted int         `json:"activitiesCompleted" validate:"gte=0"`
	FocusTime           int         `json:"focusTime" validate:"gte=0"`
	MoodScore           int         `json:"moodScore" validate:"gte=0,lte=100"`
	DominantEmotion     EmotionName `json:"dominantEmotion" validate:"required,oneof=calm anxious happy distracted bored"`
}

// Repository encapsulates persistence for the date-keyed daily records.
type Repository interface {
	UpsertDaily(ctx context.Context, userID string, record DailyRecord) error
	GetRecords(ctx context.Context, userID string, startDate, endDate string) (map[string]DailyRecord, error)
}

// Clock delivers the current time; extracted for deterministic testing.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystemClock returns a Clock implementation backed by time.Now.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
