package analytics

import (
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// DayOf formats a timestamp as a calendar date key.
func DayOf(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// zeroRecord is the gap-filling value for a date with no stored record.
func zeroRecord(date string) DailyRecord {
	return DailyRecord{Date: date, DominantEmotion: EmotionCalm}
}

// fillRange produces exactly days records ordered oldest to newest and
// ending today, substituting a zero-value record for every absent date so
// callers never special-case missing days.
func fillRange(records map[string]DailyRecord, days int, now time.Time) []DailyRecord {
	out := make([]DailyRecord, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := DayOf(now.AddDate(0, 0, -i))
		if record, ok := records[date]; ok {
			record.Date = date
			out = append(out, record)
			continue
		}
		out = append(out, zeroRecord(date))
	}
	return out
}

// summarize folds a seven-day window into the weekly summary.
func summarize(window []DailyRecord) WeeklySummary {
	summary := WeeklySummary{
		MoodTrend:     moodTrend(window),
		ActivityTrend: activityTrend(window),
	}

	for _, day := range window {
		summary.TotalXP += day.XPEarned
		summary.TotalActivities += day.ActivitiesCompleted
		summary.TotalFocusTime += day.FocusTime
		summary.AverageMood += float64(day.MoodScore)
	}
	if len(window) > 0 {
		summary.AverageMood /= float64(len(window))
	}

	return summary
}

// halves splits a window into its first ceil(n/2) records and the rest.
func halves(window []DailyRecord) ([]DailyRecord, []DailyRecord) {
	mid := (len(window) + 1) / 2
	return window[:mid], window[mid:]
}

// moodTrend compares first-half and second-half mood averages; differences
// under five points count as stable.
func moodTrend(window []DailyRecord) Trend {
	if len(window) < 2 {
		return TrendStable
	}

	first, second := halves(window)
	diff := averageMood(second) - averageMood(first)

	if math.Abs(diff) < 5 {
		return TrendStable
	}
	if diff > 0 {
		return TrendImproving
	}
	return TrendDeclining
}

// activityTrend compares per-day activity averages; differences under half
// an activity per day count as stable.
func activityTrend(window []DailyRecord) Trend {
	if len(window) < 2 {
		return TrendStable
	}

	first, second := halves(window)
	diff := averageActivities(second) - averageActivities(first)

	if math.Abs(diff) < 0.5 {
		return TrendStable
	}
	if diff > 0 {
		return TrendIncreasing
	}
	return TrendDecreasing
}

func averageMood(window []DailyRecord) float64 {
	total := 0
	for _, day := range window {
		total += day.MoodScore
	}
	return float64(total) / float64(len(window))
}

func averageActivities(window []DailyRecord) float64 {
	total := 0
	for _, day := range window {
		total += day.ActivitiesCompleted
	}
	return float64(total) / float64(len(window))
}

// MoodDistribution counts dominant emotions across the given records.
// Emotions that never occur are omitted.
func MoodDistribution(records []DailyRecord) []MoodSlice {
	counts := make(map[EmotionName]int, len(emotionOrder))
	for _, day := range records {
		if day.DominantEmotion != "" {
			counts[day.DominantEmotion]++
		}
	}

	out := make([]MoodSlice, 0, len(counts))
	for _, emotion := range emotionOrder {
		count := counts[emotion]
		if count == 0 {
			continue
		}
		out = append(out, MoodSlice{
			Emotion:    emotion,
			Count:      count,
			Percentage: float64(count) / float64(len(records)) * 100,
		})
	}
	return out
}

// effortSeries projects a window onto its daily XP totals.
func effortSeries(window []DailyRecord) []EffortPoint {
	out := make([]EffortPoint, 0, len(window))
	for _, day := range window {
		out = append(out, EffortPoint{Date: day.Date, XP: day.XPEarned})
	}
	return out
}

// emotionSeries maps each day's 0-100 mood score onto -2..+2.
func emotionSeries(window []DailyRecord) []EmotionPoint {
	out := make([]EmotionPoint, 0, len(window))
	for _, day := range window {
		score := int(math.Round(float64(day.MoodScore)/25)) - 2
		out = append(out, EmotionPoint{Date: day.Date, Score: score})
	}
	return out
}

// overview totals a window's XP and counts its days with activity.
func overview(window []DailyRecord) Overview {
	var out Overview
	for _, day := range window {
		out.TotalXP += day.XPEarned
		if day.ActivitiesCompleted > 0 {
			out.ActiveDays++
		}
	}
	return out
}
