package analytics

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func windowWithMoods(moods []int) []DailyRecord {
	out := make([]DailyRecord, len(moods))
	for i, mood := range moods {
		out[i] = DailyRecord{
			Date:            DayOf(testNow.AddDate(0, 0, i-len(moods)+1)),
			MoodScore:       mood,
			DominantEmotion: EmotionCalm,
		}
	}
	return out
}

func TestFillRange_EmptyStore(t *testing.T) {
	got := fillRange(nil, 7, testNow)

	if len(got) != 7 {
		t.Fatalf("expected exactly 7 records, got %d", len(got))
	}
	if got[0].Date != "2025-03-04" || got[6].Date != "2025-03-10" {
		t.Fatalf("window must end today: %s .. %s", got[0].Date, got[6].Date)
	}
	for i, day := range got {
		if i > 0 && got[i-1].Date >= day.Date {
			t.Fatalf("dates must be consecutive ascending")
		}
		if day.XPEarned != 0 || day.ActivitiesCompleted != 0 || day.FocusTime != 0 || day.MoodScore != 0 {
			t.Fatalf("gap day %s must be zero-valued: %+v", day.Date, day)
		}
		if day.DominantEmotion != EmotionCalm {
			t.Fatalf("gap days default to calm, got %s", day.DominantEmotion)
		}
	}
}

func TestFillRange_MergesStoredRecords(t *testing.T) {
	records := map[string]DailyRecord{
		"2025-03-08": {Date: "2025-03-08", XPEarned: 40, ActivitiesCompleted: 2, DominantEmotion: EmotionHappy},
		"2025-03-10": {Date: "2025-03-10", XPEarned: 10, ActivitiesCompleted: 1, DominantEmotion: EmotionCalm},
	}

	got := fillRange(records, 3, testNow)
	if got[0].XPEarned != 40 || got[1].XPEarned != 0 || got[2].XPEarned != 10 {
		t.Fatalf("stored records must land on their dates: %+v", got)
	}
}

func TestMoodTrend(t *testing.T) {
	tests := []struct {
		name  string
		moods []int
		want  Trend
	}{
		{"improving", []int{40, 40, 40, 80, 80, 80, 80}, TrendImproving},
		{"stable", []int{50, 50, 50, 50, 50, 50, 50}, TrendStable},
		{"declining", []int{80, 80, 80, 80, 30, 30, 30}, TrendDeclining},
		{"small difference is stable", []int{50, 50, 50, 50, 54, 54, 54}, TrendStable},
		{"single record", []int{90}, TrendStable},
		{"empty", nil, TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := moodTrend(windowWithMoods(tt.moods)); got != tt.want {
				t.Fatalf("moodTrend(%v) = %s, want %s", tt.moods, got, tt.want)
			}
		})
	}
}

func TestActivityTrend(t *testing.T) {
	window := make([]DailyRecord, 7)
	for i := range window {
		window[i].Date = DayOf(testNow.AddDate(0, 0, i-6))
	}

	// First half 0 per day, second half 2 per day.
	for i := 4; i < 7; i++ {
		window[i].ActivitiesCompleted = 2
	}
	if got := activityTrend(window); got != TrendIncreasing {
		t.Fatalf("expected increasing, got %s", got)
	}

	for i := range window {
		window[i].ActivitiesCompleted = 1
	}
	if got := activityTrend(window); got != TrendStable {
		t.Fatalf("expected stable, got %s", got)
	}
}

func TestSummarize(t *testing.T) {
	window := windowWithMoods([]int{40, 40, 40, 80, 80, 80, 80})
	for i := range window {
		window[i].XPEarned = 10
		window[i].ActivitiesCompleted = 1
		window[i].FocusTime = 20
	}

	got := summarize(window)
	if got.TotalXP != 70 || got.TotalActivities != 7 || got.TotalFocusTime != 140 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	wantMood := (40.0*3 + 80.0*4) / 7
	if got.AverageMood != wantMood {
		t.Fatalf("average mood = %v, want %v", got.AverageMood, wantMood)
	}
	if got.MoodTrend != TrendImproving {
		t.Fatalf("expected improving mood trend, got %s", got.MoodTrend)
	}
}

func TestMoodDistribution(t *testing.T) {
	records := []DailyRecord{
		{DominantEmotion: EmotionCalm},
		{DominantEmotion: EmotionCalm},
		{DominantEmotion: EmotionHappy},
		{DominantEmotion: EmotionAnxious},
	}

	got := MoodDistribution(records)
	if len(got) != 3 {
		t.Fatalf("zero-count emotions must be omitted, got %d slices", len(got))
	}
	if got[0].Emotion != EmotionCalm || got[0].Count != 2 || got[0].Percentage != 50 {
		t.Fatalf("unexpected calm slice: %+v", got[0])
	}
	if got[1].Emotion != EmotionAnxious {
		t.Fatalf("slices must follow canonical emotion order, got %s", got[1].Emotion)
	}
}

func TestMoodDistribution_Empty(t *testing.T) {
	if got := MoodDistribution(nil); len(got) != 0 {
		t.Fatalf("expected empty distribution, got %+v", got)
	}
}

func TestEmotionSeries(t *testing.T) {
	tests := []struct {
		mood int
		want int
	}{
		{0, -2},
		{25, -1},
		{37, -1}, // round(1.48) - 2
		{50, 0},
		{75, 1},
		{100, 2},
	}

	for _, tt := range tests {
		got := emotionSeries([]DailyRecord{{Date: "2025-03-10", MoodScore: tt.mood}})
		if got[0].Score != tt.want {
			t.Fatalf("mood %d maps to %d, want %d", tt.mood, got[0].Score, tt.want)
		}
	}
}

func TestEffortSeries(t *testing.T) {
	window := []DailyRecord{
		{Date: "2025-03-09", XPEarned: 30},
		{Date: "2025-03-10", XPEarned: 10},
	}

	got := effortSeries(window)
	if got[0].XP != 30 || got[1].XP != 10 || got[0].Date != "2025-03-09" {
		t.Fatalf("unexpected series: %+v", got)
	}
}

func TestOverview(t *testing.T) {
	window := []DailyRecord{
		{XPEarned: 10, ActivitiesCompleted: 1},
		{XPEarned: 0, ActivitiesCompleted: 0},
		{XPEarned: 25, ActivitiesCompleted: 3},
	}

	got := overview(window)
	if got.TotalXP != 35 || got.ActiveDays != 2 {
		t.Fatalf("unexpected overview: %+v", got)
	}
}
