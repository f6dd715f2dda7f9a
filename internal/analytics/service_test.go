package analytics

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

type fakeRepo struct {
	upsertDailyFn func(context.Context, string, DailyRecord) error
	getRecordsFn  func(context.Context, string, string, string) (map[string]DailyRecord, error)
}

func (f *fakeRepo) UpsertDaily(ctx context.Context, userID string, record DailyRecord) error {
	if f.upsertDailyFn != nil {
		return f.upsertDailyFn(ctx, userID, record)
	}
	return nil
}

func (f *fakeRepo) GetRecords(ctx context.Context, userID, startDate, endDate string) (map[string]DailyRecord, error) {
	if f.getRecordsFn != nil {
		return f.getRecordsFn(ctx, userID, startDate, endDate)
	}
	return map[string]DailyRecord{}, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	svc, err := NewService(repo, fixedClock{now: testNow}, slog.Default())
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestServiceRecordDaily_StampsToday(t *testing.T) {
	var saved DailyRecord
	repo := &fakeRepo{
		upsertDailyFn: func(_ context.Context, _ string, record DailyRecord) error {
			saved = record
			return nil
		},
	}
	svc := newTestService(t, repo)

	record, err := svc.RecordDaily(context.Background(), "user-123", RecordDailyInput{
		XPEarned:            40,
		ActivitiesCompleted: 3,
		FocusTime:           25,
		MoodScore:           70,
		DominantEmotion:     EmotionHappy,
	})
	if err != nil {
		t.Fatalf("RecordDaily returned error: %v", err)
	}

	if record.Date != "2025-03-10" {
		t.Fatalf("record must carry today's date, got %s", record.Date)
	}
	if saved != record {
		t.Fatalf("persisted record differs from the returned one")
	}
}

func TestServiceRecordDaily_RejectsInvalidInput(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})

	cases := []RecordDailyInput{
		{MoodScore: 101, DominantEmotion: EmotionCalm},
		{MoodScore: 50, DominantEmotion: "euphoric"},
		{MoodScore: 50, DominantEmotion: EmotionCalm, XPEarned: -1},
	}
	for _, input := range cases {
		if _, err := svc.RecordDaily(context.Background(), "user-123", input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", input, err)
		}
	}
}

func TestServiceRange_GapFillsEmptyStore(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})

	records, err := svc.Range(context.Background(), "user-123", 7)
	if err != nil {
		t.Fatalf("Range returned error: %v", err)
	}
	if len(records) != 7 {
		t.Fatalf("expected 7 records, got %d", len(records))
	}
	if records[6].Date != "2025-03-10" {
		t.Fatalf("window must end today, got %s", records[6].Date)
	}
}

func TestServiceRange_InvalidDays(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})
	if _, err := svc.Range(context.Background(), "user-123", 0); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestServiceRange_DegradesOnStorageFailure(t *testing.T) {
	repo := &fakeRepo{
		getRecordsFn: func(context.Context, string, string, string) (map[string]DailyRecord, error) {
			return nil, errors.New("backend down")
		},
	}
	svc := newTestService(t, repo)

	records, err := svc.Range(context.Background(), "user-123", 7)
	if err != nil {
		t.Fatalf("reads must degrade to an empty window, got %v", err)
	}
	for _, day := range records {
		if day.XPEarned != 0 {
			t.Fatalf("degraded window must be zero-valued")
		}
	}
}

func TestServiceWeeklySummary(t *testing.T) {
	repo := &fakeRepo{
		getRecordsFn: func(_ context.Context, _ string, startDate, endDate string) (map[string]DailyRecord, error) {
			if startDate != "2025-03-04" || endDate != "2025-03-10" {
				return nil, errors.New("unexpected range " + startDate + ".." + endDate)
			}
			records := make(map[string]DailyRecord)
			moods := []int{40, 40, 40, 80, 80, 80, 80}
			for i, mood := range moods {
				date := DayOf(testNow.AddDate(0, 0, i-6))
				records[date] = DailyRecord{Date: date, XPEarned: 10, ActivitiesCompleted: 1, MoodScore: mood, DominantEmotion: EmotionCalm}
			}
			return records, nil
		},
	}
	svc := newTestService(t, repo)

	summary, err := svc.WeeklySummary(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("WeeklySummary returned error: %v", err)
	}
	if summary.TotalXP != 70 || summary.TotalActivities != 7 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
	if summary.MoodTrend != TrendImproving {
		t.Fatalf("expected improving mood trend, got %s", summary.MoodTrend)
	}
	if summary.ActivityTrend != TrendStable {
		t.Fatalf("expected stable activity trend, got %s", summary.ActivityTrend)
	}
}

func TestServiceWeeklyEmotion(t *testing.T) {
	repo := &fakeRepo{
		getRecordsFn: func(context.Context, string, string, string) (map[string]DailyRecord, error) {
			return map[string]DailyRecord{
				"2025-03-10": {Date: "2025-03-10", MoodScore: 100, DominantEmotion: EmotionHappy},
			}, nil
		},
	}
	svc := newTestService(t, repo)

	series, err := svc.WeeklyEmotion(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("WeeklyEmotion returned error: %v", err)
	}
	if len(series) != 7 {
		t.Fatalf("expected 7 points, got %d", len(series))
	}
	if series[6].Score != 2 {
		t.Fatalf("mood 100 maps to +2, got %d", series[6].Score)
	}
	if series[0].Score != -2 {
		t.Fatalf("gap days map to -2, got %d", series[0].Score)
	}
}

func TestServiceOverview(t *testing.T) {
	repo := &fakeRepo{
		getRecordsFn: func(_ context.Context, _ string, startDate, _ string) (map[string]DailyRecord, error) {
			if startDate != "2025-02-09" {
				return nil, errors.New("expected 30-day window, start " + startDate)
			}
			return map[string]DailyRecord{
				"2025-03-01": {Date: "2025-03-01", XPEarned: 50, ActivitiesCompleted: 2},
				"2025-03-05": {Date: "2025-03-05", XPEarned: 20, ActivitiesCompleted: 1},
			}, nil
		},
	}
	svc := newTestService(t, repo)

	overview, err := svc.Overview(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if overview.TotalXP != 70 || overview.ActiveDays != 2 {
		t.Fatalf("unexpected overview: %+v", overview)
	}
}

func TestServiceMissingUserID(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})
	ctx := context.Background()

	if _, err := svc.RecordDaily(ctx, "", RecordDailyInput{MoodScore: 50, DominantEmotion: EmotionCalm}); !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}
	if _, err := svc.WeeklySummary(ctx, ""); !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}
}
