package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

const (
	weeklyWindowDays   = 7
	overviewWindowDays = 30
)

// Service answers analytics queries over the date-keyed daily records.
// Reads degrade to an empty window when storage fails; only writes surface
// repository errors to the caller.
type Service struct {
	repo     Repository
	clock    Clock
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService constructs a Service instance with the provided collaborators.
func NewService(repo Repository, clock Clock, logger *slog.Logger) (*Service, error) {
	if repo == nil {
		return nil, errors.New("repo is required")
	}
	if clock == nil {
		return nil, errors.New("clock is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{repo: repo, clock: clock, validate: validator.New(), logger: logger}, nil
}

// RecordDaily stamps today's date onto the input and upserts it; recording
// twice on the same day overwrites the earlier record.
func (s *Service) RecordDaily(ctx context.Context, userID string, input RecordDailyInput) (DailyRecord, error) {
	if userID == "" {
		return DailyRecord{}, ErrMissingUserID
	}
	if err := s.validate.Struct(input); err != nil {
		return DailyRecord{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	record := DailyRecord{
		Date:                DayOf(s.clock.Now()),
		XPEarned:            input.XPEarned,
		ActivitiesCompleted: input.ActivitiesCompleted,
		FocusTime:           input.FocusTime,
		MoodScore:           input.MoodScore,
		DominantEmotion:     input.DominantEmotion,
	}

	if err := s.repo.UpsertDaily(ctx, userID, record); err != nil {
		return DailyRecord{}, fmt.Errorf("upsert daily record: %w", err)
	}
	return record, nil
}

// Range returns exactly days records ordered oldest to newest and ending
// today, with zero-value records filling any gaps.
func (s *Service) Range(ctx context.Context, userID string, days int) ([]DailyRecord, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if days < 1 {
		return nil, ErrInvalidRange
	}
	return s.window(ctx, userID, days), nil
}

// WeeklySummary aggregates the seven-day window into totals and trends.
func (s *Service) WeeklySummary(ctx context.Context, userID string) (WeeklySummary, error) {
	if userID == "" {
		return WeeklySummary{}, ErrMissingUserID
	}
	return summarize(s.window(ctx, userID, weeklyWindowDays)), nil
}

// MoodDistribution reports each emotion's share of the requested window.
func (s *Service) MoodDistribution(ctx context.Context, userID string, days int) ([]MoodSlice, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if days < 1 {
		return nil, ErrInvalidRange
	}
	return MoodDistribution(s.window(ctx, userID, days)), nil
}

// WeeklyEffort projects the seven-day window onto daily XP totals.
func (s *Service) WeeklyEffort(ctx context.Context, userID string) ([]EffortPoint, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	return effortSeries(s.window(ctx, userID, weeklyWindowDays)), nil
}

// WeeklyEmotion projects the seven-day window onto the -2..+2 mood scale.
func (s *Service) WeeklyEmotion(ctx context.Context, userID string) ([]EmotionPoint, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	return emotionSeries(s.window(ctx, userID, weeklyWindowDays)), nil
}

// Overview totals the last thirty days.
func (s *Service) Overview(ctx context.Context, userID string) (Overview, error) {
	if userID == "" {
		return Overview{}, ErrMissingUserID
	}
	return overview(s.window(ctx, userID, overviewWindowDays)), nil
}

// window loads the stored records covering the requested span and gap-fills
// them. A storage failure degrades to an all-zero window.
func (s *Service) window(ctx context.Context, userID string, days int) []DailyRecord {
	now := s.clock.Now().UTC()
	startDate := DayOf(now.AddDate(0, 0, -(days - 1)))
	endDate := DayOf(now)

	records, err := s.repo.GetRecords(ctx, userID, startDate, endDate)
	if err != nil {
		s.logger.WarnContext(ctx, "load daily records failed, using empty window", "userId", userID, "error", err)
		records = nil
	}

	return fillRange(records, days, now)
}
