package rewards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niki241/NeuroBridge-New/internal/events"
)

// Service orchestrates the load-apply-persist cycle around the pure engine
// transitions. The engine itself never touches storage; the service owns
// the read-modify-write against the Repository and assumes a single active
// writer per user session.
type Service struct {
	repo      Repository
	clock     Clock
	ids       IDGenerator
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService constructs a Service instance with the provided collaborators.
func NewService(repo Repository, clock Clock, ids IDGenerator, publisher events.Publisher, logger *slog.Logger) (*Service, error) {
	if repo == nil {
		return nil, errors.New("repo is required")
	}
	if clock == nil {
		return nil, errors.New("clock is required")
	}
	if ids == nil {
		return nil, errors.New("id generator is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{repo: repo, clock: clock, ids: ids, publisher: publisher, logger: logger}, nil
}

// Get returns the current progress snapshot without mutating anything.
func (s *Service) Get(ctx context.Context, userID string) (Snapshot, error) {
	if userID == "" {
		return Snapshot{}, ErrMissingUserID
	}
	progress, _ := s.load(ctx, userID)
	return snapshotOf(progress), nil
}

// StartSession advances the daily streak. Collaborators call this once at
// session start; repeated calls on the same day are no-ops.
func (s *Service) StartSession(ctx context.Context, userID string) (Snapshot, error) {
	return s.apply(ctx, userID, func(p UserProgress, now nowFunc) (UserProgress, error) {
		return UpdateStreak(p, now()), nil
	})
}

// CompleteActivity records a finished activity and its fixed XP reward.
func (s *Service) CompleteActivity(ctx context.Context, userID, activityType string) (Snapshot, error) {
	return s.apply(ctx, userID, func(p UserProgress, now nowFunc) (UserProgress, error) {
		return CompleteActivity(p, activityType, now()), nil
	})
}

// AddFocusTime records focused minutes for the user.
func (s *Service) AddFocusTime(ctx context.Context, userID string, minutes int) (Snapshot, error) {
	return s.apply(ctx, userID, func(p UserProgress, now nowFunc) (UserProgress, error) {
		return AddFocusTime(p, minutes, now())
	})
}

// AddXP grants a raw XP amount, e.g. for quiz results scored elsewhere.
func (s *Service) AddXP(ctx context.Context, userID string, amount int) (Snapshot, error) {
	return s.apply(ctx, userID, func(p UserProgress, now nowFunc) (UserProgress, error) {
		return AddXP(p, amount, now())
	})
}

// AwardBadge marks a badge as earned out of band. Unknown or already earned
// badge IDs leave the state unchanged.
func (s *Service) AwardBadge(ctx context.Context, userID, badgeID string) (Snapshot, error) {
	return s.apply(ctx, userID, func(p UserProgress, now nowFunc) (UserProgress, error) {
		return AwardBadge(p, badgeID, now()), nil
	})
}

type nowFunc func() time.Time

// apply runs one engine transition inside a load-apply-persist cycle and
// publishes events for any badge unlocks or level changes it produced.
func (s *Service) apply(ctx context.Context, userID string, op func(UserProgress, nowFunc) (UserProgress, error)) (Snapshot, error) {
	if userID == "" {
		return Snapshot{}, ErrMissingUserID
	}

	before, now := s.load(ctx, userID)

	after, err := op(before, func() time.Time { return now })
	if err != nil {
		return Snapshot{}, err
	}

	if err := s.persist(ctx, userID, after); err != nil {
		return Snapshot{}, err
	}

	s.publishChanges(ctx, userID, before, after)
	return snapshotOf(after), nil
}

// load reads the persisted payload and initializes progress from it. Both
// an absent payload and a storage or decode failure degrade to the default
// state; the failure is logged and never surfaced to the caller.
func (s *Service) load(ctx context.Context, userID string) (UserProgress, time.Time) {
	now := s.clock.Now().UTC()

	raw, err := s.repo.Load(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "load progress failed, using defaults", "userId", userID, "error", err)
		}
		raw = nil
	}

	return Initialize(raw, now), now
}

func (s *Service) persist(ctx context.Context, userID string, p UserProgress) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.repo.Save(ctx, userID, payload); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// publishChanges emits events for badges earned and levels gained by the
// transition. Publish failures are logged only; they never fail the request.
func (s *Service) publishChanges(ctx context.Context, userID string, before, after UserProgress) {
	if s.publisher == nil {
		return
	}

	earnedBefore := make(map[string]bool, len(before.Badges))
	for _, b := range before.Badges {
		earnedBefore[b.ID] = b.Earned
	}

	for _, b := range after.Badges {
		if !b.Earned || earnedBefore[b.ID] {
			continue
		}
		earnedAt := s.clock.Now().UTC()
		if b.DateEarned != nil {
			earnedAt = *b.DateEarned
		}
		event := events.BadgeEarned{
			ID:       s.ids.NewID(),
			UserID:   userID,
			BadgeID:  b.ID,
			Name:     b.Name,
			EarnedAt: earnedAt,
		}
		if err := s.publisher.Publish(ctx, events.TopicRewardEvents, event); err != nil {
			s.logger.WarnContext(ctx, "publish badge event failed", "badgeId", b.ID, "error", err)
		}
	}

	levelBefore := LevelForXP(before.XP)
	levelAfter := LevelForXP(after.XP)
	if levelAfter.Level > levelBefore.Level {
		event := events.LevelUp{
			ID:     s.ids.NewID(),
			UserID: userID,
			Level:  levelAfter.Level,
			XP:     after.XP,
			At:     s.clock.Now().UTC(),
		}
		if err := s.publisher.Publish(ctx, events.TopicRewardEvents, event); err != nil {
			s.logger.WarnContext(ctx, "publish level event failed", "level", levelAfter.Level, "error", err)
		}
	}
}

func snapshotOf(p UserProgress) Snapshot {
	return Snapshot{Progress: p, Level: LevelForXP(p.XP)}
}
