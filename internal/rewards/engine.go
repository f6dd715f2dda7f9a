package rewards

import (
	"encoding/json"
	"math"
	"time"
)

const (
	// activityXPReward is the fixed XP grant for a completed activity.
	activityXPReward = 10
	// focusMinutesPerXP converts focus minutes into XP (rounding down).
	focusMinutesPerXP = 2

	dateLayout = "2006-01-02"
)

// DayOf formats a timestamp as a calendar date key.
func DayOf(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// DefaultProgress returns the canonical initial state for a new user.
func DefaultProgress(now time.Time) UserProgress {
	return UserProgress{
		XP:             0,
		Streak:         0,
		LastActiveDate: DayOf(now),
		Badges:         badgeCatalog(),
		Activity: ActivityStats{
			ActivityTypes: NewTypeSet(),
		},
	}
}

// Initialize parses a persisted payload into UserProgress. An absent or
// corrupt payload degrades to the default state rather than failing. The
// stored badge list is always reconciled against the catalog and badge
// rules are re-evaluated, so state written by an older catalog version
// picks up newly added badges on load.
func Initialize(raw []byte, now time.Time) UserProgress {
	if len(raw) == 0 {
		return DefaultProgress(now)
	}

	var stored UserProgress
	if err := json.Unmarshal(raw, &stored); err != nil {
		return DefaultProgress(now)
	}

	stored.Badges = reconcileBadges(stored.Badges)
	if stored.Activity.ActivityTypes == nil {
		stored.Activity.ActivityTypes = NewTypeSet()
	}
	if stored.LastActiveDate == "" {
		stored.LastActiveDate = DayOf(now)
	}

	return refreshBadges(stored, now)
}

// reconcileBadges joins stored badge state onto the catalog: catalog entries
// missing from storage are added unearned, stored entries unknown to the
// catalog are dropped, and earned state survives for matching IDs. The
// result always has exactly one entry per catalog badge, in catalog order.
func reconcileBadges(stored []Badge) []Badge {
	byID := make(map[string]Badge, len(stored))
	for _, b := range stored {
		byID[b.ID] = b
	}

	catalog := badgeCatalog()
	for i, b := range catalog {
		if prev, ok := byID[b.ID]; ok && prev.Earned {
			catalog[i].Earned = true
			catalog[i].DateEarned = prev.DateEarned
		}
	}
	return catalog
}

// refreshBadges marks every not-yet-earned badge whose rule is now satisfied.
// Earned badges are never taken back.
func refreshBadges(p UserProgress, now time.Time) UserProgress {
	next := p.clone()
	for i, b := range next.Badges {
		if b.Earned {
			continue
		}
		rule, ok := badgeRules[b.ID]
		if !ok || !rule(next) {
			continue
		}
		earnedAt := now.UTC()
		next.Badges[i].Earned = true
		next.Badges[i].DateEarned = &earnedAt
	}
	return next
}

// UpdateStreak advances the daily streak. Calling it again on the same
// calendar day is a no-op; activity on the following day increments the
// streak; any gap resets it to 1. LastActiveDate is always stamped with
// the current day.
func UpdateStreak(p UserProgress, now time.Time) UserProgress {
	today := DayOf(now)
	if p.LastActiveDate == today {
		return p
	}

	next := p.clone()
	yesterday := DayOf(now.AddDate(0, 0, -1))
	switch {
	case next.LastActiveDate == yesterday:
		next.Streak++
	case next.LastActiveDate < yesterday:
		next.Streak = 1
	}
	next.LastActiveDate = today

	return refreshBadges(next, now)
}

// AddXP grants XP and re-evaluates badge rules. Negative amounts are
// rejected so the XP counter stays monotonic.
func AddXP(p UserProgress, amount int, now time.Time) (UserProgress, error) {
	if amount < 0 {
		return p, ErrNegativeXP
	}
	next := p.clone()
	next.XP += amount
	return refreshBadges(next, now), nil
}

// CompleteActivity records a finished activity of the given type and grants
// the fixed per-activity XP reward. Any string is accepted as a type tag;
// the explorer rule is generic over tag identity.
func CompleteActivity(p UserProgress, activityType string, now time.Time) UserProgress {
	next := p.clone()
	next.Activity.CompletedActivities++
	if next.Activity.ActivityTypes == nil {
		next.Activity.ActivityTypes = NewTypeSet()
	}
	next.Activity.ActivityTypes.Add(activityType)
	ts := now.UTC()
	next.Activity.LastActivityTime = &ts

	next, _ = AddXP(next, activityXPReward, now)
	return next
}

// AddFocusTime records focused minutes and grants one XP per two full
// minutes, so a single minute grants nothing.
func AddFocusTime(p UserProgress, minutes int, now time.Time) (UserProgress, error) {
	if minutes < 0 {
		return p, ErrNegativeMinutes
	}
	next := p.clone()
	next.Activity.FocusedMinutes += minutes
	ts := now.UTC()
	next.Activity.LastActivityTime = &ts
	next.XP += minutes / focusMinutesPerXP
	return refreshBadges(next, now), nil
}

// AwardBadge marks the badge as earned. An unknown ID or an already earned
// badge leaves the input unchanged; badge catalogs evolve, so neither case
// is an error.
func AwardBadge(p UserProgress, badgeID string, now time.Time) UserProgress {
	for i, b := range p.Badges {
		if b.ID != badgeID || b.Earned {
			continue
		}
		next := p.clone()
		earnedAt := now.UTC()
		next.Badges[i].Earned = true
		next.Badges[i].DateEarned = &earnedAt
		return next
	}
	return p
}

// LevelForXP derives the level tier from cumulative XP. Levels start at 1
// and threshold at (level-1)^2 * 100: 0, 100, 400, 900, 1600, ...
func LevelForXP(xp int) LevelInfo {
	if xp < 0 {
		xp = 0
	}

	tier := int(math.Sqrt(float64(xp) / 100))
	floor := tier * tier * 100
	ceiling := (tier + 1) * (tier + 1) * 100

	percent := float64(xp-floor) / float64(ceiling-floor) * 100
	percent = math.Min(100, math.Max(0, percent))

	return LevelInfo{
		Level:           tier + 1,
		XPToNext:        ceiling - xp,
		ProgressPercent: percent,
	}
}
