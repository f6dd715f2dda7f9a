package rewards

import (
	"context"
	"encoding/json"
	"sort"
	"time"
)

// Badge represents a one-time-earnable achievement. Identity is the ID;
// once Earned is true it never flips back.
type Badge struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Earned      bool       `json:"earned"`
	DateEarned  *time.Time `json:"dateEarned"`
}

// TypeSet is a set of activity-type tags with deterministic JSON encoding
// (sorted array), so persisted progress round-trips byte-stable.
type TypeSet map[string]struct{}

// NewTypeSet builds a set from the given tags.
func NewTypeSet(tags ...string) TypeSet {
	s := make(TypeSet, len(tags))
	for _, tag := range tags {
		s[tag] = struct{}{}
	}
	return s
}

// Add inserts a tag into the set.
func (s TypeSet) Add(tag string) {
	s[tag] = struct{}{}
}

// Has reports whether the tag is present.
func (s TypeSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Len returns the number of distinct tags.
func (s TypeSet) Len() int {
	return len(s)
}

// Values returns the tags in sorted order.
func (s TypeSet) Values() []string {
	out := make([]string, 0, len(s))
	for tag := range s {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of the set.
func (s TypeSet) Clone() TypeSet {
	out := make(TypeSet, len(s))
	for tag := range s {
		out[tag] = struct{}{}
	}
	return out
}

// MarshalJSON encodes the set as a sorted string array.
func (s TypeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON decodes the set from a string array.
func (s *TypeSet) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}
	*s = NewTypeSet(tags...)
	return nil
}

// ActivityStats carries the activity counters badge rules evaluate against.
type ActivityStats struct {
	CompletedActivities int        `json:"completedActivities"`
	FocusedMinutes      int        `json:"focusedMinutes"`
	ActivityTypes       TypeSet    `json:"activityTypes"`
	LastActivityTime    *time.Time `json:"lastActivityTime"`
}

// UserProgress is the durable gamification state for a single user.
// XP is monotonically non-decreasing and Badges always holds exactly one
// entry per catalog badge, in catalog order.
type UserProgress struct {
	XP             int           `json:"xp"`
	Streak         int           `json:"streak"`
	LastActiveDate string        `json:"lastActiveDate"`
	Badges         []Badge       `json:"badges"`
	Activity       ActivityStats `json:"activityStats"`
}

// clone returns a deep copy so transitions never mutate their input.
func (p UserProgress) clone() UserProgress {
	next := p
	next.Badges = make([]Badge, len(p.Badges))
	copy(next.Badges, p.Badges)
	if p.Activity.ActivityTypes != nil {
		next.Activity.ActivityTypes = p.Activity.ActivityTypes.Clone()
	}
	return next
}

// LevelInfo is the tier derived from cumulative XP.
type LevelInfo struct {
	Level           int     `json:"level"`
	XPToNext        int     `json:"xpToNext"`
	ProgressPercent float64 `json:"progressPercent"`
}

// Snapshot combines the persisted progress with its derived level.
type Snapshot struct {
	Progress UserProgress `json:"progress"`
	Level    LevelInfo    `json:"level"`
}

// Repository encapsulates persistence for serialized progress payloads.
type Repository interface {
	Load(ctx context.Context, userID string) ([]byte, error)
	Save(ctx context.Context, userID string, payload []byte) error
}
