package models

import (
	"slices"
	"time"
)

type Pattern string

const (
	PatternPomodoro Pattern = "pomodoro"
	PatternDeepWork Pattern = "deep-work"
	PatternCustom   Pattern = "custom"
)

// DefaultDailyTargetMinutes is shown when a user has never configured a target.
const DefaultDailyTargetMinutes = 180

// SessionSettings is fixed once a session starts.
type SessionSettings struct {
	TargetMinutes int     `json:"targetMinutes"`
	Pattern       Pattern `json:"timePattern"`
	FocusMinutes  int     `json:"focusMinutes"`
	BreakMinutes  int     `json:"breakMinutes"`
}

type SessionRecord struct {
	ID                    string    `json:"id"`
	Timestamp             time.Time `json:"date"` // when the session ended
	DurationMinutes       int       `json:"durationMinutes"`
	TargetMet             bool      `json:"targetMet"`
	TargetDurationMinutes int       `json:"targetDuration,omitempty"`
}

type UserProgress struct {
	Sessions           []SessionRecord `json:"sessions"` // append-only, chronological
	TotalFocusMinutes  int             `json:"totalFocusMinutes"`
	DailyTargetMinutes int             `json:"dailyTargetMinutes,omitempty"`
}

func EmptyProgress() UserProgress {
	return UserProgress{
		Sessions:           []SessionRecord{},
		TotalFocusMinutes:  0,
		DailyTargetMinutes: DefaultDailyTargetMinutes,
	}
}

// DisplayTarget returns the last configured target, or the default when unset.
func (p UserProgress) DisplayTarget() int {
	if p.DailyTargetMinutes > 0 {
		return p.DailyTargetMinutes
	}
	return DefaultDailyTargetMinutes
}

// Snapshot returns a copy of the records that readers can hold without
// observing later appends.
func (p UserProgress) Snapshot() []SessionRecord {
	return slices.Clone(p.Sessions)
}

// Recent returns up to n records, newest first.
func (p UserProgress) Recent(n int) []SessionRecord {
	out := p.Snapshot()
	slices.Reverse(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}
