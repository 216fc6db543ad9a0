package aggregate

import (
	"time"

	"github.com/adibhanna/focusup/internal/models"
)

type Summary struct {
	SessionCount      int
	TotalFocusMinutes int
	DailyMinutes      int
	DailyTarget       int
	WeeklyMinutes     int
	MostProductiveDay time.Weekday
	HasProductiveDay  bool
	LongestSession    int
	TargetsMet        int
	TargetsMissed     int
	CurrentStreak     int
	LongestStreak     int
	Chart             []ChartDay
}

// WeeklyHours is the weekly total in hours.
func (s Summary) WeeklyHours() float64 {
	return float64(s.WeeklyMinutes) / 60
}

// DailyRemaining is what is left of the display target today.
func (s Summary) DailyRemaining() int {
	return max(0, s.DailyTarget-s.DailyMinutes)
}

// DailyPercent is today's progress toward the display target, capped at 1.
func (s Summary) DailyPercent() float64 {
	if s.DailyTarget <= 0 {
		return 0
	}
	return min(float64(s.DailyMinutes)/float64(s.DailyTarget), 1)
}

// Summarize computes all statistics from a snapshot of the progress.
func Summarize(p models.UserProgress, now, joinDate time.Time) Summary {
	records := p.Snapshot()
	met, missed := TargetCounts(records)
	day, _, ok := MostProductiveDay(records, now)

	return Summary{
		SessionCount:      len(records),
		TotalFocusMinutes: p.TotalFocusMinutes,
		DailyMinutes:      DailyMinutes(records, now),
		DailyTarget:       p.DisplayTarget(),
		WeeklyMinutes:     WeeklyMinutes(records, now),
		MostProductiveDay: day,
		HasProductiveDay:  ok,
		LongestSession:    LongestSession(records),
		TargetsMet:        met,
		TargetsMissed:     missed,
		CurrentStreak:     CurrentStreak(records, now),
		LongestStreak:     LongestStreak(records, now.Location()),
		Chart:             Chart(records, now, joinDate),
	}
}
