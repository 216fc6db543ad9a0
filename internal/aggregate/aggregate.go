// Package aggregate computes read-side statistics over a user's session
// history. Every function takes "now" explicitly and works on the records it
// is given without modifying them.
package aggregate

import (
	"slices"
	"time"

	"github.com/adibhanna/focusup/internal/models"
)

// WeeklyWindow is a rolling lookback, not a calendar week.
const WeeklyWindow = 7 * 24 * time.Hour

// ChartDays is the length of the trailing chart series.
const ChartDays = 7

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	return midnight(a, loc).Equal(midnight(b, loc))
}

// DailyMinutes sums the records on now's calendar day, in now's location.
func DailyMinutes(records []models.SessionRecord, now time.Time) int {
	total := 0
	for _, r := range records {
		if sameDay(r.Timestamp, now, now.Location()) {
			total += r.DurationMinutes
		}
	}
	return total
}

func InWeeklyWindow(ts, now time.Time) bool {
	return now.Sub(ts) < WeeklyWindow
}

func WeeklyMinutes(records []models.SessionRecord, now time.Time) int {
	total := 0
	for _, r := range records {
		if InWeeklyWindow(r.Timestamp, now) {
			total += r.DurationMinutes
		}
	}
	return total
}

// WeekdayMinutes buckets the weekly window by weekday, indexed Sunday..Saturday.
func WeekdayMinutes(records []models.SessionRecord, now time.Time) [7]int {
	var buckets [7]int
	for _, r := range records {
		if InWeeklyWindow(r.Timestamp, now) {
			buckets[r.Timestamp.In(now.Location()).Weekday()] += r.DurationMinutes
		}
	}
	return buckets
}

// MostProductiveDay returns the weekday with the most focus in the weekly
// window. Ties go to the earlier day in Sunday..Saturday order. ok is false
// when nothing was focused.
func MostProductiveDay(records []models.SessionRecord, now time.Time) (day time.Weekday, minutes int, ok bool) {
	for d, m := range WeekdayMinutes(records, now) {
		if m > minutes {
			day, minutes, ok = time.Weekday(d), m, true
		}
	}
	return day, minutes, ok
}

func LongestSession(records []models.SessionRecord) int {
	longest := 0
	for _, r := range records {
		longest = max(longest, r.DurationMinutes)
	}
	return longest
}

func TargetCounts(records []models.SessionRecord) (met, missed int) {
	for _, r := range records {
		if r.TargetMet {
			met++
		} else {
			missed++
		}
	}
	return met, missed
}

type ChartDay struct {
	Date    time.Time
	Minutes int
}

// Chart returns one bucket per calendar day for the trailing week, oldest
// first. Days before joinDate are left out entirely; a zero joinDate keeps
// all seven.
func Chart(records []models.SessionRecord, now, joinDate time.Time) []ChartDay {
	loc := now.Location()
	today := midnight(now, loc)

	var joined time.Time
	if !joinDate.IsZero() {
		joined = midnight(joinDate, loc)
	}

	series := make([]ChartDay, 0, ChartDays)
	for i := ChartDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		if !joined.IsZero() && day.Before(joined) {
			continue
		}
		series = append(series, ChartDay{Date: day})
	}

	for _, r := range records {
		d := midnight(r.Timestamp, loc)
		for i := range series {
			if series[i].Date.Equal(d) {
				series[i].Minutes += r.DurationMinutes
				break
			}
		}
	}
	return series
}

const dateLayout = "2006-01-02"

func focusDays(records []models.SessionRecord, loc *time.Location) map[string]time.Time {
	days := make(map[string]time.Time)
	for _, r := range records {
		if r.DurationMinutes > 0 {
			d := midnight(r.Timestamp, loc)
			days[d.Format(dateLayout)] = d
		}
	}
	return days
}

// CurrentStreak counts consecutive days with focus, ending today. A streak
// that reached yesterday still counts until today is over.
func CurrentStreak(records []models.SessionRecord, now time.Time) int {
	loc := now.Location()
	days := focusDays(records, loc)
	has := func(d time.Time) bool {
		_, ok := days[d.Format(dateLayout)]
		return ok
	}

	day := midnight(now, loc)
	if !has(day) {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for has(day) {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func LongestStreak(records []models.SessionRecord, loc *time.Location) int {
	var days []time.Time
	for _, d := range focusDays(records, loc) {
		days = append(days, d)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

	longest, run := 0, 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}
