package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/adibhanna/focusup/internal/aggregate"
	"github.com/adibhanna/focusup/internal/models"
)

// Duration formats minutes as "2h 5m", "2h" or "5m".
func Duration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

// Joined describes how long ago the user joined, e.g. "3 months ago".
func Joined(joinDate, now time.Time) string {
	if joinDate.IsZero() {
		return "just now"
	}
	return humanize.RelTime(joinDate, now, "ago", "from now")
}

// Build renders a plain text statistics report.
func Build(user models.User, progress models.UserProgress, now time.Time) string {
	s := aggregate.Summarize(progress, now, user.JoinDate)
	var b strings.Builder

	fmt.Fprintf(&b, "focusup - Statistics Report\n")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("January 2, 2006 3:04 PM"))
	fmt.Fprintf(&b, "User: %s (joined %s)\n", user.Name, Joined(user.JoinDate, now))
	fmt.Fprintf(&b, "=====================================\n\n")

	fmt.Fprintf(&b, "OVERALL STATISTICS\n")
	fmt.Fprintf(&b, "------------------\n")
	fmt.Fprintf(&b, "Total Sessions: %s\n", humanize.Comma(int64(s.SessionCount)))
	fmt.Fprintf(&b, "Total Focus Time: %s\n", Duration(s.TotalFocusMinutes))
	fmt.Fprintf(&b, "Longest Session: %d minutes\n", s.LongestSession)
	fmt.Fprintf(&b, "Targets Met: %d | Missed: %d\n", s.TargetsMet, s.TargetsMissed)
	fmt.Fprintf(&b, "Current Streak: %d days | Longest Streak: %d days\n\n", s.CurrentStreak, s.LongestStreak)

	fmt.Fprintf(&b, "THIS WEEK\n")
	fmt.Fprintf(&b, "---------\n")
	fmt.Fprintf(&b, "Weekly Focus: %.2f hours\n", s.WeeklyHours())
	if s.HasProductiveDay {
		fmt.Fprintf(&b, "Most Productive Day: %s\n", s.MostProductiveDay)
	} else {
		fmt.Fprintf(&b, "Most Productive Day: -\n")
	}
	fmt.Fprintf(&b, "Today: %d/%d minutes (%.0f%%)\n\n", s.DailyMinutes, s.DailyTarget, s.DailyPercent()*100)

	fmt.Fprintf(&b, "LAST %d DAYS\n", aggregate.ChartDays)
	fmt.Fprintf(&b, "-----------\n")
	for _, day := range s.Chart {
		fmt.Fprintf(&b, "%s: %s\n", day.Date.Format("Mon 2006-01-02"), Duration(day.Minutes))
	}

	recent := progress.Recent(10)
	if len(recent) > 0 {
		fmt.Fprintf(&b, "\nRECENT SESSIONS\n")
		fmt.Fprintf(&b, "---------------\n")
		for _, r := range recent {
			status := "missed"
			if r.TargetMet {
				status = "met"
			}
			fmt.Fprintf(&b, "%s  %d min (target %s)\n", r.Timestamp.In(now.Location()).Format("Jan 2 3:04 PM"), r.DurationMinutes, status)
		}
	}

	return b.String()
}

// FileName is the export name for a report generated at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("focusup-stats-%s.txt", now.Format("2006-01-02-150405"))
}

// Export writes the report into dir. An empty dir means ~/Downloads, falling
// back to the home directory when Downloads is missing.
func Export(content, dir string, now time.Time) (string, error) {
	name := FileName(now)
	if dir != "" {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return "", fmt.Errorf("write report: %w", err)
		}
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	path := filepath.Join(home, "Downloads", name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		path = filepath.Join(home, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return "", fmt.Errorf("write report: %w", err)
		}
	}
	return path, nil
}
