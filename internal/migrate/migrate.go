// Package migrate brings the local store up to the current storage version.
// It is the only code allowed to reset stored data, and it runs only when the
// application shell calls Run at startup.
package migrate

import (
	"fmt"
	"log"
	"time"

	"github.com/adibhanna/focusup/internal/clock"
	"github.com/adibhanna/focusup/internal/models"
	"github.com/adibhanna/focusup/internal/storage"
)

// CurrentVersion changes whenever stored data can no longer be read as is.
const CurrentVersion = "5.0"

type Options struct {
	SeedDemo bool
}

type Report struct {
	From   string
	To     string
	Reset  bool
	Seeded bool
}

func (r Report) String() string {
	if !r.Reset {
		return fmt.Sprintf("storage is at version %s", r.To)
	}
	from := r.From
	if from == "" {
		from = "none"
	}
	s := fmt.Sprintf("storage reset from version %s to %s", from, r.To)
	if r.Seeded {
		s += " (demo profile seeded)"
	}
	return s
}

// Run resets the store when its version differs from CurrentVersion.
func Run(kv storage.KV, clk clock.Clock, opts Options) (Report, error) {
	from := storage.Load(kv, storage.VersionKey, "")
	report := Report{From: from, To: CurrentVersion}
	if from == CurrentVersion {
		return report, nil
	}

	log.Printf("migrate: storage version %q differs from %q, resetting", from, CurrentVersion)
	if err := kv.Clear(); err != nil {
		return report, fmt.Errorf("clear store: %w", err)
	}
	report.Reset = true

	if opts.SeedDemo {
		if err := SeedDemo(kv, clk.Now()); err != nil {
			return report, fmt.Errorf("seed demo data: %w", err)
		}
		report.Seeded = true
	}

	if err := storage.Save(kv, storage.VersionKey, CurrentVersion); err != nil {
		return report, err
	}
	return report, nil
}

const DemoUserID = "pro-user-001"

// DemoWeeklyMinutes is the demo profile's weekly total right after seeding.
const DemoWeeklyMinutes = 2400

// SeedDemo stores a demo profile with a week of heavy focus and a long,
// deterministic history behind it.
func SeedDemo(kv storage.KV, now time.Time) error {
	user := models.User{
		ID:       DemoUserID,
		Name:     "Jordan K.",
		JoinDate: now.AddDate(0, 0, -500),
	}

	const older = 350
	recent := []int{350, 350, 350, 350, 350, 325, 325}

	p := models.UserProgress{DailyTargetMinutes: 240}
	add := func(id string, ts time.Time, minutes int, met bool) {
		p.Sessions = append(p.Sessions, models.SessionRecord{
			ID:                    id,
			Timestamp:             ts,
			DurationMinutes:       minutes,
			TargetMet:             met,
			TargetDurationMinutes: 240,
		})
		p.TotalFocusMinutes += minutes
	}

	for i := older - 1; i >= 0; i-- {
		minutes := 60 + (i*37)%200
		add(fmt.Sprintf("demo-old-%03d", i), now.AddDate(0, 0, -(i+7)), minutes, (i*7)%10 >= 4)
	}
	for i := len(recent) - 1; i >= 0; i-- {
		add(fmt.Sprintf("demo-recent-%d", i), now.AddDate(0, 0, -i), recent[i], recent[i] >= 240)
	}

	if err := storage.Save(kv, storage.UsersKey, []models.User{user}); err != nil {
		return err
	}
	return storage.NewProgressRepository(kv).Save(user.ID, p)
}
