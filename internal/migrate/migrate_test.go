package migrate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adibhanna/focusup/internal/aggregate"
	"github.com/adibhanna/focusup/internal/clock"
	"github.com/adibhanna/focusup/internal/models"
	"github.com/adibhanna/focusup/internal/storage"
)

func newStore(t *testing.T) storage.KV {
	t.Helper()
	kv, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return kv
}

func TestRunResetsOnVersionMismatch(t *testing.T) {
	kv := newStore(t)
	storage.Save(kv, storage.VersionKey, "4.0")
	storage.Save(kv, storage.ProgressKey("old"), models.UserProgress{TotalFocusMinutes: 99})

	report, err := Run(kv, clock.Fixed(time.Now()), Options{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !report.Reset || report.From != "4.0" || report.To != CurrentVersion || report.Seeded {
		t.Errorf("Run() report = %+v", report)
	}
	if _, ok, _ := kv.Get(storage.ProgressKey("old")); ok {
		t.Error("old progress survived the reset")
	}
	if v := storage.Load(kv, storage.VersionKey, ""); v != CurrentVersion {
		t.Errorf("stored version = %q", v)
	}
}

func TestFirstRunKeepsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	pkg := filepath.Join(dir, "package.json")
	if err := os.WriteFile(pkg, []byte(`{"name": "site"}`), 0644); err != nil {
		t.Fatal(err)
	}
	kv, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	report, err := Run(kv, clock.Fixed(time.Now()), Options{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !report.Reset {
		t.Fatalf("first run did not reset: %+v", report)
	}
	if _, err := os.Stat(pkg); err != nil {
		t.Errorf("package.json removed by first run: %v", err)
	}
}

func TestRunLeavesCurrentVersionAlone(t *testing.T) {
	kv := newStore(t)
	storage.Save(kv, storage.VersionKey, CurrentVersion)
	storage.Save(kv, storage.ProgressKey("u1"), models.UserProgress{TotalFocusMinutes: 42})

	report, err := Run(kv, clock.Fixed(time.Now()), Options{SeedDemo: true})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if report.Reset || report.Seeded {
		t.Errorf("Run() report = %+v", report)
	}
	if p := storage.NewProgressRepository(kv).Load("u1"); p.TotalFocusMinutes != 42 {
		t.Errorf("progress changed: %+v", p)
	}
}

func TestSeedDemo(t *testing.T) {
	kv := newStore(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	report, err := Run(kv, clock.Fixed(now), Options{SeedDemo: true})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !report.Seeded {
		t.Fatal("demo data not seeded")
	}

	users := storage.Load(kv, storage.UsersKey, []models.User{})
	if len(users) != 1 || users[0].ID != DemoUserID {
		t.Fatalf("users = %+v", users)
	}

	p := storage.NewProgressRepository(kv).Load(DemoUserID)
	if len(p.Sessions) != 357 {
		t.Fatalf("len(sessions) = %d, want 357", len(p.Sessions))
	}
	if got := aggregate.WeeklyMinutes(p.Sessions, now); got != DemoWeeklyMinutes {
		t.Errorf("weekly minutes = %d, want %d", got, DemoWeeklyMinutes)
	}

	sum := 0
	for i, r := range p.Sessions {
		sum += r.DurationMinutes
		if i > 0 && r.Timestamp.Before(p.Sessions[i-1].Timestamp) {
			t.Fatalf("sessions out of order at %d", i)
		}
	}
	if sum != p.TotalFocusMinutes {
		t.Errorf("TotalFocusMinutes = %d, sum of records = %d", p.TotalFocusMinutes, sum)
	}
}
