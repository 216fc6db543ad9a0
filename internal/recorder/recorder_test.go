package recorder

import (
	"errors"
	"testing"
	"time"

	"github.com/adibhanna/focusup/internal/clock"
	"github.com/adibhanna/focusup/internal/models"
)

type memRepo struct {
	data    map[string]models.UserProgress
	saveErr error
}

func (m *memRepo) Load(userID string) models.UserProgress {
	if p, ok := m.data[userID]; ok {
		return p
	}
	return models.EmptyProgress()
}

func (m *memRepo) Save(userID string, p models.UserProgress) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.data == nil {
		m.data = map[string]models.UserProgress{}
	}
	m.data[userID] = p
	return nil
}

func TestFinalize(t *testing.T) {
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		seconds   int
		target    int
		minutes   int
		targetMet bool
	}{
		{"partial minute dropped", 3599, 60, 59, false},
		{"exact target", 3600, 60, 60, true},
		{"above target", 7265, 60, 121, true},
		{"nothing focused", 0, 30, 0, false},
		{"negative input", -30, 30, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.EmptyProgress()
			rec := Finalize(&p, tt.seconds, tt.target, at, "rec-1")
			if rec.DurationMinutes != tt.minutes || rec.TargetMet != tt.targetMet {
				t.Errorf("Finalize() = %+v, want %d min met=%v", rec, tt.minutes, tt.targetMet)
			}
			if rec.TargetDurationMinutes != tt.target || !rec.Timestamp.Equal(at) || rec.ID != "rec-1" {
				t.Errorf("Finalize() metadata = %+v", rec)
			}
			if len(p.Sessions) != 1 || p.TotalFocusMinutes != tt.minutes {
				t.Errorf("progress = %+v", p)
			}
		})
	}
}

func TestFinalizeAppendsInOrder(t *testing.T) {
	p := models.EmptyProgress()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	for i, secs := range []int{600, 1200, 61} {
		Finalize(&p, secs, 30, base.Add(time.Duration(i)*time.Hour), string(rune('a'+i)))
	}
	if p.TotalFocusMinutes != 10+20+1 {
		t.Errorf("TotalFocusMinutes = %d, want 31", p.TotalFocusMinutes)
	}
	for i, id := range []string{"a", "b", "c"} {
		if p.Sessions[i].ID != id {
			t.Errorf("Sessions[%d].ID = %q, want %q", i, p.Sessions[i].ID, id)
		}
	}
}

func TestRecorderStartSetsDisplayTarget(t *testing.T) {
	repo := &memRepo{}
	r := New(repo, clock.Fixed(time.Now()))

	if err := r.Start("u1", models.SessionSettings{TargetMinutes: 240, FocusMinutes: 50, BreakMinutes: 10}); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	p := repo.Load("u1")
	if p.DailyTargetMinutes != 240 {
		t.Errorf("DailyTargetMinutes = %d, want 240", p.DailyTargetMinutes)
	}
	if len(p.Sessions) != 0 {
		t.Errorf("Start() appended a record")
	}
}

func TestRecorderFinish(t *testing.T) {
	now := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)
	repo := &memRepo{}
	r := New(repo, clock.Fixed(now))

	first, err := r.Finish("u1", 125*60+59, 120)
	if err != nil {
		t.Fatalf("Finish() error: %v", err)
	}
	second, err := r.Finish("u1", 30*60, 120)
	if err != nil {
		t.Fatalf("Finish() error: %v", err)
	}

	if first.ID == "" || first.ID == second.ID {
		t.Errorf("record ids %q, %q are not unique", first.ID, second.ID)
	}
	if !first.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", first.Timestamp, now)
	}
	p := repo.Load("u1")
	if p.TotalFocusMinutes != 155 || len(p.Sessions) != 2 {
		t.Errorf("progress = %+v", p)
	}
	if !p.Sessions[0].TargetMet || p.Sessions[1].TargetMet {
		t.Errorf("target flags = %v, %v", p.Sessions[0].TargetMet, p.Sessions[1].TargetMet)
	}
}

func TestRecorderFinishSaveError(t *testing.T) {
	boom := errors.New("disk full")
	r := New(&memRepo{saveErr: boom}, clock.Fixed(time.Now()))
	if _, err := r.Finish("u1", 60, 30); !errors.Is(err, boom) {
		t.Errorf("Finish() error = %v, want %v", err, boom)
	}
}
