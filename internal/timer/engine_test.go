package timer

import (
	"errors"
	"testing"

	"github.com/adibhanna/focusup/internal/models"
)

func newEngine(t *testing.T, focus, brk, target int) *Engine {
	t.Helper()
	e, err := New(models.SessionSettings{
		TargetMinutes: target,
		Pattern:       models.PatternCustom,
		FocusMinutes:  focus,
		BreakMinutes:  brk,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return e
}

func TestNewInitialState(t *testing.T) {
	e := newEngine(t, 25, 5, 120)
	want := State{Mode: Focus, SecondsRemaining: 1500, TotalFocusedSeconds: 0, Running: true}
	if got := e.State(); got != want {
		t.Errorf("State() = %+v, want %+v", got, want)
	}
}

func TestNewRejectsNonPositiveLengths(t *testing.T) {
	for _, s := range []models.SessionSettings{
		{TargetMinutes: 30, FocusMinutes: 0, BreakMinutes: 5},
		{TargetMinutes: 30, FocusMinutes: 25, BreakMinutes: -1},
	} {
		if _, err := New(s); !errors.Is(err, ErrInvalidSettings) {
			t.Errorf("New(%+v) error = %v, want ErrInvalidSettings", s, err)
		}
	}
}

func TestModeCyclesIndefinitely(t *testing.T) {
	e := newEngine(t, 1, 1, 30)

	var notes []Notification
	for tick := 1; tick <= 600; tick++ {
		if n, ok := e.Tick(); ok {
			notes = append(notes, n)
		}
		switch tick {
		case 59:
			if e.State().Mode != Focus {
				t.Fatalf("tick 59: mode = %v, want focus", e.State().Mode)
			}
		case 60:
			if e.State().Mode != Break {
				t.Fatalf("tick 60: mode = %v, want break", e.State().Mode)
			}
		case 120:
			if e.State().Mode != Focus {
				t.Fatalf("tick 120: mode = %v, want focus", e.State().Mode)
			}
		}
	}

	if len(notes) != 10 {
		t.Fatalf("got %d notifications, want 10", len(notes))
	}
	if notes[0].Kind != KindSuccess || notes[0].To != Break {
		t.Errorf("first notification = %+v, want success into break", notes[0])
	}
	if notes[1].Kind != KindInfo || notes[1].To != Focus {
		t.Errorf("second notification = %+v, want info into focus", notes[1])
	}
	if !e.State().Running {
		t.Error("engine stopped on its own")
	}
	if got := e.State().TotalFocusedSeconds; got != 300 {
		t.Errorf("TotalFocusedSeconds = %d, want 300", got)
	}
}

func TestFocusedSecondsOnlyGrowInFocus(t *testing.T) {
	e := newEngine(t, 1, 2, 30)
	prev := 0
	for i := 0; i < 400; i++ {
		mode := e.State().Mode
		e.Tick()
		got := e.State().TotalFocusedSeconds
		switch mode {
		case Focus:
			if got != prev+1 {
				t.Fatalf("tick %d in focus: total %d, want %d", i, got, prev+1)
			}
		case Break:
			if got != prev {
				t.Fatalf("tick %d in break: total changed %d -> %d", i, prev, got)
			}
		}
		prev = got
	}
}

func TestPauseAndResumeKeepCounters(t *testing.T) {
	e := newEngine(t, 1, 1, 30)
	for i := 0; i < 30; i++ {
		e.Tick()
	}
	before := e.State()

	if !e.Pause() {
		t.Fatal("Pause() = false")
	}
	if e.Pause() {
		t.Error("second Pause() = true")
	}
	for i := 0; i < 100; i++ {
		if _, ok := e.Tick(); ok {
			t.Fatal("paused engine switched mode")
		}
	}
	paused := e.State()
	before.Running = false
	if paused != before {
		t.Fatalf("paused state = %+v, want %+v", paused, before)
	}

	if !e.Resume() {
		t.Fatal("Resume() = false")
	}
	e.Tick()
	if got := e.State().SecondsRemaining; got != 29 {
		t.Errorf("SecondsRemaining after resume tick = %d, want 29", got)
	}
}

func TestStopFloorsMinutes(t *testing.T) {
	tests := []struct {
		ticks       int
		wantMinutes int
	}{
		{0, 0},
		{59, 0},
		{60, 1},
		{119, 1},
		{150, 2},
	}
	for _, tt := range tests {
		e := newEngine(t, 60, 5, 60)
		for i := 0; i < tt.ticks; i++ {
			e.Tick()
		}
		res := e.Stop()
		if res.TotalFocusedSeconds != tt.ticks || res.FocusedMinutes != tt.wantMinutes {
			t.Errorf("%d ticks: Stop() = %+v, want minutes %d", tt.ticks, res, tt.wantMinutes)
		}
	}
}

func TestStopIsTerminal(t *testing.T) {
	e := newEngine(t, 1, 1, 30)
	e.Tick()
	e.Stop()
	e.Tick()
	if e.Resume() {
		t.Error("Resume() after Stop() = true")
	}
	if got := e.State().TotalFocusedSeconds; got != 1 {
		t.Errorf("TotalFocusedSeconds = %d, want 1", got)
	}
}

func TestNoStopWhenTargetReached(t *testing.T) {
	e := newEngine(t, 30, 1, 30)
	for i := 0; i < 30*60+10; i++ {
		e.Tick()
	}
	minutes, pct := e.Progress()
	if minutes != 30 || pct != 1 {
		t.Errorf("Progress() = %d, %v; want 30, 1", minutes, pct)
	}
	if !e.State().Running || e.Stopped() {
		t.Error("engine stopped at target")
	}
}
