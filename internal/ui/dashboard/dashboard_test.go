package dashboard

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adibhanna/focusup/internal/clock"
	"github.com/adibhanna/focusup/internal/config"
	"github.com/adibhanna/focusup/internal/leaderboard"
	"github.com/adibhanna/focusup/internal/recorder"
	"github.com/adibhanna/focusup/internal/storage"
	"github.com/adibhanna/focusup/internal/users"
)

var now = time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)

func newDeps(t *testing.T) Deps {
	t.Helper()
	dir := t.TempDir()
	mgr, err := config.NewManager(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	kv, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	clk := clock.Fixed(now)
	registry := users.NewRegistry(kv, clk)
	progress := storage.NewProgressRepository(kv)
	return Deps{
		Config:    mgr,
		DataDir:   dir,
		Users:     registry,
		Progress:  progress,
		Recorder:  recorder.New(progress, clk),
		Board:     leaderboard.NewService(registry, progress, mgr.Config().Leaderboard.Entries, clk),
		Clock:     clk,
		ExportDir: dir,
	}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, k string) Model {
	return update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func enter(m Model) Model {
	return update(m, tea.KeyMsg{Type: tea.KeyEnter})
}

func registered(t *testing.T, deps Deps) Model {
	t.Helper()
	m := update(New(deps), tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.ViewState() != PickUserView {
		t.Fatalf("first run view = %v, want user picker", m.ViewState())
	}
	m = press(m, "Nadia")
	m = enter(m)
	if m.ViewState() != HomeView || m.User().Name != "Nadia" {
		t.Fatalf("after registering: view %v, user %+v", m.ViewState(), m.User())
	}
	return m
}

func TestFirstRunRegistersAndRemembersUser(t *testing.T) {
	deps := newDeps(t)
	first := registered(t, deps)

	again := New(deps)
	if again.ViewState() != HomeView || again.User().ID != first.User().ID {
		t.Errorf("second start: view %v, user %+v", again.ViewState(), again.User())
	}
}

func TestSessionIsRecordedOnStop(t *testing.T) {
	deps := newDeps(t)
	m := registered(t, deps)

	m = press(m, "n")
	if m.ViewState() != SetupView {
		t.Fatalf("view = %v, want setup", m.ViewState())
	}
	m = press(m, "q")
	if m.ShouldQuit() {
		t.Fatal("q in the setup form quit the app")
	}
	m = enter(m)
	if m.ViewState() != TimerView {
		t.Fatalf("view = %v, want timer", m.ViewState())
	}
	if got := deps.Progress.Load(m.User().ID).DailyTargetMinutes; got != 120 {
		t.Errorf("daily target after start = %d, want 120", got)
	}

	m = press(m, "s")
	if m.ViewState() != HomeView {
		t.Fatalf("view = %v, want home after stop", m.ViewState())
	}
	p := deps.Progress.Load(m.User().ID)
	if len(p.Sessions) != 1 || p.Sessions[0].TargetDurationMinutes != 120 || p.Sessions[0].TargetMet {
		t.Errorf("progress = %+v", p)
	}
	if !strings.Contains(m.View(), "Session saved") {
		t.Error("home does not confirm the saved session")
	}
}

func TestQuitDuringTimerSavesSession(t *testing.T) {
	deps := newDeps(t)
	m := registered(t, deps)
	m = enter(press(m, "n"))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	if !m.ShouldQuit() || cmd == nil {
		t.Fatal("q did not quit")
	}
	if got := len(deps.Progress.Load(m.User().ID).Sessions); got != 1 {
		t.Errorf("sessions = %d, want the running one saved", got)
	}
}

func TestNavigation(t *testing.T) {
	deps := newDeps(t)
	m := registered(t, deps)

	tests := []struct {
		open string
		view ViewState
		want string
		back tea.KeyMsg
	}{
		{"t", StatsView, "Statistics", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")}},
		{"l", LeaderboardView, "Nadia (you)", tea.KeyMsg{Type: tea.KeyEsc}},
		{"?", HelpView, "focusup Help", tea.KeyMsg{Type: tea.KeyEsc}},
	}
	for _, tt := range tests {
		m = press(m, tt.open)
		if m.ViewState() != tt.view {
			t.Fatalf("%q opened %v, want %v", tt.open, m.ViewState(), tt.view)
		}
		if !strings.Contains(m.View(), tt.want) {
			t.Errorf("%v view missing %q", tt.view, tt.want)
		}
		m = update(m, tt.back)
		if m.ViewState() != HomeView {
			t.Errorf("back from %v landed on %v", tt.view, m.ViewState())
		}
	}
}

func TestSwitchUser(t *testing.T) {
	deps := newDeps(t)
	m := registered(t, deps)
	if _, err := deps.Users.Register("Ben"); err != nil {
		t.Fatal(err)
	}
	deps.Users.SetCurrent(m.User().ID)

	m = press(m, "u")
	if m.ViewState() != PickUserView {
		t.Fatalf("view = %v", m.ViewState())
	}
	m = press(m, "j")
	m = enter(m)
	if m.User().Name != "Ben" {
		t.Errorf("user = %+v, want Ben", m.User())
	}
	if cur, _ := deps.Users.Current(); cur.Name != "Ben" {
		t.Errorf("current = %+v", cur)
	}
}

func TestHomeShowsProgress(t *testing.T) {
	deps := newDeps(t)
	m := registered(t, deps)
	out := m.View()
	for _, want := range []string{"Welcome back, Nadia", "Today: 0 / 180 min", "No sessions yet"} {
		if !strings.Contains(out, want) {
			t.Errorf("home missing %q:\n%s", want, out)
		}
	}
}
