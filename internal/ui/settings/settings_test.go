package settings

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adibhanna/focusup/internal/config"
	"github.com/adibhanna/focusup/internal/models"
)

func defaults() config.SessionConfig {
	return config.SessionConfig{
		TargetMinutes:      120,
		Pattern:            models.PatternPomodoro,
		CustomFocusMinutes: 45,
		CustomBreakMinutes: 15,
	}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func pressKey(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestSubmitPreset(t *testing.T) {
	m := update(New(defaults()), pressKey(tea.KeyEnter))
	got, ok := m.Submitted()
	if !ok {
		t.Fatalf("not submitted, error %q", m.ErrorMessage())
	}
	want := models.SessionSettings{TargetMinutes: 120, Pattern: models.PatternPomodoro, FocusMinutes: 25, BreakMinutes: 5}
	if got != want {
		t.Errorf("Submitted() = %+v, want %+v", got, want)
	}
}

func TestSubmitClampsTarget(t *testing.T) {
	m := New(defaults())
	m.target.SetValue("10")
	m = update(m, pressKey(tea.KeyEnter))
	got, ok := m.Submitted()
	if !ok || got.TargetMinutes != 30 {
		t.Errorf("Submitted() = %+v, %v", got, ok)
	}
	if m.target.Value() != "30" {
		t.Errorf("target field = %q, want normalised 30", m.target.Value())
	}
}

func TestSubmitEmptyTargetFallsBack(t *testing.T) {
	m := New(defaults())
	m.target.SetValue("")
	m = update(m, pressKey(tea.KeyEnter))
	if got, ok := m.Submitted(); !ok || got.TargetMinutes != 30 {
		t.Errorf("Submitted() = %+v, %v", got, ok)
	}
}

func TestCustomFocusAboveTargetShowsError(t *testing.T) {
	m := New(defaults())
	m = update(m, pressKey(tea.KeyTab))
	m = update(m, pressKey(tea.KeyRight))
	m = update(m, pressKey(tea.KeyRight))
	if m.Pattern() != models.PatternCustom {
		t.Fatalf("pattern = %s", m.Pattern())
	}
	m.target.SetValue("50")
	m.customFocus.SetValue("60")
	m.customBreak.SetValue("10")
	m = update(m, pressKey(tea.KeyEnter))

	if _, ok := m.Submitted(); ok {
		t.Fatal("invalid settings were submitted")
	}
	if !strings.Contains(m.ErrorMessage(), "must not exceed") {
		t.Errorf("error = %q", m.ErrorMessage())
	}

	m = update(m, pressKey(tea.KeyLeft))
	if m.ErrorMessage() != "" {
		t.Error("changing pattern did not clear the error")
	}
}

func TestFocusSkipsCustomFieldsForPresets(t *testing.T) {
	m := New(defaults())
	m = update(m, pressKey(tea.KeyTab))
	if m.focusIndex != fieldPattern {
		t.Fatalf("focus = %d", m.focusIndex)
	}
	m = update(m, pressKey(tea.KeyTab))
	if m.focusIndex != fieldTarget {
		t.Errorf("focus = %d, want wrap to target", m.focusIndex)
	}
}

func TestCancel(t *testing.T) {
	m := update(New(defaults()), pressKey(tea.KeyEsc))
	if !m.Cancelled() {
		t.Error("esc did not cancel")
	}
}

func TestValues(t *testing.T) {
	m := New(config.SessionConfig{TargetMinutes: 200, Pattern: models.PatternCustom, CustomFocusMinutes: 40, CustomBreakMinutes: 8})
	if m.Pattern() != models.PatternCustom {
		t.Fatalf("pattern = %s", m.Pattern())
	}
	want := config.SessionConfig{TargetMinutes: 200, Pattern: models.PatternCustom, CustomFocusMinutes: 40, CustomBreakMinutes: 8}
	if got := m.Values(); got != want {
		t.Errorf("Values() = %+v, want %+v", got, want)
	}
}

func TestNonDigitsAreRejected(t *testing.T) {
	m := update(New(defaults()), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if got := m.target.Value(); got != "120" {
		t.Errorf("target = %q, want 120", got)
	}
}
