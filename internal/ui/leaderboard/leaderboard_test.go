package leaderboard

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	ranking "github.com/adibhanna/focusup/internal/leaderboard"
)

func board() []ranking.Standing {
	return ranking.Build(
		[]ranking.Entry{{ID: "me", Name: "Nadia", WeeklyMinutes: 2000}},
		[]ranking.Entry{
			{ID: "101", Name: "Rizky S.", WeeklyMinutes: 2430},
			{ID: "107", Name: "Eko S.", WeeklyMinutes: 1600},
		},
		"me",
	)
}

func TestRender(t *testing.T) {
	out := Render(board())
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("rows = %d:\n%s", len(lines), out)
	}
	checks := []struct {
		line int
		want []string
	}{
		{0, []string{"1", "Rizky S.", "King", "40.5h"}},
		{1, []string{"2", "Nadia (you)", "Duke", "33.3h"}},
		{2, []string{"3", "Eko S.", "Marquis", "26.7h"}},
	}
	for _, c := range checks {
		for _, want := range c.want {
			if !strings.Contains(lines[c.line], want) {
				t.Errorf("row %d = %q, missing %q", c.line, lines[c.line], want)
			}
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(nil); !strings.Contains(got, "Nobody") {
		t.Errorf("Render(nil) = %q", got)
	}
}

func TestBack(t *testing.T) {
	next, _ := New(board()).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).ShouldGoBack() {
		t.Error("esc did not go back")
	}
}
