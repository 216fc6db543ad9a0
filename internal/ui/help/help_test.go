package help

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestBack(t *testing.T) {
	next, _ := New("/tmp/focusup").Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if !next.(Model).ShouldGoBack() {
		t.Error("b did not go back")
	}
}

func TestViewMentionsDataDir(t *testing.T) {
	if out := New("/tmp/focusup").View(); !strings.Contains(out, "/tmp/focusup") {
		t.Errorf("view does not mention the data dir:\n%s", out)
	}
}
