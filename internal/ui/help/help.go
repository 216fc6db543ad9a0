package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Model struct {
	dataDir string
	width   int
	height  int
	back    bool
}

func New(dataDir string) Model {
	return Model{dataDir: dataDir}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Back) {
			m.back = true
		}
	}

	return m, nil
}

// ShouldGoBack reports whether the user left the help page.
func (m Model) ShouldGoBack() bool {
	return m.back
}

type entry struct {
	keys string
	desc string
}

func (m Model) View() string {
	// Use reasonable defaults if dimensions aren't set
	width := m.width
	height := m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	containerStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(1)

	sectionTitleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	section := func(title string, entries []entry) string {
		lines := []string{sectionTitleStyle.Render(title)}
		for _, e := range entries {
			lines = append(lines, fmt.Sprintf("%s - %s", keyStyle.Render(e.keys), descStyle.Render(e.desc)))
		}
		return strings.Join(lines, "\n")
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("🆘 focusup Help"),
		section("⏱️  Timer", []entry{
			{"space", "Pause or resume"},
			{"p / r", "Pause / resume"},
			{"s", "Stop the session and save the focused minutes"},
		}),
		section("🧭 Navigation", []entry{
			{"n", "Set up a new session"},
			{"t", "Statistics"},
			{"l", "Weekly leaderboard"},
			{"u", "Switch user"},
			{"b / esc", "Go back"},
			{"?", "Show this help page"},
			{"q / Ctrl+C", "Quit (a running session is saved first)"},
		}),
		section("⚙️  Session setup", []entry{
			{"tab / ↓", "Next field"},
			{"← / →", "Change the time pattern"},
			{"enter", "Start the tracker"},
		}),
		sectionTitleStyle.Render("ℹ️  About"),
		descStyle.Render(
			"Pick a study target and a focus/break pattern, then let the timer cycle\n"+
				"between focus and break until you stop it. Only focus time counts.\n\n"+
				"Data is stored locally in "+m.dataDir),
		footerStyle.Render("Press 'b/esc' to go back • 'q' to quit"),
	)

	return containerStyle.Render(content)
}

type keyMap struct {
	Back key.Binding
}

var keys = keyMap{
	Back: key.NewBinding(
		key.WithKeys("b", "esc", "?"),
		key.WithHelp("b/esc", "back"),
	),
}
