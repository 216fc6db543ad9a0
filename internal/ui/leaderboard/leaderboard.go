package leaderboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ranking "github.com/adibhanna/focusup/internal/leaderboard"
)

var trophyColors = map[int]lipgloss.Color{
	1: lipgloss.Color("#FFD700"),
	2: lipgloss.Color("#C0C0C0"),
	3: lipgloss.Color("#CD7F32"),
}

// Model shows the weekly board.
type Model struct {
	board  []ranking.Standing
	width  int
	height int
	back   bool
}

func New(board []ranking.Standing) Model {
	return Model{board: board}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShouldGoBack() bool {
	return m.back
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if key.Matches(msg, backKey) {
			m.back = true
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(1)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		MarginBottom(1)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	return containerStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("🏆 Weekly Leaderboard"),
		subtitleStyle.Render("Total focus over the last 7 days"),
		Render(m.board),
		helpStyle.Render("b: back • q: quit"),
	))
}

// Render draws the board as rows of rank, name, title and hours. The CLI
// prints the same rows.
func Render(board []ranking.Standing) string {
	if len(board) == 0 {
		return "Nobody on the board yet."
	}

	rowStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	youStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7D56F4"))

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C"))

	nameWidth := 0
	for _, s := range board {
		nameWidth = max(nameWidth, len([]rune(displayName(s))))
	}

	rows := make([]string, len(board))
	for i, s := range board {
		rank := fmt.Sprintf("%3d", s.Rank)
		if c, ok := trophyColors[s.Rank]; ok {
			rank = lipgloss.NewStyle().Bold(true).Foreground(c).Render(rank)
		}
		name := displayName(s)
		name += strings.Repeat(" ", nameWidth-len([]rune(name)))

		style := rowStyle
		if s.IsCurrentUser {
			style = youStyle
		}
		rows[i] = fmt.Sprintf("%s  %s  %s  %s",
			rank,
			style.Render(name),
			titleStyle.Render(fmt.Sprintf("%-8s", s.Title)),
			style.Render(fmt.Sprintf("%6.1fh", s.Hours())),
		)
	}
	return strings.Join(rows, "\n")
}

func displayName(s ranking.Standing) string {
	if s.IsCurrentUser {
		return s.Name + " (you)"
	}
	return s.Name
}

var backKey = key.NewBinding(
	key.WithKeys("b", "esc"),
	key.WithHelp("b", "back"),
)
