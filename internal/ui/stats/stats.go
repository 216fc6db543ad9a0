package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/focusup/internal/aggregate"
	"github.com/adibhanna/focusup/internal/models"
	"github.com/adibhanna/focusup/internal/report"
)

const chartHeight = 5

type Model struct {
	user          models.User
	progress      models.UserProgress
	summary       aggregate.Summary
	now           time.Time
	exportDir     string
	width         int
	height        int
	exportMessage string
	showMessage   bool
	back          bool
}

// New computes the statistics for the user's progress at now. Reports are
// exported into exportDir, or ~/Downloads when it is empty.
func New(user models.User, progress models.UserProgress, now time.Time, exportDir string) Model {
	return Model{
		user:      user,
		progress:  progress,
		summary:   aggregate.Summarize(progress, now, user.JoinDate),
		now:       now,
		exportDir: exportDir,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Summary() aggregate.Summary {
	return m.summary
}

func (m Model) ShouldGoBack() bool {
	return m.back
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			m.back = true
			return m, nil
		case key.Matches(msg, keys.Export):
			return m, m.exportStats()
		}

	case exportResultMsg:
		m.exportMessage = msg.message
		m.showMessage = true
		return m, tea.Tick(time.Second*3, func(t time.Time) tea.Msg {
			return clearMessageMsg{}
		})

	case clearMessageMsg:
		m.showMessage = false
		m.exportMessage = ""
		return m, nil
	}

	return m, nil
}

type clearMessageMsg struct{}

type exportResultMsg struct {
	success bool
	message string
}

func (m Model) exportStats() tea.Cmd {
	content := report.Build(m.user, m.progress, m.now)
	dir, now := m.exportDir, m.now
	return func() tea.Msg {
		path, err := report.Export(content, dir, now)
		if err != nil {
			return exportResultMsg{success: false, message: fmt.Sprintf("Export failed: %v", err)}
		}
		return exportResultMsg{success: true, message: fmt.Sprintf("✅ Exported to %s", path)}
	}
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

	statsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C"))

	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	s := m.summary
	productive := "-"
	if s.HasProductiveDay {
		productive = s.MostProductiveDay.String()
	}

	cards := []string{
		card("This week", fmt.Sprintf("%.2f hours", s.WeeklyHours())),
		card("Most productive day", productive),
		card("Longest session", fmt.Sprintf("%d min", s.LongestSession)),
		card("Today", fmt.Sprintf("%d min", s.DailyMinutes)),
	}

	lines := []string{
		statsStyle.Render(fmt.Sprintf("Targets met: %d • missed: %d", s.TargetsMet, s.TargetsMissed)),
		statsStyle.Render(fmt.Sprintf("Streak: %d days (best %d)", s.CurrentStreak, s.LongestStreak)),
		mutedStyle.Render(fmt.Sprintf("%d sessions • %s focused in total", s.SessionCount, report.Duration(s.TotalFocusMinutes))),
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("📊 Statistics - %s", m.now.Format("Monday, January 2, 2006"))),
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		strings.Join(lines, "\n"),
		renderChart(s.Chart),
		m.renderHelp(),
	)

	return containerStyle.Render(content)
}

func card(label, value string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FF7CCB")).
		Padding(0, 2).
		MarginRight(1).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			lipgloss.NewStyle().Foreground(lipgloss.Color("#888")).Render(label),
			lipgloss.NewStyle().Bold(true).Render(value),
		))
}

// renderChart draws one bar per day of the trailing week, scaled to the
// busiest day.
func renderChart(days []aggregate.ChartDay) string {
	chartStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(1).
		MarginBottom(1)

	if len(days) == 0 {
		return chartStyle.Render("No days to chart yet.")
	}

	peak := 0
	for _, day := range days {
		peak = max(peak, day.Minutes)
	}

	var b strings.Builder
	b.WriteString("Focus minutes, last 7 days\n\n")
	for row := chartHeight; row > 0; row-- {
		for _, day := range days {
			level := 0
			if peak > 0 {
				level = int(float64(day.Minutes) / float64(peak) * chartHeight)
			}
			if level >= row {
				b.WriteString(" █  ")
			} else {
				b.WriteString("    ")
			}
		}
		b.WriteString("\n")
	}
	for _, day := range days {
		b.WriteString(fmt.Sprintf(" %s ", day.Date.Format("Mon")[:2]))
	}
	b.WriteString("\n")
	for _, day := range days {
		b.WriteString(fmt.Sprintf("%-4d", day.Minutes))
	}

	return chartStyle.Render(b.String())
}

func (m Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(1)

	help := "Press 'e' to export • 'b' to go back • 'q' to quit"

	if m.showMessage && m.exportMessage != "" {
		messageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)
		help = messageStyle.Render(m.exportMessage) + "\n" + help
	}

	return helpStyle.Render(help)
}

type keyMap struct {
	Back   key.Binding
	Export key.Binding
}

var keys = keyMap{
	Back: key.NewBinding(
		key.WithKeys("b", "esc"),
		key.WithHelp("b", "back"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
}
