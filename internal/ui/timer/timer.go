package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/focusup/internal/models"
	core "github.com/adibhanna/focusup/internal/timer"
)

const bannerDuration = 5 * time.Second

// tickMsg carries the generation it was scheduled under. Pause and Stop bump
// the generation, so ticks already in flight are dropped.
type tickMsg struct{ gen int }

type motivateMsg struct{}

type clearBannerMsg struct{ seq int }

type Model struct {
	engine   *core.Engine
	gen      int
	progress progress.Model

	banner    *core.Notification
	bannerSeq int

	messages   []string
	messageIdx int
	interval   time.Duration

	stopped bool
	result  core.Result

	width  int
	height int
}

func New(settings models.SessionSettings, messages []string, interval time.Duration) (Model, error) {
	engine, err := core.New(settings)
	if err != nil {
		return Model{}, err
	}

	prog := progress.New(progress.WithScaledGradient("#FF7CCB", "#FDFF8C"))
	prog.Width = 60

	if interval <= 0 {
		interval = 30 * time.Second
	}

	return Model{
		engine:   engine,
		progress: prog,
		messages: messages,
		interval: interval,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.motivateCmd())
}

func (m Model) tickCmd() tea.Cmd {
	gen := m.gen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m Model) motivateCmd() tea.Cmd {
	if len(m.messages) < 2 {
		return nil
	}
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return motivateMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 80)
		return m, nil

	case tea.KeyMsg:
		if m.stopped {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Toggle):
			if m.engine.State().Running {
				return m.pause(), nil
			}
			return m.resume()

		case key.Matches(msg, keys.Pause):
			return m.pause(), nil

		case key.Matches(msg, keys.Resume):
			return m.resume()

		case key.Matches(msg, keys.Stop):
			return m.Stop(), nil
		}

	case tickMsg:
		if msg.gen != m.gen || m.stopped {
			return m, nil
		}
		n, switched := m.engine.Tick()
		if !switched {
			return m, m.tickCmd()
		}
		m.banner = &n
		m.bannerSeq++
		seq := m.bannerSeq
		return m, tea.Batch(
			m.tickCmd(),
			tea.Tick(bannerDuration, func(time.Time) tea.Msg { return clearBannerMsg{seq: seq} }),
		)

	case clearBannerMsg:
		if msg.seq == m.bannerSeq {
			m.banner = nil
		}
		return m, nil

	case motivateMsg:
		if m.stopped || len(m.messages) == 0 {
			return m, nil
		}
		m.messageIdx = (m.messageIdx + 1) % len(m.messages)
		return m, m.motivateCmd()

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m Model) pause() Model {
	if m.engine.Pause() {
		m.gen++
	}
	return m
}

func (m Model) resume() (Model, tea.Cmd) {
	if !m.engine.Resume() {
		return m, nil
	}
	m.gen++
	return m, m.tickCmd()
}

// Stop ends the session. Calling it again keeps the first result.
func (m Model) Stop() Model {
	if m.stopped {
		return m
	}
	m.result = m.engine.Stop()
	m.stopped = true
	m.gen++
	m.banner = nil
	return m
}

// Stopped reports the session result once the user has stopped the timer.
func (m Model) Stopped() (core.Result, bool) {
	return m.result, m.stopped
}

func (m Model) Settings() models.SessionSettings {
	return m.engine.Settings()
}

func (m Model) State() core.State {
	return m.engine.State()
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(2)

	state := m.engine.State()
	settings := m.engine.Settings()

	modeColor := lipgloss.Color("#7D56F4")
	if state.Mode == core.Break {
		modeColor = lipgloss.Color("#4CAF50")
	}
	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(modeColor).
		Padding(0, 2).
		MarginBottom(1)

	timerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(modeColor).
		Padding(1, 3).
		MarginBottom(2)

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		MarginTop(1)

	minutes, percent := m.engine.Progress()
	total := statusStyle.Render(fmt.Sprintf("Total focus: %d min / %d min", minutes, settings.TargetMinutes))

	var status string
	if !state.Running {
		status = "PAUSED - Press 'r' to resume"
	} else if state.Mode == core.Focus {
		status = "Focus time! Stay in the zone..."
	} else {
		status = "Break time. Stretch, breathe, hydrate."
	}

	parts := []string{}
	if m.banner != nil {
		parts = append(parts, m.renderBanner(*m.banner))
	}
	parts = append(parts,
		modeStyle.Render(strings.ToUpper(state.Mode.String())),
		timerStyle.Render(renderBigTime(state.SecondsRemaining)),
		total,
		m.progress.ViewAs(percent),
		statusStyle.Render(status),
	)
	if len(m.messages) > 0 {
		quoteStyle := lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#FDFF8C")).
			MarginTop(2)
		parts = append(parts, quoteStyle.Render("\""+m.messages[m.messageIdx]+"\""))
	}
	parts = append(parts, helpView(state.Running))

	return containerStyle.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

func (m Model) renderBanner(n core.Notification) string {
	bg := lipgloss.Color("#4CAF50")
	if n.Kind == core.KindInfo {
		bg = lipgloss.Color("#7D56F4")
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(bg).
		Padding(0, 2).
		MarginBottom(1).
		Render(n.Message)
}

var digits = map[rune][]string{
	'0': {"███", "█ █", "█ █", "█ █", "███"},
	'1': {" █ ", "██ ", " █ ", " █ ", "███"},
	'2': {"███", "  █", "███", "█  ", "███"},
	'3': {"███", "  █", "███", "  █", "███"},
	'4': {"█ █", "█ █", "███", "  █", "  █"},
	'5': {"███", "█  ", "███", "  █", "███"},
	'6': {"███", "█  ", "███", "█ █", "███"},
	'7': {"███", "  █", "  █", "  █", "  █"},
	'8': {"███", "█ █", "███", "█ █", "███"},
	'9': {"███", "█ █", "███", "  █", "███"},
	':': {" ", "█", " ", "█", " "},
}

// renderBigTime draws mm:ss in block digits. Minutes may run past two digits.
func renderBigTime(seconds int) string {
	text := fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
	lines := make([]string, 5)
	for row := range lines {
		cells := make([]string, 0, len(text))
		for _, r := range text {
			cells = append(cells, digits[r][row])
		}
		lines[row] = strings.Join(cells, " ")
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func helpView(running bool) string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	if running {
		return helpStyle.Render("space/p: pause • s: stop & save • q: quit")
	}
	return helpStyle.Render("space/r: resume • s: stop & save • q: quit")
}

type keyMap struct {
	Toggle key.Binding
	Pause  key.Binding
	Resume key.Binding
	Stop   key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "pause/resume"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause"),
	),
	Resume: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "resume"),
	),
	Stop: key.NewBinding(
		key.WithKeys("s", "x"),
		key.WithHelp("s", "stop & save"),
	),
}
