package dashboard

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/focusup/internal/aggregate"
	"github.com/adibhanna/focusup/internal/clock"
	"github.com/adibhanna/focusup/internal/config"
	"github.com/adibhanna/focusup/internal/leaderboard"
	"github.com/adibhanna/focusup/internal/models"
	"github.com/adibhanna/focusup/internal/recorder"
	"github.com/adibhanna/focusup/internal/report"
	"github.com/adibhanna/focusup/internal/storage"
	"github.com/adibhanna/focusup/internal/ui/help"
	boardui "github.com/adibhanna/focusup/internal/ui/leaderboard"
	"github.com/adibhanna/focusup/internal/ui/menu"
	"github.com/adibhanna/focusup/internal/ui/settings"
	"github.com/adibhanna/focusup/internal/ui/stats"
	"github.com/adibhanna/focusup/internal/ui/timer"
	"github.com/adibhanna/focusup/internal/users"
)

type ViewState int

const (
	PickUserView ViewState = iota
	HomeView
	SetupView
	TimerView
	StatsView
	LeaderboardView
	HelpView
)

// Deps are the services the TUI drives. ExportDir may be empty.
type Deps struct {
	Config    *config.Manager
	DataDir   string
	Users     *users.Registry
	Progress  *storage.ProgressRepository
	Recorder  *recorder.Recorder
	Board     *leaderboard.Service
	Clock     clock.Clock
	ExportDir string
}

type Model struct {
	deps      Deps
	viewState ViewState
	user      models.User
	progress  models.UserProgress
	width     int
	height    int

	dailyBar progress.Model

	// Sub-models
	menuModel     menu.Model
	settingsModel settings.Model
	timerModel    timer.Model
	statsModel    stats.Model
	boardModel    boardui.Model
	helpModel     help.Model

	lastRecord *models.SessionRecord
	errorMsg   string
	shouldQuit bool
}

func New(deps Deps) Model {
	prog := progress.New(progress.WithScaledGradient("#FF7CCB", "#FDFF8C"))
	prog.Width = 40

	m := Model{
		deps:      deps,
		dailyBar:  prog,
		helpModel: help.New(deps.DataDir),
	}

	u, err := deps.Users.Current()
	if err != nil {
		m.viewState = PickUserView
		m.menuModel = menu.New(deps.Users, deps.Clock.Now())
		return m
	}
	m.setUser(u)
	return m
}

func (m *Model) setUser(u models.User) {
	m.user = u
	m.progress = m.deps.Progress.Load(u.ID)
	m.lastRecord = nil
	m.viewState = HomeView
}

func (m Model) Init() tea.Cmd {
	if m.viewState == PickUserView {
		return m.menuModel.Init()
	}
	return nil
}

func (m Model) ViewState() ViewState {
	return m.viewState
}

func (m Model) User() models.User {
	return m.user
}

func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

func (m Model) sizeMsg() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.width, Height: m.height}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dailyBar.Width = min(msg.Width/2, 50)
		return m.delegate(msg)

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return m.quit()
		}
		if m.typing() {
			return m.delegate(msg)
		}
		if key.Matches(msg, keys.Quit) {
			return m.quit()
		}
		if m.viewState == HomeView {
			return m.updateHome(msg)
		}
		return m.delegate(msg)
	}

	return m.delegate(msg)
}

func (m Model) typing() bool {
	return m.viewState == SetupView || (m.viewState == PickUserView && m.menuModel.Typing())
}

// quit saves a running session before leaving.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.viewState == TimerView {
		m.timerModel = m.timerModel.Stop()
		m.finishSession()
	}
	m.shouldQuit = true
	return m, tea.Quit
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.NewSession):
		m.settingsModel = settings.New(m.deps.Config.Config().Session)
		return m.open(SetupView, m.settingsModel.Init())

	case key.Matches(msg, keys.Stats):
		m.statsModel = stats.New(m.user, m.progress, m.deps.Clock.Now(), m.deps.ExportDir)
		return m.open(StatsView, nil)

	case key.Matches(msg, keys.Leaderboard):
		m.boardModel = boardui.New(m.deps.Board.Board(m.user, m.progress))
		return m.open(LeaderboardView, nil)

	case key.Matches(msg, keys.Users):
		m.menuModel = menu.New(m.deps.Users, m.deps.Clock.Now())
		return m.open(PickUserView, m.menuModel.Init())

	case key.Matches(msg, keys.Help):
		m.helpModel = help.New(m.deps.DataDir)
		return m.open(HelpView, nil)
	}
	return m, nil
}

// open switches to a view and hands it the current window size.
func (m Model) open(v ViewState, init tea.Cmd) (tea.Model, tea.Cmd) {
	m.viewState = v
	m.errorMsg = ""
	next, cmd := m.delegate(m.sizeMsg())
	return next, tea.Batch(init, cmd)
}

// delegate forwards msg to the active view and follows whatever it decided.
func (m Model) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var next tea.Model

	switch m.viewState {
	case PickUserView:
		next, cmd = m.menuModel.Update(msg)
		m.menuModel = next.(menu.Model)
		if u, ok := m.menuModel.Selected(); ok {
			m.setUser(u)
		}

	case SetupView:
		next, cmd = m.settingsModel.Update(msg)
		m.settingsModel = next.(settings.Model)
		if m.settingsModel.Cancelled() {
			m.viewState = HomeView
			return m, nil
		}
		if s, ok := m.settingsModel.Submitted(); ok {
			return m.startSession(s)
		}

	case TimerView:
		next, cmd = m.timerModel.Update(msg)
		m.timerModel = next.(timer.Model)
		if _, stopped := m.timerModel.Stopped(); stopped {
			m.finishSession()
			return m, nil
		}

	case StatsView:
		next, cmd = m.statsModel.Update(msg)
		m.statsModel = next.(stats.Model)
		if m.statsModel.ShouldGoBack() {
			m.viewState = HomeView
		}

	case LeaderboardView:
		next, cmd = m.boardModel.Update(msg)
		m.boardModel = next.(boardui.Model)
		if m.boardModel.ShouldGoBack() {
			m.viewState = HomeView
		}

	case HelpView:
		next, cmd = m.helpModel.Update(msg)
		m.helpModel = next.(help.Model)
		if m.helpModel.ShouldGoBack() {
			m.viewState = HomeView
		}

	case HomeView:
		if frame, ok := msg.(progress.FrameMsg); ok {
			next, cmd = m.dailyBar.Update(frame)
			m.dailyBar = next.(progress.Model)
		}
	}

	return m, cmd
}

func (m Model) startSession(s models.SessionSettings) (tea.Model, tea.Cmd) {
	if err := m.deps.Config.UpdateSession(m.settingsModel.Values()); err != nil {
		log.Printf("dashboard: saving session defaults: %v", err)
	}

	cfg := m.deps.Config.Config()
	tm, err := timer.New(s, cfg.Motivation.Messages, cfg.Motivation.Interval)
	if err != nil {
		m.errorMsg = err.Error()
		m.viewState = HomeView
		return m, nil
	}
	if err := m.deps.Recorder.Start(m.user.ID, s); err != nil {
		m.errorMsg = err.Error()
		m.viewState = HomeView
		return m, nil
	}
	m.progress = m.deps.Progress.Load(m.user.ID)

	m.timerModel = tm
	return m.open(TimerView, tm.Init())
}

// finishSession records the stopped timer and returns home.
func (m *Model) finishSession() {
	res, _ := m.timerModel.Stopped()
	target := m.timerModel.Settings().TargetMinutes
	rec, err := m.deps.Recorder.Finish(m.user.ID, res.TotalFocusedSeconds, target)
	if err != nil {
		m.errorMsg = err.Error()
	} else {
		m.errorMsg = ""
	}
	m.lastRecord = &rec
	m.progress = m.deps.Progress.Load(m.user.ID)
	m.viewState = HomeView
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.viewState {
	case PickUserView:
		return m.menuModel.View()
	case SetupView:
		return m.settingsModel.View()
	case TimerView:
		return m.timerModel.View()
	case StatsView:
		return m.statsModel.View()
	case LeaderboardView:
		return m.boardModel.View()
	case HelpView:
		return m.helpModel.View()
	default:
		return m.renderHomeView()
	}
}

func (m Model) renderHomeView() string {
	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(2)

	now := m.deps.Clock.Now()
	summary := aggregate.Summarize(m.progress, now, m.user.JoinDate)

	parts := []string{
		m.renderProfile(now),
		m.renderDailyProgress(summary),
	}
	if m.lastRecord != nil {
		parts = append(parts, m.renderLastSession(*m.lastRecord))
	}
	parts = append(parts, m.renderRecent(now))
	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			MarginTop(1)
		parts = append(parts, errorStyle.Render("❌ "+m.errorMsg))
	}
	parts = append(parts, m.renderHelp())

	return containerStyle.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

func (m Model) renderProfile(now time.Time) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB"))

	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		MarginBottom(1)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		titleStyle.Render(fmt.Sprintf("👋 Welcome back, %s", m.user.Name)),
		mutedStyle.Render(fmt.Sprintf("%.1f hours focused in total • joined %s • %s",
			float64(m.progress.TotalFocusMinutes)/60,
			report.Joined(m.user.JoinDate, now),
			now.Format("Monday, January 2, 2006"),
		)),
	)
}

func (m Model) renderDailyProgress(s aggregate.Summary) string {
	sectionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FF7CCB")).
		Padding(1, 2).
		MarginBottom(1)

	statsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C"))

	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	return sectionStyle.Render(lipgloss.JoinVertical(
		lipgloss.Center,
		statsStyle.Render(fmt.Sprintf("Today: %d / %d min (%.0f%%)", s.DailyMinutes, s.DailyTarget, s.DailyPercent()*100)),
		m.dailyBar.ViewAs(s.DailyPercent()),
		mutedStyle.Render(fmt.Sprintf("%d min to go • %d day streak", s.DailyRemaining(), s.CurrentStreak)),
	))
}

func (m Model) renderLastSession(rec models.SessionRecord) string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		Bold(true).
		MarginBottom(1)
	if rec.TargetMet {
		return style.Render(fmt.Sprintf("🎉 Session saved: %d min, target reached!", rec.DurationMinutes))
	}
	return style.Foreground(lipgloss.Color("#FDFF8C")).
		Render(fmt.Sprintf("Session saved: %d of %d min", rec.DurationMinutes, rec.TargetDurationMinutes))
}

// renderRecent lists the newest records with the target each one ran under.
func (m Model) renderRecent(now time.Time) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C"))

	rowStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	recent := m.progress.Recent(4)
	if len(recent) == 0 {
		return rowStyle.Render("No sessions yet. Press 'n' to start focusing! 🚀")
	}

	rows := []string{titleStyle.Render("Recent activity")}
	for _, r := range recent {
		status := "⚠️"
		if r.TargetMet {
			status = "✅"
		}
		target := ""
		if r.TargetDurationMinutes > 0 {
			target = fmt.Sprintf(" / %d min", r.TargetDurationMinutes)
		}
		rows = append(rows, rowStyle.Render(fmt.Sprintf("%s %s  %d min%s",
			status,
			r.Timestamp.In(now.Location()).Format("Jan 2 3:04 PM"),
			r.DurationMinutes,
			target,
		)))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	return helpStyle.Render("n: new session • t: stats • l: leaderboard • u: switch user • ?: help • q: quit")
}

type keyMap struct {
	NewSession  key.Binding
	Stats       key.Binding
	Leaderboard key.Binding
	Users       key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

var keys = keyMap{
	NewSession: key.NewBinding(
		key.WithKeys("n", "s"),
		key.WithHelp("n", "new session"),
	),
	Stats: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "stats"),
	),
	Leaderboard: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "leaderboard"),
	),
	Users: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "switch user"),
	),
	Help: key.NewBinding(
		key.WithKeys("?", "f1"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
