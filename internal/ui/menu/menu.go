package menu

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/focusup/internal/models"
	"github.com/adibhanna/focusup/internal/report"
)

// Directory is the user registry the picker works against.
type Directory interface {
	List() []models.User
	Register(name string) (models.User, error)
	SetCurrent(id string) error
}

// Model picks the active user or registers a new one. The last row of the
// list always opens the registration field.
type Model struct {
	dir      Directory
	users    []models.User
	cursor   int
	naming   bool
	name     textinput.Model
	errorMsg string
	selected *models.User
	now      time.Time
	width    int
	height   int
}

func New(dir Directory, now time.Time) Model {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 40
	name.Width = 30

	m := Model{
		dir:   dir,
		users: dir.List(),
		name:  name,
		now:   now,
	}
	if len(m.users) == 0 {
		m.naming = true
		m.name.Focus()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.naming {
		return textinput.Blink
	}
	return nil
}

// Typing reports whether key presses go to the name field.
func (m Model) Typing() bool {
	return m.naming
}

// Selected returns the user chosen or registered, once there is one.
func (m Model) Selected() (models.User, bool) {
	if m.selected == nil {
		return models.User{}, false
	}
	return *m.selected, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.naming {
			return m.updateNaming(msg)
		}

		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			} else {
				m.cursor = len(m.users)
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.users) {
				m.cursor++
			} else {
				m.cursor = 0
			}

		case key.Matches(msg, keys.Enter):
			if m.cursor == len(m.users) {
				m.naming = true
				m.errorMsg = ""
				m.name.Focus()
				return m, textinput.Blink
			}
			u := m.users[m.cursor]
			if err := m.dir.SetCurrent(u.ID); err != nil {
				m.errorMsg = err.Error()
				return m, nil
			}
			m.selected = &u
		}
	}

	return m, nil
}

func (m Model) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		u, err := m.dir.Register(m.name.Value())
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.selected = &u
		m.naming = false
		m.name.Blur()
		return m, nil

	case key.Matches(msg, keys.Cancel) && len(m.users) > 0:
		m.naming = false
		m.errorMsg = ""
		m.name.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
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

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(1)

	dateStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		MarginBottom(2)

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF7CCB")).
		Bold(true)

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	menuStyle := lipgloss.NewStyle().
		Padding(1, 2)

	parts := []string{
		titleStyle.Render("✨ focusup ✨"),
		dateStyle.Render(m.now.Format("Monday, January 2, 2006")),
	}

	if m.naming {
		parts = append(parts, "Who is studying today?", m.name.View())
	} else {
		var menu string
		for i, u := range m.users {
			menu += row(i == m.cursor, fmt.Sprintf("👤 %s  (joined %s)", u.Name, report.Joined(u.JoinDate, m.now)), selectedStyle, normalStyle) + "\n"
		}
		menu += row(m.cursor == len(m.users), "➕ New user", selectedStyle, normalStyle)
		parts = append(parts, menuStyle.Render(menu))
	}

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

func row(selected bool, text string, on, off lipgloss.Style) string {
	if selected {
		return on.Render("▶ " + text)
	}
	return off.Render("  " + text)
}

func (m Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	if m.naming {
		if len(m.users) > 0 {
			return helpStyle.Render("enter: register • esc: back to list • ctrl+c: quit")
		}
		return helpStyle.Render("enter: register • ctrl+c: quit")
	}
	return helpStyle.Render("↑/↓: navigate • enter: select • q: quit")
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}
