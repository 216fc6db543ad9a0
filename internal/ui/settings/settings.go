package settings

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/focusup/internal/config"
	"github.com/adibhanna/focusup/internal/models"
	"github.com/adibhanna/focusup/internal/pattern"
)

const (
	fieldTarget = iota
	fieldPattern
	fieldFocus
	fieldBreak
)

// Model is the session setup form. It resolves the chosen pattern and hands
// the settings to the caller through Submitted.
type Model struct {
	target      textinput.Model
	customFocus textinput.Model
	customBreak textinput.Model
	patterns    []models.Pattern
	patternIdx  int
	focusIndex  int
	errorMsg    string
	submitted   *models.SessionSettings
	cancelled   bool
	width       int
	height      int
}

func New(defaults config.SessionConfig) Model {
	numericValidation := func(text string) error {
		for _, char := range text {
			if !unicode.IsDigit(char) {
				return fmt.Errorf("only numbers allowed")
			}
		}
		return nil
	}
	newInput := func(value, placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.SetValue(value)
		in.CharLimit = limit
		in.Width = 20
		in.Validate = numericValidation
		return in
	}

	m := Model{
		target:      newInput(strconv.Itoa(defaults.TargetMinutes), "120", 4),
		customFocus: newInput(strconv.Itoa(defaults.CustomFocusMinutes), "45", 4),
		customBreak: newInput(strconv.Itoa(defaults.CustomBreakMinutes), "15", 4),
		patterns:    pattern.Patterns(),
	}
	for i, p := range m.patterns {
		if p == defaults.Pattern {
			m.patternIdx = i
		}
	}
	m.target.Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Down):
			m.moveFocus(1)
			return m, nil

		case key.Matches(msg, keys.ShiftTab), key.Matches(msg, keys.Up):
			m.moveFocus(-1)
			return m, nil

		case key.Matches(msg, keys.Left) && m.focusIndex == fieldPattern:
			m.patternIdx = (m.patternIdx + len(m.patterns) - 1) % len(m.patterns)
			m.errorMsg = ""
			return m, nil

		case key.Matches(msg, keys.Right) && m.focusIndex == fieldPattern:
			m.patternIdx = (m.patternIdx + 1) % len(m.patterns)
			m.errorMsg = ""
			return m, nil

		case key.Matches(msg, keys.Start):
			m.submit()
			return m, nil

		case key.Matches(msg, keys.Back):
			m.cancelled = true
			return m, nil
		}
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m *Model) fields() []int {
	if m.Pattern() == models.PatternCustom {
		return []int{fieldTarget, fieldPattern, fieldFocus, fieldBreak}
	}
	return []int{fieldTarget, fieldPattern}
}

func (m *Model) moveFocus(step int) {
	fields := m.fields()
	pos := 0
	for i, f := range fields {
		if f == m.focusIndex {
			pos = i
		}
	}
	pos = (pos + step + len(fields)) % len(fields)
	m.focusIndex = fields[pos]

	m.target.Blur()
	m.customFocus.Blur()
	m.customBreak.Blur()
	switch m.focusIndex {
	case fieldTarget:
		m.target.Focus()
	case fieldFocus:
		m.customFocus.Focus()
	case fieldBreak:
		m.customBreak.Focus()
	}
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	inputs := []*textinput.Model{&m.target, &m.customFocus, &m.customBreak}
	cmds := make([]tea.Cmd, len(inputs))
	for i, in := range inputs {
		old := in.Value()
		*in, cmds[i] = in.Update(msg)
		if in.Err != nil {
			// keep the field numeric
			in.SetValue(old)
			in.Err = nil
		}
		if in.Value() != old {
			m.errorMsg = ""
		}
	}
	return tea.Batch(cmds...)
}

// submit clamps the target in place, the way the field normalises on blur,
// then resolves the pattern.
func (m *Model) submit() {
	target := pattern.ParseTarget(m.target.Value())
	m.target.SetValue(strconv.Itoa(target))

	focus, _ := strconv.Atoi(strings.TrimSpace(m.customFocus.Value()))
	brk, _ := strconv.Atoi(strings.TrimSpace(m.customBreak.Value()))

	s, err := pattern.Settings(m.Pattern(), target, focus, brk)
	if err != nil {
		m.errorMsg = err.Error()
		m.submitted = nil
		return
	}
	m.errorMsg = ""
	m.submitted = &s
}

func (m Model) Pattern() models.Pattern {
	return m.patterns[m.patternIdx]
}

// Submitted returns the resolved settings once the form was accepted.
func (m Model) Submitted() (models.SessionSettings, bool) {
	if m.submitted == nil {
		return models.SessionSettings{}, false
	}
	return *m.submitted, true
}

func (m Model) Cancelled() bool {
	return m.cancelled
}

// Values returns the form contents as config defaults for the next session.
func (m Model) Values() config.SessionConfig {
	focus, _ := strconv.Atoi(m.customFocus.Value())
	brk, _ := strconv.Atoi(m.customBreak.Value())
	return config.SessionConfig{
		TargetMinutes:      pattern.ParseTarget(m.target.Value()),
		Pattern:            m.Pattern(),
		CustomFocusMinutes: focus,
		CustomBreakMinutes: brk,
	}
}

func (m Model) ErrorMessage() string {
	return m.errorMsg
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(4)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(2)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C"))

	activeLabel := labelStyle.Bold(true).Underline(true)

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		MarginBottom(1)

	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 1)

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		Padding(0, 1)

	label := func(field int, text string) string {
		if m.focusIndex == field {
			return activeLabel.Render(text)
		}
		return labelStyle.Render(text)
	}

	var b strings.Builder
	b.WriteString(label(fieldTarget, "Study target (total minutes):") + "\n")
	b.WriteString(m.target.View() + "\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("Min: %d, Max: %d", pattern.MinTargetMinutes, pattern.MaxTargetMinutes)) + "\n")

	b.WriteString(label(fieldPattern, "Time pattern:") + "\n")
	var options []string
	for i, p := range m.patterns {
		text := fmt.Sprintf("%s (%s)", p, pattern.Describe(p))
		if i == m.patternIdx {
			options = append(options, selectedStyle.Render(text))
		} else {
			options = append(options, normalStyle.Render(text))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, options...) + "\n\n")

	if m.Pattern() == models.PatternCustom {
		b.WriteString(label(fieldFocus, "Focus (minutes):") + "\n")
		b.WriteString(m.customFocus.View() + "\n")
		b.WriteString(label(fieldBreak, "Break (minutes):") + "\n")
		b.WriteString(m.customBreak.View() + "\n")
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("⚙️  New Focus Session"),
		b.String(),
	)

	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			MarginTop(1)
		content += "\n" + errorStyle.Render("❌ "+m.errorMsg)
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)
	content += "\n" + helpStyle.Render("tab/↓: next field • ←/→: change pattern • enter: start tracker • esc: back")

	return containerStyle.Render(content)
}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Start    key.Binding
	Back     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous field"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next field"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "previous pattern"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "next pattern"),
	),
	Start: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "start"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}
