package timer

import (
	"errors"
	"fmt"

	"github.com/adibhanna/focusup/internal/models"
)

var ErrInvalidSettings = errors.New("invalid timer settings")

type Mode int

const (
	Focus Mode = iota
	Break
)

func (m Mode) String() string {
	if m == Break {
		return "break"
	}
	return "focus"
}

type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
)

// Notification is emitted on every focus/break switch.
type Notification struct {
	Message string
	Kind    Kind
	From    Mode
	To      Mode
}

type State struct {
	Mode                Mode
	SecondsRemaining    int
	TotalFocusedSeconds int
	Running             bool
}

// Result is what a stopped session hands to the recorder.
type Result struct {
	TotalFocusedSeconds int
	FocusedMinutes      int
}

// Engine is the per-session interval state machine. It is advanced one
// second at a time by Tick and never stops on its own.
type Engine struct {
	settings models.SessionSettings
	state    State
	stopped  bool
}

func New(settings models.SessionSettings) (*Engine, error) {
	if settings.FocusMinutes <= 0 || settings.BreakMinutes <= 0 {
		return nil, fmt.Errorf("%w: focus %d min, break %d min", ErrInvalidSettings, settings.FocusMinutes, settings.BreakMinutes)
	}
	return &Engine{
		settings: settings,
		state: State{
			Mode:             Focus,
			SecondsRemaining: settings.FocusMinutes * 60,
			Running:          true,
		},
	}, nil
}

func (e *Engine) Settings() models.SessionSettings {
	return e.settings
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Stopped() bool {
	return e.stopped
}

// Tick advances the engine by one second. It reports a notification when the
// tick ends an interval.
func (e *Engine) Tick() (Notification, bool) {
	if e.stopped || !e.state.Running {
		return Notification{}, false
	}
	if e.state.SecondsRemaining <= 0 {
		return e.switchMode(), true
	}

	e.state.SecondsRemaining--
	if e.state.Mode == Focus {
		e.state.TotalFocusedSeconds++
	}

	if e.state.SecondsRemaining == 0 {
		return e.switchMode(), true
	}
	return Notification{}, false
}

func (e *Engine) switchMode() Notification {
	n := Notification{From: e.state.Mode}
	if e.state.Mode == Focus {
		e.state.Mode = Break
		e.state.SecondsRemaining = e.settings.BreakMinutes * 60
		n.Message = "Focus time is over! Take a short break."
		n.Kind = KindSuccess
	} else {
		e.state.Mode = Focus
		e.state.SecondsRemaining = e.settings.FocusMinutes * 60
		n.Message = "Break is over! Back to focus."
		n.Kind = KindInfo
	}
	n.To = e.state.Mode
	return n
}

func (e *Engine) Pause() bool {
	if e.stopped || !e.state.Running {
		return false
	}
	e.state.Running = false
	return true
}

func (e *Engine) Resume() bool {
	if e.stopped || e.state.Running {
		return false
	}
	e.state.Running = true
	return true
}

// Stop ends the session. Partial minutes are dropped, never rounded up.
func (e *Engine) Stop() Result {
	e.stopped = true
	e.state.Running = false
	return Result{
		TotalFocusedSeconds: e.state.TotalFocusedSeconds,
		FocusedMinutes:      e.state.TotalFocusedSeconds / 60,
	}
}

// Progress reports completed focus minutes and the fraction of the target
// they cover, capped at 1.
func (e *Engine) Progress() (int, float64) {
	minutes := e.state.TotalFocusedSeconds / 60
	if e.settings.TargetMinutes <= 0 {
		return minutes, 0
	}
	return minutes, min(float64(minutes)/float64(e.settings.TargetMinutes), 1)
}
