package pattern

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/adibhanna/focusup/internal/models"
)

const (
	MinTargetMinutes = 30
	MaxTargetMinutes = 1440
	MinLengthMinutes = 1
	MaxLengthMinutes = 1440
)

var (
	ErrFocusExceedsTarget = errors.New("focus exceeds target")
	ErrCycleTooLong       = errors.New("cycle too long")
	ErrUnknownPattern     = errors.New("unknown pattern")
)

// Durations are the concrete interval lengths of a pattern, in minutes.
type Durations struct {
	FocusMinutes int
	BreakMinutes int
}

// ValidationError reports settings that cannot start a session.
type ValidationError struct {
	Err           error
	Pattern       models.Pattern
	TargetMinutes int
	FocusMinutes  int
	BreakMinutes  int
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrFocusExceedsTarget):
		return fmt.Sprintf("focus length (%d min) must not exceed the study target (%d min)", e.FocusMinutes, e.TargetMinutes)
	case errors.Is(e.Err, ErrCycleTooLong):
		return fmt.Sprintf("focus + break (%d min) is too long for a %d min target", e.FocusMinutes+e.BreakMinutes, e.TargetMinutes)
	case errors.Is(e.Err, ErrUnknownPattern):
		return fmt.Sprintf("unknown pattern %q", e.Pattern)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var presets = map[models.Pattern]Durations{
	models.PatternPomodoro: {FocusMinutes: 25, BreakMinutes: 5},
	models.PatternDeepWork: {FocusMinutes: 50, BreakMinutes: 10},
}

// Patterns lists the selectable patterns in display order.
func Patterns() []models.Pattern {
	return []models.Pattern{models.PatternPomodoro, models.PatternDeepWork, models.PatternCustom}
}

func Preset(p models.Pattern) (Durations, bool) {
	d, ok := presets[p]
	return d, ok
}

func Describe(p models.Pattern) string {
	if d, ok := presets[p]; ok {
		return fmt.Sprintf("%dm focus + %dm break", d.FocusMinutes, d.BreakMinutes)
	}
	if p == models.PatternCustom {
		return "set manually"
	}
	return string(p)
}

func ClampTarget(target int) int {
	return clamp(target, MinTargetMinutes, MaxTargetMinutes)
}

// ParseTarget reads a target typed by the user. Anything that is not a
// number falls back to the minimum target.
func ParseTarget(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return MinTargetMinutes
	}
	return ClampTarget(v)
}

// Resolve turns a pattern choice into concrete interval lengths. The target
// is clamped first; custom lengths are clamped to [1, 1440] before checks.
func Resolve(p models.Pattern, target, customFocus, customBreak int) (Durations, error) {
	target = ClampTarget(target)

	var d Durations
	switch p {
	case models.PatternPomodoro, models.PatternDeepWork:
		d = presets[p]
	case models.PatternCustom:
		d = Durations{
			FocusMinutes: clamp(customFocus, MinLengthMinutes, MaxLengthMinutes),
			BreakMinutes: clamp(customBreak, MinLengthMinutes, MaxLengthMinutes),
		}
	default:
		return Durations{}, &ValidationError{Err: ErrUnknownPattern, Pattern: p, TargetMinutes: target}
	}

	invalid := func(err error) *ValidationError {
		return &ValidationError{
			Err:           err,
			Pattern:       p,
			TargetMinutes: target,
			FocusMinutes:  d.FocusMinutes,
			BreakMinutes:  d.BreakMinutes,
		}
	}
	if p == models.PatternCustom && d.FocusMinutes > target {
		return Durations{}, invalid(ErrFocusExceedsTarget)
	}
	if d.FocusMinutes+d.BreakMinutes > target*2 {
		return Durations{}, invalid(ErrCycleTooLong)
	}
	return d, nil
}

// Settings resolves the pattern and returns the settings a session runs with.
func Settings(p models.Pattern, target, customFocus, customBreak int) (models.SessionSettings, error) {
	d, err := Resolve(p, target, customFocus, customBreak)
	if err != nil {
		return models.SessionSettings{}, err
	}
	return models.SessionSettings{
		TargetMinutes: ClampTarget(target),
		Pattern:       p,
		FocusMinutes:  d.FocusMinutes,
		BreakMinutes:  d.BreakMinutes,
	}, nil
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
