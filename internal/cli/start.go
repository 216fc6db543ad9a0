package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adibhanna/focusup/internal/models"
	"github.com/adibhanna/focusup/internal/pattern"
	"github.com/adibhanna/focusup/internal/timer"
)

type startOptions struct {
	pattern string
	target  int
	focus   int
	brk     int
}

func newStartCmd(a *app) *cobra.Command {
	var opts startOptions
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run a focus session without the dashboard",
		Long: `Run a focus session in the foreground. The timer cycles between focus and
break until you press Ctrl+C, then the focused minutes are recorded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := a.cfg.Session
			if !cmd.Flags().Changed("pattern") {
				opts.pattern = string(defaults.Pattern)
			}
			if !cmd.Flags().Changed("target") {
				opts.target = defaults.TargetMinutes
			}
			if !cmd.Flags().Changed("focus") {
				opts.focus = defaults.CustomFocusMinutes
			}
			if !cmd.Flags().Changed("break") {
				opts.brk = defaults.CustomBreakMinutes
			}

			settings, err := pattern.Settings(models.Pattern(opts.pattern), opts.target, opts.focus, opts.brk)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runSession(ctx, cmd.OutOrStdout(), settings)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.pattern, "pattern", "p", "", "time pattern: pomodoro, deep-work or custom")
	f.IntVarP(&opts.target, "target", "t", 0, "study target in minutes (30-1440)")
	f.IntVar(&opts.focus, "focus", 0, "focus minutes for the custom pattern")
	f.IntVar(&opts.brk, "break", 0, "break minutes for the custom pattern")
	return cmd
}

// runSession drives the timer until ctx is cancelled and records the result.
func (a *app) runSession(ctx context.Context, out io.Writer, settings models.SessionSettings) error {
	user, _, err := a.currentUser()
	if err != nil {
		return err
	}

	engine, err := timer.New(settings)
	if err != nil {
		return err
	}
	if err := a.recorder.Start(user.ID, settings); err != nil {
		return err
	}

	runner := timer.NewRunner(engine, a.ticks, func(n timer.Notification) {
		fmt.Fprintf(out, "[%s] %s\n", a.clock.Now().Format("15:04:05"), n.Message)
	})

	fmt.Fprintf(out, "Focusing toward %d min with %s (%s). Press Ctrl+C to stop.\n",
		settings.TargetMinutes, settings.Pattern, pattern.Describe(settings.Pattern))
	if settings.Pattern == models.PatternCustom {
		fmt.Fprintf(out, "Cycle: %dm focus + %dm break\n", settings.FocusMinutes, settings.BreakMinutes)
	}

	runner.Start()
	<-ctx.Done()
	res := runner.Stop()

	rec, err := a.recorder.Finish(user.ID, res.TotalFocusedSeconds, settings.TargetMinutes)
	if err != nil {
		return err
	}
	status := "target not reached"
	if rec.TargetMet {
		status = "target reached!"
	}
	fmt.Fprintf(out, "\nSession saved: %d of %d min, %s\n", rec.DurationMinutes, settings.TargetMinutes, status)
	return nil
}
