package timer

import (
	"sync"
	"time"
)

// TickSource starts a tick stream and returns it with a function that stops it.
type TickSource func() (<-chan time.Time, func())

// EverySecond is the production tick source.
func EverySecond() (<-chan time.Time, func()) {
	t := time.NewTicker(time.Second)
	return t.C, t.Stop
}

// Runner drives an Engine from a cancellable tick source. Pause tears the
// source down and Resume builds a fresh one, so no tick outlives a pause.
type Runner struct {
	source TickSource
	notify func(Notification)

	ctl       sync.Mutex
	stopTicks func()

	mu     sync.Mutex
	engine *Engine
}

// NewRunner returns a Runner for engine. notify is called on the tick
// goroutine and must not call back into the Runner, since Pause and Stop wait
// for that goroutine to exit. Hand the notification off instead.
func NewRunner(engine *Engine, source TickSource, notify func(Notification)) *Runner {
	if source == nil {
		source = EverySecond
	}
	return &Runner{engine: engine, source: source, notify: notify}
}

// Start begins ticking. The engine is created running, so Start is called
// once right after construction.
func (r *Runner) Start() {
	r.ctl.Lock()
	defer r.ctl.Unlock()
	r.mu.Lock()
	running := r.engine.State().Running && !r.engine.Stopped()
	r.mu.Unlock()
	if running && r.stopTicks == nil {
		r.startLocked()
	}
}

func (r *Runner) Pause() bool {
	r.ctl.Lock()
	defer r.ctl.Unlock()
	r.haltLocked()
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Pause()
}

func (r *Runner) Resume() bool {
	r.ctl.Lock()
	defer r.ctl.Unlock()
	r.mu.Lock()
	ok := r.engine.Resume()
	r.mu.Unlock()
	if ok {
		r.startLocked()
	}
	return ok
}

// Stop halts the tick source and finalizes the engine.
func (r *Runner) Stop() Result {
	r.ctl.Lock()
	defer r.ctl.Unlock()
	r.haltLocked()
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Stop()
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.State()
}

func (r *Runner) Progress() (int, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Progress()
}

func (r *Runner) startLocked() {
	ticks, stop := r.source()
	quit := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-quit:
				return
			case _, ok := <-ticks:
				if !ok {
					return
				}
				r.tick()
			}
		}
	}()

	r.stopTicks = func() {
		stop()
		close(quit)
		<-done
	}
}

func (r *Runner) haltLocked() {
	if r.stopTicks != nil {
		r.stopTicks()
		r.stopTicks = nil
	}
}

func (r *Runner) tick() {
	r.mu.Lock()
	n, switched := r.engine.Tick()
	r.mu.Unlock()
	if switched && r.notify != nil {
		r.notify(n)
	}
}
