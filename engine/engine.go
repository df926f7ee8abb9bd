package engine

import (
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/frameloop/config"
	"github.com/lixenwraith/frameloop/input"
	"github.com/lixenwraith/frameloop/status"
	"github.com/lixenwraith/frameloop/window"
)

// Engine owns the window and one Logic and runs the frame loop
type Engine struct {
	title string
	logic Logic

	cfg     config.Config
	opener  window.Opener
	clock   Clock
	sampler input.Sampler
	logger  *log.Logger

	acc     *Accumulator
	started bool

	// frame is the number of the frame in progress, 1-based
	frame  uint64
	frames uint64
	ticks  uint64

	status        *status.Registry
	statFrames    *atomic.Int64
	statTicks     *atomic.Int64
	statLastTicks *atomic.Int64
	statFPS       *status.AtomicFloat
	statFrameMs   *status.AtomicFloat
	statAlpha     *status.AtomicFloat
	statPhase     *status.AtomicString
	statRunning   *atomic.Bool
}

// Option customizes an Engine
type Option func(*Engine)

// WithConfig replaces the default configuration
func WithConfig(cfg config.Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithOpener sets how the window is created
func WithOpener(o window.Opener) Option {
	return func(e *Engine) { e.opener = o }
}

// WithClock replaces the system clock
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithSampler sets the input sampler refreshed at the start of each frame
func WithSampler(s input.Sampler) Option {
	return func(e *Engine) { e.sampler = s }
}

// WithStatus publishes loop counters into r
func WithStatus(r *status.Registry) Option {
	return func(e *Engine) { e.status = r }
}

// WithLogger sets the lifecycle logger
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine for logic; the engine owns logic from here on
func New(title string, logic Logic, opts ...Option) *Engine {
	e := &Engine{
		title: title,
		logic: logic,
		cfg:   config.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.clock == nil {
		e.clock = NewSystemClock()
	}
	if e.opener == nil {
		e.opener = window.NewTerminalOpener(window.TerminalOptions{QuitKey: input.KeyEscape})
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	if e.status == nil {
		e.status = status.NewRegistry()
	}
	if e.title == "" {
		e.title = e.cfg.Window.Title
	}

	e.statFrames = e.status.Ints.Get(status.KeyFrames)
	e.statTicks = e.status.Ints.Get(status.KeyTicks)
	e.statLastTicks = e.status.Ints.Get(status.KeyLastTicks)
	e.statFPS = e.status.Floats.Get(status.KeyFPS)
	e.statFrameMs = e.status.Floats.Get(status.KeyFrameMs)
	e.statAlpha = e.status.Floats.Get(status.KeyTickAlpha)
	e.statPhase = e.status.Strings.Get(status.KeyPhase)
	e.statRunning = e.status.Bools.Get(status.KeyRunning)

	e.acc = NewAccumulator(e.cfg.TickDuration(), e.cfg.Loop.MaxFrameTime.Duration)
	return e
}

// Frames returns the number of completed frames
func (e *Engine) Frames() uint64 {
	return e.frames
}

// Ticks returns the total ticks handed to MainSteps
func (e *Engine) Ticks() uint64 {
	return e.ticks
}

// Status returns the registry the loop publishes into
func (e *Engine) Status() *status.Registry {
	return e.status
}

// StartGame opens the window, runs Init, loops until the window asks to
// close and then runs End and closes the window
//
// End and Close run on every exit path once the window is open, including
// after a failed Init; their errors are joined to the one that stopped the run.
// StartGame can be called once per Engine.
func (e *Engine) StartGame() (err error) {
	if e.started {
		return ErrAlreadyStarted
	}
	e.started = true

	if e.logic == nil {
		return &PhaseError{Phase: PhaseOpen, Err: errors.New("nil logic")}
	}
	if err := e.cfg.Validate(); err != nil {
		return &PhaseError{Phase: PhaseOpen, Err: err}
	}

	w, err := e.opener.Open(e.title, e.cfg.Window.Width, e.cfg.Window.Height)
	if err != nil {
		return &PhaseError{Phase: PhaseOpen, Err: err}
	}
	e.logger.Printf("[engine] %q started: tick %v, frame interval %v", e.title, e.acc.Tick(), e.cfg.Loop.FrameInterval)

	e.statRunning.Store(true)
	// Teardown also runs while a panic from outside a phase unwinds
	defer func() {
		if tdErr := e.teardown(w); tdErr != nil {
			e.logger.Printf("[engine] teardown: %v", tdErr)
			err = errors.Join(err, tdErr)
		}
		e.statRunning.Store(false)
		e.logger.Printf("[engine] %q stopped after %d frames, %d ticks", e.title, e.frames, e.ticks)
	}()

	err = e.runPhase(PhaseInit, func() error { return e.logic.Init(w) })
	if err == nil {
		err = e.loop(w)
	}
	if err != nil {
		e.logger.Printf("[engine] stopping: %v", err)
	}
	return err
}

func (e *Engine) loop(w window.Window) error {
	interval := e.cfg.Loop.FrameInterval.Duration
	e.acc.Reset(e.clock.Now())
	lastFrame := e.clock.Now()

	for {
		closing := false
		if err := e.runPhase(PhasePoll, func() error {
			closing = w.ShouldClose()
			return nil
		}); err != nil {
			return err
		}
		if closing {
			return nil
		}

		e.frame++
		frameStart := e.clock.Now()

		if err := e.runPhase(PhasePoll, func() error {
			w.PollEvents()
			if e.sampler != nil {
				e.sampler.Sample()
			}
			return nil
		}); err != nil {
			return err
		}

		if err := e.runPhase(PhaseInput, e.logic.InputEvents); err != nil {
			return err
		}
		if err := e.runPhase(PhaseFirstStep, e.logic.FirstStep); err != nil {
			return err
		}

		updates := e.acc.Advance(e.clock.Now())
		if err := e.runPhase(PhaseMainSteps, func() error { return e.logic.MainSteps(updates) }); err != nil {
			return err
		}
		if err := e.runPhase(PhaseLastStep, e.logic.LastStep); err != nil {
			return err
		}
		if err := e.runPhase(PhaseRender, func() error { return e.logic.Render(w) }); err != nil {
			return err
		}
		if err := e.runPhase(PhaseSwap, w.SwapBuffers); err != nil {
			return err
		}

		e.frames++
		e.ticks += uint64(updates)
		e.statFrames.Store(int64(e.frames))
		e.statTicks.Store(int64(e.ticks))
		e.statLastTicks.Store(int64(updates))
		e.statAlpha.Store(e.acc.Alpha())

		if interval > 0 {
			if spent := e.clock.Now().Sub(frameStart); spent < interval {
				e.clock.Sleep(interval - spent)
			}
		}

		now := e.clock.Now()
		if dt := now.Sub(lastFrame); dt > 0 {
			e.statFrameMs.Store(float64(dt) / float64(time.Millisecond))
			e.statFPS.Store(float64(time.Second) / float64(dt))
		}
		lastFrame = now
	}
}

// teardown runs End then closes the window; both always run
func (e *Engine) teardown(w window.Window) error {
	endErr := e.runPhase(PhaseEnd, e.logic.End)
	closeErr := e.runPhase(PhaseClose, w.Close)
	return errors.Join(endErr, closeErr)
}

// runPhase calls fn, turning a returned error or a panic into a PhaseError
func (e *Engine) runPhase(p Phase, fn func() error) (err error) {
	e.statPhase.Store(p.String())
	defer func() {
		if r := recover(); r != nil {
			err = &PhaseError{Phase: p, Frame: e.frame, Err: &PanicError{Value: r, Stack: debug.Stack()}}
		}
	}()

	if err := fn(); err != nil {
		return &PhaseError{Phase: p, Frame: e.frame, Err: err}
	}
	return nil
}

// String summarizes the engine for logs
func (e *Engine) String() string {
	return fmt.Sprintf("engine(%s frames=%d ticks=%d)", e.title, e.frames, e.ticks)
}
