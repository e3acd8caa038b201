package shapr

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gogpu/shapr/event"
	"github.com/gogpu/shapr/internal/frame"
	"github.com/gogpu/shapr/internal/gpu"
	"github.com/gogpu/shapr/internal/shaderwatch"
	"github.com/gogpu/shapr/internal/window"
)

// host is the window side of the loop.
type host interface {
	// Wait blocks until events are queued, deadline passes or Wake is
	// called, and returns the queued events.
	Wait(deadline time.Time) []event.Event
	Wake()
}

// renderer is the GPU side of the loop.
type renderer interface {
	DrawFrame(floats []float32) error
	Resize(width, height uint32) error
	ReloadFragment(src string) error
}

// reloader delivers fragment shader changes.
type reloader interface {
	Poll() (shaderwatch.Update, bool)
}

// Run opens the window and GPU renderer described by app and drives the
// frame loop until the application requests exit. It must be called from
// the main goroutine.
func Run(app App, opts ...Option) error {
	return RunContext(context.Background(), app, opts...)
}

// RunContext is Run with cancellation: ctx being done is treated as an exit
// request at the next loop iteration boundary.
func RunContext(ctx context.Context, app App, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}

	cfg, err := o.config(configOf(app))
	if err != nil {
		return err
	}
	src, err := o.fragmentSource()
	if err != nil {
		return err
	}

	win, err := window.Open(window.Config{
		Width:     cfg.Resolution[0],
		Height:    cfg.Resolution[1],
		Title:     cfg.Title,
		Resizable: true,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWindow, err)
	}
	defer win.Close()

	display, handle, err := win.Handles()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWindow, err)
	}
	fw, fh := win.FramebufferSize()
	r, err := gpu.Open(gpu.Config{
		Backends:       o.backends,
		DisplayHandle:  display,
		WindowHandle:   handle,
		Width:          uint32(max(fw, 0)),
		Height:         uint32(max(fh, 0)),
		FragmentSource: src,
		ClearColor:     o.clear,
	})
	if err != nil {
		return err
	}
	defer r.Close()

	l := newLoop(app, cfg, win, r, frame.SystemClock{})
	if o.reload {
		w, err := shaderwatch.Watch(o.fragmentPath, win.Wake)
		if err != nil {
			Logger().Warn("shapr: shader reload disabled", "err", err)
		} else {
			defer w.Close()
			l.watch = w
		}
	}

	stop := context.AfterFunc(ctx, win.Wake)
	defer stop()

	Logger().Info("shapr: running",
		"title", cfg.Title,
		"fps", cfg.FPS,
		"adapter", r.AdapterName(),
	)
	err = l.run(ctx)
	Logger().Info("shapr: stopped", "frames", l.sched.Frames(), "err", err)
	return err
}

// Main runs app, cancelling on interrupt, and exits the process with
// status 1 if Run fails.
func Main(app App, opts ...Option) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := RunContext(ctx, app, opts...)
	stop()
	if err != nil {
		Logger().Error("shapr: fatal", "err", err)
		fmt.Fprintln(os.Stderr, "shapr:", err)
		os.Exit(1)
	}
}

// loop is the frame loop state. It is owned by a single goroutine.
type loop struct {
	app     App
	process func(event.Event, *Control)
	host    host
	gpu     renderer
	watch   reloader
	clock   frame.Clock
	sched   *frame.Scheduler
	ctl     Control
}

func newLoop(app App, cfg AppConfig, h host, r renderer, clock frame.Clock) *loop {
	return &loop{
		app:     app,
		process: processorOf(app),
		host:    h,
		gpu:     r,
		clock:   clock,
		sched:   frame.New(cfg.FPS, clock.Now()),
	}
}

// run draws the first frame, then alternates between waiting for the next
// deadline and handling what woke the loop. Only StartInit and
// StartResumeTimeReached draw; any other wake-up is forwarded to the
// application as NewEvents and keeps the pending deadline.
func (l *loop) run(ctx context.Context) error {
	cause := event.StartInit
	var pending []event.Event
	for {
		if ctx.Err() != nil {
			Logger().Info("shapr: context done, exiting")
			l.ctl.Exit()
		}
		if l.ctl.Exiting() {
			break
		}
		l.reload()
		if err := l.begin(cause); err != nil {
			return err
		}
		for _, ev := range pending {
			if l.ctl.Exiting() {
				break
			}
			if err := l.dispatch(ev); err != nil {
				return err
			}
		}
		if l.ctl.Exiting() {
			break
		}

		pending = l.host.Wait(l.sched.Next())
		if l.sched.Due(l.clock.Now()) {
			cause = event.StartResumeTimeReached
		} else {
			cause = event.StartWaitCancelled
		}
	}
	l.process(event.LoopDestroyed{}, &l.ctl)
	return nil
}

// begin starts a loop iteration: a frame for drawing causes, a NewEvents
// event otherwise.
func (l *loop) begin(cause event.StartCause) error {
	if !cause.Draws() {
		return l.dispatch(event.NewEvents{Cause: cause})
	}
	return l.draw()
}

// draw produces one frame. Any failure is fatal.
func (l *loop) draw() error {
	dt, _ := l.sched.Tick(l.clock.Now())
	shape := l.app.DrawFrame(dt)
	if err := l.gpu.DrawFrame(shape.Flatten()); err != nil {
		return fmt.Errorf("frame %d: %w", l.sched.Frames(), err)
	}
	return nil
}

// dispatch hands ev to the application. A resize reaches the renderer
// first so the next frame uses the new surface size.
func (l *loop) dispatch(ev event.Event) error {
	if rs, ok := ev.(event.Resized); ok {
		if err := l.gpu.Resize(uint32(max(rs.Width, 0)), uint32(max(rs.Height, 0))); err != nil {
			return err
		}
	}
	l.process(ev, &l.ctl)
	return nil
}

// reload applies a pending fragment shader change. A rejected shader is
// logged and the running one is kept.
func (l *loop) reload() {
	if l.watch == nil {
		return
	}
	u, ok := l.watch.Poll()
	if !ok {
		return
	}
	err := u.Err
	if err == nil {
		err = l.gpu.ReloadFragment(u.Source)
	}
	if err != nil {
		Logger().Warn("shapr: shader reload rejected", "path", u.Path, "err", err)
	} else {
		Logger().Info("shapr: shader reloaded", "path", u.Path)
	}
	l.process(event.ShaderReloaded{Path: u.Path, Err: err}, &l.ctl)
}
