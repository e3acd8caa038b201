package shapr

import (
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/shapr/event"
	"github.com/gogpu/shapr/shp"
)

// App is an application driven by the frame loop.
//
// DrawFrame is called once per frame with the real time elapsed since the
// previous frame and returns the shape to draw.
type App interface {
	DrawFrame(dt time.Duration) shp.Shape
}

// Configurer is implemented by applications that choose their own
// configuration. Config is queried once, before the window opens.
type Configurer interface {
	Config() AppConfig
}

// EventProcessor is implemented by applications that handle window events.
// ProcessEvent is called for every event except the timer wake-ups that
// produce frames. Call ctl.Exit to stop the loop.
type EventProcessor interface {
	ProcessEvent(ev event.Event, ctl *Control)
}

// Control lets event handlers request loop exit. The request takes effect
// at the next loop iteration boundary.
type Control struct {
	exit bool
}

// Exit requests loop exit. Calling it more than once has no further effect.
func (c *Control) Exit() { c.exit = true }

// Exiting reports whether exit was requested.
func (c *Control) Exiting() bool { return c.exit }

// DefaultProcessEvent is the event policy for applications that do not
// implement EventProcessor: a close request or an Escape key press exits,
// everything else is ignored.
func DefaultProcessEvent(ev event.Event, ctl *Control) {
	switch ev := ev.(type) {
	case event.CloseRequested:
		Logger().Info("shapr: close requested, exiting")
		ctl.Exit()
	case event.KeyboardInput:
		if ev.Key == gpucontext.KeyEscape && ev.Action == event.Press {
			Logger().Info("shapr: escape pressed, exiting")
			ctl.Exit()
		}
	}
}

// configOf returns the application's configuration, or DefaultConfig.
func configOf(app App) AppConfig {
	if c, ok := app.(Configurer); ok {
		return c.Config()
	}
	return DefaultConfig()
}

// processorOf returns the application's event handler, or
// DefaultProcessEvent.
func processorOf(app App) func(event.Event, *Control) {
	if p, ok := app.(EventProcessor); ok {
		return p.ProcessEvent
	}
	return DefaultProcessEvent
}
