// Package event defines the events delivered to a shapr application.
//
// Event is a closed tagged union: every concrete type in this package
// implements it and no other type can. Applications switch on the concrete
// type:
//
//	switch ev := ev.(type) {
//	case event.CloseRequested:
//	    ctl.Exit()
//	case event.KeyboardInput:
//	    if ev.Key == gpucontext.KeySpace && ev.Action == event.Press { ... }
//	}
//
// Key, modifier and mouse button values use the gpucontext vocabulary.
package event

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Event is implemented by every event type in this package.
type Event interface {
	event()
}

// StartCause tells why the loop woke up.
type StartCause uint8

const (
	// StartInit is the first wake-up, before any frame was drawn.
	StartInit StartCause = iota
	// StartResumeTimeReached means the frame deadline elapsed.
	StartResumeTimeReached
	// StartWaitCancelled means input arrived before the deadline.
	StartWaitCancelled
	// StartPoll means the loop woke without waiting.
	StartPoll
)

// String returns the cause name.
func (c StartCause) String() string {
	switch c {
	case StartInit:
		return "Init"
	case StartResumeTimeReached:
		return "ResumeTimeReached"
	case StartWaitCancelled:
		return "WaitCancelled"
	case StartPoll:
		return "Poll"
	default:
		return fmt.Sprintf("StartCause(%d)", uint8(c))
	}
}

// Draws reports whether a wake-up with this cause produces a frame.
func (c StartCause) Draws() bool {
	return c == StartInit || c == StartResumeTimeReached
}

// Action is the state change of a key or button.
type Action uint8

const (
	Release Action = iota
	Press
	Repeat
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case Release:
		return "Release"
	case Press:
		return "Press"
	case Repeat:
		return "Repeat"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// NewEvents opens a batch of events. Timer wake-ups that produce a frame are
// handled by the loop and not delivered to the application.
type NewEvents struct {
	Cause StartCause
}

// CloseRequested is sent when the user asks to close the window.
type CloseRequested struct{}

// KeyboardInput reports a key press, repeat or release.
type KeyboardInput struct {
	Key      gpucontext.Key
	Scancode int
	Action   Action
	Mods     gpucontext.Modifiers
}

// CharInput reports a typed Unicode character.
type CharInput struct {
	Char rune
}

// MouseInput reports a mouse button press or release.
type MouseInput struct {
	Button gpucontext.MouseButton
	Action Action
	Mods   gpucontext.Modifiers
}

// CursorMoved reports the cursor position in window pixels, origin top-left.
type CursorMoved struct {
	X, Y float64
}

// Scroll reports a scroll wheel or touchpad offset.
type Scroll struct {
	DX, DY float64
}

// Resized reports a new framebuffer size in pixels. A zero size means the
// window is minimized.
type Resized struct {
	Width, Height int
}

// Focused reports a change of input focus.
type Focused struct {
	Focused bool
}

// ShaderReloaded reports the outcome of a fragment shader hot reload. Err
// is nil when the new shader is active.
type ShaderReloaded struct {
	Path string
	Err  error
}

// LoopDestroyed is the last event, sent once after exit was requested.
type LoopDestroyed struct{}

func (NewEvents) event()      {}
func (CloseRequested) event() {}
func (KeyboardInput) event()  {}
func (CharInput) event()      {}
func (MouseInput) event()     {}
func (CursorMoved) event()    {}
func (Scroll) event()         {}
func (Resized) event()        {}
func (Focused) event()        {}
func (ShaderReloaded) event() {}
func (LoopDestroyed) event()  {}

// IsKeyPress reports whether ev is a press of key.
func IsKeyPress(ev Event, key gpucontext.Key) bool {
	k, ok := ev.(KeyboardInput)
	return ok && k.Key == key && k.Action == Press
}
