// Package window is the desktop host for shapr: a GLFW window without a
// client API whose native handles feed the WebGPU surface, and whose input
// callbacks are translated into event values.
//
// GLFW must be driven from the main OS thread. The package locks the calling
// goroutine to its thread at init, so Open, Wait and Close must be called
// from the main goroutine.
package window

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/shapr/event"
)

func init() {
	runtime.LockOSThread()
}

var (
	// ErrInit is returned when GLFW cannot be initialized.
	ErrInit = errors.New("window: glfw init failed")

	// ErrCreate is returned when the window cannot be created.
	ErrCreate = errors.New("window: create failed")

	// ErrUnsupportedPlatform is returned by Handles on platforms without a
	// surface path.
	ErrUnsupportedPlatform = errors.New("window: no surface support on this platform")
)

// Config describes the window to open.
type Config struct {
	Width, Height int
	Title         string
	Resizable     bool
}

// Window is an open GLFW window with a queue of translated events.
type Window struct {
	win    *glfw.Window
	queue  []event.Event
	woken  atomic.Bool
	closed bool
}

// Open initializes GLFW and creates the window.
func Open(cfg Config) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	resizable := glfw.False
	if cfg.Resizable {
		resizable = glfw.True
	}
	glfw.WindowHint(glfw.Resizable, resizable)

	title := NormalizeTitle(cfg.Title)
	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %dx%d %q: %w", ErrCreate, cfg.Width, cfg.Height, title, err)
	}

	w := &Window{win: win}
	w.install()
	fw, fh := win.GetFramebufferSize()
	slogger().Info("shapr: window opened", "title", title, "width", fw, "height", fh)
	return w, nil
}

// NormalizeTitle returns title in Unicode NFC form, the form window
// managers expect for display.
func NormalizeTitle(title string) string {
	return norm.NFC.String(title)
}

// install registers the GLFW callbacks. Callbacks run synchronously inside
// PollEvents and WaitEventsTimeout, so they only append to the queue.
func (w *Window) install() {
	w.win.SetCloseCallback(func(win *glfw.Window) {
		// The application decides whether to close.
		win.SetShouldClose(false)
		w.push(event.CloseRequested{})
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		w.push(event.KeyboardInput{
			Key:      TranslateKey(key),
			Scancode: scancode,
			Action:   TranslateAction(action),
			Mods:     TranslateMods(mods),
		})
	})
	w.win.SetCharCallback(func(_ *glfw.Window, char rune) {
		w.push(event.CharInput{Char: char})
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := TranslateButton(button)
		if !ok {
			return
		}
		w.push(event.MouseInput{Button: b, Action: TranslateAction(action), Mods: TranslateMods(mods)})
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.push(event.CursorMoved{X: x, Y: y})
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		w.push(event.Scroll{DX: dx, DY: dy})
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(event.Resized{Width: width, Height: height})
	})
	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.push(event.Focused{Focused: focused})
	})
}

func (w *Window) push(ev event.Event) {
	w.queue = append(w.queue, ev)
}

// Wait pumps window events until at least one event is queued, deadline
// passes, or Wake is called. It returns the queued events, oldest first.
func (w *Window) Wait(deadline time.Time) []event.Event {
	for len(w.queue) == 0 {
		if w.woken.Swap(false) {
			break
		}
		d := time.Until(deadline)
		if d <= 0 {
			glfw.PollEvents()
			break
		}
		glfw.WaitEventsTimeout(d.Seconds())
	}
	out := w.queue
	w.queue = nil
	return out
}

// Wake makes a blocked Wait return. Safe to call from any goroutine.
func (w *Window) Wake() {
	w.woken.Store(true)
	glfw.PostEmptyEvent()
}

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (width, height int) {
	return w.win.GetFramebufferSize()
}

// SetTitle changes the window title.
func (w *Window) SetTitle(title string) {
	w.win.SetTitle(NormalizeTitle(title))
}

// Close destroys the window and terminates GLFW. Safe to call more than
// once.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.win.Destroy()
	glfw.Terminate()
}
