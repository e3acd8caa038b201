//go:build (linux || freebsd || netbsd || openbsd) && !wayland

package window

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Handles returns the Xlib display and window for surface creation.
func (w *Window) Handles() (display, window uintptr, err error) {
	display = uintptr(unsafe.Pointer(glfw.GetX11Display()))
	window = uintptr(w.win.GetX11Window())
	return display, window, nil
}
