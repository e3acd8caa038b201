//go:build (linux || freebsd || netbsd || openbsd) && wayland

package window

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Handles returns the wl_display and wl_surface for surface creation.
func (w *Window) Handles() (display, window uintptr, err error) {
	display = uintptr(unsafe.Pointer(glfw.GetWaylandDisplay()))
	window = uintptr(unsafe.Pointer(w.win.GetWaylandWindow()))
	return display, window, nil
}
