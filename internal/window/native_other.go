//go:build !linux && !freebsd && !netbsd && !openbsd && !windows

package window

// Handles reports ErrUnsupportedPlatform. macOS surfaces need a
// CAMetalLayer, which GLFW does not expose.
func (w *Window) Handles() (display, window uintptr, err error) {
	return 0, 0, ErrUnsupportedPlatform
}
