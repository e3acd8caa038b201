//go:build windows

package window

import "unsafe"

// Handles returns the HWND. The Vulkan backend looks up the module
// instance itself when display is zero.
func (w *Window) Handles() (display, window uintptr, err error) {
	return 0, uintptr(unsafe.Pointer(w.win.GetWin32Window())), nil
}
