package window

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/shapr/event"
)

var keyMap = map[glfw.Key]gpucontext.Key{
	glfw.KeyA: gpucontext.KeyA, glfw.KeyB: gpucontext.KeyB, glfw.KeyC: gpucontext.KeyC,
	glfw.KeyD: gpucontext.KeyD, glfw.KeyE: gpucontext.KeyE, glfw.KeyF: gpucontext.KeyF,
	glfw.KeyG: gpucontext.KeyG, glfw.KeyH: gpucontext.KeyH, glfw.KeyI: gpucontext.KeyI,
	glfw.KeyJ: gpucontext.KeyJ, glfw.KeyK: gpucontext.KeyK, glfw.KeyL: gpucontext.KeyL,
	glfw.KeyM: gpucontext.KeyM, glfw.KeyN: gpucontext.KeyN, glfw.KeyO: gpucontext.KeyO,
	glfw.KeyP: gpucontext.KeyP, glfw.KeyQ: gpucontext.KeyQ, glfw.KeyR: gpucontext.KeyR,
	glfw.KeyS: gpucontext.KeyS, glfw.KeyT: gpucontext.KeyT, glfw.KeyU: gpucontext.KeyU,
	glfw.KeyV: gpucontext.KeyV, glfw.KeyW: gpucontext.KeyW, glfw.KeyX: gpucontext.KeyX,
	glfw.KeyY: gpucontext.KeyY, glfw.KeyZ: gpucontext.KeyZ,

	glfw.Key0: gpucontext.Key0, glfw.Key1: gpucontext.Key1, glfw.Key2: gpucontext.Key2,
	glfw.Key3: gpucontext.Key3, glfw.Key4: gpucontext.Key4, glfw.Key5: gpucontext.Key5,
	glfw.Key6: gpucontext.Key6, glfw.Key7: gpucontext.Key7, glfw.Key8: gpucontext.Key8,
	glfw.Key9: gpucontext.Key9,

	glfw.KeyF1: gpucontext.KeyF1, glfw.KeyF2: gpucontext.KeyF2, glfw.KeyF3: gpucontext.KeyF3,
	glfw.KeyF4: gpucontext.KeyF4, glfw.KeyF5: gpucontext.KeyF5, glfw.KeyF6: gpucontext.KeyF6,
	glfw.KeyF7: gpucontext.KeyF7, glfw.KeyF8: gpucontext.KeyF8, glfw.KeyF9: gpucontext.KeyF9,
	glfw.KeyF10: gpucontext.KeyF10, glfw.KeyF11: gpucontext.KeyF11, glfw.KeyF12: gpucontext.KeyF12,

	glfw.KeyEscape:    gpucontext.KeyEscape,
	glfw.KeyTab:       gpucontext.KeyTab,
	glfw.KeyBackspace: gpucontext.KeyBackspace,
	glfw.KeyEnter:     gpucontext.KeyEnter,
	glfw.KeySpace:     gpucontext.KeySpace,
	glfw.KeyInsert:    gpucontext.KeyInsert,
	glfw.KeyDelete:    gpucontext.KeyDelete,
	glfw.KeyHome:      gpucontext.KeyHome,
	glfw.KeyEnd:       gpucontext.KeyEnd,
	glfw.KeyPageUp:    gpucontext.KeyPageUp,
	glfw.KeyPageDown:  gpucontext.KeyPageDown,
	glfw.KeyLeft:      gpucontext.KeyLeft,
	glfw.KeyRight:     gpucontext.KeyRight,
	glfw.KeyUp:        gpucontext.KeyUp,
	glfw.KeyDown:      gpucontext.KeyDown,

	glfw.KeyLeftShift:    gpucontext.KeyLeftShift,
	glfw.KeyRightShift:   gpucontext.KeyRightShift,
	glfw.KeyLeftControl:  gpucontext.KeyLeftControl,
	glfw.KeyRightControl: gpucontext.KeyRightControl,
	glfw.KeyLeftAlt:      gpucontext.KeyLeftAlt,
	glfw.KeyRightAlt:     gpucontext.KeyRightAlt,
	glfw.KeyLeftSuper:    gpucontext.KeyLeftSuper,
	glfw.KeyRightSuper:   gpucontext.KeyRightSuper,

	glfw.KeyMinus:        gpucontext.KeyMinus,
	glfw.KeyEqual:        gpucontext.KeyEqual,
	glfw.KeyLeftBracket:  gpucontext.KeyLeftBracket,
	glfw.KeyRightBracket: gpucontext.KeyRightBracket,
	glfw.KeyBackslash:    gpucontext.KeyBackslash,
	glfw.KeySemicolon:    gpucontext.KeySemicolon,
	glfw.KeyApostrophe:   gpucontext.KeyApostrophe,
	glfw.KeyGraveAccent:  gpucontext.KeyGrave,
	glfw.KeyComma:        gpucontext.KeyComma,
	glfw.KeyPeriod:       gpucontext.KeyPeriod,
	glfw.KeySlash:        gpucontext.KeySlash,

	glfw.KeyKP0: gpucontext.KeyNumpad0, glfw.KeyKP1: gpucontext.KeyNumpad1,
	glfw.KeyKP2: gpucontext.KeyNumpad2, glfw.KeyKP3: gpucontext.KeyNumpad3,
	glfw.KeyKP4: gpucontext.KeyNumpad4, glfw.KeyKP5: gpucontext.KeyNumpad5,
	glfw.KeyKP6: gpucontext.KeyNumpad6, glfw.KeyKP7: gpucontext.KeyNumpad7,
	glfw.KeyKP8: gpucontext.KeyNumpad8, glfw.KeyKP9: gpucontext.KeyNumpad9,
	glfw.KeyKPDecimal:  gpucontext.KeyNumpadDecimal,
	glfw.KeyKPDivide:   gpucontext.KeyNumpadDivide,
	glfw.KeyKPMultiply: gpucontext.KeyNumpadMultiply,
	glfw.KeyKPSubtract: gpucontext.KeyNumpadSubtract,
	glfw.KeyKPAdd:      gpucontext.KeyNumpadAdd,
	glfw.KeyKPEnter:    gpucontext.KeyNumpadEnter,

	glfw.KeyCapsLock:    gpucontext.KeyCapsLock,
	glfw.KeyScrollLock:  gpucontext.KeyScrollLock,
	glfw.KeyNumLock:     gpucontext.KeyNumLock,
	glfw.KeyPrintScreen: gpucontext.KeyPrintScreen,
	glfw.KeyPause:       gpucontext.KeyPause,
}

// TranslateKey maps a GLFW key to the gpucontext vocabulary. Keys without a
// counterpart map to gpucontext.KeyUnknown.
func TranslateKey(k glfw.Key) gpucontext.Key {
	if key, ok := keyMap[k]; ok {
		return key
	}
	return gpucontext.KeyUnknown
}

// TranslateMods maps GLFW modifier bits.
func TranslateMods(m glfw.ModifierKey) gpucontext.Modifiers {
	var out gpucontext.Modifiers
	if m&glfw.ModShift != 0 {
		out |= gpucontext.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= gpucontext.ModControl
	}
	if m&glfw.ModAlt != 0 {
		out |= gpucontext.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= gpucontext.ModSuper
	}
	if m&glfw.ModCapsLock != 0 {
		out |= gpucontext.ModCapsLock
	}
	if m&glfw.ModNumLock != 0 {
		out |= gpucontext.ModNumLock
	}
	return out
}

// TranslateAction maps a GLFW key or button action.
func TranslateAction(a glfw.Action) event.Action {
	switch a {
	case glfw.Press:
		return event.Press
	case glfw.Repeat:
		return event.Repeat
	default:
		return event.Release
	}
}

// TranslateButton maps a GLFW mouse button. Buttons beyond the fifth are
// not reported.
func TranslateButton(b glfw.MouseButton) (gpucontext.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return gpucontext.MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return gpucontext.MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return gpucontext.MouseButtonMiddle, true
	case glfw.MouseButton4:
		return gpucontext.MouseButton4, true
	case glfw.MouseButton5:
		return gpucontext.MouseButton5, true
	default:
		return 0, false
	}
}
