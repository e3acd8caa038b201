package window

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/shapr/event"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		in   glfw.Key
		want gpucontext.Key
	}{
		{glfw.KeyEscape, gpucontext.KeyEscape},
		{glfw.KeyA, gpucontext.KeyA},
		{glfw.KeyZ, gpucontext.KeyZ},
		{glfw.Key5, gpucontext.Key5},
		{glfw.KeyF12, gpucontext.KeyF12},
		{glfw.KeySpace, gpucontext.KeySpace},
		{glfw.KeyGraveAccent, gpucontext.KeyGrave},
		{glfw.KeyKPEnter, gpucontext.KeyNumpadEnter},
		{glfw.KeyF25, gpucontext.KeyUnknown},
		{glfw.KeyUnknown, gpucontext.KeyUnknown},
	}
	for _, tt := range tests {
		if got := TranslateKey(tt.in); got != tt.want {
			t.Errorf("TranslateKey(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestKeyMapIsInjective(t *testing.T) {
	seen := make(map[gpucontext.Key]glfw.Key, len(keyMap))
	for from, to := range keyMap {
		if prev, dup := seen[to]; dup {
			t.Errorf("glfw keys %d and %d both map to %d", prev, from, to)
		}
		seen[to] = from
	}
}

func TestTranslateMods(t *testing.T) {
	tests := []struct {
		name string
		in   glfw.ModifierKey
		want gpucontext.Modifiers
	}{
		{"none", 0, 0},
		{"shift", glfw.ModShift, gpucontext.ModShift},
		{"ctrl+alt", glfw.ModControl | glfw.ModAlt, gpucontext.ModControl | gpucontext.ModAlt},
		{"all", glfw.ModShift | glfw.ModControl | glfw.ModAlt | glfw.ModSuper | glfw.ModCapsLock | glfw.ModNumLock,
			gpucontext.ModShift | gpucontext.ModControl | gpucontext.ModAlt | gpucontext.ModSuper | gpucontext.ModCapsLock | gpucontext.ModNumLock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TranslateMods(tt.in); got != tt.want {
				t.Errorf("TranslateMods() = %b, want %b", got, tt.want)
			}
		})
	}
}

func TestTranslateAction(t *testing.T) {
	tests := []struct {
		in   glfw.Action
		want event.Action
	}{
		{glfw.Press, event.Press},
		{glfw.Release, event.Release},
		{glfw.Repeat, event.Repeat},
	}
	for _, tt := range tests {
		if got := TranslateAction(tt.in); got != tt.want {
			t.Errorf("TranslateAction(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTranslateButton(t *testing.T) {
	if b, ok := TranslateButton(glfw.MouseButtonLeft); !ok || b != gpucontext.MouseButtonLeft {
		t.Errorf("left = (%d, %v)", b, ok)
	}
	if b, ok := TranslateButton(glfw.MouseButtonMiddle); !ok || b != gpucontext.MouseButtonMiddle {
		t.Errorf("middle = (%d, %v)", b, ok)
	}
	if _, ok := TranslateButton(glfw.MouseButton8); ok {
		t.Error("button 8 should not be reported")
	}
}

func TestNormalizeTitle(t *testing.T) {
	// "e" + combining acute accent composes to a single rune.
	decomposed := "Cafe\u0301"
	if got := NormalizeTitle(decomposed); got != "Caf\u00e9" {
		t.Errorf("NormalizeTitle(%q) = %q, want %q", decomposed, got, "Caf\u00e9")
	}
	if got := NormalizeTitle("Shapr-Glium App"); got != "Shapr-Glium App" {
		t.Errorf("ASCII title changed: %q", got)
	}
}
