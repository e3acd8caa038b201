package main

import (
	"image/color"
	"path/filepath"
	"testing"
	"time"
)

func TestScenesRender(t *testing.T) {
	for _, name := range sceneNames() {
		t.Run(name, func(t *testing.T) {
			img, err := render(scenes[name](1500*time.Millisecond), 32, 32)
			if err != nil {
				t.Fatalf("render(%s) error = %v", name, err)
			}
			if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
				t.Errorf("bounds = %v", img.Bounds())
			}
		})
	}
}

func TestSquareScene(t *testing.T) {
	img, err := render(scenes["square"](0), 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	// The square spans x in [-0.25, 0.25] and y in [0.25, 0.75].
	if got := img.RGBAAt(50, 25); got != (color.RGBA{R: 255, G: 128, B: 0, A: 255}) {
		t.Errorf("inside square = %v, want orange", got)
	}
	if got := img.RGBAAt(50, 75); got != (color.RGBA{A: 255}) {
		t.Errorf("below square = %v, want black", got)
	}
}

func TestCheckShader(t *testing.T) {
	if err := checkShader(filepath.Join("..", "..", "shaders", "fragment.wgsl")); err != nil {
		t.Errorf("default shader: %v", err)
	}
	if err := checkShader(filepath.Join(t.TempDir(), "missing.wgsl")); err == nil {
		t.Error("missing file accepted")
	}
}
