package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	_ "github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/shapr/internal/encode"
	"github.com/gogpu/shapr/shaders"
	"github.com/gogpu/shapr/shp"
)

// openNoop opens a Renderer on the noop backend.
func openNoop(t *testing.T, w, h uint32) *Renderer {
	t.Helper()
	r, err := Open(Config{
		Backends:       []gputypes.Backend{gputypes.BackendEmpty},
		Width:          w,
		Height:         h,
		FragmentSource: shaders.Fragment,
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

func TestOpen(t *testing.T) {
	r := openNoop(t, 800, 600)

	if r.Backend() != gputypes.BackendEmpty {
		t.Errorf("Backend() = %v, want Empty", r.Backend())
	}
	if r.AdapterName() == "" {
		t.Error("AdapterName() is empty")
	}
	if w, h := r.Size(); w != 800 || h != 600 {
		t.Errorf("Size() = (%d, %d), want (800, 600)", w, h)
	}
	if r.MaxTexels() == 0 {
		t.Error("MaxTexels() = 0")
	}
	if !r.configured {
		t.Error("surface not configured")
	}
	if r.vertexBuf == nil || r.shapesLayout == nil || r.pipeLayout == nil || r.prog.pipeline == nil {
		t.Error("long-lived resources not created")
	}
}

func TestOpenErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{
			name: "bad shader",
			cfg: Config{
				Backends:       []gputypes.Backend{gputypes.BackendEmpty},
				Width:          1,
				Height:         1,
				FragmentSource: "not wgsl",
			},
			want: ErrShaderProgram,
		},
		{
			name: "no backend",
			cfg: Config{
				Backends:       []gputypes.Backend{gputypes.BackendBrowserWebGPU},
				Width:          1,
				Height:         1,
				FragmentSource: shaders.Fragment,
			},
			want: ErrNoBackend,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Open(tt.cfg)
			if err == nil {
				r.Close()
				t.Fatal("Open() = nil error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Open() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDrawFrame(t *testing.T) {
	r := openNoop(t, 320, 240)

	scenes := []shp.Shape{
		shp.Nil(),
		shp.Circle(0.5),
		shp.Union(shp.Square(0.5).Translate(0.1, 0.6), shp.Rect(0.2, 0.4).Rotate(1)),
	}
	for i, s := range scenes {
		if err := r.DrawFrame(s.Flatten()); err != nil {
			t.Fatalf("DrawFrame(%d) failed: %v", i, err)
		}
	}
	if r.Frames() != uint64(len(scenes)) {
		t.Errorf("Frames() = %d, want %d", r.Frames(), len(scenes))
	}
}

func TestDrawFrameReclaimsTransients(t *testing.T) {
	r := openNoop(t, 64, 64)
	for i := 0; i < 10; i++ {
		if err := r.DrawFrame(shp.Circle(0.1).Flatten()); err != nil {
			t.Fatalf("DrawFrame failed: %v", err)
		}
		// The noop queue completes synchronously, so at most the frame just
		// submitted is pending.
		if r.Pending() > 1 {
			t.Fatalf("Pending() = %d after frame %d, want <= 1", r.Pending(), i)
		}
	}
}

func TestDrawFrameMalformedIsFatal(t *testing.T) {
	r := openNoop(t, 64, 64)
	err := r.DrawFrame([]float32{1, 2})
	if !errors.Is(err, ErrTexture) {
		t.Fatalf("DrawFrame error = %v, want ErrTexture", err)
	}
	if !errors.Is(err, encode.ErrMalformed) {
		t.Errorf("DrawFrame error = %v, want to wrap ErrMalformed", err)
	}
	if r.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", r.Frames())
	}
}

func TestDrawFrameTooLarge(t *testing.T) {
	r := openNoop(t, 64, 64)
	floats := make([]float32, 3*(int(r.MaxTexels())+1))
	if err := r.DrawFrame(floats); !errors.Is(err, encode.ErrTooLarge) {
		t.Fatalf("DrawFrame error = %v, want ErrTooLarge", err)
	}
}

func TestResize(t *testing.T) {
	r := openNoop(t, 100, 100)

	if err := r.Resize(0, 0); err != nil {
		t.Fatalf("Resize(0, 0) failed: %v", err)
	}
	if r.configured {
		t.Error("zero-area surface should be unconfigured")
	}
	// Minimized: frames are skipped, not failed.
	if err := r.DrawFrame(shp.Circle(1).Flatten()); err != nil {
		t.Fatalf("DrawFrame while minimized failed: %v", err)
	}
	if r.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0 while minimized", r.Frames())
	}

	if err := r.Resize(200, 150); err != nil {
		t.Fatalf("Resize(200, 150) failed: %v", err)
	}
	if w, h := r.Size(); w != 200 || h != 150 {
		t.Errorf("Size() = (%d, %d), want (200, 150)", w, h)
	}
	if err := r.DrawFrame(shp.Circle(1).Flatten()); err != nil {
		t.Fatalf("DrawFrame after resize failed: %v", err)
	}
	if r.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", r.Frames())
	}
}

func TestReloadFragment(t *testing.T) {
	r := openNoop(t, 64, 64)
	old := r.prog.pipeline

	if err := r.ReloadFragment("broken"); !errors.Is(err, ErrShaderProgram) {
		t.Fatalf("ReloadFragment(broken) = %v, want ErrShaderProgram", err)
	}
	if r.prog.pipeline != old {
		t.Error("rejected reload replaced the pipeline")
	}

	if err := r.ReloadFragment(shaders.Fragment); err != nil {
		t.Fatalf("ReloadFragment failed: %v", err)
	}
	if r.prog.pipeline == nil {
		t.Fatal("pipeline is nil after reload")
	}
	if err := r.DrawFrame(shp.Square(1).Flatten()); err != nil {
		t.Fatalf("DrawFrame after reload failed: %v", err)
	}
}

func TestClosed(t *testing.T) {
	r := openNoop(t, 64, 64)
	r.Close()
	r.Close()

	if err := r.DrawFrame(nil); !errors.Is(err, ErrClosed) {
		t.Errorf("DrawFrame after Close = %v, want ErrClosed", err)
	}
	if err := r.Resize(10, 10); !errors.Is(err, ErrClosed) {
		t.Errorf("Resize after Close = %v, want ErrClosed", err)
	}
	if err := r.ReloadFragment(shaders.Fragment); !errors.Is(err, ErrClosed) {
		t.Errorf("ReloadFragment after Close = %v, want ErrClosed", err)
	}
}
