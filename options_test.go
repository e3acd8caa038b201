package shapr

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shapr/shaders"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.fragmentPath != shaders.DefaultFragmentPath {
		t.Errorf("fragmentPath = %q, want %q", o.fragmentPath, shaders.DefaultFragmentPath)
	}
	if o.reload || o.fragmentSet || len(o.backends) != 0 {
		t.Errorf("unexpected defaults: %+v", o)
	}
	if o.clear.A != 1 {
		t.Errorf("clear alpha = %v, want 1", o.clear.A)
	}
}

func TestOptionsApply(t *testing.T) {
	o := defaultOptions()
	for _, opt := range []Option{
		WithFragmentShader("x.wgsl"),
		WithBackend(gputypes.BackendVulkan, gputypes.BackendGL),
		WithShaderReload(true),
		WithClearColor(gputypes.Color{R: 1, A: 1}),
		WithConfigFile("app.toml"),
	} {
		opt(&o)
	}
	if o.fragmentPath != "x.wgsl" || !o.fragmentSet {
		t.Errorf("fragment = %q set=%v", o.fragmentPath, o.fragmentSet)
	}
	if len(o.backends) != 2 || o.backends[0] != gputypes.BackendVulkan {
		t.Errorf("backends = %v", o.backends)
	}
	if !o.reload {
		t.Error("reload not enabled")
	}
	if o.clear.R != 1 {
		t.Errorf("clear = %+v", o.clear)
	}
	if o.configPath != "app.toml" {
		t.Errorf("configPath = %q", o.configPath)
	}
}

func TestFragmentSource(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.wgsl")
	if err := os.WriteFile(custom, []byte("// custom"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		opts    []Option
		want    string
		wantErr bool
	}{
		{
			name: "explicit file",
			opts: []Option{WithFragmentShader(custom)},
			want: "// custom",
		},
		{
			name:    "explicit missing file",
			opts:    []Option{WithFragmentShader(filepath.Join(dir, "missing.wgsl"))},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			for _, opt := range tt.opts {
				opt(&o)
			}
			got, err := o.fragmentSource()
			if tt.wantErr {
				if !errors.Is(err, ErrShaderProgram) {
					t.Fatalf("fragmentSource() error = %v, want ErrShaderProgram", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("fragmentSource() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("fragmentSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFragmentSourceEmbeddedFallback(t *testing.T) {
	o := defaultOptions()
	o.fragmentPath = filepath.Join(t.TempDir(), "shaders", "fragment.wgsl")
	got, err := o.fragmentSource()
	if err != nil {
		t.Fatalf("fragmentSource() error = %v", err)
	}
	if got != shaders.Fragment {
		t.Error("default path missing did not fall back to the embedded shader")
	}
}

func TestOptionsConfig(t *testing.T) {
	o := defaultOptions()
	if _, err := o.config(DefaultConfig().WithFPS(0)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("config(fps=0) error = %v, want ErrInvalidConfig", err)
	}

	path := filepath.Join(t.TempDir(), "app.toml")
	if err := os.WriteFile(path, []byte("fps = 24\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	WithConfigFile(path)(&o)
	got, err := o.config(NewConfigWithTitle("mine"))
	if err != nil {
		t.Fatalf("config() error = %v", err)
	}
	if want := NewConfigWithTitle("mine").WithFPS(24); got != want {
		t.Errorf("config() = %+v, want %+v", got, want)
	}
}
