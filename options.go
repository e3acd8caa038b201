package shapr

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shapr/shaders"
)

// Option configures Run.
//
// Example:
//
//	shapr.Run(app,
//	    shapr.WithFragmentShader("shaders/plasma.wgsl"),
//	    shapr.WithShaderReload(true),
//	)
type Option func(*options)

// options holds the runtime configuration of Run.
type options struct {
	logger       *slog.Logger
	fragmentPath string
	fragmentSet  bool
	backends     []gputypes.Backend
	reload       bool
	clear        gputypes.Color
	configPath   string
}

// defaultOptions returns the default run options.
func defaultOptions() options {
	return options{
		fragmentPath: shaders.DefaultFragmentPath,
		clear:        gputypes.Color{R: 0, G: 0, B: 0, A: 1},
	}
}

// WithLogger installs l as the shapr logger before the window opens. It is
// equivalent to calling SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithFragmentShader loads the fragment shader from path instead of
// shaders/fragment.wgsl. A missing file is then a fatal error; with the
// default path the embedded shader is used instead.
func WithFragmentShader(path string) Option {
	return func(o *options) {
		o.fragmentPath = path
		o.fragmentSet = true
	}
}

// WithBackend sets the GPU backends to try, in order of preference.
func WithBackend(backends ...gputypes.Backend) Option {
	return func(o *options) {
		o.backends = append([]gputypes.Backend(nil), backends...)
	}
}

// WithShaderReload enables reloading the fragment shader when its file
// changes. A shader that fails to compile is logged and the previous one
// stays active.
func WithShaderReload(enabled bool) Option {
	return func(o *options) {
		o.reload = enabled
	}
}

// WithClearColor sets the colour the frame is cleared to before the shapes
// pass.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clear = c
	}
}

// WithConfigFile overlays the application's configuration with the TOML
// file at path. See LoadConfig for the format.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// fragmentSource reads the fragment shader. The embedded default is used
// when the default path does not exist.
func (o *options) fragmentSource() (string, error) {
	data, err := os.ReadFile(o.fragmentPath)
	if err == nil {
		return string(data), nil
	}
	if !o.fragmentSet && errors.Is(err, fs.ErrNotExist) {
		Logger().Debug("shapr: using embedded fragment shader", "path", o.fragmentPath)
		return shaders.Fragment, nil
	}
	return "", fmt.Errorf("%w: read fragment shader: %w", ErrShaderProgram, err)
}

// config returns base overlaid with the configured TOML file, if any.
func (o *options) config(base AppConfig) (AppConfig, error) {
	if o.configPath == "" {
		return base, base.Validate()
	}
	return loadConfig(o.configPath, base)
}
