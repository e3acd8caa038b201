package shapr

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/shapr/internal/frame"
)

// Default configuration values.
const (
	DefaultFPS    = 60
	DefaultWidth  = 800
	DefaultHeight = 800
	DefaultTitle  = "Shapr-Glium App"
)

// AppConfig is the window and frame-rate configuration of an application.
// It is a value type: the With methods return a modified copy.
type AppConfig struct {
	// FPS is the target frame rate. Frames are spaced by at least 1/FPS.
	FPS int `toml:"fps"`

	// Resolution is the initial window size in screen coordinates.
	Resolution [2]int `toml:"resolution"`

	// Title is the window title.
	Title string `toml:"title"`
}

// DefaultConfig returns {60, [800, 800], "Shapr-Glium App"}.
func DefaultConfig() AppConfig {
	return AppConfig{
		FPS:        DefaultFPS,
		Resolution: [2]int{DefaultWidth, DefaultHeight},
		Title:      DefaultTitle,
	}
}

// NewConfigWithTitle returns DefaultConfig with the given title.
func NewConfigWithTitle(title string) AppConfig {
	return DefaultConfig().WithTitle(title)
}

// WithTitle returns a copy of c with the given title.
func (c AppConfig) WithTitle(title string) AppConfig {
	c.Title = title
	return c
}

// WithFPS returns a copy of c with the given frame rate.
func (c AppConfig) WithFPS(fps int) AppConfig {
	c.FPS = fps
	return c
}

// WithResolution returns a copy of c with the given window size.
func (c AppConfig) WithResolution(width, height int) AppConfig {
	c.Resolution = [2]int{width, height}
	return c
}

// TargetInterval returns the minimum spacing between frames, or 0 when FPS
// is not positive.
func (c AppConfig) TargetInterval() time.Duration {
	return frame.Interval(c.FPS)
}

// Validate reports whether c can open a window and drive a frame loop.
func (c AppConfig) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d must be positive", ErrInvalidConfig, c.FPS)
	}
	if c.Resolution[0] <= 0 || c.Resolution[1] <= 0 {
		return fmt.Errorf("%w: resolution %dx%d must be positive",
			ErrInvalidConfig, c.Resolution[0], c.Resolution[1])
	}
	return nil
}

// LoadConfig reads a TOML file over DefaultConfig. Keys absent from the
// file keep their default values.
//
// Example file:
//
//	fps = 30
//	resolution = [1024, 768]
//	title = "Bouncing square"
func LoadConfig(path string) (AppConfig, error) {
	return loadConfig(path, DefaultConfig())
}

func loadConfig(path string, base AppConfig) (AppConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	defer f.Close()
	cfg, err := DecodeConfig(f, base)
	if err != nil {
		return AppConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes TOML from r over base and validates the result.
// Unknown keys are rejected.
func DecodeConfig(r io.Reader, base AppConfig) (AppConfig, error) {
	cfg := base
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}
