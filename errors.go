package shapr

import (
	"errors"

	"github.com/gogpu/shapr/internal/encode"
	"github.com/gogpu/shapr/internal/gpu"
)

// Errors returned by Run. GPU failures wrap the sentinel of the stage that
// failed; test with errors.Is.
var (
	// ErrInvalidConfig is returned when an AppConfig fails validation.
	ErrInvalidConfig = errors.New("shapr: invalid config")

	// ErrWindow is returned when the window cannot be created or exposes no
	// native handles.
	ErrWindow = errors.New("shapr: window creation failed")

	// ErrDisplay is returned when the GPU surface cannot be created or
	// configured.
	ErrDisplay = gpu.ErrDisplay

	// ErrDevice is returned when no backend, adapter or device is usable.
	ErrDevice = gpu.ErrDevice

	// ErrShaderProgram is returned when the shader program cannot be loaded,
	// validated or compiled.
	ErrShaderProgram = gpu.ErrShaderProgram

	// ErrVertexBuffer is returned when the quad vertex buffer cannot be
	// created.
	ErrVertexBuffer = gpu.ErrVertexBuffer

	// ErrTexture is returned when a frame's shapes texture cannot be built
	// or uploaded.
	ErrTexture = gpu.ErrTexture

	// ErrDraw is returned when a frame cannot be recorded or submitted.
	ErrDraw = gpu.ErrDraw

	// ErrPresent is returned when a frame cannot be presented.
	ErrPresent = gpu.ErrPresent

	// ErrMalformedShape is wrapped by ErrTexture when a shape encoding is
	// not a whole number of texels.
	ErrMalformedShape = encode.ErrMalformed
)
