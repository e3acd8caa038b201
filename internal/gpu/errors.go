package gpu

import "errors"

// Stage errors. Every failure returned by a Renderer wraps one of these so
// callers can tell which resource failed with errors.Is. ErrNoBackend and
// ErrNoAdapter are additionally wrapped by ErrDevice.
var (
	// ErrNoBackend is returned when none of the requested HAL backends is
	// registered.
	ErrNoBackend = errors.New("gpu: no usable backend")

	// ErrNoAdapter is returned when the backend exposes no adapter.
	ErrNoAdapter = errors.New("gpu: no GPU adapter found")

	// ErrDisplay is returned when the instance or window surface cannot be
	// created or configured.
	ErrDisplay = errors.New("gpu: display setup failed")

	// ErrDevice is returned when the logical device cannot be opened.
	ErrDevice = errors.New("gpu: device open failed")

	// ErrShaderProgram is returned when the shader program cannot be
	// validated, compiled or linked into a pipeline.
	ErrShaderProgram = errors.New("gpu: shader program failed")

	// ErrVertexBuffer is returned when the quad vertex buffer cannot be
	// created or filled.
	ErrVertexBuffer = errors.New("gpu: vertex buffer failed")

	// ErrTexture is returned when the per-frame shapes texture cannot be
	// encoded, created or uploaded.
	ErrTexture = errors.New("gpu: shapes texture failed")

	// ErrDraw is returned when the frame cannot be recorded or submitted.
	ErrDraw = errors.New("gpu: draw failed")

	// ErrPresent is returned when the frame cannot be presented.
	ErrPresent = errors.New("gpu: present failed")

	// ErrClosed is returned by operations on a closed Renderer.
	ErrClosed = errors.New("gpu: renderer closed")
)
