// Package shapr is a minimal real-time rendering harness for shape
// programs.
//
// # Overview
//
// An application describes each frame as a [shp.Shape]. shapr opens a
// window, drives a fixed-rate frame loop and rasterizes the shape with a
// single full-screen GPU pass: the shape is flattened to floats, packed
// into a one-dimensional texture bound as the shader uniform "shapes", and
// a fragment shader evaluates it for every pixel.
//
// # Quick Start
//
//	type app struct{}
//
//	func (app) DrawFrame(dt time.Duration) shp.Shape {
//	    return shp.Circle(0.5).Fill([3]float32{1, 0, 0})
//	}
//
//	func main() {
//	    shapr.Main(app{})
//	}
//
// # Application contract
//
// DrawFrame is the only required method. An application may also implement
// [Configurer] to choose the frame rate, window size and title, and
// [EventProcessor] to handle window events. Without an EventProcessor,
// [DefaultProcessEvent] exits on a close request or when Escape is pressed.
//
// # Frame timing
//
// Frames are spaced by at least 1/FPS. DrawFrame receives the real time
// elapsed since the previous frame, so a slow frame produces a larger dt
// rather than a skipped frame.
//
// # Errors
//
// Every GPU or window failure is fatal: [Run] returns an error that wraps
// one of the stage sentinels ([ErrWindow], [ErrDevice], [ErrShaderProgram],
// [ErrVertexBuffer], [ErrTexture], [ErrDraw], [ErrPresent]) and [Main]
// logs it and exits with status 1.
//
// # Logging
//
// shapr is silent by default. Call [SetLogger] or pass [WithLogger] to
// enable structured logging through log/slog.
package shapr
