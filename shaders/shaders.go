// Package shaders ships the default shapes fragment shader.
//
// The run loop reads the fragment shader from disk (DefaultFragmentPath
// unless overridden) so it can be edited and hot reloaded; Fragment is the
// copy compiled into the binary, used when no file is present.
package shaders

import _ "embed"

// DefaultFragmentPath is the fragment shader location relative to the
// working directory.
const DefaultFragmentPath = "shaders/fragment.wgsl"

// Fragment is the embedded default fragment shader source.
//
//go:embed fragment.wgsl
var Fragment string
