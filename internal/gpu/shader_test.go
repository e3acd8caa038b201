package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/shapr/shaders"
)

func TestCheckFragmentDefaultShader(t *testing.T) {
	if err := CheckFragment(shaders.Fragment); err != nil {
		t.Fatalf("default fragment shader rejected: %v", err)
	}
}

func TestQuadShaderCompiles(t *testing.T) {
	if quadShaderSource == "" {
		t.Fatal("quad shader source is empty")
	}
	mod, err := compileModule(quadShaderSource)
	if err != nil {
		t.Fatalf("quad shader: %v", err)
	}
	found := false
	for _, ep := range mod.EntryPoints {
		if ep.Name == VertexEntryPoint {
			found = true
		}
	}
	if !found {
		t.Errorf("quad shader has no %s entry point", VertexEntryPoint)
	}
}

func TestCheckFragmentRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "syntax error",
			src:  `@fragment fn fs_main( -> @location(0) vec4<f32> {`,
		},
		{
			name: "wrong entry point",
			src: `
@group(0) @binding(0) var shapes: texture_1d<f32>;

@fragment
fn main() -> @location(0) vec4<f32> {
    return textureLoad(shapes, 0, 0);
}
`,
			want: errNoEntryPoint,
		},
		{
			name: "missing shapes",
			src: `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`,
			want: errNoShapes,
		},
		{
			name: "wrong binding",
			src: `
@group(0) @binding(1) var shapes: texture_1d<f32>;

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return textureLoad(shapes, 0, 0);
}
`,
			want: errShapesBinding,
		},
		{
			name: "wrong dimension",
			src: `
@group(0) @binding(0) var shapes: texture_2d<f32>;

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return textureLoad(shapes, vec2<i32>(0, 0), 0);
}
`,
			want: errShapesType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckFragment(tt.src)
			if err == nil {
				t.Fatal("CheckFragment() = nil, want error")
			}
			if !errors.Is(err, ErrShaderProgram) {
				t.Errorf("error %v does not wrap ErrShaderProgram", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error %v does not wrap %v", err, tt.want)
			}
		})
	}
}
