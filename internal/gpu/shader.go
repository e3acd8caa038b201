package gpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

//go:embed shaders/quad.wgsl
var quadShaderSource string

const (
	// ShapesName is the name of the shapes texture in the fragment shader.
	ShapesName = "shapes"

	// ShapesGroup and ShapesBinding locate the shapes texture.
	ShapesGroup   = 0
	ShapesBinding = 0

	// FragmentEntryPoint is the required fragment entry point.
	FragmentEntryPoint = "fs_main"

	// VertexEntryPoint is the entry point of the built-in quad shader.
	VertexEntryPoint = "vs_main"
)

var (
	errNoEntryPoint  = errors.New("missing @fragment entry point " + FragmentEntryPoint)
	errNoShapes      = errors.New("missing module-scope texture " + ShapesName)
	errShapesBinding = fmt.Errorf("%s must be bound at @group(%d) @binding(%d)", ShapesName, ShapesGroup, ShapesBinding)
	errShapesType    = errors.New(ShapesName + " must be a texture_1d<f32>")
)

// CheckFragment parses, lowers and validates a fragment shader and checks
// that it can consume the shapes texture. The returned error wraps
// ErrShaderProgram.
func CheckFragment(src string) error {
	mod, err := compileModule(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrShaderProgram, err)
	}
	if err := checkInterface(mod); err != nil {
		return fmt.Errorf("%w: %w", ErrShaderProgram, err)
	}
	return nil
}

func compileModule(src string) (*ir.Module, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	mod, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("lower: %w", err)
	}
	problems, err := naga.Validate(mod)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	if len(problems) > 0 {
		errs := make([]error, len(problems))
		for i, p := range problems {
			errs[i] = p
		}
		return nil, fmt.Errorf("validate: %w", errors.Join(errs...))
	}
	return mod, nil
}

func checkInterface(mod *ir.Module) error {
	found := false
	for _, ep := range mod.EntryPoints {
		if ep.Name == FragmentEntryPoint && ep.Stage == ir.StageFragment {
			found = true
			break
		}
	}
	if !found {
		return errNoEntryPoint
	}

	for _, gv := range mod.GlobalVariables {
		if gv.Name != ShapesName {
			continue
		}
		if gv.Binding == nil || gv.Binding.Group != ShapesGroup || gv.Binding.Binding != ShapesBinding {
			return errShapesBinding
		}
		if int(gv.Type) >= len(mod.Types) {
			return errShapesType
		}
		img, ok := mod.Types[gv.Type].Inner.(ir.ImageType)
		if !ok || img.Dim != ir.Dim1D || img.Arrayed || img.Class != ir.ImageClassSampled || img.SampledKind != ir.ScalarFloat {
			return errShapesType
		}
		return nil
	}
	return errNoShapes
}
