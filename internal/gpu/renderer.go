package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Vulkan backend registration.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// DefaultBackends is the backend preference order used when Config.Backends
// is empty.
var DefaultBackends = []gputypes.Backend{
	gputypes.BackendVulkan,
	gputypes.BackendMetal,
	gputypes.BackendDX12,
	gputypes.BackendGL,
}

// SurfaceFormat is the colour format of the window surface.
const SurfaceFormat = gputypes.TextureFormatBGRA8Unorm

// quadVertices covers normalized device coordinates with two triangles.
var quadVertices = [12]float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
	1, -1,
	-1, 1,
}

const (
	quadVertexCount  = uint32(len(quadVertices) / 2)
	quadVertexStride = 8
)

// Config describes the surface and program a Renderer is opened with.
type Config struct {
	// Backends lists HAL backends in preference order. Empty means
	// DefaultBackends.
	Backends []gputypes.Backend

	// DisplayHandle and WindowHandle are the native handles passed to
	// hal.Instance.CreateSurface.
	DisplayHandle uintptr
	WindowHandle  uintptr

	// Width and Height are the initial framebuffer size in pixels.
	Width, Height uint32

	// FragmentSource is the WGSL fragment shader.
	FragmentSource string

	// ClearColor fills the frame before the quad is drawn.
	ClearColor gputypes.Color

	// PresentMode defaults to gputypes.PresentModeFifo.
	PresentMode gputypes.PresentMode
}

// program is the pair of objects replaced on shader reload.
type program struct {
	fragment hal.ShaderModule
	pipeline hal.RenderPipeline
}

// Renderer draws one full-screen pass per frame with the shapes texture
// bound. It is not safe for concurrent use.
type Renderer struct {
	instance hal.Instance
	surface  hal.Surface
	device   hal.Device
	queue    hal.Queue

	backend     gputypes.Backend
	adapterName string
	maxTexels   uint32

	width, height uint32
	configured    bool
	presentMode   gputypes.PresentMode
	clear         gputypes.Color

	vertexBuf    hal.Buffer
	vertexModule hal.ShaderModule
	shapesLayout hal.BindGroupLayout
	pipeLayout   hal.PipelineLayout
	prog         program

	inflight []frameResources
	frames   uint64
	closed   bool
}

// Open creates the long-lived GPU resources: instance, surface, device,
// quad vertex buffer and shader program. Any failure releases what was
// created and returns an error wrapping the stage sentinel of the failing
// resource.
func Open(cfg Config) (*Renderer, error) {
	if err := CheckFragment(cfg.FragmentSource); err != nil {
		return nil, err
	}

	r := &Renderer{
		width:       cfg.Width,
		height:      cfg.Height,
		presentMode: cfg.PresentMode,
		clear:       cfg.ClearColor,
	}
	if r.presentMode == 0 {
		r.presentMode = gputypes.PresentModeFifo
	}

	if err := r.openDevice(cfg); err != nil {
		r.Close()
		return nil, err
	}
	if err := r.configure(); err != nil {
		r.Close()
		return nil, err
	}
	if err := r.createVertexBuffer(); err != nil {
		r.Close()
		return nil, fmt.Errorf("%w: %w", ErrVertexBuffer, err)
	}
	if err := r.createLayouts(); err != nil {
		r.Close()
		return nil, fmt.Errorf("%w: %w", ErrShaderProgram, err)
	}
	prog, err := r.createProgram(cfg.FragmentSource)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("%w: %w", ErrShaderProgram, err)
	}
	r.prog = prog

	slogger().Info("shapr: renderer ready",
		"backend", r.backend.String(),
		"adapter", r.adapterName,
		"width", r.width,
		"height", r.height,
		"max_texels", r.maxTexels,
	)
	return r, nil
}

// openDevice selects a backend, creates the instance and window surface and
// opens a device on the best adapter.
func (r *Renderer) openDevice(cfg Config) error {
	backends := cfg.Backends
	if len(backends) == 0 {
		backends = DefaultBackends
	}
	var backend hal.Backend
	for _, b := range backends {
		if be, ok := hal.GetBackend(b); ok {
			backend = be
			r.backend = b
			break
		}
	}
	if backend == nil {
		return fmt.Errorf("%w: %w: tried %v", ErrDevice, ErrNoBackend, backends)
	}

	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("%w: create instance: %w", ErrDisplay, err)
	}
	r.instance = instance

	surface, err := instance.CreateSurface(cfg.DisplayHandle, cfg.WindowHandle)
	if err != nil {
		return fmt.Errorf("%w: create surface: %w", ErrDisplay, err)
	}
	r.surface = surface

	adapters := instance.EnumerateAdapters(surface)
	if len(adapters) == 0 {
		return fmt.Errorf("%w: %w", ErrDevice, ErrNoAdapter)
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	r.adapterName = selected.Info.Name

	limits := gputypes.DefaultLimits()
	openDev, err := selected.Adapter.Open(gputypes.Features(0), limits)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDevice, err)
	}
	r.device = openDev.Device
	r.queue = openDev.Queue

	r.maxTexels = limits.MaxTextureDimension1D
	if m := selected.Capabilities.Limits.MaxTextureDimension1D; m > 0 && m < r.maxTexels {
		r.maxTexels = m
	}
	return nil
}

// configure (re)configures the surface for the current size. A zero size is
// recorded but leaves the surface unconfigured.
func (r *Renderer) configure() error {
	if r.width == 0 || r.height == 0 {
		if r.configured {
			r.surface.Unconfigure(r.device)
			r.configured = false
		}
		return nil
	}
	err := r.surface.Configure(r.device, &hal.SurfaceConfiguration{
		Width:       r.width,
		Height:      r.height,
		Format:      SurfaceFormat,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: r.presentMode,
		AlphaMode:   gputypes.CompositeAlphaModeOpaque,
	})
	if err != nil {
		r.configured = false
		return fmt.Errorf("%w: configure surface %dx%d: %w", ErrDisplay, r.width, r.height, err)
	}
	r.configured = true
	return nil
}

func (r *Renderer) createVertexBuffer() error {
	data := make([]byte, len(quadVertices)*4)
	for i, v := range quadVertices {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "shapr_quad_vertices",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create quad buffer: %w", err)
	}
	r.vertexBuf = buf
	if err := r.queue.WriteBuffer(buf, 0, data); err != nil {
		return fmt.Errorf("upload quad vertices: %w", err)
	}
	return nil
}

// createLayouts builds the parts of the program that do not depend on the
// fragment source: the quad vertex module and the shapes layouts.
func (r *Renderer) createLayouts() error {
	vs, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "shapr_quad_vs",
		Source: hal.ShaderSource{WGSL: quadShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile quad shader: %w", err)
	}
	r.vertexModule = vs

	layout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "shapr_shapes_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    ShapesBinding,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
					ViewDimension: gputypes.TextureViewDimension1D,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create shapes layout: %w", err)
	}
	r.shapesLayout = layout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "shapr_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.shapesLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout
	return nil
}

// createProgram compiles the fragment shader and links it with the quad
// vertex shader into a render pipeline.
func (r *Renderer) createProgram(fragmentSource string) (program, error) {
	fs, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "shapr_shapes_fs",
		Source: hal.ShaderSource{WGSL: fragmentSource},
	})
	if err != nil {
		return program{}, fmt.Errorf("compile fragment shader: %w", err)
	}

	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "shapr_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.vertexModule,
			EntryPoint: VertexEntryPoint,
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: quadVertexStride,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					},
				},
			},
		},
		Fragment: &hal.FragmentState{
			Module:     fs,
			EntryPoint: FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    SurfaceFormat,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		r.device.DestroyShaderModule(fs)
		return program{}, fmt.Errorf("create render pipeline: %w", err)
	}
	return program{fragment: fs, pipeline: pipeline}, nil
}

func (r *Renderer) destroyProgram(p program) {
	if p.pipeline != nil {
		r.device.DestroyRenderPipeline(p.pipeline)
	}
	if p.fragment != nil {
		r.device.DestroyShaderModule(p.fragment)
	}
}

// ReloadFragment validates src and swaps it in as the fragment shader. On
// error the current program stays active.
func (r *Renderer) ReloadFragment(src string) error {
	if r.closed {
		return ErrClosed
	}
	if err := CheckFragment(src); err != nil {
		return err
	}
	prog, err := r.createProgram(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrShaderProgram, err)
	}
	// In-flight frames may still reference the old pipeline.
	if err := r.device.WaitIdle(); err != nil {
		r.destroyProgram(prog)
		return fmt.Errorf("%w: wait idle: %w", ErrDevice, err)
	}
	r.reclaim(true)
	r.destroyProgram(r.prog)
	r.prog = prog
	slogger().Info("shapr: fragment shader reloaded")
	return nil
}

// Resize reconfigures the surface for a new framebuffer size. A zero size
// suspends drawing until a non-zero size arrives.
func (r *Renderer) Resize(width, height uint32) error {
	if r.closed {
		return ErrClosed
	}
	if width == r.width && height == r.height && (r.configured || width == 0 || height == 0) {
		return nil
	}
	r.width, r.height = width, height
	slogger().Debug("shapr: surface resize", "width", width, "height", height)
	return r.configure()
}

// Size returns the configured surface size.
func (r *Renderer) Size() (width, height uint32) { return r.width, r.height }

// MaxTexels returns the largest shapes texture the device accepts.
func (r *Renderer) MaxTexels() uint32 { return r.maxTexels }

// AdapterName returns the selected adapter's name.
func (r *Renderer) AdapterName() string { return r.adapterName }

// Backend returns the selected backend.
func (r *Renderer) Backend() gputypes.Backend { return r.backend }

// Frames returns the number of presented frames.
func (r *Renderer) Frames() uint64 { return r.frames }

// Close waits for the GPU and releases every resource. It is safe to call
// more than once.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true

	if r.device != nil {
		if err := r.device.WaitIdle(); err != nil {
			slogger().Warn("shapr: wait idle on close", "err", err)
		}
		r.reclaim(true)
		r.destroyProgram(r.prog)
		r.prog = program{}
		if r.pipeLayout != nil {
			r.device.DestroyPipelineLayout(r.pipeLayout)
		}
		if r.shapesLayout != nil {
			r.device.DestroyBindGroupLayout(r.shapesLayout)
		}
		if r.vertexModule != nil {
			r.device.DestroyShaderModule(r.vertexModule)
		}
		if r.vertexBuf != nil {
			r.device.DestroyBuffer(r.vertexBuf)
		}
	}
	if r.surface != nil {
		if r.configured && r.device != nil {
			r.surface.Unconfigure(r.device)
		}
		r.surface.Destroy()
	}
	if r.device != nil {
		r.device.Destroy()
	}
	if r.instance != nil {
		r.instance.Destroy()
	}
}

// isSurfaceTransient reports whether err is a swapchain condition that is
// handled by reconfiguring or retrying rather than failing the run.
func isSurfaceTransient(err error) bool {
	return errors.Is(err, hal.ErrNotReady) ||
		errors.Is(err, hal.ErrTimeout) ||
		errors.Is(err, hal.ErrSurfaceOutdated)
}
