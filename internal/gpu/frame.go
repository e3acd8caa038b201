package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shapr/internal/encode"
)

// errSkipFrame means the swapchain had no image for this tick.
var errSkipFrame = errors.New("gpu: no surface texture available")

// frameResources are the transient objects of one submitted frame. They are
// released once the queue reports the submission complete.
type frameResources struct {
	submission uint64
	texture    hal.Texture
	view       hal.TextureView
	group      hal.BindGroup
	target     hal.TextureView
	encoder    hal.CommandEncoder
	cmd        hal.CommandBuffer
}

// DrawFrame uploads floats as the shapes texture, draws the full-screen quad
// and presents. floats must hold whole RGB triples.
//
// The frame is skipped without error while the surface has zero area or the
// swapchain cannot provide an image after reconfiguring. Every other failure
// is returned wrapped in ErrTexture, ErrDraw or ErrPresent.
func (r *Renderer) DrawFrame(floats []float32) error {
	if r.closed {
		return ErrClosed
	}
	r.reclaim(false)

	texels, err := encode.Pack(floats, r.maxTexels)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTexture, err)
	}
	if !r.configured {
		return nil
	}

	fr, err := r.uploadShapes(texels)
	if err != nil {
		r.release(fr)
		return fmt.Errorf("%w: %w", ErrTexture, err)
	}

	acquired, err := r.acquire()
	if errors.Is(err, errSkipFrame) {
		r.release(fr)
		slogger().Warn("shapr: frame skipped, surface not ready")
		return nil
	}
	if err != nil {
		r.release(fr)
		return fmt.Errorf("%w: acquire surface texture: %w", ErrDraw, err)
	}

	target, err := r.device.CreateTextureView(acquired.Texture, &hal.TextureViewDescriptor{
		Label:           "shapr_swapchain_view",
		Format:          SurfaceFormat,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		r.surface.DiscardTexture(acquired.Texture)
		r.release(fr)
		return fmt.Errorf("%w: create swapchain view: %w", ErrDraw, err)
	}
	fr.target = target

	if err := r.record(&fr); err != nil {
		r.surface.DiscardTexture(acquired.Texture)
		r.release(fr)
		return fmt.Errorf("%w: %w", ErrDraw, err)
	}

	idx, err := r.queue.Submit([]hal.CommandBuffer{fr.cmd})
	if err != nil {
		r.surface.DiscardTexture(acquired.Texture)
		r.release(fr)
		return fmt.Errorf("%w: submit: %w", ErrDraw, err)
	}
	fr.submission = idx
	r.inflight = append(r.inflight, fr)

	if err := r.queue.Present(r.surface, acquired.Texture, nil); err != nil {
		if errors.Is(err, hal.ErrSurfaceOutdated) {
			slogger().Debug("shapr: surface outdated on present, reconfiguring")
			return r.configure()
		}
		return fmt.Errorf("%w: %w", ErrPresent, err)
	}
	if acquired.Suboptimal {
		if err := r.configure(); err != nil {
			return err
		}
	}

	r.frames++
	slogger().Debug("shapr: frame presented", "frame", r.frames, "texels", texels.Width)
	return nil
}

// uploadShapes creates the 1-D shapes texture, writes texels into it and
// builds the bind group that exposes it to the fragment shader.
func (r *Renderer) uploadShapes(t encode.Texels) (frameResources, error) {
	var fr frameResources
	size := hal.Extent3D{Width: t.Width, Height: 1, DepthOrArrayLayers: 1}

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "shapr_shapes",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension1D,
		Format:        gputypes.TextureFormatRGBA32Float,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fr, fmt.Errorf("create texture (%d texels): %w", t.Width, err)
	}
	fr.texture = tex

	err = r.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		t.Data,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: t.BytesPerRow(), RowsPerImage: 1},
		&size,
	)
	if err != nil {
		return fr, fmt.Errorf("write texture: %w", err)
	}

	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:           "shapr_shapes_view",
		Format:          gputypes.TextureFormatRGBA32Float,
		Dimension:       gputypes.TextureViewDimension1D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		return fr, fmt.Errorf("create texture view: %w", err)
	}
	fr.view = view

	group, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "shapr_shapes_bind",
		Layout: r.shapesLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: ShapesBinding, Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()}},
		},
	})
	if err != nil {
		return fr, fmt.Errorf("create bind group: %w", err)
	}
	fr.group = group
	return fr, nil
}

// acquire gets the next swapchain image. Not-ready and timeout results are
// retried once; an outdated surface is reconfigured and retried once.
func (r *Renderer) acquire() (*hal.AcquiredSurfaceTexture, error) {
	for attempt := 0; attempt < 2; attempt++ {
		acquired, err := r.surface.AcquireTexture(nil)
		if err == nil {
			return acquired, nil
		}
		if !isSurfaceTransient(err) {
			return nil, err
		}
		if errors.Is(err, hal.ErrSurfaceOutdated) {
			if cerr := r.configure(); cerr != nil {
				return nil, cerr
			}
			if !r.configured {
				return nil, errSkipFrame
			}
		}
	}
	return nil, errSkipFrame
}

// record encodes the single render pass of a frame into fr.
func (r *Renderer) record(fr *frameResources) error {
	enc, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "shapr_frame"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	fr.encoder = enc

	if err := enc.BeginEncoding("shapr_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	pass := enc.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "shapr_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       fr.target,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: r.clear,
			},
		},
	})
	pass.SetPipeline(r.prog.pipeline)
	pass.SetBindGroup(ShapesGroup, fr.group, nil)
	pass.SetVertexBuffer(0, r.vertexBuf, 0)
	pass.Draw(quadVertexCount, 1, 0, 0)
	pass.End()

	cmd, err := enc.EndEncoding()
	if err != nil {
		enc.DiscardEncoding()
		return fmt.Errorf("end encoding: %w", err)
	}
	fr.cmd = cmd
	return nil
}

// reclaim releases frames whose submission has completed, or all of them
// when force is set.
func (r *Renderer) reclaim(force bool) {
	if len(r.inflight) == 0 {
		return
	}
	done := r.queue.PollCompleted()
	keep := r.inflight[:0]
	for _, fr := range r.inflight {
		if force || fr.submission <= done {
			r.release(fr)
			continue
		}
		keep = append(keep, fr)
	}
	clear(r.inflight[len(keep):])
	r.inflight = keep
}

func (r *Renderer) release(fr frameResources) {
	if fr.cmd != nil {
		r.device.FreeCommandBuffer(fr.cmd)
	}
	if fr.encoder != nil {
		fr.encoder.Destroy()
	}
	if fr.group != nil {
		r.device.DestroyBindGroup(fr.group)
	}
	if fr.target != nil {
		r.device.DestroyTextureView(fr.target)
	}
	if fr.view != nil {
		r.device.DestroyTextureView(fr.view)
	}
	if fr.texture != nil {
		r.device.DestroyTexture(fr.texture)
	}
}

// Pending returns the number of submitted frames not yet reclaimed.
func (r *Renderer) Pending() int { return len(r.inflight) }
