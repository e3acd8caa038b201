// Package gpu is the shapr render pass executor, built directly on the
// gogpu/wgpu HAL.
//
// A Renderer owns two tiers of resources:
//
//   - Long-lived: instance, surface, device, queue, the full-screen quad
//     vertex buffer, the shapes bind group layout, the pipeline layout, the
//     shader modules and the render pipeline. Created by Open, released by
//     Close.
//   - Per frame: the 1-D shapes texture, its view and bind group, the
//     command encoder and command buffer. Created by DrawFrame and retired
//     once the queue reports the submission complete.
//
// Every frame is a single render pass drawing six vertices:
//
//	floats -> encode.Pack -> WriteTexture -> BeginRenderPass
//	       -> SetPipeline/SetBindGroup/SetVertexBuffer -> Draw(6) -> Submit -> Present
//
// The fragment shader is supplied at runtime. CheckFragment validates it with
// naga before any pipeline is built: it must declare `shapes` as a 1-D float
// texture at group 0 binding 0 and a fragment entry point named fs_main.
//
// The Vulkan backend is linked in by this package. Tests import
// github.com/gogpu/wgpu/hal/noop and select gputypes.BackendEmpty.
package gpu
