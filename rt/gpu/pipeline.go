package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

const DepthFormat = wgpu.TextureFormatDepth24PlusStencil8

// PipelineSpec describes one render pipeline. Buffers may be empty for
// pipelines that generate their geometry from the vertex index.
type PipelineSpec struct {
	Label    string
	Shader   string
	Topology wgpu.PrimitiveTopology
	Layouts  []*wgpu.BindGroupLayout
	Buffers  []wgpu.VertexBufferLayout
	// DepthWrite and DepthCompare configure the shared depth-stencil target.
	DepthWrite   bool
	DepthCompare wgpu.CompareFunction
}

// NewPipeline compiles the shader and builds the pipeline against the
// surface format and the depth-stencil format.
func NewPipeline(ctx *Context, spec PipelineSpec) (*wgpu.RenderPipeline, error) {
	shader, err := ctx.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          spec.Label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: spec.Shader},
	})
	if err != nil {
		return nil, fmt.Errorf("%s shader: %w", spec.Label, err)
	}
	defer shader.Release()

	layout, err := ctx.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            spec.Label + " Layout",
		BindGroupLayouts: spec.Layouts,
	})
	if err != nil {
		return nil, fmt.Errorf("%s layout: %w", spec.Label, err)
	}
	defer layout.Release()

	compare := spec.DepthCompare
	if compare == wgpu.CompareFunctionUndefined {
		compare = wgpu.CompareFunctionLessEqual
	}

	pipeline, err := ctx.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  spec.Label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    spec.Buffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    ctx.Format(),
					Blend:     nil,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  spec.Topology,
			FrontFace: wgpu.FrontFaceCCW,
			// Quads and planes are viewed from both sides.
			CullMode: wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: spec.DepthWrite,
			DepthCompare:      compare,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilReadMask:   0xFFFFFFFF,
			StencilWriteMask:  0xFFFFFFFF,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s pipeline: %w", spec.Label, err)
	}
	return pipeline, nil
}

// DepthTarget is the depth-stencil attachment sized to the swapchain.
type DepthTarget struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Width   uint32
	Height  uint32
}

func NewDepthTarget(ctx *Context) (*DepthTarget, error) {
	w, h := ctx.Size()
	texture, err := ctx.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Stencil",
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("depth texture: %w", err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("depth view: %w", err)
	}
	return &DepthTarget{Texture: texture, View: view, Width: w, Height: h}, nil
}

// Attachment clears depth to 1 and stencil to 0 at the start of the pass.
func (d *DepthTarget) Attachment() *wgpu.RenderPassDepthStencilAttachment {
	return &wgpu.RenderPassDepthStencilAttachment{
		View:              d.View,
		DepthLoadOp:       wgpu.LoadOpClear,
		DepthStoreOp:      wgpu.StoreOpStore,
		DepthClearValue:   1.0,
		StencilLoadOp:     wgpu.LoadOpClear,
		StencilStoreOp:    wgpu.StoreOpStore,
		StencilClearValue: 0,
	}
}

func (d *DepthTarget) Release() {
	if d.View != nil {
		d.View.Release()
	}
	if d.Texture != nil {
		d.Texture.Release()
	}
}
