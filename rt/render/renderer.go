package render

import (
	"fmt"

	"github.com/gekko3d/scenerender/logging"
	"github.com/gekko3d/scenerender/rt/asset"
	"github.com/gekko3d/scenerender/rt/core"
	"github.com/gekko3d/scenerender/rt/gpu"
	"github.com/gekko3d/scenerender/rt/shaders"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	uniformSize   = UniformFloats * 4
	transformSize = core.MaxObjects * core.MatrixFloats * 4
	highlightSize = core.MaxObjects * 4

	// overlayVertices is two quads forming the crosshair.
	overlayVertices = 12
)

// Profiler scopes reported by Render.
const (
	ScopePick   = "pick"
	ScopeUpload = "upload"
	ScopeEncode = "encode"
)

// Profiler receives per-frame timings and counters.
type Profiler interface {
	BeginScope(name string)
	EndScope(name string)
	SetCount(name string, count int)
}

type nopProfiler struct{}

func (nopProfiler) BeginScope(string)    {}
func (nopProfiler) EndScope(string)      {}
func (nopProfiler) SetCount(string, int) {}

type Options struct {
	Mode       Mode
	FOVDegrees float32
	Near       float32
	Far        float32
	// Meshes and Textures map asset names to files loaded during Init.
	Meshes    map[string]string
	Textures  map[string]string
	BlankSeed uint64

	Clock    Clock
	Profiler Profiler
}

// Renderer owns the pipelines, the shared frame buffers and the draw loop.
type Renderer struct {
	ctx    *gpu.Context
	assets *asset.Registry
	log    logging.Logger
	opts   Options

	layouts   *gpu.Layouts
	depth     *gpu.DepthTarget
	pipelines [modeCount]*wgpu.RenderPipeline
	overlay   *wgpu.RenderPipeline

	uniformBuf   *wgpu.Buffer
	transformBuf *wgpu.Buffer
	highlightBuf *wgpu.Buffer
	frameGroup   *wgpu.BindGroup

	mode       Mode
	background *wgpu.Color
	clock      Clock
	prof       Profiler
}

func New(ctx *gpu.Context, assets *asset.Registry, log logging.Logger, opts Options) *Renderer {
	if opts.FOVDegrees <= 0 {
		opts.FOVDegrees = 45
	}
	if opts.Near <= 0 {
		opts.Near = 0.1
	}
	if opts.Far <= opts.Near {
		opts.Far = 100
	}
	r := &Renderer{
		ctx:    ctx,
		assets: assets,
		log:    logging.OrNop(log),
		opts:   opts,
		mode:   opts.Mode,
		clock:  opts.Clock,
		prof:   opts.Profiler,
	}
	if r.clock == nil {
		r.clock = NewWallClock()
	}
	if r.prof == nil {
		r.prof = nopProfiler{}
	}
	return r
}

// Init builds every device resource in dependency order: bind group layouts,
// meshes, materials, depth target, pipelines, bind groups.
func (r *Renderer) Init() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"layouts", r.initLayouts},
		{"meshes", r.initMeshes},
		{"materials", r.initMaterials},
		{"depth", r.initDepth},
		{"pipelines", r.initPipelines},
		{"bind groups", r.initBindGroups},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			r.log.Errorf("renderer init %s: %v", s.name, err)
			return fmt.Errorf("renderer init %s: %w", s.name, err)
		}
		r.log.Debugf("renderer init %s done", s.name)
	}
	r.log.Infof("renderer ready in %s mode", r.mode)
	return nil
}

func (r *Renderer) initLayouts() error {
	layouts, err := gpu.NewLayouts(r.ctx.Device)
	if err != nil {
		return err
	}
	r.layouts = layouts
	return nil
}

func (r *Renderer) initMeshes() error {
	if _, ok := r.assets.Mesh(asset.TriangleMesh); !ok {
		if err := r.assets.RegisterBuiltins(r.ctx); err != nil {
			return err
		}
	}
	for name, path := range r.opts.Meshes {
		if _, err := r.assets.LoadMesh(r.ctx, name, path); err != nil {
			return fmt.Errorf("mesh %s: %w", name, err)
		}
	}
	return r.assets.SwitchTopology(r.mode.Topology())
}

func (r *Renderer) initMaterials() error {
	if _, ok := r.assets.Material(core.BlankMaterial); !ok {
		blank, err := gpu.NewBlankMaterial(r.ctx, r.layouts.Material, core.BlankMaterial, r.opts.BlankSeed)
		if err != nil {
			return err
		}
		if _, err := r.assets.AddMaterial(core.BlankMaterial, blank); err != nil {
			blank.Release()
			return err
		}
	}
	for name, path := range r.opts.Textures {
		img, err := gpu.LoadImage(path)
		if err != nil {
			return fmt.Errorf("material %s: %w", name, err)
		}
		mat, err := gpu.NewMaterial(r.ctx, r.layouts.Material, name, img)
		if err != nil {
			return err
		}
		if _, err := r.assets.AddMaterial(name, mat); err != nil {
			mat.Release()
			return err
		}
	}
	return nil
}

func (r *Renderer) initDepth() error {
	depth, err := gpu.NewDepthTarget(r.ctx)
	if err != nil {
		return err
	}
	r.depth = depth
	return nil
}

func (r *Renderer) initPipelines() error {
	sceneLayouts := []*wgpu.BindGroupLayout{r.layouts.Frame, r.layouts.Material}
	vertex := []wgpu.VertexBufferLayout{gpu.VertexLayout()}

	var err error
	r.pipelines[ModeUnlit], err = gpu.NewPipeline(r.ctx, gpu.PipelineSpec{
		Label:      "Unlit",
		Shader:     shaders.BasicWGSL,
		Topology:   ModeUnlit.primitive(),
		Layouts:    sceneLayouts,
		Buffers:    vertex,
		DepthWrite: true,
	})
	if err != nil {
		return err
	}
	// The wireframe shader ignores the material group, but sharing the
	// layout keeps the draw loop identical for both modes.
	r.pipelines[ModeWireframe], err = gpu.NewPipeline(r.ctx, gpu.PipelineSpec{
		Label:      "Wireframe",
		Shader:     shaders.WireframeWGSL,
		Topology:   ModeWireframe.primitive(),
		Layouts:    sceneLayouts,
		Buffers:    vertex,
		DepthWrite: true,
	})
	if err != nil {
		return err
	}
	r.overlay, err = gpu.NewPipeline(r.ctx, gpu.PipelineSpec{
		Label:        "Overlay",
		Shader:       shaders.OverlayWGSL,
		Topology:     wgpu.PrimitiveTopologyTriangleList,
		Layouts:      []*wgpu.BindGroupLayout{r.layouts.Frame},
		DepthCompare: wgpu.CompareFunctionAlways,
	})
	return err
}

func (r *Renderer) initBindGroups() error {
	var err error
	if r.uniformBuf, err = r.ctx.CreateBuffer("Camera Uniforms", uniformSize, wgpu.BufferUsageUniform); err != nil {
		return err
	}
	if r.transformBuf, err = r.ctx.CreateBuffer("Object Transforms", transformSize, wgpu.BufferUsageStorage); err != nil {
		return err
	}
	if r.highlightBuf, err = r.ctx.CreateBuffer("Highlights", highlightSize, wgpu.BufferUsageStorage); err != nil {
		return err
	}

	r.frameGroup, err = r.ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: r.layouts.Frame,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.uniformBuf, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: r.transformBuf, Size: wgpu.WholeSize},
			{Binding: 2, Buffer: r.highlightBuf, Size: wgpu.WholeSize},
		},
	})
	return err
}

func (r *Renderer) Mode() Mode { return r.mode }

// SetBackground overrides the unlit clear color. nil restores the default.
func (r *Renderer) SetBackground(c *wgpu.Color) { r.background = c }

func (r *Renderer) ClearColor() wgpu.Color { return r.mode.ClearColor(r.background) }

// SwitchMode switches every registered mesh to the topology of m. On failure
// the previous mode stays active.
func (r *Renderer) SwitchMode(m Mode) error {
	if m == r.mode {
		return nil
	}
	if m >= modeCount {
		return fmt.Errorf("unknown render mode %d", m)
	}
	if err := r.assets.SwitchTopology(m.Topology()); err != nil {
		r.log.Errorf("switching to %s: %v", m, err)
		return err
	}
	r.log.Infof("render mode %s -> %s", r.mode, m)
	r.mode = m
	return nil
}

// Projection is the current perspective matrix for the swapchain aspect.
func (r *Renderer) Projection() mgl32.Mat4 {
	w, h := r.ctx.Size()
	aspect := float32(1)
	if h > 0 {
		aspect = float32(w) / float32(h)
	}
	return Projection(r.opts.FOVDegrees, aspect, r.opts.Near, r.opts.Far)
}

func (r *Renderer) FOVDegrees() float32 { return r.opts.FOVDegrees }

// Resize reconfigures the surface and rebuilds the depth target.
func (r *Renderer) Resize(width, height int) error {
	if !r.ctx.Resize(width, height) {
		return nil
	}
	if r.depth != nil {
		r.depth.Release()
		r.depth = nil
	}
	return r.initDepth()
}

// Render draws one frame of snap and returns the picking result it used.
func (r *Renderer) Render(snap core.FrameSnapshot) core.PickResult {
	if snap.Count > core.MaxObjects {
		r.log.Errorf("render: %d objects exceed the transform buffer", snap.Count)
		return core.NoPick
	}

	r.prof.BeginScope(ScopePick)
	plan := PlanFrame(snap, r.mode, r.ClearColor(), r.Projection(), r.clock.Elapsed())
	r.prof.EndScope(ScopePick)

	r.prof.BeginScope(ScopeUpload)
	err := r.upload(plan)
	r.prof.EndScope(ScopeUpload)
	if err != nil {
		r.log.Errorf("render upload: %v", err)
		return plan.Pick
	}

	r.prof.BeginScope(ScopeEncode)
	err = r.encode(plan)
	r.prof.EndScope(ScopeEncode)
	if err != nil {
		r.log.Errorf("render: %v", err)
	}

	r.prof.SetCount("objects", snap.Count)
	r.prof.SetCount("draws", len(plan.Draws))
	return plan.Pick
}

func (r *Renderer) upload(plan FramePlan) error {
	if len(plan.Highlights) > 0 {
		if err := r.ctx.Queue.WriteBuffer(r.highlightBuf, 0, wgpu.ToBytes(plan.Highlights)); err != nil {
			return fmt.Errorf("highlights: %w", err)
		}
	}
	if len(plan.Transforms) > 0 {
		if err := r.ctx.Queue.WriteBuffer(r.transformBuf, 0, wgpu.ToBytes(plan.Transforms)); err != nil {
			return fmt.Errorf("transforms: %w", err)
		}
	}
	if err := r.ctx.Queue.WriteBuffer(r.uniformBuf, 0, wgpu.ToBytes(plan.Uniforms[:])); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	return nil
}

func (r *Renderer) encode(plan FramePlan) error {
	nextTexture, err := r.ctx.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("GetCurrentTexture: %w", err)
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("CreateView: %w", err)
	}
	defer view.Release()

	encoder, err := r.ctx.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("CreateCommandEncoder: %w", err)
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: plan.Clear,
		}},
		DepthStencilAttachment: r.depth.Attachment(),
	})

	pass.SetPipeline(r.pipelines[plan.Pipeline])
	pass.SetBindGroup(0, r.frameGroup, nil)
	for _, d := range plan.Draws {
		buf, ok := d.Mesh.Buffer().(*wgpu.Buffer)
		if !ok || buf == nil {
			r.log.Debugf("render: mesh %s has no device buffer", d.Mesh.Name)
			continue
		}
		pass.SetVertexBuffer(0, buf, 0, d.Mesh.ByteLength())
		pass.SetBindGroup(1, d.Material.BindGroup, nil)
		pass.Draw(d.VertexCount, 1, 0, d.FirstInstance)
	}

	pass.SetPipeline(r.overlay)
	pass.SetBindGroup(0, r.frameGroup, nil)
	pass.Draw(overlayVertices, 1, 0, 0)

	if err := pass.End(); err != nil {
		return fmt.Errorf("render pass End: %w", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("encoder Finish: %w", err)
	}
	r.ctx.Queue.Submit(cmd)
	r.ctx.Surface.Present()
	return nil
}

// Release frees the renderer's own resources. Assets belong to the registry.
func (r *Renderer) Release() {
	if r.frameGroup != nil {
		r.frameGroup.Release()
	}
	for _, b := range []*wgpu.Buffer{r.uniformBuf, r.transformBuf, r.highlightBuf} {
		if b != nil {
			b.Release()
		}
	}
	if r.overlay != nil {
		r.overlay.Release()
	}
	for _, p := range r.pipelines {
		if p != nil {
			p.Release()
		}
	}
	if r.depth != nil {
		r.depth.Release()
	}
	if r.layouts != nil {
		r.layouts.Release()
	}
}
