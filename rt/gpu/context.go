package gpu

import (
	"errors"
	"fmt"

	"github.com/gekko3d/scenerender/rt/mesh"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var ErrNoAdapter = errors.New("gpu: no compatible adapter")

// Context bundles the device handles shared by the renderer, meshes and
// materials. It is created once per window and passed explicitly.
type Context struct {
	Instance *wgpu.Instance
	Surface  *wgpu.Surface
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Config   *wgpu.SurfaceConfiguration
}

// NewContext acquires an adapter and device compatible with the window's
// surface and configures the swapchain to the framebuffer size. Handles
// acquired before a failure are released.
func NewContext(window *glfw.Window) (*Context, error) {
	c := &Context{Instance: wgpu.CreateInstance(nil)}
	c.Surface = c.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := c.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: c.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}
	c.Adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("requesting device: %w", err)
	}
	c.Device = device

	caps := c.Surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		c.Release()
		return nil, fmt.Errorf("%w: surface reports no formats", ErrNoAdapter)
	}

	width, height := window.GetFramebufferSize()
	c.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	c.Surface.Configure(adapter, device, c.Config)
	c.Queue = device.GetQueue()
	return c, nil
}

// Format is the preferred color format of the surface.
func (c *Context) Format() wgpu.TextureFormat { return c.Config.Format }

// Size is the current swapchain size.
func (c *Context) Size() (uint32, uint32) { return c.Config.Width, c.Config.Height }

// Resize reconfigures the surface. Zero sizes (minimised windows) are ignored.
func (c *Context) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	c.Config.Width = uint32(width)
	c.Config.Height = uint32(height)
	c.Surface.Configure(c.Adapter, c.Device, c.Config)
	return true
}

// CreateVertexBuffer implements mesh.Allocator.
func (c *Context) CreateVertexBuffer(label string, contents []byte) (mesh.Buffer, error) {
	buf, err := c.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: contents,
		Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// CreateBuffer allocates an uninitialised buffer of size bytes.
func (c *Context) CreateBuffer(label string, size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	return c.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
}

// Release frees every handle the context holds. Fields left nil by a partial
// construction are skipped.
func (c *Context) Release() {
	if c.Queue != nil {
		c.Queue.Release()
	}
	if c.Device != nil {
		c.Device.Release()
	}
	if c.Adapter != nil {
		c.Adapter.Release()
	}
	if c.Surface != nil {
		c.Surface.Release()
	}
	if c.Instance != nil {
		c.Instance.Release()
	}
}
