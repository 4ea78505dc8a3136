package gpu

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/cogentcore/webgpu/wgpu"
)

// BlankSize is the edge length of the generated placeholder texture.
const BlankSize = 16

var grassPalette = [...]color.RGBA{
	{74, 111, 40, 255},
	{91, 135, 49, 255},
	{62, 92, 32, 255},
	{82, 122, 45, 255},
	{91, 139, 50, 255},
}

// Material is a sampled texture and the bind group exposing it to the
// fragment stage at group 1.
type Material struct {
	Name string

	Texture   *wgpu.Texture
	View      *wgpu.TextureView
	Sampler   *wgpu.Sampler
	BindGroup *wgpu.BindGroup
}

// NewMaterial uploads img and binds it with a repeating sampler.
func NewMaterial(ctx *Context, layout *wgpu.BindGroupLayout, name string, img *image.RGBA) (*Material, error) {
	return newMaterial(ctx, layout, name, img, &wgpu.SamplerDescriptor{
		Label:         name + " Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
}

// NewBlankMaterial builds the placeholder grass material. The same seed
// always yields the same texels.
func NewBlankMaterial(ctx *Context, layout *wgpu.BindGroupLayout, name string, seed uint64) (*Material, error) {
	return newMaterial(ctx, layout, name, GrassImage(seed), &wgpu.SamplerDescriptor{
		Label:         name + " Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
}

// GrassImage fills a BlankSize square with random picks from the grass
// palette.
func GrassImage(seed uint64) *image.RGBA {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	img := image.NewRGBA(image.Rect(0, 0, BlankSize, BlankSize))
	for y := 0; y < BlankSize; y++ {
		for x := 0; x < BlankSize; x++ {
			img.SetRGBA(x, y, grassPalette[rng.IntN(len(grassPalette))])
		}
	}
	return img
}

func newMaterial(ctx *Context, layout *wgpu.BindGroupLayout, name string, img *image.RGBA, sampler *wgpu.SamplerDescriptor) (*Material, error) {
	img = ToRGBA(img, MaxTextureSize)
	w, h := uint32(img.Bounds().Dx()), uint32(img.Bounds().Dy())
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("material %q: empty image", name)
	}
	extent := wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	m := &Material{Name: name}
	var err error
	m.Texture, err = ctx.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         name,
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("material %q texture: %w", name, err)
	}

	err = ctx.Queue.WriteTexture(
		m.Texture.AsImageCopy(),
		img.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * w,
			RowsPerImage: h,
		},
		&extent,
	)
	if err != nil {
		m.Release()
		return nil, fmt.Errorf("material %q upload: %w", name, err)
	}

	if m.View, err = m.Texture.CreateView(nil); err != nil {
		m.Release()
		return nil, fmt.Errorf("material %q view: %w", name, err)
	}
	if m.Sampler, err = ctx.Device.CreateSampler(sampler); err != nil {
		m.Release()
		return nil, fmt.Errorf("material %q sampler: %w", name, err)
	}

	m.BindGroup, err = ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  name + " Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: m.View},
			{Binding: 1, Sampler: m.Sampler},
		},
	})
	if err != nil {
		m.Release()
		return nil, fmt.Errorf("material %q bind group: %w", name, err)
	}
	return m, nil
}

func (m *Material) Release() {
	if m.BindGroup != nil {
		m.BindGroup.Release()
		m.BindGroup = nil
	}
	if m.Sampler != nil {
		m.Sampler.Release()
		m.Sampler = nil
	}
	if m.View != nil {
		m.View.Release()
		m.View = nil
	}
	if m.Texture != nil {
		m.Texture.Release()
		m.Texture = nil
	}
}
