package gpu

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/cogentcore/webgpu/wgpu"
)

// Vertex mirrors the interleaved mesh layout. Fields tagged with a format
// become shader attributes at the given location.
type Vertex struct {
	Position [4]float32 `format:"float4" location:"0"`
	TexCoord [2]float32 `format:"float2" location:"1"`
}

// VertexLayout is the buffer layout shared by every scene pipeline.
func VertexLayout() wgpu.VertexBufferLayout {
	return vertexBufferLayout(Vertex{})
}

func vertexBufferLayout(vertexType any) wgpu.VertexBufferLayout {
	t := reflect.TypeOf(vertexType)
	if t.Kind() != reflect.Struct {
		panic("vertex must be a struct")
	}

	var attributes []wgpu.VertexAttribute
	var offset uint64
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if tag := field.Tag.Get("format"); tag != "" {
			location, err := strconv.Atoi(field.Tag.Get("location"))
			if err != nil {
				panic(err)
			}
			attributes = append(attributes, wgpu.VertexAttribute{
				ShaderLocation: uint32(location),
				Offset:         offset,
				Format:         parseFormat(tag),
			})
		}
		offset += uint64(field.Type.Size())
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attributes,
	}
}

func parseFormat(name string) wgpu.VertexFormat {
	switch name {
	case "float2":
		return wgpu.VertexFormatFloat32x2
	case "float3":
		return wgpu.VertexFormatFloat32x3
	case "float4":
		return wgpu.VertexFormatFloat32x4
	default:
		panic("unsupported vertex layout format: " + name)
	}
}

// Layouts holds the bind group layouts of the scene pipelines.
//
// Group 0 (frame): camera uniforms, model transforms, highlight values.
// Group 1 (material): texture and sampler.
type Layouts struct {
	Frame    *wgpu.BindGroupLayout
	Material *wgpu.BindGroupLayout
}

func NewLayouts(device *wgpu.Device) (*Layouts, error) {
	frame, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("frame group layout: %w", err)
	}

	material, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Material Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		frame.Release()
		return nil, fmt.Errorf("material group layout: %w", err)
	}

	return &Layouts{Frame: frame, Material: material}, nil
}

func (l *Layouts) Release() {
	l.Frame.Release()
	l.Material.Release()
}
