package gpu

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/scenerender/rt/mesh"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexLayoutMatchesMeshStride(t *testing.T) {
	layout := VertexLayout()

	assert.Equal(t, uint64(mesh.VertexStride), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layout.StepMode)
	require.Len(t, layout.Attributes, 2)

	assert.Equal(t, uint32(0), layout.Attributes[0].ShaderLocation)
	assert.Equal(t, uint64(0), layout.Attributes[0].Offset)
	assert.Equal(t, wgpu.VertexFormatFloat32x4, layout.Attributes[0].Format)

	assert.Equal(t, uint32(1), layout.Attributes[1].ShaderLocation)
	assert.Equal(t, uint64(mesh.TexCoordOffset), layout.Attributes[1].Offset)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, layout.Attributes[1].Format)
}

func TestVertexLayoutRejectsUnknownFormat(t *testing.T) {
	type bad struct {
		P [3]int32 `format:"int3" location:"0"`
	}
	assert.Panics(t, func() { vertexBufferLayout(bad{}) })
}

func TestGrassImageDeterministic(t *testing.T) {
	a := GrassImage(7)
	b := GrassImage(7)
	assert.Equal(t, image.Rect(0, 0, BlankSize, BlankSize), a.Bounds())
	assert.Equal(t, a.Pix, b.Pix)

	for y := 0; y < BlankSize; y++ {
		for x := 0; x < BlankSize; x++ {
			c := a.RGBAAt(x, y)
			assert.Contains(t, grassPalette[:], c)
		}
	}
}

func TestToRGBA(t *testing.T) {
	t.Run("passes through packed rgba", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		assert.Same(t, img, ToRGBA(img, 16))
	})

	t.Run("rebases sub images", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 8, 8))
		img.SetRGBA(5, 5, color.RGBA{255, 0, 0, 255})
		sub := img.SubImage(image.Rect(4, 4, 8, 8))

		out := ToRGBA(sub, 16)
		assert.Equal(t, image.Rect(0, 0, 4, 4), out.Bounds())
		assert.Equal(t, color.RGBA{255, 0, 0, 255}, out.RGBAAt(1, 1))
	})

	t.Run("downscales preserving aspect", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 64, 16))
		out := ToRGBA(img, 32)
		assert.Equal(t, image.Rect(0, 0, 32, 8), out.Bounds())
	})
}

func TestLoadImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(2, 1, color.NRGBA{10, 20, 30, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	path := filepath.Join(t.TempDir(), "tex.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, img.RGBAAt(2, 1))

	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = LoadImage(garbage)
	assert.Error(t, err)
}

func TestPartialContextRelease(t *testing.T) {
	// NewContext releases whatever it acquired before a failure, which may
	// be only the instance or nothing at all.
	assert.NotPanics(t, func() { (&Context{}).Release() })
}
