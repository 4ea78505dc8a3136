package gpu

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxTextureSize bounds material textures. Larger images are downscaled.
const MaxTextureSize = 2048

// LoadImage decodes a png, jpeg, bmp or webp file into RGBA texels.
func LoadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	rgba := ToRGBA(img, MaxTextureSize)
	if rgba.Bounds().Empty() {
		return nil, fmt.Errorf("decoding %s: empty %s image", path, format)
	}
	return rgba, nil
}

// ToRGBA converts img to a tightly packed RGBA image with its origin at
// zero, scaling it down so neither side exceeds maxSize.
func ToRGBA(img image.Image, maxSize int) *image.RGBA {
	src := img.Bounds()
	w, h := src.Dx(), src.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			h = max(1, h*maxSize/w)
			w = maxSize
		} else {
			w = max(1, w*maxSize/h)
			h = maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
		return dst
	}

	if rgba, ok := img.(*image.RGBA); ok && src.Min == (image.Point{}) && rgba.Stride == 4*w {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Copy(dst, image.Point{}, img, src, xdraw.Src, nil)
	return dst
}
