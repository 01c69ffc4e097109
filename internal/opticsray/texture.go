package opticsray

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register the WebP decoder with image.Decode
)

// TextureSampler returns the color at normalized surface coordinates.
type TextureSampler interface {
	Sample(u, v Real) RGB
}

// ImageTexture samples a decoded raster; (0,0) is the top-left pixel.
type ImageTexture struct {
	img  *image.NRGBA
	w, h int
}

// NewImageTexture copies img into an NRGBA raster.
func NewImageTexture(img image.Image) (*ImageTexture, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil texture image", ErrInvalidGeometry)
	}
	n := imaging.Clone(img)
	b := n.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty texture image", ErrInvalidGeometry)
	}
	return &ImageTexture{img: n, w: b.Dx(), h: b.Dy()}, nil
}

// LoadImageTexture decodes the image at path (PNG, JPEG, GIF, BMP, TIFF, WebP).
func LoadImageTexture(path string) (*ImageTexture, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: image %s", ErrResourceNotFound, path)
		}
		return nil, err
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	DebugLog("Loaded texture %s: %dx%d", path, img.Bounds().Dx(), img.Bounds().Dy())
	return NewImageTexture(img)
}

// Size returns the raster size in pixels.
func (t *ImageTexture) Size() IntegerSize { return IntegerSize{Width: t.w, Height: t.h} }

// Sample clamps out-of-range coordinates to the border pixels.
func (t *ImageTexture) Sample(u, v Real) RGB {
	col := clampIndex(u, t.w)
	row := clampIndex(v, t.h)
	p := t.img.PixOffset(col, row)
	px := t.img.Pix[p : p+3 : p+3]
	return RGB{Real(px[0]) / 255, Real(px[1]) / 255, Real(px[2]) / 255}
}

func clampIndex(x Real, n int) int {
	if !(x > 0) {
		return 0
	}
	i := int(x * Real(n))
	if i >= n {
		return n - 1
	}
	return i
}

// UniformTexture returns the same color everywhere.
type UniformTexture RGB

func (u UniformTexture) Sample(_, _ Real) RGB { return RGB(u) }
