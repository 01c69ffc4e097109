package opticsray

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera turns a pixel grid into a ray batch and ray colors back into pixels.
type Camera interface {
	ImageSize() IntegerSize
	// Rays returns the initial batch, row-major, all samples of a pixel contiguous.
	// rec may be nil; it only receives debug geometry.
	Rays(rec *RayRecorder) RayBatch
	// PixelColors collapses one color per ray into one color per pixel.
	PixelColors(c ColorBatch) (ColorBatch, error)
	// Outline draws the camera geometry for the 3D debug export.
	Outline(e Exporter)
}

// viewport is a pixel grid on a plane: u spans columns, v = normal × u spans rows.
type viewport struct {
	Center Vector3
	Normal Vector3
	U, V   Vector3
	Size   FloatSize
	Pixels IntegerSize
}

func newViewport(center, normal, u Vector3, size FloatSize, pixels IntegerSize) (viewport, error) {
	if err := pixels.validate(); err != nil {
		return viewport{}, err
	}
	if size.Width <= 0 || size.Height <= 0 {
		return viewport{}, fmt.Errorf("%w: viewport size must be positive, got %s", ErrInvalidGeometry, size)
	}
	n := norm(normal)
	if isZero(n) {
		return viewport{}, fmt.Errorf("%w: viewport normal must be non-zero", ErrInvalidGeometry)
	}
	uu := orthonormalU(u, n)
	if isZero(uu) {
		return viewport{}, fmt.Errorf("%w: viewport u vector must not be parallel to the normal", ErrInvalidGeometry)
	}
	return viewport{Center: center, Normal: n, U: uu, V: r3.Cross(n, uu), Size: size, Pixels: pixels}, nil
}

// gridOffset spreads count samples over span, symmetric about 0.
// A single sample sits at 0.
func gridOffset(k, count int, span Real) Real {
	if count <= 1 {
		return 0
	}
	return -span/2 + Real(k)*span/Real(count-1)
}

// pixelPoint is pixel (col,row); (0,0) is the top-left, at -U and -V.
func (vp viewport) pixelPoint(col, row int) Vector3 {
	du := gridOffset(col, vp.Pixels.Width, vp.Size.Width)
	dv := gridOffset(row, vp.Pixels.Height, vp.Size.Height)
	return r3.Add(vp.Center, r3.Add(r3.Scale(du, vp.U), r3.Scale(dv, vp.V)))
}

// pixelPoints returns all pixel points row-major.
func (vp viewport) pixelPoints() []Vector3 {
	pts := make([]Vector3, 0, vp.Pixels.Pixels())
	for row := 0; row < vp.Pixels.Height; row++ {
		for col := 0; col < vp.Pixels.Width; col++ {
			pts = append(pts, vp.pixelPoint(col, row))
		}
	}
	return pts
}

func (vp viewport) rectangle() Rectangle {
	return Rectangle{Middle: vp.Center, Normal: vp.Normal, U: vp.U, V: vp.V, Width: vp.Size.Width, Height: vp.Size.Height}
}
