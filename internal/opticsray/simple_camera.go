package opticsray

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// SimpleCamera is a pinhole: one ray per pixel from Center through the viewport.
type SimpleCamera struct {
	Center        Vector3
	FocalDistance Real
	viewport      viewport
}

// NewSimpleCamera puts the viewport at center + focalDistance*normalize(normal).
func NewSimpleCamera(center Vector3, focalDistance Real, viewportSize FloatSize, imageSize IntegerSize, u, normal Vector3) (*SimpleCamera, error) {
	if focalDistance <= 0 || !isFinite(focalDistance) {
		return nil, fmt.Errorf("%w: camera focal distance must be > 0, got %g", ErrInvalidGeometry, focalDistance)
	}
	n := norm(normal)
	vp, err := newViewport(along(center, n, focalDistance), n, u, viewportSize, imageSize)
	if err != nil {
		return nil, err
	}
	DebugLog("Created simple camera center=%+v viewport center=%+v size=%s image=%s", center, vp.Center, viewportSize, imageSize)
	return &SimpleCamera{Center: center, FocalDistance: focalDistance, viewport: vp}, nil
}

func (c *SimpleCamera) ImageSize() IntegerSize { return c.viewport.Pixels }

// ViewportCenter is where the optical axis crosses the viewport.
func (c *SimpleCamera) ViewportCenter() Vector3 { return c.viewport.Center }

func (c *SimpleCamera) Rays(_ *RayRecorder) RayBatch {
	pts := c.viewport.pixelPoints()
	origins := make([]Vector3, len(pts))
	dirs := make([]Vector3, len(pts))
	for i, p := range pts {
		origins[i] = c.Center
		dirs[i] = norm(r3.Sub(p, c.Center))
	}
	return MustRayBatch(origins, dirs)
}

func (c *SimpleCamera) PixelColors(colors ColorBatch) (ColorBatch, error) {
	if colors.Len() != c.viewport.Pixels.Pixels() {
		return ColorBatch{}, fmt.Errorf("%w: %d ray colors for %d pixels", ErrShapeMismatch, colors.Len(), c.viewport.Pixels.Pixels())
	}
	return colors, nil
}

func (c *SimpleCamera) Outline(e Exporter) {
	c.viewport.rectangle().Outline(e, ScreenOutlines())
	e.AddPoint(c.Center, CameraCenter())
}
