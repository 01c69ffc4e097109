package opticsray

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// EyeCamera models an eye: a viewport (the retina) and one lens in front of it.
// Every pixel shoots NumberOfCircles*RaysPerCircle rays at sample points on
// concentric rings of the lens; the refracted rays are the camera output.
type EyeCamera struct {
	LensDistance    Real
	NumberOfCircles int
	RaysPerCircle   int
	Lens            *Lens
	Bounds          HitBounds

	viewport viewport
	samples  []Vector3 // on the lens disc, ring-major
}

// NewEyeCamera places the lens at viewportCenter + lensDistance*normalize(normal).
func NewEyeCamera(
	viewportCenter Vector3,
	lensDistance, lensRadius, lensFocalDistance Real,
	numberOfCircles, raysPerCircle int,
	viewportSize FloatSize,
	imageSize IntegerSize,
	u, normal Vector3,
) (*EyeCamera, error) {
	if lensDistance <= 0 || !isFinite(lensDistance) {
		return nil, fmt.Errorf("%w: eye lens distance must be > 0, got %g", ErrInvalidGeometry, lensDistance)
	}
	if numberOfCircles < 1 || raysPerCircle < 1 {
		return nil, fmt.Errorf("%w: eye camera needs >= 1 circle and >= 1 ray per circle, got %d and %d", ErrInvalidGeometry, numberOfCircles, raysPerCircle)
	}
	vp, err := newViewport(viewportCenter, normal, u, viewportSize, imageSize)
	if err != nil {
		return nil, err
	}
	lens, err := NewLens(along(vp.Center, vp.Normal, lensDistance), vp.Normal, lensRadius, lensFocalDistance)
	if err != nil {
		return nil, err
	}
	c := &EyeCamera{
		LensDistance:    lensDistance,
		NumberOfCircles: numberOfCircles,
		RaysPerCircle:   raysPerCircle,
		Lens:            lens,
		Bounds:          DefaultBounds(),
		viewport:        vp,
	}
	c.samples = lensSamples(lens.Circle, vp.U, vp.V, numberOfCircles, raysPerCircle)
	DebugLog("Created eye camera viewport=%+v lens=%+v samples/pixel=%d", vp.Center, lens.Center, len(c.samples))
	return c, nil
}

// NewEyeCameraFocused picks the lens focal distance so that objects at
// objectDistance from the viewport are sharp:
// 1/f = 1/(objectDistance - lensDistance) + 1/lensDistance.
func NewEyeCameraFocused(
	viewportCenter Vector3,
	lensDistance, lensRadius, objectDistance Real,
	numberOfCircles, raysPerCircle int,
	viewportSize FloatSize,
	imageSize IntegerSize,
	u, normal Vector3,
) (*EyeCamera, error) {
	f, err := FocalDistanceForObject(objectDistance, lensDistance)
	if err != nil {
		return nil, err
	}
	return NewEyeCamera(viewportCenter, lensDistance, lensRadius, f, numberOfCircles, raysPerCircle, viewportSize, imageSize, u, normal)
}

// FocalDistanceForObject solves the thin-lens equation for a lens lensDistance
// in front of the image plane, focused on an object objectDistance from it.
func FocalDistanceForObject(objectDistance, lensDistance Real) (Real, error) {
	if lensDistance <= 0 || objectDistance <= lensDistance {
		return 0, fmt.Errorf("%w: object distance %g must exceed lens distance %g > 0", ErrInvalidOptics, objectDistance, lensDistance)
	}
	toObject := objectDistance - lensDistance
	return 1 / (1/toObject + 1/lensDistance), nil
}

// lensSamples returns ring k=1..circles at radius R*k/circles, perRing points starting at angle 0.
func lensSamples(disc Circle, u, v Vector3, circles, perRing int) []Vector3 {
	pts := make([]Vector3, 0, circles*perRing)
	for k := 1; k <= circles; k++ {
		r := disc.Radius * Real(k) / Real(circles)
		for j := 0; j < perRing; j++ {
			a := 2 * math.Pi * Real(j) / Real(perRing)
			pts = append(pts, disc.ringPoint(u, v, r, a))
		}
	}
	return pts
}

// SamplesPerPixel is the fixed number of consecutive rays per pixel.
func (c *EyeCamera) SamplesPerPixel() int { return len(c.samples) }

func (c *EyeCamera) ImageSize() IntegerSize { return c.viewport.Pixels }

// Rays aims every pixel at every lens sample and refracts through the lens.
// A pre-lens ray that misses the disc stays in place as a dead ray with a zero
// direction, so each pixel keeps exactly SamplesPerPixel rays.
func (c *EyeCamera) Rays(rec *RayRecorder) RayBatch {
	pixels := c.viewport.pixelPoints()
	spp := len(c.samples)
	origins := make([]Vector3, 0, len(pixels)*spp)
	dirs := make([]Vector3, 0, len(pixels)*spp)
	for _, p := range pixels {
		for _, s := range c.samples {
			origins = append(origins, p)
			dirs = append(dirs, norm(r3.Sub(s, p)))
		}
	}
	pre := MustRayBatch(origins, dirs)

	ts := c.Lens.Hits(pre, c.Bounds)
	hitIdx := indicesOf(finiteMask(ts))
	hitting := pre.Subset(hitIdx)
	hitTs := make([]Real, len(hitIdx))
	for k, i := range hitIdx {
		hitTs[k] = ts[i]
	}
	hits := hitting.PointsAt(hitTs)
	refracted, err := c.Lens.Refract(hitting, hits)
	if err != nil {
		panic(err)
	}
	rec.Hits(hitting, hits, CameraInternalRays(), CameraLensIntersection())

	outO := make([]Vector3, pre.Len())
	outD := make([]Vector3, pre.Len())
	copy(outO, pre.Origin)
	for k, i := range hitIdx {
		outO[i], outD[i] = refracted.Origin[k], refracted.Direction[k]
	}
	if dead := pre.Len() - len(hitIdx); dead > 0 {
		logRays(CameraDead, 0, dead)
	}
	return MustRayBatch(outO, outD)
}

// PixelColors averages each pixel's samples.
func (c *EyeCamera) PixelColors(colors ColorBatch) (ColorBatch, error) {
	if colors.Len() != c.viewport.Pixels.Pixels()*len(c.samples) {
		return ColorBatch{}, fmt.Errorf("%w: %d ray colors for %d pixels x %d samples", ErrShapeMismatch, colors.Len(), c.viewport.Pixels.Pixels(), len(c.samples))
	}
	return colors.Average(len(c.samples))
}

func (c *EyeCamera) Outline(e Exporter) {
	c.viewport.rectangle().Outline(e, ScreenOutlines())
	c.Lens.Circle.Outline(e, LensOutlines())
}
