package opticsray

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Circle is a disc of Radius around Center in the plane with unit Normal.
type Circle struct {
	Center Vector3
	Normal Vector3 // unit; constructor normalizes
	Radius Real

	radius2 Real
}

// NewCircle normalizes the normal and validates the radius.
func NewCircle(center, normal Vector3, radius Real) (Circle, error) {
	if radius <= 0 || !isFinite(radius) {
		return Circle{}, fmt.Errorf("%w: circle radius must be > 0, got %g", ErrInvalidGeometry, radius)
	}
	n := norm(normal)
	if isZero(n) {
		return Circle{}, fmt.Errorf("%w: circle normal must be non-zero", ErrInvalidGeometry)
	}
	c := Circle{Center: center, Normal: n, Radius: radius, radius2: radius * radius}
	DebugLog("Created circle center=%+v normal=%+v radius=%f", center, n, radius)
	return c, nil
}

// Contains reports whether a point already on the plane lies within the disc.
// The boundary is inside: |p - center| <= radius.
func (c Circle) Contains(p Vector3) bool {
	d2 := r3.Norm2(r3.Sub(p, c.Center))
	return d2 <= c.radius2*(1+boundaryEps)
}

// HitsMask is Contains over a batch of points. Non-finite points are outside.
func (c Circle) HitsMask(points []Vector3) []bool {
	m := make([]bool, len(points))
	for i, p := range points {
		m[i] = isFinite(p.X) && c.Contains(p)
	}
	return m
}

// Hits returns the valid in-disc hit distance per ray, +Inf otherwise.
func (c Circle) Hits(b RayBatch, hb HitBounds) []Real {
	ts := planeHits(b, c.Center, c.Normal, hb)
	return maskHits(ts, c.HitsMask(b.PointsAt(ts)))
}

// Outline draws the rim.
func (c Circle) Outline(e Exporter, group string) {
	e.AddCircle(c.Center, c.Normal, c.Radius, CircleResolution, group)
}

// ringPoint returns a point at radius r and angle a on the circle plane spanned by u, v.
func (c Circle) ringPoint(u, v Vector3, r, a Real) Vector3 {
	return r3.Add(c.Center, r3.Add(r3.Scale(r*math.Cos(a), u), r3.Scale(r*math.Sin(a), v)))
}
