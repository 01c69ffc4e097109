package opticsray

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Rectangle is a flat bounded surface centered at Middle.
// U spans the width, V = Normal × U spans the height.
type Rectangle struct {
	Middle        Vector3
	Normal        Vector3
	U, V          Vector3
	Width, Height Real
}

// NewRectangle normalizes normal and u, making u orthogonal to the normal.
func NewRectangle(middle, normal, u Vector3, width, height Real) (Rectangle, error) {
	if width <= 0 || height <= 0 {
		return Rectangle{}, fmt.Errorf("%w: rectangle size must be > 0, got %gx%g", ErrInvalidGeometry, width, height)
	}
	n := norm(normal)
	if isZero(n) {
		return Rectangle{}, fmt.Errorf("%w: rectangle normal must be non-zero", ErrInvalidGeometry)
	}
	uu := orthonormalU(u, n)
	if isZero(uu) {
		return Rectangle{}, fmt.Errorf("%w: rectangle u vector must not be parallel to the normal", ErrInvalidGeometry)
	}
	r := Rectangle{
		Middle: middle,
		Normal: n,
		U:      uu,
		V:      r3.Cross(n, uu),
		Width:  width,
		Height: height,
	}
	DebugLog("Created rectangle middle=%+v normal=%+v u=%+v v=%+v size=%fx%f", middle, n, r.U, r.V, width, height)
	return r, nil
}

// LeftTop is the corner at -U/2, -V/2; pixel (0,0) of anything mapped on it.
func (r Rectangle) LeftTop() Vector3 {
	return r3.Sub(r.Middle, r3.Add(r3.Scale(r.Width/2, r.U), r3.Scale(r.Height/2, r.V)))
}

// project returns the in-plane coordinates of p relative to Middle.
func (r Rectangle) project(p Vector3) (pu, pv Real) {
	d := r3.Sub(p, r.Middle)
	return r3.Dot(d, r.U), r3.Dot(d, r.V)
}

// Contains reports |proj_u| <= width/2 and |proj_v| <= height/2 (boundary inside).
func (r Rectangle) Contains(p Vector3) bool {
	pu, pv := r.project(p)
	hw, hh := r.Width/2, r.Height/2
	return math.Abs(pu) <= hw*(1+boundaryEps) && math.Abs(pv) <= hh*(1+boundaryEps)
}

// HitsMask is Contains over a batch of points. Non-finite points are outside.
func (r Rectangle) HitsMask(points []Vector3) []bool {
	m := make([]bool, len(points))
	for i, p := range points {
		m[i] = isFinite(p.X) && r.Contains(p)
	}
	return m
}

// Hits returns the valid in-rectangle hit distance per ray, +Inf otherwise.
func (r Rectangle) Hits(b RayBatch, hb HitBounds) []Real {
	ts := planeHits(b, r.Middle, r.Normal, hb)
	return maskHits(ts, r.HitsMask(b.PointsAt(ts)))
}

// UV maps a point on the rectangle to [0,1]² with (0,0) at LeftTop.
func (r Rectangle) UV(p Vector3) (u, v Real) {
	pu, pv := r.project(p)
	return pu/r.Width + 0.5, pv/r.Height + 0.5
}

// Corners returns LeftTop, then clockwise along +U and +V.
func (r Rectangle) Corners() [4]Vector3 {
	lt := r.LeftTop()
	w := r3.Scale(r.Width, r.U)
	h := r3.Scale(r.Height, r.V)
	return [4]Vector3{lt, r3.Add(lt, w), r3.Add(r3.Add(lt, w), h), r3.Add(lt, h)}
}

// Outline draws the four edges.
func (r Rectangle) Outline(e Exporter, group string) {
	e.AddRectangle(r.Corners(), group)
}
