package opticsray

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Lens is a thin lens on a disc. FocalDistance > 0 converges, < 0 diverges.
type Lens struct {
	Circle
	FocalDistance Real
}

// NewLens validates the disc and rejects a zero focal distance.
func NewLens(center, normal Vector3, radius, focalDistance Real) (*Lens, error) {
	if focalDistance == 0 || !isFinite(focalDistance) {
		return nil, fmt.Errorf("%w: lens focal distance must be finite and non-zero, got %g", ErrInvalidOptics, focalDistance)
	}
	c, err := NewCircle(center, normal, radius)
	if err != nil {
		return nil, err
	}
	l := &Lens{Circle: c, FocalDistance: focalDistance}
	DebugLog("Created lens center=%+v normal=%+v radius=%f f=%f", center, c.Normal, radius, focalDistance)
	return l, nil
}

// Converging reports FocalDistance > 0.
func (l *Lens) Converging() bool { return l.FocalDistance > 0 }

// refract returns the unit direction leaving the lens at hit for incoming d.
//
// The normal is oriented along the travel direction so cos = |d·n| > 0 and the
// result does not depend on which way the lens was built. The ray is aimed at
// the point where the parallel ray through the center meets the focal plane:
// d*f/cos is that central ray, center-hit shifts it onto this ray's hit point.
func (l *Lens) refract(d, hit Vector3) Vector3 {
	cos := r3.Dot(d, l.Normal)
	if cos < 0 {
		cos = -cos
	}
	if cos < parallelEps {
		DebugLogOnce("Ray grazing lens at %+v passes unchanged", hit)
		return d
	}
	nd := norm(r3.Add(r3.Scale(l.FocalDistance/cos, d), r3.Sub(l.Center, hit)))
	if l.FocalDistance < 0 {
		nd = r3.Scale(-1, nd)
	}
	return nd
}

// Refract builds the outgoing batch: origins at the hit points, refracted directions.
func (l *Lens) Refract(rays RayBatch, hits []Vector3) (RayBatch, error) {
	if rays.Len() != len(hits) {
		return RayBatch{}, fmt.Errorf("%w: %d rays vs %d hit points", ErrShapeMismatch, rays.Len(), len(hits))
	}
	dirs := make([]Vector3, len(hits))
	for i, h := range hits {
		dirs[i] = l.refract(rays.Direction[i], h)
	}
	origins := make([]Vector3, len(hits))
	copy(origins, hits)
	return NewRayBatch(origins, dirs)
}
