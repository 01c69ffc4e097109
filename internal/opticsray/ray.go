package opticsray

import "fmt"

// RayBatch is a structure of arrays: Origin[i] and Direction[i] describe ray i.
// A batch is never mutated after construction; derived batches are new values.
type RayBatch struct {
	Origin    []Vector3
	Direction []Vector3
}

// NewRayBatch pairs origins with directions. Lengths must match.
func NewRayBatch(origins, directions []Vector3) (RayBatch, error) {
	if len(origins) != len(directions) {
		return RayBatch{}, fmt.Errorf("%w: %d origins vs %d directions", ErrShapeMismatch, len(origins), len(directions))
	}
	return RayBatch{Origin: origins, Direction: directions}, nil
}

// MustRayBatch is NewRayBatch for call sites where lengths match by construction.
func MustRayBatch(origins, directions []Vector3) RayBatch {
	b, err := NewRayBatch(origins, directions)
	if err != nil {
		panic(err)
	}
	return b
}

func (b RayBatch) Len() int { return len(b.Origin) }

// PointsAt returns origin + t*direction per ray. Infinite t yields non-finite points.
func (b RayBatch) PointsAt(ts []Real) []Vector3 {
	pts := make([]Vector3, len(ts))
	for i, t := range ts {
		pts[i] = along(b.Origin[i], b.Direction[i], t)
	}
	return pts
}

// Subset builds a new batch from the rays at idx, in idx order.
func (b RayBatch) Subset(idx []int) RayBatch {
	o := make([]Vector3, len(idx))
	d := make([]Vector3, len(idx))
	for k, i := range idx {
		o[k], d[k] = b.Origin[i], b.Direction[i]
	}
	return RayBatch{Origin: o, Direction: d}
}

// Slice returns rays [lo, hi) sharing storage; safe since batches are immutable.
func (b RayBatch) Slice(lo, hi int) RayBatch {
	return RayBatch{Origin: b.Origin[lo:hi], Direction: b.Direction[lo:hi]}
}

// Normalized returns a batch with unit directions (zero directions stay zero).
func (b RayBatch) Normalized() RayBatch {
	d := make([]Vector3, len(b.Direction))
	for i, v := range b.Direction {
		d[i] = norm(v)
	}
	return RayBatch{Origin: b.Origin, Direction: d}
}

// Concat appends batches in order.
func Concat(batches ...RayBatch) RayBatch {
	n := 0
	for _, b := range batches {
		n += b.Len()
	}
	o := make([]Vector3, 0, n)
	d := make([]Vector3, 0, n)
	for _, b := range batches {
		o = append(o, b.Origin...)
		d = append(d, b.Direction...)
	}
	return RayBatch{Origin: o, Direction: d}
}

// indicesOf returns the indices where mask is set.
func indicesOf(mask []bool) []int {
	idx := make([]int, 0, len(mask))
	for i, m := range mask {
		if m {
			idx = append(idx, i)
		}
	}
	return idx
}
