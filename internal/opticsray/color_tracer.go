package opticsray

import "math"

// ColorTracer resolves rays to colors against colored objects and lenses.
// Lens hits are refracted and traced again until nothing is left or
// MaxDepth refractions have happened.
type ColorTracer struct {
	Objects    []ColoredObject
	Lenses     []*Lens
	Bounds     HitBounds
	MaxDepth   int // <= 0 means the MaxDepth constant
	Background RGB
	Recorder   *RayRecorder
}

func NewColorTracer(objects []ColoredObject, lenses []*Lens) *ColorTracer {
	return &ColorTracer{
		Objects:  objects,
		Lenses:   lenses,
		Bounds:   DefaultBounds(),
		MaxDepth: MaxDepth,
	}
}

type traceJob struct {
	rays  RayBatch
	roots []int // index of every ray in the caller's batch
	depth int
}

// closest is the winner per ray: object index or lens index, -1 for none.
type closest struct {
	t      []Real
	object []int
	lens   []int
}

func (t *ColorTracer) maxDepth() int {
	if t.MaxDepth <= 0 {
		return MaxDepth
	}
	return t.MaxDepth
}

// Colors returns one color per ray of rays. Directions need not be unit length.
func (t *ColorTracer) Colors(rays RayBatch) ColorBatch {
	rays = rays.Normalized()
	out := NewColorBatch(rays.Len(), t.Background)
	roots := make([]int, rays.Len())
	for i := range roots {
		roots[i] = i
	}
	queue := []traceJob{{rays: rays, roots: roots}}
	for len(queue) > 0 {
		job := queue[0]
		queue = queue[1:]
		if next, ok := t.step(job, out); ok {
			queue = append(queue, next)
		}
	}
	return out
}

// findClosest evaluates objects first, then lenses. Every comparison is
// strict, so the first listed object wins a tie and a lens must be strictly
// closer than the best object to take a ray.
func (t *ColorTracer) findClosest(b RayBatch, hb HitBounds) closest {
	n := b.Len()
	c := closest{t: make([]Real, n), object: make([]int, n), lens: make([]int, n)}
	for i := 0; i < n; i++ {
		c.t[i] = math.Inf(1)
		c.object[i] = -1
		c.lens[i] = -1
	}
	for oi, o := range t.Objects {
		for i, x := range o.Hits(b, hb) {
			if x < c.t[i] {
				c.t[i], c.object[i] = x, oi
			}
		}
	}
	for li, l := range t.Lenses {
		for i, x := range l.Hits(b, hb) {
			if x < c.t[i] {
				c.t[i], c.object[i], c.lens[i] = x, -1, li
			}
		}
	}
	return c
}

// step colors everything one job resolves and returns the refracted
// rays of all lenses merged into the next job.
func (t *ColorTracer) step(job traceJob, out ColorBatch) (traceJob, bool) {
	hb := t.Bounds.orDefault()
	c := t.findClosest(job.rays, hb)
	rec := t.Recorder

	byObject := make([][]int, len(t.Objects))
	byLens := make([][]int, len(t.Lenses))
	var missed []int
	for i := range c.t {
		switch {
		case c.object[i] >= 0:
			byObject[c.object[i]] = append(byObject[c.object[i]], i)
		case c.lens[i] >= 0:
			byLens[c.lens[i]] = append(byLens[c.lens[i]], i)
		default:
			missed = append(missed, i)
		}
	}

	for oi, sel := range byObject {
		if len(sel) == 0 {
			continue
		}
		sub, pts := hitPoints(job.rays, c.t, sel)
		out.scatter(pick(job.roots, sel), t.Objects[oi].Colors(pts))
		rec.Hits(sub, pts, RayGroupName(job.depth, ObjectHit, oi), HitPointGroupName(ObjectHit, oi))
		logRays(Hit, job.depth, len(sel))
	}
	if len(missed) > 0 {
		rec.Missed(job.rays.Subset(missed))
		logRays(Miss, job.depth, len(missed))
	}

	var (
		next  []RayBatch
		roots []int
	)
	for li, sel := range byLens {
		if len(sel) == 0 {
			continue
		}
		if job.depth >= t.maxDepth() {
			logRays(Lost, job.depth, len(sel))
			continue
		}
		sub, pts := hitPoints(job.rays, c.t, sel)
		refracted, err := t.Lenses[li].Refract(sub, pts)
		if err != nil {
			// lengths come from the same selection
			panic(err)
		}
		rec.Hits(sub, pts, RayGroupName(job.depth, LensHit, li), HitPointGroupName(LensHit, li))
		logRays(Refract, job.depth, len(sel))
		next = append(next, refracted)
		roots = append(roots, pick(job.roots, sel)...)
	}
	if len(roots) == 0 {
		return traceJob{}, false
	}
	return traceJob{rays: Concat(next...), roots: roots, depth: job.depth + 1}, true
}

func hitPoints(b RayBatch, ts []Real, sel []int) (RayBatch, []Vector3) {
	sub := b.Subset(sel)
	return sub, sub.PointsAt(pick(ts, sel))
}

func pick[T any](xs []T, sel []int) []T {
	out := make([]T, len(sel))
	for k, i := range sel {
		out[k] = xs[i]
	}
	return out
}
