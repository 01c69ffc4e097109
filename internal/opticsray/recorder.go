package opticsray

import "math/rand"

type segment struct {
	a, b  Vector3
	group string
}

type marker struct {
	p     Vector3
	group string
}

// RayRecorder keeps a random fraction of traced rays as 3D debug geometry.
// A nil recorder records nothing. It never influences traced colors.
type RayRecorder struct {
	Rate          Real
	IncludeMissed bool

	rng     *rand.Rand
	lines   []segment
	markers []marker
}

// NewRayRecorder samples rays with probability rate using a seeded source.
func NewRayRecorder(rate Real, includeMissed bool, seed int64) *RayRecorder {
	return &RayRecorder{
		Rate:          rate,
		IncludeMissed: includeMissed,
		rng:           rand.New(rand.NewSource(seed)),
	}
}

func (r *RayRecorder) keep() bool {
	if r.Rate <= 0 {
		return false
	}
	if r.Rate >= 1 {
		return true
	}
	return r.rng.Float64() < r.Rate
}

// Hits records sampled rays as lines from origin to hit and a marker at the hit.
func (r *RayRecorder) Hits(rays RayBatch, points []Vector3, rayGroup, hitGroup string) {
	if r == nil {
		return
	}
	for i, p := range points {
		if !r.keep() {
			continue
		}
		r.lines = append(r.lines, segment{rays.Origin[i], p, rayGroup})
		r.markers = append(r.markers, marker{p, hitGroup})
	}
}

// Missed records sampled rays as MissedRayLength long stubs when enabled.
func (r *RayRecorder) Missed(rays RayBatch) {
	if r == nil || !r.IncludeMissed {
		return
	}
	for i := 0; i < rays.Len(); i++ {
		if !r.keep() {
			continue
		}
		o := rays.Origin[i]
		r.lines = append(r.lines, segment{o, along(o, rays.Direction[i], MissedRayLength), MissedRays()})
	}
}

// Len is the number of recorded primitives.
func (r *RayRecorder) Len() int {
	if r == nil {
		return 0
	}
	return len(r.lines) + len(r.markers)
}

// child returns an independent recorder with the same policy; see merge.
func (r *RayRecorder) child(seed int64) *RayRecorder {
	if r == nil {
		return nil
	}
	return NewRayRecorder(r.Rate, r.IncludeMissed, seed)
}

func (r *RayRecorder) merge(o *RayRecorder) {
	if r == nil || o == nil {
		return
	}
	r.lines = append(r.lines, o.lines...)
	r.markers = append(r.markers, o.markers...)
}

// FlushTo hands everything recorded to e and forgets it.
func (r *RayRecorder) FlushTo(e Exporter) {
	if r == nil || e == nil {
		return
	}
	for _, s := range r.lines {
		e.AddLine(s.a, s.b, s.group)
	}
	for _, m := range r.markers {
		e.AddPoint(m.p, m.group)
	}
	r.lines, r.markers = nil, nil
}
