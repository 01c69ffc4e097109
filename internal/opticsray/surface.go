package opticsray

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// HitBounds is the open interval of accepted ray parameters.
type HitBounds struct {
	TMin, TMax Real
}

// DefaultBounds returns (TMin, TMax).
func DefaultBounds() HitBounds { return HitBounds{TMin: TMin, TMax: TMax} }

func (hb HitBounds) orDefault() HitBounds {
	if hb.TMin <= 0 {
		hb.TMin = TMin
	}
	if hb.TMax <= hb.TMin {
		hb.TMax = TMax
	}
	return hb
}

// planeHit intersects one ray with the plane (point, normal).
// Parallel rays get a tiny signed denominator instead of a division by zero,
// so t blows up and falls outside the bounds. Misses are returned as +Inf.
func planeHit(o, d, point, normal Vector3, hb HitBounds) Real {
	den := r3.Dot(d, normal)
	if math.Abs(den) < parallelEps {
		if den < 0 {
			den = -parallelEps
		} else {
			den = parallelEps
		}
	}
	t := r3.Dot(r3.Sub(point, o), normal) / den
	if !(t > hb.TMin && t < hb.TMax) {
		return math.Inf(1)
	}
	// zero directions never move, whatever t says
	if isZero(d) {
		return math.Inf(1)
	}
	return t
}

// planeHits is planeHit over a whole batch.
func planeHits(b RayBatch, point, normal Vector3, hb HitBounds) []Real {
	ts := make([]Real, b.Len())
	for i := range ts {
		ts[i] = planeHit(b.Origin[i], b.Direction[i], point, normal, hb)
	}
	return ts
}

// finiteMask marks valid hits.
func finiteMask(ts []Real) []bool {
	m := make([]bool, len(ts))
	for i, t := range ts {
		m[i] = isFinite(t)
	}
	return m
}

// maskHits clears every t whose point fails the bounded-surface test.
func maskHits(ts []Real, inside []bool) []Real {
	for i := range ts {
		if !inside[i] {
			ts[i] = math.Inf(1)
		}
	}
	return ts
}
