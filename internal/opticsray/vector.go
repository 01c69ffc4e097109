package opticsray

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

type Real = float64

// Vector3 is used both for points and for directions.
type Vector3 = r3.Vec

// V is a short constructor for literals in scenes and tests.
func V(x, y, z Real) Vector3 { return Vector3{X: x, Y: y, Z: z} }

// norm returns a unit-length version of v.
// If v is zero it is returned unchanged, so degenerate directions stay zero.
func norm(v Vector3) Vector3 {
	if v == (Vector3{}) {
		return v
	}
	return r3.Unit(v)
}

// along returns o + t*d.
func along(o, d Vector3, t Real) Vector3 { return r3.Add(o, r3.Scale(t, d)) }

func isZero(v Vector3) bool { return r3.Norm2(v) == 0 }

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

// orthonormalU projects u onto the plane with normal n and normalizes it.
func orthonormalU(u, n Vector3) Vector3 {
	return norm(r3.Sub(u, r3.Scale(r3.Dot(u, n), n)))
}
