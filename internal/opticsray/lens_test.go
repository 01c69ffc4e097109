package opticsray

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewLensRejectsZeroFocalDistance(t *testing.T) {
	if _, err := NewLens(V(0, 0, 0), V(0, 0, 1), 1, 0); !errors.Is(err, ErrInvalidOptics) {
		t.Fatalf("expected ErrInvalidOptics, got %v", err)
	}
	if _, err := NewLens(V(0, 0, 0), V(0, 0, 1), 1, math.Inf(1)); !errors.Is(err, ErrInvalidOptics) {
		t.Fatalf("expected ErrInvalidOptics, got %v", err)
	}
}

// parallelBundle hits the lens plane z=zl at several radii, travelling along -z.
func parallelBundle(zl Real) (RayBatch, []Vector3) {
	var o, d, h []Vector3
	for _, xy := range [][2]Real{{0.1, 0}, {0, -0.5}, {0.3, 0.4}, {-0.7, 0.2}, {0.9, 0}} {
		o = append(o, V(xy[0], xy[1], 0))
		d = append(d, V(0, 0, -1))
		h = append(h, V(xy[0], xy[1], zl))
	}
	return MustRayBatch(o, d), h
}

func TestThinLensConvergesAtFocalDistance(t *testing.T) {
	f := 2.0
	for _, normal := range []Vector3{V(0, 0, -1), V(0, 0, 1)} {
		l, err := NewLens(V(0, 0, -1), normal, 1, f)
		if err != nil {
			t.Fatal(err)
		}
		rays, hits := parallelBundle(-1)
		out, err := l.Refract(rays, hits)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < out.Len(); i++ {
			// where the refracted ray reaches z = -1 - f
			s := -f / out.Direction[i].Z
			p := along(out.Origin[i], out.Direction[i], s)
			if !vecNear(p, V(0, 0, -1-f), 1e-9) {
				t.Fatalf("normal %+v ray %d: focal point %+v, want (0,0,%g)", normal, i, p, -1-f)
			}
			if math.Abs(r3.Norm(out.Direction[i])-1) > 1e-12 {
				t.Fatalf("refracted direction not unit: %+v", out.Direction[i])
			}
		}
	}
}

func TestLensCenterRayUndeviated(t *testing.T) {
	l, err := NewLens(V(0, 0, -2), V(0, 0, 1), 1, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	o := V(0.3, 0.2, 0)
	d := norm(r3.Sub(l.Center, o))
	out, err := l.Refract(MustRayBatch([]Vector3{o}, []Vector3{d}), []Vector3{l.Center})
	if err != nil {
		t.Fatal(err)
	}
	if !vecNear(out.Direction[0], d, 1e-12) {
		t.Fatalf("central ray deviated: %+v vs %+v", out.Direction[0], d)
	}
	if out.Origin[0] != l.Center {
		t.Fatalf("refracted origin must be the hit point, got %+v", out.Origin[0])
	}
}

func TestDivergingLens(t *testing.T) {
	f := -2.0
	l, err := NewLens(V(0, 0, -1), V(0, 0, -1), 1, f)
	if err != nil {
		t.Fatal(err)
	}
	rays, hits := parallelBundle(-1)
	out, err := l.Refract(rays, hits)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < out.Len(); i++ {
		o, d := out.Origin[i], out.Direction[i]
		if d.Z >= 0 {
			t.Fatalf("ray %d turned back: %+v", i, d)
		}
		// moves away from the axis
		r0 := math.Hypot(o.X, o.Y)
		p := along(o, d, 1)
		if math.Hypot(p.X, p.Y) <= r0 {
			t.Fatalf("ray %d does not diverge: %+v", i, d)
		}
		// extended backwards it crosses the axis at the virtual focus in front of the lens
		s := -f / d.Z // negative: backwards
		v := along(o, d, s)
		if !vecNear(v, V(0, 0, -1-f), 1e-9) {
			t.Fatalf("ray %d virtual focus %+v, want (0,0,%g)", i, v, -1-f)
		}
	}
}

func TestLensRefractShapeMismatch(t *testing.T) {
	l, err := NewLens(V(0, 0, -1), V(0, 0, 1), 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	rays, _ := parallelBundle(-1)
	if _, err := l.Refract(rays, nil); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}
