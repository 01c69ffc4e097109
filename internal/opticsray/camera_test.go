package opticsray

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func pinhole(t *testing.T, w, h int) *SimpleCamera {
	t.Helper()
	c, err := NewSimpleCamera(V(0, 0, 0), 1, FloatSize{Width: 2, Height: 2}, IntegerSize{Width: w, Height: h}, V(1, 0, 0), V(0, 0, -1))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestSimpleCameraRays(t *testing.T) {
	c := pinhole(t, 2, 2)
	if c.ViewportCenter() != V(0, 0, -1) {
		t.Fatalf("viewport center %+v", c.ViewportCenter())
	}
	b := c.Rays(nil)
	if b.Len() != 4 {
		t.Fatalf("expected 4 rays, got %d", b.Len())
	}
	// row-major, (0,0) top-left: -u and +y since v = n x u = -y
	want := []Vector3{V(-1, 1, -1), V(1, 1, -1), V(-1, -1, -1), V(1, -1, -1)}
	for i, w := range want {
		if b.Origin[i] != c.Center {
			t.Fatalf("ray %d origin %+v", i, b.Origin[i])
		}
		if !vecNear(b.Direction[i], norm(w), 1e-12) {
			t.Fatalf("ray %d direction %+v, want %+v", i, b.Direction[i], norm(w))
		}
	}
}

func TestSinglePixelSitsAtViewportCenter(t *testing.T) {
	c := pinhole(t, 1, 1)
	b := c.Rays(nil)
	if b.Len() != 1 || !vecNear(b.Direction[0], V(0, 0, -1), 1e-12) {
		t.Fatalf("single pixel ray %+v", b.Direction)
	}
}

func TestSimpleCameraPixelColors(t *testing.T) {
	c := pinhole(t, 2, 1)
	in := NewColorBatch(2, RGB{0.5, 0.25, 1})
	out, err := c.PixelColors(in)
	if err != nil || out.Len() != 2 || out.At(1) != (RGB{0.5, 0.25, 1}) {
		t.Fatalf("identity failed: %v %+v", err, out)
	}
	if _, err := c.PixelColors(NewColorBatch(3, RGB{})); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestCameraValidation(t *testing.T) {
	if _, err := NewSimpleCamera(V(0, 0, 0), 0, FloatSize{2, 2}, IntegerSize{2, 2}, V(1, 0, 0), V(0, 0, -1)); err == nil {
		t.Fatal("zero focal distance must fail")
	}
	if _, err := NewSimpleCamera(V(0, 0, 0), 1, FloatSize{2, 2}, IntegerSize{0, 2}, V(1, 0, 0), V(0, 0, -1)); err == nil {
		t.Fatal("zero image width must fail")
	}
	if _, err := NewSimpleCamera(V(0, 0, 0), 1, FloatSize{2, 2}, IntegerSize{2, 2}, V(0, 0, 1), V(0, 0, -1)); err == nil {
		t.Fatal("u parallel to the normal must fail")
	}
	if _, err := NewEyeCamera(V(0, 0, 0), 1, 0.5, 1, 0, 4, FloatSize{2, 2}, IntegerSize{2, 2}, V(1, 0, 0), V(0, 0, -1)); err == nil {
		t.Fatal("zero circles must fail")
	}
	if _, err := NewEyeCamera(V(0, 0, 0), 1, 0.5, 0, 2, 4, FloatSize{2, 2}, IntegerSize{2, 2}, V(1, 0, 0), V(0, 0, -1)); !errors.Is(err, ErrInvalidOptics) {
		t.Fatalf("zero lens focal distance: %v", err)
	}
}

func eye(t *testing.T, objectDistance Real, w, h int) *EyeCamera {
	t.Helper()
	c, err := NewEyeCameraFocused(V(0, 0, 0), 1, 0.5, objectDistance, 3, 8, FloatSize{Width: 0.2, Height: 0.2}, IntegerSize{Width: w, Height: h}, V(1, 0, 0), V(0, 0, -1))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestFocalDistanceForObject(t *testing.T) {
	f, err := FocalDistanceForObject(10, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !near(f, 0.9, 1e-12) {
		t.Fatalf("f=%.12g want 0.9", f)
	}
	if _, err := FocalDistanceForObject(1, 1); !errors.Is(err, ErrInvalidOptics) {
		t.Fatalf("object at the lens must fail, got %v", err)
	}
}

func TestEyeCameraRayLayout(t *testing.T) {
	c := eye(t, 10, 3, 2)
	if c.SamplesPerPixel() != 24 {
		t.Fatalf("samples per pixel %d", c.SamplesPerPixel())
	}
	b := c.Rays(nil)
	if b.Len() != 6*24 {
		t.Fatalf("expected %d rays, got %d", 6*24, b.Len())
	}
	for i := 0; i < b.Len(); i++ {
		if !near(b.Origin[i].Z, -1, 1e-12) {
			t.Fatalf("ray %d does not start on the lens: %+v", i, b.Origin[i])
		}
		if isZero(b.Direction[i]) {
			t.Fatalf("ray %d is dead", i)
		}
	}
	// outer ring, first sample sits at angle 0 on +u
	if p := c.samples[2*8]; !vecNear(p, V(0.5, 0, -1), 1e-12) {
		t.Fatalf("outer ring start %+v", p)
	}
}

func TestEyeCameraFocusesObjectPlane(t *testing.T) {
	c := eye(t, 10, 1, 1)
	b := c.Rays(nil)
	for i := 0; i < b.Len(); i++ {
		o, d := b.Origin[i], b.Direction[i]
		s := (-10 - o.Z) / d.Z
		p := along(o, d, s)
		if !vecNear(p, V(0, 0, -10), 1e-9) {
			t.Fatalf("sample %d lands at %+v, want the on-axis point at z=-10", i, p)
		}
	}
}

func TestEyeCameraDeadRays(t *testing.T) {
	c := eye(t, 10, 1, 1)
	// shrink the disc so every but the inner ring misses it
	c.Lens.Radius = 0.2
	c.Lens.radius2 = 0.04
	b := c.Rays(nil)
	if b.Len() != c.SamplesPerPixel() {
		t.Fatalf("dead rays must keep their slot, got %d rays", b.Len())
	}
	dead := 0
	for i := 0; i < b.Len(); i++ {
		if isZero(b.Direction[i]) {
			dead++
		}
	}
	if dead != 16 {
		t.Fatalf("expected 16 dead rays, got %d", dead)
	}
}

func TestEyeCameraAveraging(t *testing.T) {
	c := eye(t, 10, 2, 1)
	spp := c.SamplesPerPixel()
	a, b := RGB{0.2, 0.4, 0.6}, RGB{0.6, 0.0, 1.0}
	in := NewColorBatch(2*spp, a)
	for i := spp + spp/2; i < 2*spp; i++ {
		in.Set(i, b)
	}
	for i := spp; i < spp+spp/2; i++ {
		in.Set(i, a)
	}
	out, err := c.PixelColors(in)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 2 {
		t.Fatalf("expected 2 pixels, got %d", out.Len())
	}
	p0, p1 := out.At(0), out.At(1)
	if !near(p0.R, a.R, 1e-12) || !near(p0.G, a.G, 1e-12) || !near(p0.B, a.B, 1e-12) {
		t.Fatalf("uniform pixel %+v want %+v", p0, a)
	}
	if !near(p1.R, 0.4, 1e-12) || !near(p1.G, 0.2, 1e-12) || !near(p1.B, 0.8, 1e-12) {
		t.Fatalf("50/50 pixel %+v", p1)
	}
	if _, err := c.PixelColors(NewColorBatch(spp+1, a)); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestLensSamplesOnRings(t *testing.T) {
	disc, err := NewCircle(V(0, 0, 0), V(0, 0, 1), 2)
	if err != nil {
		t.Fatal(err)
	}
	pts := lensSamples(disc, V(1, 0, 0), V(0, 1, 0), 2, 4)
	if len(pts) != 8 {
		t.Fatalf("expected 8 samples, got %d", len(pts))
	}
	for i, p := range pts {
		want := 1.0
		if i >= 4 {
			want = 2
		}
		if r := r3.Norm(p); math.Abs(r-want) > 1e-12 {
			t.Fatalf("sample %d radius %.12g want %g", i, r, want)
		}
	}
	if !vecNear(pts[1], V(0, 1, 0), 1e-12) {
		t.Fatalf("second sample of ring 1 at %+v", pts[1])
	}
}
