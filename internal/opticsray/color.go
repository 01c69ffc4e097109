package opticsray

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// RGB stores color components; each should be in [0,1].
type RGB struct {
	R, G, B Real
}

// clamp01 clamps each channel to [0,1].
func (c RGB) clamp01() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// ColorBatch keeps one color per ray as three parallel channels.
type ColorBatch struct {
	R, G, B []Real
}

// NewColorBatch returns n colors all set to fill.
func NewColorBatch(n int, fill RGB) ColorBatch {
	c := ColorBatch{R: make([]Real, n), G: make([]Real, n), B: make([]Real, n)}
	if fill != (RGB{}) {
		for i := 0; i < n; i++ {
			c.R[i], c.G[i], c.B[i] = fill.R, fill.G, fill.B
		}
	}
	return c
}

func (c ColorBatch) Len() int { return len(c.R) }

func (c ColorBatch) At(i int) RGB { return RGB{c.R[i], c.G[i], c.B[i]} }

func (c ColorBatch) Set(i int, col RGB) { c.R[i], c.G[i], c.B[i] = col.R, col.G, col.B }

// scatter writes src[k] into c[idx[k]].
func (c ColorBatch) scatter(idx []int, src ColorBatch) {
	for k, i := range idx {
		c.R[i], c.G[i], c.B[i] = src.R[k], src.G[k], src.B[k]
	}
}

// Average collapses every group of perGroup consecutive colors into its mean.
func (c ColorBatch) Average(perGroup int) (ColorBatch, error) {
	if perGroup <= 0 || c.Len()%perGroup != 0 {
		return ColorBatch{}, fmt.Errorf("%w: %d colors cannot be grouped by %d", ErrShapeMismatch, c.Len(), perGroup)
	}
	if perGroup == 1 {
		return c, nil
	}
	n := c.Len() / perGroup
	out := NewColorBatch(n, RGB{})
	inv := 1 / Real(perGroup)
	for i := 0; i < n; i++ {
		lo, hi := i*perGroup, (i+1)*perGroup
		out.R[i] = floats.Sum(c.R[lo:hi]) * inv
		out.G[i] = floats.Sum(c.G[lo:hi]) * inv
		out.B[i] = floats.Sum(c.B[lo:hi]) * inv
	}
	return out, nil
}
