package opticsray

import (
	"context"
	"fmt"
	"image"

	"gonum.org/v1/gonum/spatial/r3"
)

// Animate renders a.Frames frames of the lens sweep described by a.
// The engine's own lens list is not modified.
func (e *Engine) Animate(ctx context.Context, a AnimationCfg) (*GifBuilder, error) {
	if a.LensIndex < 0 || a.LensIndex >= len(e.Lenses) {
		return nil, fmt.Errorf("%w: animation lens index %d, scene has %d lenses", ErrInvalidConfig, a.LensIndex, len(e.Lenses))
	}
	base := e.Lenses[a.LensIndex]
	lenses := make([]*Lens, len(e.Lenses))
	copy(lenses, e.Lenses)

	var plain *image.NRGBA
	if e.CompareWithWithoutLenses {
		pixels, err := e.Pixels(ctx, nil)
		if err != nil {
			return nil, err
		}
		plain = toImage(pixels, e.Camera.ImageSize())
	}

	g := NewGifBuilder(a.Delay)
	for k := 0; k < a.Frames; k++ {
		if k%imax(1, a.Frames/100) == 0 {
			fmt.Printf("[RENDER] frame %d/%d\n", k+1, a.Frames)
		}
		center := r3.Add(base.Center, r3.Scale(Real(k), a.LensStep.vec()))
		l, err := NewLens(center, base.Normal, base.Radius, base.FocalDistance+Real(k)*a.FocalStep)
		if err != nil {
			return nil, fmt.Errorf("animation frame %d: %w", k, err)
		}
		lenses[a.LensIndex] = l
		pixels, err := e.Pixels(ctx, lenses)
		if err != nil {
			return nil, err
		}
		frame := toImage(pixels, e.Camera.ImageSize())
		if plain != nil {
			if frame, err = sideBySide(plain, frame); err != nil {
				return nil, err
			}
		}
		g.AddFrame(frame)
	}
	return g, nil
}
