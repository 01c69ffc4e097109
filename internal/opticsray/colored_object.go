package opticsray

import "fmt"

// ColoredObject is a bounded surface that can color points lying on it.
type ColoredObject interface {
	// Hits returns the valid hit distance per ray, +Inf where the ray misses.
	Hits(b RayBatch, hb HitBounds) []Real
	// Colors returns one color per point; points are known to be on the surface.
	Colors(points []Vector3) ColorBatch
	// Outline draws the surface edges for the 3D debug export.
	Outline(e Exporter)
}

// ColoredCircle is a disc of flat color.
type ColoredCircle struct {
	Circle
	Color RGB
}

func NewColoredCircle(center, normal Vector3, radius Real, color RGB) (*ColoredCircle, error) {
	c, err := NewCircle(center, normal, radius)
	if err != nil {
		return nil, err
	}
	return &ColoredCircle{Circle: c, Color: color.clamp01()}, nil
}

func (c *ColoredCircle) Colors(points []Vector3) ColorBatch {
	return NewColorBatch(len(points), c.Color)
}

func (c *ColoredCircle) Outline(e Exporter) { c.Circle.Outline(e, ScreenOutlines()) }

// ColoredRectangle is a rectangle of flat color.
type ColoredRectangle struct {
	Rectangle
	Color RGB
}

func NewColoredRectangle(middle, normal, u Vector3, width, height Real, color RGB) (*ColoredRectangle, error) {
	r, err := NewRectangle(middle, normal, u, width, height)
	if err != nil {
		return nil, err
	}
	return &ColoredRectangle{Rectangle: r, Color: color.clamp01()}, nil
}

func (r *ColoredRectangle) Colors(points []Vector3) ColorBatch {
	return NewColorBatch(len(points), r.Color)
}

func (r *ColoredRectangle) Outline(e Exporter) { r.Rectangle.Outline(e, ScreenOutlines()) }

// InsertedImage is a rectangle textured with an image, LeftTop mapped to pixel (0,0).
type InsertedImage struct {
	Rectangle
	Texture TextureSampler
}

func NewInsertedImage(middle, normal, u Vector3, width, height Real, tex TextureSampler) (*InsertedImage, error) {
	if tex == nil {
		return nil, fmt.Errorf("%w: inserted image needs a texture", ErrInvalidGeometry)
	}
	r, err := NewRectangle(middle, normal, u, width, height)
	if err != nil {
		return nil, err
	}
	return &InsertedImage{Rectangle: r, Texture: tex}, nil
}

// LoadInsertedImage decodes path and places it; height <= 0 keeps the image aspect ratio.
func LoadInsertedImage(path string, middle, normal, u Vector3, width, height Real) (*InsertedImage, error) {
	tex, err := LoadImageTexture(path)
	if err != nil {
		return nil, err
	}
	if height <= 0 {
		height = tex.Size().FloatScaleToWidth(width).Height
	}
	return NewInsertedImage(middle, normal, u, width, height, tex)
}

func (im *InsertedImage) Colors(points []Vector3) ColorBatch {
	c := NewColorBatch(len(points), RGB{})
	for i, p := range points {
		c.Set(i, im.Texture.Sample(im.UV(p)))
	}
	return c
}

func (im *InsertedImage) Outline(e Exporter) { im.Rectangle.Outline(e, ScreenOutlines()) }
