package opticsray

import "fmt"

// IntegerSize is a pixel size.
type IntegerSize struct {
	Width, Height int
}

// FloatSize is a physical size.
type FloatSize struct {
	Width, Height Real
}

func (s IntegerSize) AspectRatio() Real { return Real(s.Width) / Real(s.Height) }

func (s IntegerSize) Pixels() int { return s.Width * s.Height }

// IntegerSizeFromWidthAndAspectRatio keeps at least one row.
func IntegerSizeFromWidthAndAspectRatio(width int, aspect Real) IntegerSize {
	return IntegerSize{Width: width, Height: imax(int(Real(width)/aspect), 1)}
}

func (s IntegerSize) FloatScale(scale Real) FloatSize {
	return FloatSize{Width: Real(s.Width) * scale, Height: Real(s.Height) * scale}
}

// FloatScaleToWidth scales s so its width becomes width.
func (s IntegerSize) FloatScaleToWidth(width Real) FloatSize {
	return s.FloatScale(width / Real(s.Width))
}

func (s IntegerSize) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: image size must be positive, got %s", ErrInvalidGeometry, s)
	}
	return nil
}

func (s IntegerSize) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

func (s FloatSize) AspectRatio() Real { return s.Width / s.Height }

func FloatSizeFromWidthAndAspectRatio(width, aspect Real) FloatSize {
	return FloatSize{Width: width, Height: width / aspect}
}

func (s FloatSize) String() string { return fmt.Sprintf("%gx%g", s.Width, s.Height) }
