package opticsray

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
)

// GifBuilder collects rendered frames into a looping animated GIF.
// Frames of a different size are scaled to the first frame's size.
type GifBuilder struct {
	Delay  int // 100ths of a second per frame
	frames []image.Image
}

func NewGifBuilder(delay int) *GifBuilder {
	if delay <= 0 {
		delay = GIFDelay
	}
	return &GifBuilder{Delay: delay}
}

func (g *GifBuilder) AddFrame(img image.Image) { g.frames = append(g.frames, img) }

func (g *GifBuilder) Len() int { return len(g.frames) }

func (g *GifBuilder) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return fmt.Errorf("%w: gif has no frames", ErrShapeMismatch)
	}
	bounds := g.frames[0].Bounds()
	fw, fh := bounds.Dx(), bounds.Dy()
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(g.frames)),
		Delay:     make([]int, 0, len(g.frames)),
		LoopCount: 0,
	}
	n := len(g.frames)
	for k, frame := range g.frames {
		if k%imax(1, n/100) == 0 {
			fmt.Printf("[GIF] %.2f%%\n", Real(k+1)*100/Real(n))
		}
		if b := frame.Bounds(); b.Dx() != fw || b.Dy() != fh {
			DebugLog("Resizing GIF frame %d from %dx%d to %dx%d", k, b.Dx(), b.Dy(), fw, fh)
			frame = resize.Resize(uint(fw), uint(fh), frame, resize.NearestNeighbor)
		}
		pimg := image.NewPaletted(image.Rect(0, 0, fw, fh), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), frame, frame.Bounds().Min)
		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, g.Delay)
	}
	return gif.EncodeAll(w, out)
}

func (g *GifBuilder) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
