package opticsray

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// Engine owns one scene and renders it through its camera.
type Engine struct {
	Camera  Camera
	Objects []ColoredObject
	Lenses  []*Lens

	SamplingRate             Real // fraction of rays kept for the 3D export
	IncludeMissedRays        bool
	CompareWithWithoutLenses bool

	MaxDepth   int
	Bounds     HitBounds
	Background RGB
	Seed       int64
	Workers    int
	Writer     ImageWriter
}

// RenderOutput names the files a render produces; empty paths are skipped.
type RenderOutput struct {
	ImagePath string
	ObjPath   string
	MtlPath   string // defaults next to ObjPath
	RawPath   string
}

func NewEngine(camera Camera, objects []ColoredObject, lenses []*Lens) *Engine {
	return &Engine{
		Camera:       camera,
		Objects:      objects,
		Lenses:       lenses,
		SamplingRate: SamplingRate,
		MaxDepth:     MaxDepth,
		Bounds:       DefaultBounds(),
		Seed:         Seed,
		Workers:      Workers,
		Writer:       PathWriter{Files: FileWriter{}},
	}
}

// Render traces the scene and hands the result to the writers named in out.
// In compare mode the left half is rendered without lenses and the right half
// with them; only the with-lenses pass is exported as 3D geometry.
func (e *Engine) Render(ctx context.Context, out RenderOutput) (*image.NRGBA, error) {
	if e.Camera == nil {
		return nil, fmt.Errorf("%w: engine has no camera", ErrInvalidConfig)
	}
	start := time.Now()
	var rec *RayRecorder
	if out.ObjPath != "" && e.SamplingRate > 0 {
		rec = NewRayRecorder(e.SamplingRate, e.IncludeMissedRays, e.Seed)
	}
	pixels, err := e.pass(ctx, e.Lenses, rec)
	if err != nil {
		return nil, err
	}
	size := e.Camera.ImageSize()
	img := toImage(pixels, size)
	if e.CompareWithWithoutLenses {
		plain, err := e.pass(ctx, nil, nil)
		if err != nil {
			return nil, err
		}
		if img, err = sideBySide(toImage(plain, size), img); err != nil {
			return nil, err
		}
	}
	fmt.Printf("[RENDER] %s in %s\n", img.Bounds().Size(), time.Since(start))
	if Debug {
		raysStats()
	}

	if out.ImagePath != "" {
		w := e.Writer
		if w == nil {
			w = PathWriter{}
		}
		if err := w.WriteImage(ctx, img, out.ImagePath); err != nil {
			return img, err
		}
	}
	if out.RawPath != "" {
		if err := SaveRawRGB64(out.RawPath, size, pixels); err != nil {
			return img, err
		}
	}
	if out.ObjPath != "" {
		exp := NewObjExporter()
		e.outline(exp)
		rec.FlushTo(exp)
		if err := exp.Save(out.ObjPath, out.MtlPath); err != nil {
			return img, err
		}
	}
	return img, nil
}

// Pixels traces one pass with the given lenses and returns linear pixel colors.
func (e *Engine) Pixels(ctx context.Context, lenses []*Lens) (ColorBatch, error) {
	return e.pass(ctx, lenses, nil)
}

func (e *Engine) outline(exp Exporter) {
	e.Camera.Outline(exp)
	for _, o := range e.Objects {
		o.Outline(exp)
	}
	for _, l := range e.Lenses {
		l.Circle.Outline(exp, LensOutlines())
	}
}

func (e *Engine) tracer(lenses []*Lens, rec *RayRecorder) *ColorTracer {
	return &ColorTracer{
		Objects:    e.Objects,
		Lenses:     lenses,
		Bounds:     e.Bounds,
		MaxDepth:   e.MaxDepth,
		Background: e.Background,
		Recorder:   rec,
	}
}

func (e *Engine) pass(ctx context.Context, lenses []*Lens, rec *RayRecorder) (ColorBatch, error) {
	if err := ctx.Err(); err != nil {
		return ColorBatch{}, err
	}
	rays := e.Camera.Rays(rec)
	colors, err := e.trace(ctx, rays, lenses, rec)
	if err != nil {
		return ColorBatch{}, err
	}
	return e.Camera.PixelColors(colors)
}

// trace splits rays into contiguous chunks, one per worker. Each worker has
// its own recorder; they are merged in worker order afterwards.
func (e *Engine) trace(ctx context.Context, rays RayBatch, lenses []*Lens, rec *RayRecorder) (ColorBatch, error) {
	n := rays.Len()
	workers := e.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = imax(1, n)
	}
	if workers == 1 {
		return e.tracer(lenses, rec).Colors(rays), nil
	}

	per, rem := n/workers, n%workers
	parts := make([]ColorBatch, workers)
	recs := make([]*RayRecorder, workers)
	lo := make([]int, workers)
	var wg sync.WaitGroup
	off := 0
	for w := 0; w < workers; w++ {
		cnt := per
		if w < rem {
			cnt++
		}
		lo[w] = off
		recs[w] = rec.child(e.Seed ^ int64(uint64(w+1)*0x9e3779b97f4a7c15))
		wg.Add(1)
		go func(w, from, to int) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			parts[w] = e.tracer(lenses, recs[w]).Colors(rays.Slice(from, to))
		}(w, off, off+cnt)
		off += cnt
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return ColorBatch{}, err
	}

	out := NewColorBatch(n, RGB{})
	for w, p := range parts {
		copy(out.R[lo[w]:], p.R)
		copy(out.G[lo[w]:], p.G)
		copy(out.B[lo[w]:], p.B)
		rec.merge(recs[w])
	}
	return out, nil
}

// toImage converts row-major linear colors to 8-bit.
func toImage(pixels ColorBatch, size IntegerSize) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))
	for y := 0; y < size.Height; y++ {
		row := y * img.Stride
		for x := 0; x < size.Width; x++ {
			i := y*size.Width + x
			p := row + 4*x
			img.Pix[p+0] = toByte(pixels.R[i])
			img.Pix[p+1] = toByte(pixels.G[i])
			img.Pix[p+2] = toByte(pixels.B[i])
			img.Pix[p+3] = 255
		}
	}
	return img
}

// sideBySide places left and right next to each other. Heights must match.
func sideBySide(left, right image.Image) (*image.NRGBA, error) {
	lb, rb := left.Bounds(), right.Bounds()
	if lb.Dy() != rb.Dy() {
		return nil, fmt.Errorf("%w: cannot join images of height %d and %d", ErrShapeMismatch, lb.Dy(), rb.Dy())
	}
	dst := imaging.New(lb.Dx()+rb.Dx(), lb.Dy(), color.Black)
	dst = imaging.Paste(dst, left, image.Pt(0, 0))
	dst = imaging.Paste(dst, right, image.Pt(lb.Dx(), 0))
	return dst, nil
}
