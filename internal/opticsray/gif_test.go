package opticsray

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestGifBuilderNormalizesFrames(t *testing.T) {
	g := NewGifBuilder(0)
	if g.Delay != GIFDelay {
		t.Fatalf("default delay %d", g.Delay)
	}
	g.AddFrame(imaging.New(8, 6, color.NRGBA{255, 0, 0, 255}))
	g.AddFrame(imaging.New(4, 3, color.NRGBA{0, 0, 255, 255}))
	var buf bytes.Buffer
	if err := g.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	out, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Image) != 2 || out.LoopCount != 0 {
		t.Fatalf("frames=%d loop=%d", len(out.Image), out.LoopCount)
	}
	for i, f := range out.Image {
		if f.Bounds() != image.Rect(0, 0, 8, 6) {
			t.Fatalf("frame %d bounds %v", i, f.Bounds())
		}
		if out.Delay[i] != GIFDelay {
			t.Fatalf("frame %d delay %d", i, out.Delay[i])
		}
	}
}

func TestGifBuilderEmpty(t *testing.T) {
	if err := NewGifBuilder(5).Encode(&bytes.Buffer{}); err == nil {
		t.Fatal("expected error for a gif without frames")
	}
}

func TestGifBuilderSave(t *testing.T) {
	g := NewGifBuilder(5)
	g.AddFrame(imaging.New(2, 2, color.White))
	path := filepath.Join(t.TempDir(), "gifs", "out.gif")
	if err := g.Save(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("gif not written: %v", err)
	}
}
