package opticsray

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const simpleScene = `{
  "camera": {"center": [0,0,0], "focalDistance": 1, "viewportWidth": 2,
             "imageSize": [4, 2], "uVector": [1,0,0], "viewportNormal": [0,0,-1]},
  "objects": [
    {"type": "lens", "center": [0,0,-2], "normal": [0,0,1], "radius": 0.5, "focalDistance": 2},
    {"type": "circle", "center": [0,0,-10], "normal": [0,0,1], "radius": 0.3, "color": [1,0,0]},
    {"type": "rectangle", "middle": [0,0,-11], "normal": [0,0,1], "uVector": [1,0,0], "width": 30, "height": 30, "color": [0,0,1]}
  ],
  "output": {"imagePath": "render.png"}
}`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, simpleScene))
	if err != nil {
		t.Fatal(err)
	}
	if *cfg.RaySamplingRate != SamplingRate || cfg.MaxDepth != MaxDepth || cfg.TMin != TMin || cfg.TMax != TMax {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Workers != Workers || cfg.Seed != Seed {
		t.Fatalf("worker defaults: %d %d", cfg.Workers, cfg.Seed)
	}
	e, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(e.Lenses) != 1 || len(e.Objects) != 2 {
		t.Fatalf("lenses=%d objects=%d", len(e.Lenses), len(e.Objects))
	}
	if e.Camera.ImageSize() != (IntegerSize{4, 2}) {
		t.Fatalf("image size %s", e.Camera.ImageSize())
	}
	sc, ok := e.Camera.(*SimpleCamera)
	if !ok {
		t.Fatalf("camera type %T", e.Camera)
	}
	// viewport height follows the image aspect ratio
	if sc.viewport.Size != (FloatSize{2, 1}) {
		t.Fatalf("viewport size %s", sc.viewport.Size)
	}
}

func TestLoadConfigZeroSamplingRateKept(t *testing.T) {
	body := strings.Replace(simpleScene, `"output"`, `"raySamplingRate": 0, "output"`, 1)
	cfg, err := loadConfig(writeConfig(t, body))
	if err != nil {
		t.Fatal(err)
	}
	if *cfg.RaySamplingRate != 0 {
		t.Fatalf("explicit zero rate replaced by %g", *cfg.RaySamplingRate)
	}
	body = strings.Replace(simpleScene, `"output"`, `"raySamplingRate": 2, "output"`, 1)
	if _, err := loadConfig(writeConfig(t, body)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("rate 2: %v", err)
	}
}

func TestConfigMissingImage(t *testing.T) {
	body := strings.Replace(simpleScene, `"objects": [`,
		`"objects": [{"type": "image", "path": "/definitely/not/here.png", "middle": [0,0,-5], "normal": [0,0,1], "uVector": [1,0,0], "width": 2},`, 1)
	cfg, err := loadConfig(writeConfig(t, body))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.Build(); !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
}

func TestConfigInvalidEntries(t *testing.T) {
	for name, body := range map[string]string{
		"object type": strings.Replace(simpleScene, `"type": "circle"`, `"type": "torus"`, 1),
		"camera type": strings.Replace(simpleScene, `"camera": {`, `"camera": {"type": "fisheye", `, 1),
		"zero focal":  strings.Replace(simpleScene, `"radius": 0.5, "focalDistance": 2`, `"radius": 0.5, "focalDistance": 0`, 1),
	} {
		cfg, err := loadConfig(writeConfig(t, body))
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if _, err := cfg.Build(); err == nil {
			t.Fatalf("%s: expected build error", name)
		}
	}
	if _, err := loadConfig(writeConfig(t, "{not json")); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("bad json: %v", err)
	}
}

func TestConfigEyeCamera(t *testing.T) {
	body := `{
  "camera": {"type": "eye", "center": [0,0,0], "viewportWidth": 0.2, "imageSize": [2, 2],
             "uVector": [1,0,0], "viewportNormal": [0,0,-1],
             "lensDistance": 1, "lensRadius": 0.3, "objectDistance": 10,
             "numberOfCircles": 2, "raysPerCircle": 6},
  "objects": [{"type": "circle", "center": [0,0,-10], "normal": [0,0,1], "radius": 5, "color": [0,1,0]}]
}`
	cfg, err := loadConfig(writeConfig(t, body))
	if err != nil {
		t.Fatal(err)
	}
	e, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	ec, ok := e.Camera.(*EyeCamera)
	if !ok {
		t.Fatalf("camera type %T", e.Camera)
	}
	if !near(ec.Lens.FocalDistance, 0.9, 1e-12) || ec.SamplesPerPixel() != 12 {
		t.Fatalf("eye camera f=%g spp=%d", ec.Lens.FocalDistance, ec.SamplesPerPixel())
	}
	if cfg.Output.ImagePath != filepath.Join("out", "render.png") {
		t.Fatalf("default image path %q", cfg.Output.ImagePath)
	}
}
