package opticsray

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Vec3 is a JSON [x, y, z].
type Vec3 [3]Real

func (v Vec3) vec() Vector3 { return V(v[0], v[1], v[2]) }

// Color is a JSON [r, g, b] with channels in [0, 1].
type Color [3]Real

func (c Color) rgb() RGB { return RGB{R: c[0], G: c[1], B: c[2]} }

type CameraCfg struct {
	Type           string `json:"type"` // "simple" (default) or "eye"
	Center         Vec3   `json:"center"`
	ViewportWidth  Real   `json:"viewportWidth"`
	ViewportHeight Real   `json:"viewportHeight,omitempty"` // defaults to the image aspect ratio
	ImageSize      [2]int `json:"imageSize"`
	UVector        Vec3   `json:"uVector"`
	ViewportNormal Vec3   `json:"viewportNormal"`

	// simple: the viewport sits focalDistance in front of center
	FocalDistance Real `json:"focalDistance,omitempty"`

	// eye: center is the viewport center
	LensDistance      Real `json:"lensDistance,omitempty"`
	LensRadius        Real `json:"lensRadius,omitempty"`
	LensFocalDistance Real `json:"lensFocalDistance,omitempty"`
	ObjectDistance    Real `json:"objectDistance,omitempty"` // used when lensFocalDistance is 0
	NumberOfCircles   int  `json:"numberOfCircles,omitempty"`
	RaysPerCircle     int  `json:"raysPerCircle,omitempty"`
}

// ObjectCfg is one scene entry; which fields matter depends on Type.
type ObjectCfg struct {
	Type          string `json:"type"` // "lens", "image", "circle" or "rectangle"
	Center        Vec3   `json:"center,omitempty"`
	Normal        Vec3   `json:"normal"`
	Radius        Real   `json:"radius,omitempty"`
	FocalDistance Real   `json:"focalDistance,omitempty"`
	Middle        Vec3   `json:"middle,omitempty"`
	UVector       Vec3   `json:"uVector,omitempty"`
	Width         Real   `json:"width,omitempty"`
	Height        Real   `json:"height,omitempty"` // image: <= 0 keeps the aspect ratio
	Path          string `json:"path,omitempty"`
	Color         Color  `json:"color,omitempty"`
}

type OutputCfg struct {
	ImagePath string `json:"imagePath"`
	ObjPath   string `json:"objPath,omitempty"`
	MtlPath   string `json:"mtlPath,omitempty"`
	RawPath   string `json:"rawPath,omitempty"`
	GifPath   string `json:"gifPath,omitempty"`
}

// AnimationCfg sweeps one lens: frame k moves it by k*lensStep and adds
// k*focalStep to its focal distance.
type AnimationCfg struct {
	Frames    int  `json:"frames"`
	LensIndex int  `json:"lensIndex"`
	LensStep  Vec3 `json:"lensStep"`
	FocalStep Real `json:"focalStep,omitempty"`
	Delay     int  `json:"delay,omitempty"`
}

type Config struct {
	Camera                   CameraCfg     `json:"camera"`
	Objects                  []ObjectCfg   `json:"objects"`
	Background               Color         `json:"background,omitempty"`
	RaySamplingRate          *Real         `json:"raySamplingRate,omitempty"`
	IncludeMissedRays        bool          `json:"includeMissedRays,omitempty"`
	CompareWithWithoutLenses bool          `json:"compareWithWithoutLenses,omitempty"`
	MaxDepth                 int           `json:"maxDepth,omitempty"`
	TMin                     Real          `json:"tMin,omitempty"`
	TMax                     Real          `json:"tMax,omitempty"`
	Workers                  int           `json:"workers,omitempty"`
	Seed                     int64         `json:"seed,omitempty"`
	Output                   OutputCfg     `json:"output"`
	Animation                *AnimationCfg `json:"animation,omitempty"`
}

func (c CameraCfg) Build() (Camera, error) {
	px := IntegerSize{Width: c.ImageSize[0], Height: c.ImageSize[1]}
	if err := px.validate(); err != nil {
		return nil, err
	}
	vs := FloatSizeFromWidthAndAspectRatio(c.ViewportWidth, px.AspectRatio())
	if c.ViewportHeight > 0 {
		vs.Height = c.ViewportHeight
	}
	var (
		cam Camera
		err error
	)
	switch strings.ToLower(c.Type) {
	case "", "simple":
		var sc *SimpleCamera
		sc, err = NewSimpleCamera(c.Center.vec(), c.FocalDistance, vs, px, c.UVector.vec(), c.ViewportNormal.vec())
		cam = sc
	case "eye":
		var ec *EyeCamera
		if c.LensFocalDistance == 0 {
			ec, err = NewEyeCameraFocused(c.Center.vec(), c.LensDistance, c.LensRadius, c.ObjectDistance,
				c.NumberOfCircles, c.RaysPerCircle, vs, px, c.UVector.vec(), c.ViewportNormal.vec())
		} else {
			ec, err = NewEyeCamera(c.Center.vec(), c.LensDistance, c.LensRadius, c.LensFocalDistance,
				c.NumberOfCircles, c.RaysPerCircle, vs, px, c.UVector.vec(), c.ViewportNormal.vec())
		}
		cam = ec
	default:
		return nil, fmt.Errorf("%w: unknown camera type %q", ErrInvalidConfig, c.Type)
	}
	if err != nil {
		return nil, err
	}
	return cam, nil
}

// Build returns either a lens or a colored object.
func (o ObjectCfg) Build() (*Lens, ColoredObject, error) {
	switch strings.ToLower(o.Type) {
	case "lens":
		l, err := NewLens(o.Center.vec(), o.Normal.vec(), o.Radius, o.FocalDistance)
		return l, nil, err
	case "image":
		im, err := LoadInsertedImage(o.Path, o.Middle.vec(), o.Normal.vec(), o.UVector.vec(), o.Width, o.Height)
		if err != nil {
			return nil, nil, err
		}
		return nil, im, nil
	case "circle":
		c, err := NewColoredCircle(o.Center.vec(), o.Normal.vec(), o.Radius, o.Color.rgb())
		if err != nil {
			return nil, nil, err
		}
		return nil, c, nil
	case "rectangle":
		r, err := NewColoredRectangle(o.Middle.vec(), o.Normal.vec(), o.UVector.vec(), o.Width, o.Height, o.Color.rgb())
		if err != nil {
			return nil, nil, err
		}
		return nil, r, nil
	}
	return nil, nil, fmt.Errorf("%w: unknown object type %q", ErrInvalidConfig, o.Type)
}

// checkResources fails on the first image path that does not exist.
func (cfg *Config) checkResources() error {
	for i, o := range cfg.Objects {
		if !strings.EqualFold(o.Type, "image") {
			continue
		}
		if o.Path == "" {
			return fmt.Errorf("%w: object #%d: image without path", ErrInvalidConfig, i)
		}
		if _, err := os.Stat(o.Path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: object #%d: %s", ErrResourceNotFound, i, o.Path)
			}
			return err
		}
	}
	return nil
}

// Build validates resources, then constructs the camera and the scene.
func (cfg *Config) Build() (*Engine, error) {
	if err := cfg.checkResources(); err != nil {
		return nil, err
	}
	cam, err := cfg.Camera.Build()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	var (
		objects []ColoredObject
		lenses  []*Lens
	)
	for i, oc := range cfg.Objects {
		l, o, err := oc.Build()
		if err != nil {
			return nil, fmt.Errorf("object #%d (%s): %w", i, oc.Type, err)
		}
		if l != nil {
			lenses = append(lenses, l)
		} else {
			objects = append(objects, o)
		}
	}
	e := NewEngine(cam, objects, lenses)
	if cfg.RaySamplingRate != nil {
		e.SamplingRate = *cfg.RaySamplingRate
	}
	e.IncludeMissedRays = cfg.IncludeMissedRays
	e.CompareWithWithoutLenses = cfg.CompareWithWithoutLenses
	e.MaxDepth = cfg.MaxDepth
	e.Bounds = HitBounds{TMin: cfg.TMin, TMax: cfg.TMax}
	e.Background = cfg.Background.rgb().clamp01()
	e.Workers = cfg.Workers
	e.Seed = cfg.Seed
	DebugLog("Built engine: camera %s, %d objects, %d lenses", cam.ImageSize(), len(objects), len(lenses))
	return e, nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	// Defaults / validation
	if cfg.RaySamplingRate == nil {
		rate := Real(SamplingRate)
		cfg.RaySamplingRate = &rate
	}
	if r := *cfg.RaySamplingRate; r < 0 || r > 1 {
		return nil, fmt.Errorf("%w: raySamplingRate must be in [0, 1], got %g", ErrInvalidConfig, r)
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = MaxDepth
	}
	if cfg.TMin <= 0 {
		cfg.TMin = TMin
	}
	if cfg.TMax <= cfg.TMin {
		cfg.TMax = TMax
	}
	if cfg.Workers <= 0 {
		cfg.Workers = Workers
	}
	if cfg.Seed == 0 {
		cfg.Seed = Seed
	}
	if cfg.Output.ImagePath == "" {
		cfg.Output.ImagePath = filepath.Join("out", "render.png")
	}
	if a := cfg.Animation; a != nil {
		if a.Delay <= 0 {
			a.Delay = GIFDelay
		}
		if a.Frames > 0 && cfg.Output.GifPath == "" {
			cfg.Output.GifPath = strings.TrimSuffix(cfg.Output.ImagePath, filepath.Ext(cfg.Output.ImagePath)) + ".gif"
		}
	}
	DebugLog("Loaded config from %s: camera=%s image=%v objects=%d rate=%g", path, cfg.Camera.Type, cfg.Camera.ImageSize, len(cfg.Objects), *cfg.RaySamplingRate)
	return &cfg, nil
}
