package opticsray

import (
	"context"
	"path/filepath"
	"strings"
	"time"
)

func Run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	engine, err := cfg.Build()
	if err != nil {
		return err
	}
	if ForceWorkers > 0 {
		engine.Workers = ForceWorkers
	}
	if strings.HasPrefix(cfg.Output.ImagePath, s3Scheme) {
		s3w, err := NewS3WriterFromEnv()
		if err != nil {
			return err
		}
		engine.Writer = PathWriter{Files: FileWriter{}, S3: s3w}
	}

	out := RenderOutput{
		ImagePath: cfg.Output.ImagePath,
		ObjPath:   cfg.Output.ObjPath,
		MtlPath:   cfg.Output.MtlPath,
		RawPath:   cfg.Output.RawPath,
	}
	if RAW && out.RawPath == "" && !strings.HasPrefix(out.ImagePath, s3Scheme) {
		out.RawPath = strings.TrimSuffix(out.ImagePath, filepath.Ext(out.ImagePath)) + ".raw"
	}

	ctx := context.Background()
	start := time.Now()
	if _, err := engine.Render(ctx, out); err != nil {
		return err
	}
	DebugLog("Rendered %s in %s", out.ImagePath, time.Since(start))

	if a := cfg.Animation; a != nil && a.Frames > 0 {
		g, err := engine.Animate(ctx, *a)
		if err != nil {
			return err
		}
		if err := g.Save(cfg.Output.GifPath); err != nil {
			return err
		}
		DebugLog("Saved animated GIF: %s", cfg.Output.GifPath)
	}
	return nil
}
