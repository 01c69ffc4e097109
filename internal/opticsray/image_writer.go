package opticsray

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ImageWriter persists a rendered image. The format follows the path extension.
type ImageWriter interface {
	WriteImage(ctx context.Context, img image.Image, path string) error
}

// FileWriter saves to the local filesystem, creating parent directories.
type FileWriter struct{}

func (FileWriter) WriteImage(ctx context.Context, img image.Image, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	DebugLog("Saved image: %s", path)
	return nil
}

// PathWriter sends s3:// paths to S3 and everything else to Files.
// S3 is only needed when such a path is actually written.
type PathWriter struct {
	Files ImageWriter
	S3    ImageWriter
}

func (w PathWriter) WriteImage(ctx context.Context, img image.Image, path string) error {
	if strings.HasPrefix(path, s3Scheme) {
		if w.S3 == nil {
			return fmt.Errorf("%w: %s needs S3 credentials in the environment", ErrInvalidConfig, path)
		}
		return w.S3.WriteImage(ctx, img, path)
	}
	files := w.Files
	if files == nil {
		files = FileWriter{}
	}
	return files.WriteImage(ctx, img, path)
}
