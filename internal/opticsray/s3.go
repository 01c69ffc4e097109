package opticsray

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	s3Scheme      = "s3://"
	UploadTimeout = 10 * time.Second
)

// S3Writer uploads encoded images to s3://bucket/key.
// A key ending in "/" (or no key) gets a random name with a .png extension.
type S3Writer struct {
	Client  s3iface.S3API
	Timeout time.Duration
}

// NewS3WriterFromEnv reads S3_ACCESS_KEY, S3_SECRET_KEY, S3_ENDPOINT and S3_REGION.
func NewS3WriterFromEnv() (*S3Writer, error) {
	access, secret := os.Getenv("S3_ACCESS_KEY"), os.Getenv("S3_SECRET_KEY")
	if access == "" || secret == "" {
		return nil, fmt.Errorf("%w: S3_ACCESS_KEY and S3_SECRET_KEY must be set", ErrInvalidConfig)
	}
	cfg := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(access, secret, ""),
		Region:           aws.String(os.Getenv("S3_REGION")),
		S3ForcePathStyle: aws.Bool(true),
	}
	if ep := os.Getenv("S3_ENDPOINT"); ep != "" {
		cfg.Endpoint = aws.String(ep)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("create S3 session: %w", err)
	}
	return &S3Writer{Client: s3.New(sess), Timeout: UploadTimeout}, nil
}

// splitS3Path turns s3://bucket/some/key into ("bucket", "some/key").
func splitS3Path(p string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(p, s3Scheme)
	if rest == p {
		return "", "", fmt.Errorf("%w: not an s3 path: %q", ErrInvalidConfig, p)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%w: s3 path without bucket: %q", ErrInvalidConfig, p)
	}
	if key == "" || strings.HasSuffix(key, "/") {
		key += uuid.NewString() + ".png"
	}
	return bucket, key, nil
}

func contentType(f imaging.Format) string {
	switch f {
	case imaging.JPEG:
		return "image/jpeg"
	case imaging.GIF:
		return "image/gif"
	case imaging.TIFF:
		return "image/tiff"
	case imaging.BMP:
		return "image/bmp"
	}
	return "image/png"
}

func (w *S3Writer) WriteImage(ctx context.Context, img image.Image, p string) error {
	bucket, key, err := splitS3Path(p)
	if err != nil {
		return err
	}
	format, err := imaging.FormatFromFilename(key)
	if err != nil {
		format = imaging.PNG
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	timeout := w.Timeout
	if timeout <= 0 {
		timeout = UploadTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	size := int64(buf.Len())
	_, err = w.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType(format)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", path.Join(bucket, key), err)
	}
	fmt.Printf("[S3] uploaded s3://%s/%s (%d bytes)\n", bucket, key, size)
	return nil
}
