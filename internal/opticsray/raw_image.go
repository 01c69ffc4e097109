package opticsray

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SaveRawRGB64 writes linear pixel colors before 8-bit conversion.
// Header: width, height as int32 (little-endian). Body: row-major R,G,B float64.
func SaveRawRGB64(path string, size IntegerSize, pixels ColorBatch) error {
	if err := size.validate(); err != nil {
		return err
	}
	if pixels.Len() != size.Pixels() {
		return fmt.Errorf("%w: %d pixel colors for a %s image", ErrShapeMismatch, pixels.Len(), size)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, [2]int32{int32(size.Width), int32(size.Height)}); err != nil {
		return err
	}
	buf := make([]float64, 0, 3*pixels.Len())
	for i := 0; i < pixels.Len(); i++ {
		buf = append(buf, pixels.R[i], pixels.G[i], pixels.B[i])
	}
	if err := binary.Write(w, binary.LittleEndian, buf); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// LoadRawRGB64 reads what SaveRawRGB64 wrote.
func LoadRawRGB64(path string) (IntegerSize, ColorBatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return IntegerSize{}, ColorBatch{}, err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var hdr [2]int32
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return IntegerSize{}, ColorBatch{}, fmt.Errorf("raw header: %w", err)
	}
	size := IntegerSize{Width: int(hdr[0]), Height: int(hdr[1])}
	if err := size.validate(); err != nil {
		return IntegerSize{}, ColorBatch{}, err
	}
	buf := make([]float64, 3*size.Pixels())
	if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return IntegerSize{}, ColorBatch{}, fmt.Errorf("%w: raw body shorter than %s", ErrShapeMismatch, size)
		}
		return IntegerSize{}, ColorBatch{}, err
	}
	c := NewColorBatch(size.Pixels(), RGB{})
	for i := range c.R {
		c.R[i], c.G[i], c.B[i] = buf[3*i], buf[3*i+1], buf[3*i+2]
	}
	return size, c, nil
}
