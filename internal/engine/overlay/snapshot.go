package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// ErrUnsupportedFormat is returned for snapshot formats other than png
// and webp.
var ErrUnsupportedFormat = errors.New("unsupported snapshot format")

// SnapshotWriter saves overlay images as numbered files.
type SnapshotWriter struct {
	outputDir string
	prefix    string
	format    string
	scale     float64
}

// NewSnapshotWriter creates a writer. format is "png" or "webp"; scale
// resizes each image before encoding (1 keeps the original size).
func NewSnapshotWriter(outputDir, prefix, format string, scale float64) (*SnapshotWriter, error) {
	format = strings.ToLower(format)
	switch format {
	case "png", "webp":
	case "":
		format = "png"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if scale <= 0 {
		scale = 1
	}
	if prefix == "" {
		prefix = "overlay"
	}
	return &SnapshotWriter{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		scale:     scale,
	}, nil
}

// Filename returns the path the snapshot of frame would be written to.
func (sw *SnapshotWriter) Filename(frame int) string {
	name := fmt.Sprintf("%s_%06d.%s", sw.prefix, frame, sw.format)
	if sw.outputDir != "" {
		name = filepath.Join(sw.outputDir, name)
	}
	return name
}

// Write encodes img as the snapshot of frame and returns the file path.
func (sw *SnapshotWriter) Write(frame int, img image.Image) (string, error) {
	// Create output directory if needed
	if sw.outputDir != "" {
		if err := os.MkdirAll(sw.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sw.Filename(frame)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	img = sw.scaled(img)
	switch sw.format {
	case "webp":
		err = nativewebp.Encode(file, img, nil)
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", sw.format, err)
	}
	return filename, nil
}

func (sw *SnapshotWriter) scaled(img image.Image) image.Image {
	if sw.scale == 1 {
		return img
	}
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*sw.scale))
	h := max(1, int(float64(b.Dy())*sw.scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
