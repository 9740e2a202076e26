package overlay

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

func TestSnapshotPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sw, err := NewSnapshotWriter(dir, "bbox", "png", 0.5)
	if err != nil {
		t.Fatal(err)
	}

	path, err := sw.Write(7, testImage())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if want := filepath.Join(dir, "bbox_000007.png"); path != want {
		t.Errorf("Write() path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("snapshot size = %v, want 20x10", b)
	}
}

func TestSnapshotWebP(t *testing.T) {
	sw, err := NewSnapshotWriter(t.TempDir(), "", "WEBP", 1)
	if err != nil {
		t.Fatal(err)
	}
	path, err := sw.Write(0, testImage())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if filepath.Base(path) != "overlay_000000.webp" {
		t.Errorf("Write() path = %q, want overlay_000000.webp", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WEBP")) {
		t.Errorf("file does not start with a RIFF/WEBP header")
	}
}

func TestSnapshotUnsupportedFormat(t *testing.T) {
	_, err := NewSnapshotWriter(t.TempDir(), "", "bmp", 1)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("NewSnapshotWriter(bmp) error = %v, want ErrUnsupportedFormat", err)
	}
}
