package pngfile

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteAtomicProducesDecodableImageAndNoLeftoverTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "1.png")

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 0xff})

	if err := WriteAtomic(path, img); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening written png: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding written png: %v", err)
	}
	if decoded.Bounds().Dx() != 4 || decoded.Bounds().Dy() != 4 {
		t.Fatalf("decoded bounds = %v, want 4x4", decoded.Bounds())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".pngfile-") {
			t.Fatalf("leftover temp file: %s", e.Name())
		}
	}
}

func TestWriteAtomicFailsOnUnwritableDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist", "1.png")
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if err := WriteAtomic(path, img); err == nil {
		t.Fatalf("expected an error writing into a nonexistent directory")
	}
}
