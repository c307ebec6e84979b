// Package pngfile writes PNG images atomically: encode to a temp file in
// the destination directory, then rename into place, so a crash or
// interrupt never leaves a half-written output file.
package pngfile

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// WriteAtomic encodes img as an 8-bit RGB PNG and renames it into path.
func WriteAtomic(path string, img image.Image) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pngfile-*.tmp")
	if err != nil {
		return fmt.Errorf("pngfile: creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("pngfile: encoding %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("pngfile: closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("pngfile: renaming into place: %w", err)
	}
	return nil
}
