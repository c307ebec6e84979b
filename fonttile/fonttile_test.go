package fonttile

import (
	"image"
	"image/color"
	"testing"

	"github.com/dcssrec/ttyrecgen/vtcolor"
)

func TestRgbColorMatchesPalette(t *testing.T) {
	got := rgbColor(vtcolor.BrightRed.RGB())
	want := color.RGBA{R: 255, G: 0, B: 0, A: 0xff}
	if got != want {
		t.Fatalf("rgbColor(BrightRed) = %+v, want %+v", got, want)
	}
}

func TestGlyphOffsetIsIntentionallyNegativeY(t *testing.T) {
	// This font's baseline needs a one-pixel upward nudge.
	if glyphOffset != (image.Point{X: 0, Y: -1}) {
		t.Fatalf("glyphOffset = %+v, want (0,-1)", glyphOffset)
	}
}
