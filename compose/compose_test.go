package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/dcssrec/ttyrecgen/dump"
	"github.com/dcssrec/ttyrecgen/sprites"
	"github.com/dcssrec/ttyrecgen/vtcolor"
)

// fakeSheets builds a SheetSet large enough to cover every sheet the
// lookup table references, each sheet filled with a distinct translucent
// color so the alpha-dropping and centering behavior are both observable.
func fakeSheets(t *testing.T) *sprites.SheetSet {
	t.Helper()
	fill := func(w, h int, c color.RGBA) *image.RGBA {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetRGBA(x, y, c)
			}
		}
		return img
	}
	return sprites.NewSheetSet(map[sprites.SheetID]image.Image{
		sprites.SheetPlayer: fill(2000, 2000, color.RGBA{R: 10, G: 20, B: 30, A: 128}),
		sprites.SheetWall:   fill(500, 500, color.RGBA{R: 40, G: 50, B: 60, A: 128}),
		sprites.SheetFloor:  fill(700, 100, color.RGBA{R: 70, G: 80, B: 90, A: 128}),
		sprites.SheetFeat:   fill(300, 300, color.RGBA{R: 100, G: 110, B: 120, A: 128}),
		sprites.SheetMain:   fill(1000, 1000, color.RGBA{R: 130, G: 140, B: 150, A: 128}),
		sprites.SheetIcons:  fill(200, 200, color.RGBA{R: 160, G: 170, B: 180, A: 128}),
	})
}

func TestRenderDefaultSpriteIsOpaqueAndFillsTile(t *testing.T) {
	r := NewRenderer(fakeSheets(t), nil)
	records := []dump.Record{
		{Row: 0, Col: 0, FgID: int(vtcolor.Magenta), BgID: int(vtcolor.Cyan), Glyph: 'Ω'},
	}
	img := r.Render(records)

	// DefaultRef is a 32x32 rectangle from SheetFloor, exactly filling the
	// tile: every pixel should be the floor sheet's color, fully opaque.
	for y := 0; y < tileSize; y++ {
		for x := 0; x < tileSize; x++ {
			c := img.RGBAAt(x, y)
			if c.R != 70 || c.G != 80 || c.B != 90 {
				t.Fatalf("pixel (%d,%d) = %+v, want floor sheet color", x, y, c)
			}
			if c.A != 0xff {
				t.Fatalf("pixel (%d,%d) alpha = %d, want fully opaque", x, y, c.A)
			}
		}
	}
}

func TestRenderSmallSpriteIsCenteredWithBlackPadding(t *testing.T) {
	r := NewRenderer(fakeSheets(t), nil)
	// (Yellow, Black, '>') looks up a 30x25 rectangle from SheetFeat,
	// centered within the tile at offset (1, 3).
	records := []dump.Record{
		{Row: 0, Col: 0, FgID: int(vtcolor.Yellow), BgID: int(vtcolor.Black), Glyph: '>'},
	}
	img := r.Render(records)

	corner := img.RGBAAt(0, 0)
	if corner.R != 0 || corner.G != 0 || corner.B != 0 || corner.A != 0xff {
		t.Fatalf("padding pixel (0,0) = %+v, want opaque black", corner)
	}
	inside := img.RGBAAt(1, 3)
	if inside.R != 100 || inside.G != 110 || inside.B != 120 || inside.A != 0xff {
		t.Fatalf("sprite pixel (1,3) = %+v, want SheetFeat color, fully opaque", inside)
	}
}

func TestRenderPlacesEachTileAtItsGridPosition(t *testing.T) {
	r := NewRenderer(fakeSheets(t), nil)
	records := []dump.Record{
		{Row: 0, Col: 0, FgID: int(vtcolor.White), BgID: int(vtcolor.Black), Glyph: ' '},
		{Row: 2, Col: 5, FgID: int(vtcolor.White), BgID: int(vtcolor.Black), Glyph: ' '},
	}
	img := r.Render(records)
	bounds := img.Bounds()
	if bounds.Dx() != Width || bounds.Dy() != Height {
		t.Fatalf("image size = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), Width, Height)
	}

	c := img.RGBAAt(5*tileSize, 2*tileSize)
	if c.R != 70 || c.G != 80 || c.B != 90 {
		t.Fatalf("tile at (row=2,col=5) origin = %+v, want floor sheet color", c)
	}
}
