// Package fonttile rasterizes single glyphs into 32x32 tiles using a
// bundled monospaced font, for every grid cell the sprite lookup doesn't
// cover.
package fonttile

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/dcssrec/ttyrecgen/vtcolor"
)

const (
	tileSize = 32
	fontSize = 28
	fontDPI  = 72
)

// glyphOffset is the pixel offset at which the glyph is drawn within the
// tile. The negative Y aligns the baseline for this font.
var glyphOffset = image.Pt(0, -1)

// Renderer draws glyphs with the regular and bold faces of a collection
// font (TTC), e.g. Menlo.ttc index 0 regular / index 1 bold.
type Renderer struct {
	regular font.Face
	bold    font.Face
}

// NewRenderer loads a TrueType collection from path and builds the regular
// and bold faces used for font-tile rendering.
func NewRenderer(path string) (*Renderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fonttile: reading %s: %w", path, err)
	}
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("fonttile: parsing %s: %w", path, err)
	}

	regularFont, err := coll.Font(0)
	if err != nil {
		return nil, fmt.Errorf("fonttile: %s has no regular face: %w", path, err)
	}
	boldFont, err := coll.Font(1)
	if err != nil {
		return nil, fmt.Errorf("fonttile: %s has no bold face: %w", path, err)
	}

	opts := &opentype.FaceOptions{Size: fontSize, DPI: fontDPI, Hinting: font.HintingFull}
	regularFace, err := opentype.NewFace(regularFont, opts)
	if err != nil {
		return nil, err
	}
	boldFace, err := opentype.NewFace(boldFont, opts)
	if err != nil {
		return nil, err
	}

	return &Renderer{regular: regularFace, bold: boldFace}, nil
}

// RenderTile fills a 32x32 tile with bg, then draws glyph in fg using the
// bold face iff bold is set.
func (r *Renderer) RenderTile(fg, bg vtcolor.Color, glyph rune, bold bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(rgbColor(bg.RGB())), image.Point{}, draw.Src)

	face := r.regular
	if bold {
		face = r.bold
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(rgbColor(fg.RGB())),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(glyphOffset.X),
			Y: fixed.I(tileSize + glyphOffset.Y),
		},
	}
	d.DrawString(string(glyph))
	return img
}

func rgbColor(c vtcolor.RGB) color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
