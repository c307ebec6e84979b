// Package compose renders a grid dump into the fixed-size RGB bitmap: each
// cell becomes a 32x32 tile, stamped from either the sprite sheets or the
// font rasterizer depending on which region of the grid it falls in.
package compose

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/dcssrec/ttyrecgen/dump"
	"github.com/dcssrec/ttyrecgen/fonttile"
	"github.com/dcssrec/ttyrecgen/screen"
	"github.com/dcssrec/ttyrecgen/sprites"
	"github.com/dcssrec/ttyrecgen/vtcolor"
)

var blackOpaque = color.RGBA{A: 0xff}

const tileSize = 32

// Width and Height are the fixed output bitmap dimensions.
const (
	Width  = screen.Cols * tileSize
	Height = screen.Rows * tileSize
)

// viewportCols and viewportRows bound the region rendered from sprite
// sheets; everything outside is rendered as font tiles.
const (
	viewportCols = 38
	viewportRows = 18
)

// Renderer composites grid dumps using a fixed set of sprite sheets and a
// font rasterizer. It holds no per-frame state and is safe to share across
// worker goroutines.
type Renderer struct {
	sheets *sprites.SheetSet
	font   *fonttile.Renderer
}

// NewRenderer wires a sprite sheet set and font rasterizer together.
func NewRenderer(sheets *sprites.SheetSet, font *fonttile.Renderer) *Renderer {
	return &Renderer{sheets: sheets, font: font}
}

// Render stamps every record in records into a Width x Height RGB bitmap.
func (r *Renderer) Render(records []dump.Record) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	for _, rec := range records {
		tile := r.tile(rec)
		dstRect := image.Rect(rec.Col*tileSize, rec.Row*tileSize, rec.Col*tileSize+tileSize, rec.Row*tileSize+tileSize)
		draw.Draw(img, dstRect, tile, image.Point{}, draw.Src)
	}
	return img
}

func (r *Renderer) tile(rec dump.Record) *image.RGBA {
	if rec.Col < viewportCols && rec.Row < viewportRows {
		return r.spriteTile(rec)
	}
	return r.fontTile(rec)
}

// spriteTile crops the looked-up sprite rectangle and centers it within a
// 32x32 tile, padding the remainder with black.
func (r *Renderer) spriteTile(rec dump.Record) *image.RGBA {
	ref := sprites.Lookup(vtcolor.Color(rec.FgID), vtcolor.Color(rec.BgID), rec.Glyph)
	sprite := r.sheets.Crop(ref)

	out := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
	// out starts zeroed, i.e. fully black/transparent; set alpha explicitly
	// so it composites as opaque black rather than transparent.
	draw.Draw(out, out.Bounds(), image.NewUniform(blackOpaque), image.Point{}, draw.Src)

	offX := (tileSize - ref.W) / 2
	offY := (tileSize - ref.H) / 2
	dstRect := image.Rect(offX, offY, offX+ref.W, offY+ref.H)
	draw.Draw(out, dstRect, sprite, image.Point{}, draw.Src)
	return out
}

func (r *Renderer) fontTile(rec dump.Record) *image.RGBA {
	fg := vtcolor.Color(rec.FgID)
	bg := vtcolor.Color(rec.BgID)
	return r.font.RenderTile(fg, bg, rec.Glyph, fg.IsBright())
}
