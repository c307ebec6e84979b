// Package sprites loads the six pre-rendered sprite sheets and holds the
// fixed (fg, bg, glyph) -> sprite-rectangle lookup table the compositor
// uses for in-game viewport cells.
package sprites

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"os"
	"path/filepath"
)

// SheetID names one of the six sprite sheets.
type SheetID int

const (
	SheetPlayer SheetID = iota
	SheetWall
	SheetFloor
	SheetFeat
	SheetMain
	SheetIcons
)

var sheetFilenames = map[SheetID]string{
	SheetPlayer: "player.png",
	SheetWall:   "wall.png",
	SheetFloor:  "floor.png",
	SheetFeat:   "feat.png",
	SheetMain:   "main.png",
	SheetIcons:  "icons.png",
}

// SheetSet holds all six decoded sheets as RGBA images, ready for cropping.
type SheetSet struct {
	sheets map[SheetID]*image.RGBA
}

// Load decodes every sheet PNG from dir. A missing or unreadable sheet is a
// fatal resource error.
func Load(dir string) (*SheetSet, error) {
	images := make(map[SheetID]image.Image, len(sheetFilenames))
	for id, name := range sheetFilenames {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("sprites: opening %s: %w", path, err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("sprites: decoding %s: %w", path, err)
		}
		images[id] = img
	}
	return NewSheetSet(images), nil
}

// NewSheetSet assembles a SheetSet directly from already-decoded sheet
// images, for callers that have their own decode path and for tests that
// don't want to read PNGs from disk.
func NewSheetSet(images map[SheetID]image.Image) *SheetSet {
	ss := &SheetSet{sheets: make(map[SheetID]*image.RGBA, len(images))}
	for id, img := range images {
		rgba := image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
		ss.sheets[id] = rgba
	}
	return ss
}

// Crop returns the w x h rectangle at (x, y) in the named sheet, RGB only.
// The sheets are RGBA PNGs with real transparency; draw.Draw alone would
// carry that alpha verbatim into the output, so every pixel's alpha is
// forced to fully opaque after the copy.
func (ss *SheetSet) Crop(ref SpriteRef) *image.RGBA {
	src := ss.sheets[ref.Sheet]
	rect := image.Rect(ref.X, ref.Y, ref.X+ref.W, ref.Y+ref.H)
	out := image.NewRGBA(image.Rect(0, 0, ref.W, ref.H))
	draw.Draw(out, out.Bounds(), src, rect.Min, draw.Src)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}
