// Package screen maintains the 81x29 character grid that the decoder's
// events are applied against: cursor, scroll region, current graphic
// rendition, and the cell contents themselves.
package screen

import (
	"sync"

	"github.com/dcssrec/ttyrecgen/decode"
	"github.com/dcssrec/ttyrecgen/vtcolor"
)

// Cols and Rows are the fixed grid dimensions.
const (
	Cols = 81
	Rows = 29
)

// Cell is one character position: its glyph and the colors it was drawn
// with.
type Cell struct {
	Fg    vtcolor.Color
	Bg    vtcolor.Color
	Glyph rune
}

func blankCell() Cell {
	return Cell{Fg: vtcolor.DefaultFg, Bg: vtcolor.DefaultBg, Glyph: ' '}
}

// Grid is the virtual screen. It is safe for concurrent readers via RLock
// while the emulator mutates it sequentially under Lock.
type Grid struct {
	mu    sync.RWMutex
	cells [Rows][Cols]Cell

	cursorCol int
	cursorRow int

	scrollTop    int // inclusive, as given directly (default 1)
	scrollBottom int // inclusive, as given directly (default 24)

	fg, bg     vtcolor.Color
	brightMode bool
}

// NewGrid returns a grid at the home position with default colors and the
// default scroll region.
func NewGrid() *Grid {
	g := &Grid{
		scrollTop:    1,
		scrollBottom: 24,
		fg:           vtcolor.DefaultFg,
		bg:           vtcolor.DefaultBg,
	}
	g.ClearAll()
	return g
}

// Cell returns the cell at (row, col). Both are 0-based.
func (g *Grid) Cell(row, col int) Cell {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cells[row][col]
}

// Cursor returns the current 0-based cursor position.
func (g *Grid) Cursor() (col, row int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cursorCol, g.cursorRow
}

// ClearAll resets every cell to the default blank, without touching the
// cursor, scroll region, or graphic rendition.
func (g *Grid) ClearAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	blank := blankCell()
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			g.cells[r][c] = blank
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Apply mutates the grid according to a single decoded event. decode has
// already rejected anything outside the corpus's known subset, so Apply
// never fails.
func (g *Grid) Apply(ev decode.Event) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch ev.Kind {
	case decode.PrintGlyph:
		g.printGlyph(ev.Glyph)
	case decode.Backspace:
		g.backspace()
	case decode.CR:
		g.carriageReturn()
	case decode.LF:
		g.lineFeed()
	case decode.CursorUp:
		g.cursorUp(ev.N)
	case decode.CursorForward:
		g.cursorForward(ev.N)
	case decode.CursorAbsoluteCol:
		g.cursorAbsoluteCol(ev.N)
	case decode.CursorAbsoluteRow:
		g.cursorAbsoluteRow(ev.N)
	case decode.CursorPosition:
		g.cursorPosition(ev.Col, ev.Row)
	case decode.EraseInLine:
		g.eraseInLine(ev.N)
	case decode.EraseInDisplay:
		g.eraseInDisplay(ev.N)
	case decode.EraseChars:
		g.eraseChars(ev.N)
	case decode.DeleteCharsBeforeCursor:
		g.deleteCharsBeforeCursor(ev.N)
	case decode.InsertLines:
		g.insertLines(ev.N)
	case decode.DeleteLines:
		g.deleteLines(ev.N)
	case decode.ScrollUp:
		g.scrollUp(ev.N)
	case decode.ScrollDown:
		g.scrollDown(ev.N)
	case decode.ReverseIndex:
		g.reverseIndex()
	case decode.SetScrollRegion:
		g.setScrollRegion(ev.Col, ev.Row)
	case decode.SGR:
		g.sgr(ev.N)
	case decode.Ignored:
		// no effect on the grid
	}
}

func (g *Grid) printGlyph(r rune) {
	g.cells[g.cursorRow][g.cursorCol] = Cell{Fg: g.fg, Bg: g.bg, Glyph: r}
	g.advanceColWrap()
	g.evaluateScroll()
}

// advanceColWrap moves the cursor one column forward, wrapping to column 0
// of the next row at the right edge. It does not evaluate the scroll rule;
// callers that should scroll do so themselves.
func (g *Grid) advanceColWrap() {
	g.cursorCol++
	if g.cursorCol >= Cols {
		g.cursorCol = 0
		g.cursorRow++
		if g.cursorRow >= Rows {
			g.cursorRow = Rows - 1
		}
	}
}

func (g *Grid) backspace() {
	if g.cursorCol > 0 {
		g.cursorCol--
	}
	g.cells[g.cursorRow][g.cursorCol] = blankCell()
}

func (g *Grid) carriageReturn() {
	g.cursorCol = 0
	g.evaluateScroll()
}

func (g *Grid) lineFeed() {
	g.cursorCol = 0
	g.cursorRow++
	if g.cursorRow >= Rows {
		g.cursorRow = Rows - 1
	}
	g.evaluateScroll()
}

// evaluateScroll implements the scroll rule: once the cursor has moved
// past the bottom margin, the scroll region shifts up by one row and the
// cursor is pulled back onto the bottom margin.
func (g *Grid) evaluateScroll() {
	if g.cursorRow > g.scrollBottom {
		g.shiftRegionUp(g.scrollTop, g.scrollBottom)
		g.cursorRow--
	}
}

// shiftRegionUp overwrites every row in [top, bottom-1] with its successor
// and blanks row bottom.
func (g *Grid) shiftRegionUp(top, bottom int) {
	blank := blankCell()
	for r := top; r < bottom; r++ {
		if r+1 >= 0 && r+1 < Rows && r >= 0 && r < Rows {
			g.cells[r] = g.cells[r+1]
		}
	}
	if bottom >= 0 && bottom < Rows {
		for c := 0; c < Cols; c++ {
			g.cells[bottom][c] = blank
		}
	}
}

// shiftRegionDown overwrites every row in [top+1, bottom] with its
// predecessor and blanks row top.
func (g *Grid) shiftRegionDown(top, bottom int) {
	blank := blankCell()
	for r := bottom; r > top; r-- {
		if r >= 0 && r < Rows && r-1 >= 0 && r-1 < Rows {
			g.cells[r] = g.cells[r-1]
		}
	}
	if top >= 0 && top < Rows {
		for c := 0; c < Cols; c++ {
			g.cells[top][c] = blank
		}
	}
}

func (g *Grid) cursorUp(n int) {
	if n == 0 {
		n = 1
	}
	g.cursorRow = clamp(g.cursorRow-n, 0, Rows-1)
}

func (g *Grid) cursorForward(n int) {
	if n == 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		g.advanceColWrap()
	}
}

func (g *Grid) cursorAbsoluteCol(n int) {
	if n == 0 {
		n = 1
	}
	g.cursorCol = clamp(n-1, 0, Cols-1)
}

func (g *Grid) cursorAbsoluteRow(n int) {
	if n == 0 {
		n = 1
	}
	g.cursorRow = clamp(n-1, 0, Rows-1)
}

// cursorPosition places the cursor absolutely. Both col and row are 1-based
// ANSI values as decoded; row==0 is coerced to 1 before translation. col==0
// is a deliberate exception: it is NOT remapped, and is used directly as
// the internal (already 0-based) column.
func (g *Grid) cursorPosition(col, row int) {
	if row == 0 {
		row = 1
	}
	internalRow := row - 1

	var internalCol int
	if col == 0 {
		internalCol = 0
	} else {
		internalCol = col - 1
	}

	g.cursorCol = clamp(internalCol, 0, Cols-1)
	g.cursorRow = clamp(internalRow, 0, Rows-1)
	g.evaluateScroll()
}

func (g *Grid) eraseInDisplay(mode int) {
	blank := blankCell()
	switch mode {
	case 0:
		g.clearRowFrom(g.cursorRow, g.cursorCol, Cols-1)
		for r := g.cursorRow + 1; r < Rows; r++ {
			g.clearRowFrom(r, 0, Cols-1)
		}
	case 1:
		g.clearRowFrom(g.cursorRow, 0, g.cursorCol)
		for r := 0; r < g.cursorRow; r++ {
			g.clearRowFrom(r, 0, Cols-1)
		}
	case 2, 3:
		for r := 0; r < Rows; r++ {
			for c := 0; c < Cols; c++ {
				g.cells[r][c] = blank
			}
		}
	}
}

func (g *Grid) eraseInLine(mode int) {
	switch mode {
	case 0:
		g.clearRowFrom(g.cursorRow, g.cursorCol, Cols-1)
	case 1:
		g.clearRowFrom(g.cursorRow, 0, g.cursorCol)
	case 2:
		g.clearRowFrom(g.cursorRow, 0, Cols-1)
	}
}

func (g *Grid) clearRowFrom(row, from, to int) {
	if row < 0 || row >= Rows {
		return
	}
	blank := blankCell()
	for c := from; c <= to && c < Cols; c++ {
		if c >= 0 {
			g.cells[row][c] = blank
		}
	}
}

func (g *Grid) eraseChars(n int) {
	blank := blankCell()
	for c := g.cursorCol; c < g.cursorCol+n && c < Cols; c++ {
		g.cells[g.cursorRow][c] = blank
	}
}

func (g *Grid) deleteCharsBeforeCursor(n int) {
	blank := blankCell()
	for c := g.cursorCol - n; c < g.cursorCol; c++ {
		if c >= 0 && c < Cols {
			g.cells[g.cursorRow][c] = blank
		}
	}
}

func (g *Grid) insertLines(n int) {
	for i := 0; i < n; i++ {
		g.shiftRegionDown(g.cursorRow, g.scrollBottom)
	}
}

// deleteLines treats n==0 as 1, matching the corpus's line-delete default.
func (g *Grid) deleteLines(n int) {
	if n == 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		g.shiftRegionUp(g.cursorRow, g.scrollBottom)
	}
}

func (g *Grid) scrollUp(n int) {
	for i := 0; i < n; i++ {
		g.shiftRegionUp(g.scrollTop, g.scrollBottom)
	}
}

func (g *Grid) scrollDown(n int) {
	for i := 0; i < n; i++ {
		g.shiftRegionDown(g.scrollTop, g.scrollBottom)
	}
}

func (g *Grid) reverseIndex() {
	g.shiftRegionDown(g.scrollTop-1, g.scrollBottom)
}

func (g *Grid) setScrollRegion(top, bottom int) {
	g.scrollTop = top
	g.scrollBottom = bottom
}

// sgr applies a single decomposed SGR parameter, biasing 30-37/40-47
// toward their bright palette entries while bright mode (SGR 1) is active.
func (g *Grid) sgr(n int) {
	switch {
	case n == 0:
		g.fg = vtcolor.DefaultFg
		g.bg = vtcolor.DefaultBg
		g.brightMode = false
	case n == 1:
		g.brightMode = true
	case n == 39:
		g.fg = vtcolor.DefaultFg
	case n == 49:
		g.bg = vtcolor.DefaultBg
	case n >= 30 && n <= 37:
		g.fg = vtcolor.FromBasic(uint8(n-30), g.brightMode)
	case n >= 40 && n <= 47:
		g.bg = vtcolor.FromBasic(uint8(n-40), g.brightMode)
	case n >= 90 && n <= 97:
		g.fg = vtcolor.FromBasic(uint8(n-90), true)
	case n >= 100 && n <= 107:
		g.bg = vtcolor.FromBasic(uint8(n-100), true)
	}
}
