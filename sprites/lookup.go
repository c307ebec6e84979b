package sprites

import "github.com/dcssrec/ttyrecgen/vtcolor"

// SpriteRef names a rectangle within one sprite sheet.
type SpriteRef struct {
	Sheet SheetID
	X, Y  int
	W, H  int
}

// DefaultRef is used for any (fg, bg, glyph) combination absent from the
// lookup table: a floor tile.
var DefaultRef = SpriteRef{Sheet: SheetFloor, X: 32, Y: 0, W: 32, H: 32}

type key struct {
	Fg, Bg vtcolor.Color
	Glyph  rune
}

// table is the corpus's fixed (fg, bg, glyph) -> sprite dispatch, data only.
// Entries are transcribed verbatim from the reference dispatch cascade,
// including pairs that map visually-equivalent cells (e.g. a creature
// awake vs. asleep) to the same rectangle: those are intentional and must
// not be merged away.
var table = map[key]SpriteRef{
	// floor / terrain
	{vtcolor.White, vtcolor.Black, ' '}: {SheetFloor, 0, 0, 32, 32},
	{vtcolor.Blue, vtcolor.Black, ' '}:  {SheetFloor, 0, 0, 32, 32},
	{vtcolor.White, vtcolor.Black, '.'}: {SheetFloor, 64, 0, 32, 32},
	{vtcolor.Blue, vtcolor.Black, '.'}:  {SheetFloor, 544, 0, 32, 32},
	{vtcolor.Blue, vtcolor.Black, '≈'}:  {SheetFloor, 576, 0, 32, 32},

	// walls
	{vtcolor.Yellow, vtcolor.Black, '#'}: {SheetWall, 0, 0, 32, 32},
	{vtcolor.Blue, vtcolor.Black, '#'}:   {SheetWall, 352, 32, 32, 32},

	// stairs / traps
	{vtcolor.Yellow, vtcolor.Black, '>'}:            {SheetFeat, 192, 224, 30, 25},
	{vtcolor.BrightWhite, vtcolor.BrightBlack, '>'}:  {SheetFeat, 128, 224, 32, 32},
	{vtcolor.Green, vtcolor.Black, '<'}:              {SheetFeat, 160, 224, 32, 32},
	{vtcolor.Black, vtcolor.Green, '<'}:              {SheetFeat, 160, 224, 32, 32},
	{vtcolor.BrightBlue, vtcolor.BrightBlack, '<'}:   {SheetFeat, 96, 224, 32, 32},
	{vtcolor.BrightBlue, vtcolor.BrightBlack, '^'}:   {SheetFeat, 304, 192, 32, 22},

	// autotravel footstep markers
	{vtcolor.Black, vtcolor.Blue, '.'}:  {SheetIcons, 160, 32, 18, 16},
	{vtcolor.Black, vtcolor.White, '.'}: {SheetIcons, 160, 32, 18, 16},

	// gold / bloodstain
	{vtcolor.BrightYellow, vtcolor.BrightBlack, '$'}: {SheetMain, 0, 690, 30, 30},
	{vtcolor.Red, vtcolor.Black, '.'}:                {SheetMain, 190, 690, 30, 25},
	{vtcolor.Black, vtcolor.Red, '.'}:                {SheetMain, 190, 690, 30, 25},

	// player
	{vtcolor.Black, vtcolor.White, '@'}: {SheetPlayer, 331, 1766, 22, 30},
	{vtcolor.White, vtcolor.Black, '@'}: {SheetPlayer, 331, 1766, 22, 30},

	// bat
	{vtcolor.White, vtcolor.Black, 'b'}: {SheetPlayer, 127, 694, 32, 25},
	{vtcolor.White, vtcolor.Blue, 'b'}:  {SheetPlayer, 127, 694, 32, 25},

	// frilled lizard
	{vtcolor.Green, vtcolor.Black, 'l'}: {SheetPlayer, 249, 742, 28, 21},
	{vtcolor.Green, vtcolor.Blue, 'l'}:  {SheetPlayer, 249, 742, 28, 21},
	{vtcolor.Green, vtcolor.Black, '†'}: {SheetMain, 696, 690, 32, 20},

	// quoka
	{vtcolor.BrightWhite, vtcolor.BrightBlack, 'r'}: {SheetPlayer, 523, 742, 28, 25},
	{vtcolor.BrightWhite, vtcolor.BrightBlue, 'r'}:  {SheetPlayer, 523, 742, 28, 25},
	{vtcolor.BrightWhite, vtcolor.BrightBlack, '†'}: {SheetMain, 849, 690, 32, 21},

	// kobold
	{vtcolor.Yellow, vtcolor.Blue, 'K'}:  {SheetPlayer, 876, 1446, 30, 31},
	{vtcolor.Yellow, vtcolor.Black, 'K'}: {SheetPlayer, 876, 1446, 30, 31},

	// rat
	{vtcolor.Yellow, vtcolor.Black, 'r'}: {SheetPlayer, 400, 742, 31, 21},

	// giant cockroach
	{vtcolor.Yellow, vtcolor.Black, 'B'}: {SheetPlayer, 96, 694, 31, 29},
	{vtcolor.Black, vtcolor.Yellow, 'B'}: {SheetPlayer, 96, 694, 31, 29},

	// goblin
	{vtcolor.White, vtcolor.Blue, 'g'}:  {SheetPlayer, 851, 1446, 25, 26},
	{vtcolor.White, vtcolor.Black, 'g'}: {SheetPlayer, 851, 1446, 25, 26},

	// adder
	{vtcolor.Green, vtcolor.Black, 'S'}: {SheetPlayer, 406, 998, 32, 24},
	{vtcolor.Green, vtcolor.Blue, 'S'}:  {SheetPlayer, 406, 998, 32, 24},

	// ectoplasm
	{vtcolor.White, vtcolor.Blue, 'J'}:  {SheetPlayer, 528, 1318, 32, 24},
	{vtcolor.White, vtcolor.Black, 'J'}: {SheetPlayer, 528, 1318, 32, 24},

	// items
	{vtcolor.White, vtcolor.Black, '!'}:              {SheetMain, 910, 504, 25, 27},
	{vtcolor.Yellow, vtcolor.Black, ')'}:              {SheetMain, 809, 192, 32, 29},
	{vtcolor.Red, vtcolor.Black, '['}:                 {SheetMain, 137, 288, 29, 29},
	{vtcolor.Black, vtcolor.Red, '['}:                 {SheetMain, 137, 288, 29, 29},
	{vtcolor.BrightCyan, vtcolor.BrightBlack, ')'}:     {SheetMain, 851, 128, 28, 28},
	{vtcolor.Cyan, vtcolor.Black, '('}:                 {SheetMain, 633, 224, 15, 11},
	{vtcolor.BrightBlue, vtcolor.BrightBlack, '?'}:     {SheetMain, 433, 412, 27, 28},
	{vtcolor.White, vtcolor.Black, ')'}:                {SheetMain, 32, 128, 31, 29},
	{vtcolor.Cyan, vtcolor.Black, ')'}:                 {SheetMain, 437, 128, 17, 17},
}

// Lookup returns the sprite rectangle for a viewport cell, or DefaultRef if
// no entry matches.
func Lookup(fg, bg vtcolor.Color, glyph rune) SpriteRef {
	if ref, ok := table[key{fg, bg, glyph}]; ok {
		return ref
	}
	return DefaultRef
}
