package sprites

import (
	"testing"

	"github.com/dcssrec/ttyrecgen/vtcolor"
)

func TestLookupKnownEntry(t *testing.T) {
	ref := Lookup(vtcolor.Yellow, vtcolor.Black, '#')
	if ref.Sheet != SheetWall || ref.X != 0 || ref.Y != 0 {
		t.Fatalf("wall lookup = %+v, want SheetWall (0,0)", ref)
	}
}

func TestLookupFallsBackToDefault(t *testing.T) {
	ref := Lookup(vtcolor.Magenta, vtcolor.Cyan, 'Ω')
	if ref != DefaultRef {
		t.Fatalf("lookup of an unknown key = %+v, want DefaultRef %+v", ref, DefaultRef)
	}
}

func TestLookupPreservesDuplicateAliasedEntries(t *testing.T) {
	// Sleeping (blue background) and alert (black background) variants of
	// the same creature intentionally share a sprite rectangle.
	alert := Lookup(vtcolor.Green, vtcolor.Black, 'l')
	sleeping := Lookup(vtcolor.Green, vtcolor.Blue, 'l')
	if alert != sleeping {
		t.Fatalf("alert=%+v sleeping=%+v, want equal sprite rects", alert, sleeping)
	}
}
