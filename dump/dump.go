// Package dump implements the grid snapshotter: turning a screen.Grid into
// a flat (row, col, fg_id, bg_id, glyph) record table, diffing against the
// previously emitted snapshot, and the CSV codec used to persist it.
package dump

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dcssrec/ttyrecgen/screen"
	"github.com/dcssrec/ttyrecgen/vtcolor"
)

// Record is one cell of a grid dump.
type Record struct {
	Row, Col int
	FgID     int
	BgID     int
	Glyph    rune
}

// Snapshot turns the grid's current contents into row-major records.
func Snapshot(g *screen.Grid) []Record {
	records := make([]Record, 0, screen.Rows*screen.Cols)
	for r := 0; r < screen.Rows; r++ {
		for c := 0; c < screen.Cols; c++ {
			cell := g.Cell(r, c)
			records = append(records, Record{
				Row: r, Col: c,
				FgID: int(cell.Fg), BgID: int(cell.Bg),
				Glyph: cell.Glyph,
			})
		}
	}
	return records
}

// Snapshotter deduplicates consecutive identical dumps: a dump is only
// worth emitting when it differs from the last one emitted.
type Snapshotter struct {
	have bool
	last []Record
}

// Dump returns the grid's current records and whether they should be
// emitted (differ from the previous call, or this is the first call).
func (s *Snapshotter) Dump(g *screen.Grid) ([]Record, bool) {
	records := Snapshot(g)
	if s.have && equalRecords(s.last, records) {
		return records, false
	}
	s.have = true
	s.last = records
	return records, true
}

func equalRecords(a, b []Record) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// WriteCSV writes records in row-major order, minimal quoting.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.Row),
			strconv.Itoa(rec.Col),
			strconv.Itoa(rec.FgID),
			strconv.Itoa(rec.BgID),
			string(rec.Glyph),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a dump CSV back into records.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 5
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("dump: line %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (Record, error) {
	var rec Record
	var err error
	if rec.Row, err = strconv.Atoi(row[0]); err != nil {
		return rec, err
	}
	if rec.Col, err = strconv.Atoi(row[1]); err != nil {
		return rec, err
	}
	if rec.FgID, err = strconv.Atoi(row[2]); err != nil {
		return rec, err
	}
	if rec.BgID, err = strconv.Atoi(row[3]); err != nil {
		return rec, err
	}
	if !vtcolor.Valid(rec.FgID) || !vtcolor.Valid(rec.BgID) {
		return rec, fmt.Errorf("color id out of range: fg=%d bg=%d", rec.FgID, rec.BgID)
	}
	glyphs := []rune(row[4])
	if len(glyphs) != 1 {
		return rec, fmt.Errorf("glyph field must be exactly one rune, got %q", row[4])
	}
	rec.Glyph = glyphs[0]
	return rec, nil
}
