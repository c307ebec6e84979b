package decode

import "strconv"

// state names the decoder's current position within an escape sequence.
// The shape mirrors a classic VT state machine: bytes are ground text
// until an ESC switches to escape mode, and CSI/charset/UTF-8 each have
// their own small continuation.
type state int

const (
	stateGround state = iota
	stateEscape
	stateCSI
	stateCharset
	stateUTF8
)

// Decoder turns raw ttyrec payload bytes into Events. It carries no grid
// state of its own; a sequence split across two Feed calls simply leaves
// the Decoder's state mid-sequence, so the next Feed call resumes directly
// without needing any buffered bytes. This implements "carry iff a
// sequence is incomplete" without the source's length-heuristic carry
// buffer.
type Decoder struct {
	state state

	csiParams []byte // raw bytes between CSI and the final byte, includes a leading '?' for private modes
	charsetG  byte   // pending charset designator ('(' or ')') awaiting its next byte

	utf8Buf [3]byte // lead + continuation bytes collected so far
	utf8Got int     // bytes collected into utf8Buf so far

	seqStart int // offset (in the cumulative byte stream) where the in-progress sequence began; used only for error messages
	offset   int // cumulative byte offset of the start of the current Feed call
}

// NewDecoder returns a Decoder ready to consume the first frame of a
// session.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// three-byte UTF-8 sequences recognized by the corpus's restricted glyph
// subset, keyed by (byte1, byte2) after the 0xE2 lead.
var utf8Table = map[[2]byte]rune{
	{0x80, 0xA0}: '†', // †
	{0x88, 0x86}: '∆', // ∆
	{0x88, 0x9E}: '∞', // ∞
	{0x88, 0xA9}: '∩', // ∩
	{0x89, 0x88}: '≈', // ≈
	{0x8C, 0xA0}: '⌠', // ⌠
	{0x96, 0x93}: '▓', // ▓
	{0x97, 0x8B}: '○', // ○
	{0x98, 0xBC}: '☼', // ☼
	{0x99, 0xA3}: '♣', // ♣
}

// private CSI modes (CSI ? n h / l) that are recognized but produce no
// screen effect.
var ignoredPrivateModes = map[int]bool{
	1: true, 7: true, 12: true, 25: true,
	1047: true, 1048: true, 1049: true,
	1051: true, 1052: true, 1060: true, 1061: true,
}

// Feed consumes chunk (one ttyrec frame's payload) and returns the Events it
// produced. A non-nil error is always a *FormatError and means the chunk
// contained a sequence outside the corpus's known subset; the Decoder
// should not be reused after an error.
func (d *Decoder) Feed(chunk []byte) ([]Event, error) {
	var events []Event

	emit := func(e Event) {
		events = append(events, e)
	}

	i := 0
	for i < len(chunk) {
		b := chunk[i]

		switch d.state {
		case stateGround:
			switch {
			case b == 0x1b:
				d.state = stateEscape
				d.seqStart = d.offset + i
			case b == 0x08:
				emit(Event{Kind: Backspace})
			case b == '\r':
				emit(Event{Kind: CR})
			case b == '\n':
				emit(Event{Kind: LF})
			case b == 0xE2:
				d.state = stateUTF8
				d.utf8Got = 1
				d.utf8Buf[0] = b
				d.seqStart = d.offset + i
			case b >= 0x20 && b < 0x80:
				emit(Event{Kind: PrintGlyph, Glyph: rune(b)})
			case b >= 0xC0:
				return events, &FormatError{Offset: d.offset + i, Msg: "unrecognized multi-byte UTF-8 lead byte"}
			default:
				return events, &FormatError{Offset: d.offset + i, Msg: "unrecognized control byte"}
			}
			i++

		case stateUTF8:
			d.utf8Buf[d.utf8Got] = b
			d.utf8Got++
			i++
			if d.utf8Got < 3 {
				continue
			}
			r, ok := utf8Table[[2]byte{d.utf8Buf[1], d.utf8Buf[2]}]
			if !ok {
				return events, &FormatError{Offset: d.seqStart, Msg: "unrecognized UTF-8 glyph sequence"}
			}
			emit(Event{Kind: PrintGlyph, Glyph: r})
			d.state = stateGround

		case stateEscape:
			switch b {
			case '[':
				d.state = stateCSI
				d.csiParams = d.csiParams[:0]
			case '(', ')':
				d.state = stateCharset
				d.charsetG = b
			case 'M':
				emit(Event{Kind: ReverseIndex})
				d.state = stateGround
			case '7', '8', '=', '>':
				emit(Event{Kind: Ignored})
				d.state = stateGround
			default:
				return events, &FormatError{Offset: d.seqStart, Msg: "unrecognized escape sequence"}
			}
			i++

		case stateCharset:
			// ESC ( B, ESC ) 0 and similar charset designations: the
			// second byte is accepted unconditionally and ignored.
			emit(Event{Kind: Ignored})
			d.state = stateGround
			i++

		case stateCSI:
			if b == ';' || b == '?' || (b >= '0' && b <= '9') {
				d.csiParams = append(d.csiParams, b)
				i++
				continue
			}
			// Any byte in 0x40-0x7e terminates the CSI sequence.
			ev, err := d.finishCSI(b, d.seqStart)
			if err != nil {
				return events, err
			}
			events = append(events, ev...)
			d.state = stateGround
			i++
		}
	}

	d.offset += len(chunk)
	return events, nil
}

// finishCSI dispatches a complete CSI sequence (d.csiParams, final byte b)
// to zero or more Events.
func (d *Decoder) finishCSI(b byte, errOffset int) ([]Event, error) {
	raw := string(d.csiParams)
	private := false
	if len(raw) > 0 && raw[0] == '?' {
		private = true
		raw = raw[1:]
	}
	params := splitParams(raw)

	if private {
		n := 0
		if len(params) > 0 {
			n = params[0]
		}
		switch b {
		case 'h', 'l':
			if !ignoredPrivateModes[n] {
				return nil, &FormatError{Offset: errOffset, Msg: "unrecognized private CSI mode"}
			}
			return []Event{{Kind: Ignored}}, nil
		case 'c':
			if n != 0 && n != 1 {
				return nil, &FormatError{Offset: errOffset, Msg: "unrecognized private CSI mode"}
			}
			return []Event{{Kind: Ignored}}, nil
		default:
			return nil, &FormatError{Offset: errOffset, Msg: "unrecognized private CSI final byte"}
		}
	}

	p0 := paramAt(params, 0)
	p1 := paramAt(params, 1)

	switch b {
	case 'A':
		return []Event{{Kind: CursorUp, N: p0}}, nil
	case 'C':
		return []Event{{Kind: CursorForward, N: p0}}, nil
	case 'G':
		return []Event{{Kind: CursorAbsoluteCol, N: p0}}, nil
	case 'd':
		return []Event{{Kind: CursorAbsoluteRow, N: p0}}, nil
	case 'H':
		return []Event{{Kind: CursorPosition, Col: p1, Row: p0}}, nil
	case 'J':
		return []Event{{Kind: EraseInDisplay, N: p0}}, nil
	case 'K':
		return []Event{{Kind: EraseInLine, N: p0}}, nil
	case 'L':
		return []Event{{Kind: InsertLines, N: p0}}, nil
	case 'M':
		return []Event{{Kind: DeleteLines, N: p0}}, nil
	case 'X':
		return []Event{{Kind: EraseChars, N: p0}}, nil
	case 'P':
		return []Event{{Kind: DeleteCharsBeforeCursor, N: p0}}, nil
	case 'S':
		return []Event{{Kind: ScrollDown, N: p0}}, nil
	case 'T':
		return []Event{{Kind: ScrollUp, N: p0}}, nil
	case 'r':
		return []Event{{Kind: SetScrollRegion, Col: p0, Row: p1}}, nil
	case 'l':
		if p0 != 4 {
			return nil, &FormatError{Offset: errOffset, Msg: "unrecognized CSI l mode"}
		}
		return []Event{{Kind: Ignored}}, nil
	case 'm':
		if len(params) == 0 {
			params = []int{0}
		}
		evs := make([]Event, len(params))
		for i, p := range params {
			evs[i] = Event{Kind: SGR, N: p}
		}
		return evs, nil
	default:
		return nil, &FormatError{Offset: errOffset, Msg: "unrecognized CSI final byte"}
	}
}

// splitParams parses a ';'-separated list of decimal parameters, per the
// decoder's default-parameter rule: a missing or empty component is 0.
func splitParams(raw string) []int {
	if raw == "" {
		return nil
	}
	start := 0
	var out []int
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ';' {
			field := raw[start:i]
			if field == "" {
				out = append(out, 0)
			} else if n, err := strconv.Atoi(field); err == nil {
				out = append(out, n)
			} else {
				out = append(out, 0)
			}
			start = i + 1
		}
	}
	return out
}

func paramAt(params []int, idx int) int {
	if idx < len(params) {
		return params[idx]
	}
	return 0
}
