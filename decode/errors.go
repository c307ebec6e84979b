package decode

import "fmt"

// FormatError is a fatal decode error: an unrecognized CSI final byte, an
// unrecognized private-mode parameter, or an unrecognized UTF-8 sequence.
// The corpus is closed, so anything outside the known subset is treated as
// a bug rather than tolerated.
type FormatError struct {
	Offset int
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("decode: format error at byte offset %d: %s", e.Offset, e.Msg)
}
