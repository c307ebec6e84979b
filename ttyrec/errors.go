package ttyrec

import "fmt"

// FormatError is a fatal framing error: a short read mid-frame or a
// negative inter-frame delay. The corpus is closed, so these are always
// real bugs rather than conditions to tolerate.
type FormatError struct {
	FrameNo int
	Offset  int64
	Msg     string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("ttyrec: format error at frame %d, offset %d: %s", e.FrameNo, e.Offset, e.Msg)
}
