package ttyrec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func writeFrame(buf *bytes.Buffer, sec, usec uint32, payload []byte) {
	var hdr [12]byte
	binary.LittleEndian.PutUint32(hdr[0:4], sec)
	binary.LittleEndian.PutUint32(hdr[4:8], usec)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(len(payload)))
	buf.Write(hdr[:])
	buf.Write(payload)
}

func TestNextFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	writeFrame(&buf, 1, 0, []byte("hello"))
	writeFrame(&buf, 1, 500000, []byte("world"))

	f := NewFramer(bytes.NewReader(buf.Bytes()))

	payload, sec, usec, err := f.NextFrame()
	if err != nil {
		t.Fatalf("frame 1: %v", err)
	}
	if string(payload) != "hello" || sec != 1 || usec != 0 {
		t.Fatalf("frame 1 mismatch: %q sec=%d usec=%d", payload, sec, usec)
	}
	if f.FrameNo() != 1 {
		t.Fatalf("FrameNo() = %d, want 1", f.FrameNo())
	}

	payload, sec, usec, err = f.NextFrame()
	if err != nil {
		t.Fatalf("frame 2: %v", err)
	}
	if string(payload) != "world" || sec != 1 || usec != 500000 {
		t.Fatalf("frame 2 mismatch: %q sec=%d usec=%d", payload, sec, usec)
	}

	_, _, _, err = f.NextFrame()
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF at end, got %v", err)
	}
}

func TestNextFrameShortHeader(t *testing.T) {
	buf := bytes.NewReader([]byte{1, 2, 3})
	f := NewFramer(buf)
	_, _, _, err := f.NextFrame()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError, got %v", err)
	}
}

func TestNextFrameShortPayload(t *testing.T) {
	var buf bytes.Buffer
	var hdr [12]byte
	binary.LittleEndian.PutUint32(hdr[8:12], 10) // claims 10 bytes, provides none
	buf.Write(hdr[:])
	f := NewFramer(bytes.NewReader(buf.Bytes()))
	_, _, _, err := f.NextFrame()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError, got %v", err)
	}
}

func TestFrameDelays(t *testing.T) {
	var buf bytes.Buffer
	writeFrame(&buf, 1, 0, []byte("a"))
	writeFrame(&buf, 2, 500000, []byte("b"))
	writeFrame(&buf, 3, 0, []byte("c"))

	f := NewFramer(bytes.NewReader(buf.Bytes()))
	delays, err := f.FrameDelays()
	if err != nil {
		t.Fatalf("FrameDelays: %v", err)
	}
	if len(delays) != 2 {
		t.Fatalf("expected 2 delays, got %d", len(delays))
	}
	if delays[0] < 1.49 || delays[0] > 1.51 {
		t.Fatalf("delay[0] = %v, want ~1.5", delays[0])
	}
	if delays[1] < 0.49 || delays[1] > 0.51 {
		t.Fatalf("delay[1] = %v, want ~0.5", delays[1])
	}

	// FrameDelays rewinds; NextFrame should still see the first frame.
	payload, _, _, err := f.NextFrame()
	if err != nil || string(payload) != "a" {
		t.Fatalf("expected rewind to frame 1, got %q err=%v", payload, err)
	}
}

func TestFrameDelaysNegative(t *testing.T) {
	var buf bytes.Buffer
	writeFrame(&buf, 5, 0, []byte("a"))
	writeFrame(&buf, 1, 0, []byte("b"))

	f := NewFramer(bytes.NewReader(buf.Bytes()))
	_, err := f.FrameDelays()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError for negative delay, got %v", err)
	}
}
