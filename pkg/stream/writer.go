package stream

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer writes little-endian values to an io.WriteSeeker.
type Writer struct {
	dst io.WriteSeeker
	buf [8]byte
}

// NewWriter wraps dst.
func NewWriter(dst io.WriteSeeker) *Writer {
	return &Writer{dst: dst}
}

// Position returns the current write offset.
func (w *Writer) Position() (uint64, error) {
	pos, err := w.dst.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("get position: %w", err)
	}
	return uint64(pos), nil
}

// SetPosition moves the write offset.
func (w *Writer) SetPosition(pos uint64) error {
	if _, err := w.dst.Seek(int64(pos), io.SeekStart); err != nil {
		return fmt.Errorf("seek to %d: %w", pos, err)
	}
	return nil
}

// WriteUint8 writes a single byte.
func (w *Writer) WriteUint8(v uint8) error {
	w.buf[0] = v
	return w.WriteBytes(w.buf[:1])
}

// WriteUint32 writes a little-endian uint32.
func (w *Writer) WriteUint32(v uint32) error {
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	return w.WriteBytes(w.buf[:4])
}

// WriteInt32 writes a little-endian int32.
func (w *Writer) WriteInt32(v int32) error {
	return w.WriteUint32(uint32(v))
}

// WriteUint64 writes a little-endian uint64.
func (w *Writer) WriteUint64(v uint64) error {
	binary.LittleEndian.PutUint64(w.buf[:8], v)
	return w.WriteBytes(w.buf[:8])
}

// WriteBytes writes b in full.
func (w *Writer) WriteBytes(b []byte) error {
	n, err := w.dst.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return io.ErrShortWrite
	}
	return nil
}

// WriteUTF16 writes the UTF-16LE encoding of s without a length prefix or
// terminator.
func (w *Writer) WriteUTF16(s string) error {
	return w.WriteBytes(EncodeUTF16(s))
}
