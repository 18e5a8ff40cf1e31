package stream

import (
	"errors"
	"io"
)

var errNegativePosition = errors.New("negative position")

// Buffer is an in-memory io.ReadWriteSeeker. Writes overwrite existing
// bytes at the current position and grow the buffer as needed; seeking past
// the end and writing zero-fills the gap.
type Buffer struct {
	data []byte
	pos  int64
}

// NewBuffer creates a buffer positioned at the start of data.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Bytes returns the full contents of the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the total number of bytes in the buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Read reads from the current position.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.pos >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += int64(n)
	return n, nil
}

// Write writes at the current position.
func (b *Buffer) Write(p []byte) (int, error) {
	end := b.pos + int64(len(p))
	if end > int64(len(b.data)) {
		if end > int64(cap(b.data)) {
			grown := make([]byte, end, max(end, int64(cap(b.data))*2))
			copy(grown, b.data)
			b.data = grown
		} else {
			b.data = b.data[:end]
		}
	}
	n := copy(b.data[b.pos:], p)
	b.pos += int64(n)
	return n, nil
}

// Seek implements io.Seeker.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = b.pos + offset
	case io.SeekEnd:
		pos = int64(len(b.data)) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if pos < 0 {
		return 0, errNegativePosition
	}
	b.pos = pos
	return pos, nil
}
