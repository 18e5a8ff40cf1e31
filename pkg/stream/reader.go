// Package stream provides little-endian binary readers and writers over
// seekable streams.
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Reader reads little-endian values from an io.ReadSeeker.
type Reader struct {
	src  io.ReadSeeker
	size uint64
	buf  [8]byte
}

// NewReader wraps src. The stream size is determined once by seeking to the
// end; the position is restored afterwards.
func NewReader(src io.ReadSeeker) (*Reader, error) {
	cur, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("get position: %w", err)
	}
	end, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("seek to end: %w", err)
	}
	if _, err := src.Seek(cur, io.SeekStart); err != nil {
		return nil, fmt.Errorf("restore position: %w", err)
	}
	return &Reader{src: src, size: uint64(end)}, nil
}

// Size returns the total stream size in bytes.
func (r *Reader) Size() uint64 {
	return r.size
}

// Position returns the current read offset.
func (r *Reader) Position() (uint64, error) {
	pos, err := r.src.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("get position: %w", err)
	}
	return uint64(pos), nil
}

// SetPosition moves the read offset. Positions beyond the end are rejected.
func (r *Reader) SetPosition(pos uint64) error {
	if pos > r.size {
		return fmt.Errorf("seek to %d: %w", pos, io.ErrUnexpectedEOF)
	}
	if _, err := r.src.Seek(int64(pos), io.SeekStart); err != nil {
		return fmt.Errorf("seek to %d: %w", pos, err)
	}
	return nil
}

// Remaining returns the number of bytes between the current position and
// the end of the stream.
func (r *Reader) Remaining() (uint64, error) {
	pos, err := r.Position()
	if err != nil {
		return 0, err
	}
	if pos > r.size {
		return 0, nil
	}
	return r.size - pos, nil
}

func (r *Reader) fill(n int) ([]byte, error) {
	if _, err := io.ReadFull(r.src, r.buf[:n]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return r.buf[:n], nil
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.fill(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint32 reads a little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.fill(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadInt32 reads a little-endian int32.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a little-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.fill(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadBytes reads exactly n bytes. Requests larger than the remaining
// stream fail without allocating.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative length %d", n)
	}
	remaining, err := r.Remaining()
	if err != nil {
		return nil, err
	}
	if uint64(n) > remaining {
		return nil, fmt.Errorf("read %d bytes with %d remaining: %w", n, remaining, io.ErrUnexpectedEOF)
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r.src, data); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return data, nil
}

// ReadUTF16 reads byteLen bytes and decodes them as UTF-16LE.
func (r *Reader) ReadUTF16(byteLen int) (string, error) {
	data, err := r.ReadBytes(byteLen)
	if err != nil {
		return "", err
	}
	return DecodeUTF16(data), nil
}
