package archive

import (
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/DataDog/zstd"
	"github.com/ulikunitz/xz/lzma"
)

// ErrChecksum is returned when decompressed data does not match the
// header's size or CRC.
var ErrChecksum = errors.New("bundle checksum mismatch")

// MaxLength bounds the uncompressed size ReadAll will allocate.
const MaxLength = 1 << 31

// Reader wraps an io.Reader to provide decompression of bundle data.
type Reader struct {
	header    *Header
	dReader   io.ReadCloser
	headerBuf [HeaderSize]byte // Reusable buffer for header decoding
}

// NewReader creates a new bundle reader from the given source.
// It reads and validates the header, then returns a reader for the decompressed content.
func NewReader(r io.Reader) (*Reader, error) {
	reader := &Reader{
		header: &Header{},
	}

	if _, err := io.ReadFull(r, reader.headerBuf[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if err := reader.header.UnmarshalBinary(reader.headerBuf[:]); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	payload := io.LimitReader(r, int64(reader.header.CompressedLength))
	switch reader.header.Codec {
	case CodecZstd:
		reader.dReader = zstd.NewReader(payload)
	case CodecLZMA:
		lr, err := lzma.NewReader(payload)
		if err != nil {
			return nil, fmt.Errorf("create lzma reader: %w", err)
		}
		reader.dReader = io.NopCloser(lr)
	}
	return reader, nil
}

// Header returns the bundle header.
func (r *Reader) Header() *Header {
	return r.header
}

// Read reads decompressed data into p.
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.dReader.Read(p)
}

// Close closes the reader.
func (r *Reader) Close() error {
	return r.dReader.Close()
}

// Length returns the uncompressed data length.
func (r *Reader) Length() int {
	return int(r.header.Length)
}

// CompressedLength returns the compressed data length.
func (r *Reader) CompressedLength() int {
	return int(r.header.CompressedLength)
}

// ReadAll reads and verifies the entire decompressed content of a bundle.
func ReadAll(r io.Reader) ([]byte, error) {
	reader, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	if reader.header.Length > MaxLength {
		return nil, fmt.Errorf("uncompressed size %d exceeds %d", reader.header.Length, MaxLength)
	}

	data := make([]byte, reader.Length())
	n, err := io.ReadFull(reader, data)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	if n != reader.Length() {
		return nil, fmt.Errorf("incomplete read: expected %d, got %d", reader.Length(), n)
	}

	if sum := crc32.ChecksumIEEE(data); sum != reader.header.Checksum {
		return nil, fmt.Errorf("%w: expected %08x, got %08x", ErrChecksum, reader.header.Checksum, sum)
	}

	return data, nil
}
