// Package archive wraps localization resources in a compressed bundle.
//
// A bundle is a fixed header followed by the compressed payload. The header
// records the codec, the payload's CRC-32 and both sizes, so a reader can
// verify the decompressed data without any outside metadata.
package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Magic bytes identifying a bundle header.
var Magic = [4]byte{0x4c, 0x52, 0x5a, 0x41} // "LRZA"

// HeaderSize is the fixed binary size of a bundle header.
const HeaderSize = 28 // 4 + 1 + 3 + 4 + 8 + 8 bytes

// Codec selects the compression algorithm of a bundle.
type Codec uint8

const (
	CodecZstd Codec = 1
	CodecLZMA Codec = 2
)

// String returns the codec name.
func (c Codec) String() string {
	switch c {
	case CodecZstd:
		return "zstd"
	case CodecLZMA:
		return "lzma"
	default:
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
}

// ParseCodec parses a codec name as accepted on the command line.
func ParseCodec(name string) (Codec, error) {
	switch name {
	case "zstd", "":
		return CodecZstd, nil
	case "lzma":
		return CodecLZMA, nil
	default:
		return 0, fmt.Errorf("unknown codec %q", name)
	}
}

// Header represents the header of a bundle.
type Header struct {
	Magic            [4]byte
	Codec            Codec
	Checksum         uint32 // CRC-32 (IEEE) of the uncompressed payload
	Length           uint64 // Uncompressed size
	CompressedLength uint64 // Compressed size
}

// Validate checks the header for validity.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("invalid magic: expected %x, got %x", Magic, h.Magic)
	}
	if h.Codec != CodecZstd && h.Codec != CodecLZMA {
		return fmt.Errorf("unsupported codec %d", h.Codec)
	}
	if h.Length == 0 {
		return fmt.Errorf("uncompressed size is zero")
	}
	if h.CompressedLength == 0 {
		return fmt.Errorf("compressed size is zero")
	}
	return nil
}

// MarshalBinary encodes the header to binary format.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf, nil
}

// EncodeTo writes the header to the given buffer.
// The buffer must be at least HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	copy(buf[0:4], h.Magic[:])
	buf[4] = byte(h.Codec)
	buf[5], buf[6], buf[7] = 0, 0, 0
	binary.LittleEndian.PutUint32(buf[8:12], h.Checksum)
	binary.LittleEndian.PutUint64(buf[12:20], h.Length)
	binary.LittleEndian.PutUint64(buf[20:28], h.CompressedLength)
}

// UnmarshalBinary decodes the header from binary format.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("header data too short: need %d, got %d", HeaderSize, len(data))
	}
	h.DecodeFrom(data)
	return h.Validate()
}

// DecodeFrom reads the header from the given buffer.
// Does not validate - use UnmarshalBinary for validation.
func (h *Header) DecodeFrom(data []byte) {
	copy(h.Magic[:], data[0:4])
	h.Codec = Codec(data[4])
	h.Checksum = binary.LittleEndian.Uint32(data[8:12])
	h.Length = binary.LittleEndian.Uint64(data[12:20])
	h.CompressedLength = binary.LittleEndian.Uint64(data[20:28])
}

// IsArchive reports whether data starts with a bundle magic.
func IsArchive(data []byte) bool {
	return len(data) >= len(Magic) && bytes.Equal(data[:len(Magic)], Magic[:])
}
