package locres

import (
	"encoding/binary"
	"fmt"
)

// Magic identifies a localization resource file.
var Magic = [16]byte{
	0x0E, 0x14, 0x74, 0x75, 0x67, 0x4A, 0x03, 0xFC,
	0x4A, 0x15, 0x90, 0x9D, 0xC3, 0x37, 0x7F, 0x1B,
}

// Version is the only supported format version (CityHash64 keys, UTF-16
// aware string table).
const Version uint8 = 3

// HeaderSize is the fixed binary size of a header.
const HeaderSize = 29 // 16 + 1 + 8 + 4 bytes

// offsetFieldPos is the position of StringTableOffset within the header.
const offsetFieldPos = 17

// Header is the fixed prefix of a localization resource.
type Header struct {
	Magic             [16]byte
	Version           uint8
	StringTableOffset uint64 // Relative to the start of the header
	EntryCount        uint32 // Total keys across all namespaces
}

// NewHeader creates a header for the current version.
func NewHeader(stringTableOffset uint64, entryCount uint32) *Header {
	return &Header{
		Magic:             Magic,
		Version:           Version,
		StringTableOffset: stringTableOffset,
		EntryCount:        entryCount,
	}
}

// Validate checks the magic and version.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("%w: invalid magic: expected %x, got %x", ErrFormat, Magic, h.Magic)
	}
	if h.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", ErrFormat, h.Version)
	}
	return nil
}

// MarshalBinary encodes the header.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf, nil
}

// EncodeTo writes the header to buf, which must hold HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	copy(buf[0:16], h.Magic[:])
	buf[16] = h.Version
	binary.LittleEndian.PutUint64(buf[17:25], h.StringTableOffset)
	binary.LittleEndian.PutUint32(buf[25:29], h.EntryCount)
}

// UnmarshalBinary decodes and validates the header.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: header too short: need %d, got %d", ErrFormat, HeaderSize, len(data))
	}
	h.DecodeFrom(data)
	return h.Validate()
}

// DecodeFrom reads the header from buf without validating it.
func (h *Header) DecodeFrom(buf []byte) {
	copy(h.Magic[:], buf[0:16])
	h.Version = buf[16]
	h.StringTableOffset = binary.LittleEndian.Uint64(buf[17:25])
	h.EntryCount = binary.LittleEndian.Uint32(buf[25:29])
}
