package locres

import (
	"fmt"
	"math"
	"strings"

	"github.com/EchoTools/locresTools/pkg/stream"
)

// writeString writes s with a signed length prefix. ASCII text is stored as
// single bytes with a positive length; anything else as UTF-16 with the
// negated code unit count. Both forms include a NUL terminator, except the
// empty string which is a bare zero length.
func writeString(w *stream.Writer, s string) error {
	if s == "" {
		return w.WriteInt32(0)
	}

	if stream.IsASCII(s) {
		if len(s) >= math.MaxInt32 {
			return fmt.Errorf("string too long: %d bytes", len(s))
		}
		if err := w.WriteInt32(int32(len(s) + 1)); err != nil {
			return err
		}
		buf := make([]byte, len(s)+1)
		copy(buf, s)
		return w.WriteBytes(buf)
	}

	units := stream.UTF16Len(s) + 1
	if units >= math.MaxInt32 {
		return fmt.Errorf("string too long: %d code units", units)
	}
	if err := w.WriteInt32(-int32(units)); err != nil {
		return err
	}
	if err := w.WriteUTF16(s); err != nil {
		return err
	}
	return w.WriteBytes([]byte{0, 0})
}

// readString reads a string written by writeString, trimming one trailing
// NUL.
func readString(r *stream.Reader) (string, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return "", err
	}

	var s string
	switch {
	case n == 0:
		return "", nil
	case n > 0:
		data, err := r.ReadBytes(int(n))
		if err != nil {
			return "", err
		}
		s = decodeNarrow(data)
	case n == math.MinInt32:
		return "", fmt.Errorf("%w: invalid string length %d", ErrFormat, n)
	default:
		s, err = r.ReadUTF16(int(-n) * 2)
		if err != nil {
			return "", err
		}
	}
	return strings.TrimSuffix(s, "\x00"), nil
}

// decodeNarrow widens single-byte text. Bytes above 0x7F are Latin-1.
func decodeNarrow(data []byte) string {
	if stream.IsASCII(string(data)) {
		return string(data)
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
