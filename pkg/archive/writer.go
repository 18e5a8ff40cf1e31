package archive

import (
	"fmt"
	"hash"
	"hash/crc32"
	"io"

	"github.com/DataDog/zstd"
	"github.com/ulikunitz/xz/lzma"
)

const (
	// DefaultCompressionLevel is the default zstd level for encoding.
	DefaultCompressionLevel = zstd.BestSpeed

	// DefaultCodec is the codec used when none is configured.
	DefaultCodec = CodecZstd
)

// Writer wraps an io.WriteSeeker to provide compression of bundle data.
type Writer struct {
	dst     io.WriteSeeker
	comp    io.WriteCloser
	crc     hash.Hash32
	header  *Header
	start   int64
	written uint64
	level   int
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCompressionLevel sets the zstd compression level for the writer.
func WithCompressionLevel(level int) WriterOption {
	return func(w *Writer) {
		w.level = level
	}
}

// WithCodec sets the compression codec for the writer.
func WithCodec(codec Codec) WriterOption {
	return func(w *Writer) {
		w.header.Codec = codec
	}
}

// NewWriter creates a new bundle writer that writes to dst at its current
// position.
func NewWriter(dst io.WriteSeeker, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		dst:   dst,
		crc:   crc32.NewIEEE(),
		level: DefaultCompressionLevel,
		header: &Header{
			Magic: Magic,
			Codec: DefaultCodec,
		},
	}

	for _, opt := range opts {
		opt(w)
	}

	start, err := dst.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("get position: %w", err)
	}
	w.start = start

	// Write placeholder header
	headerBytes, err := w.header.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal header: %w", err)
	}
	if _, err := dst.Write(headerBytes); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	switch w.header.Codec {
	case CodecZstd:
		w.comp = zstd.NewWriterLevel(dst, w.level)
	case CodecLZMA:
		lw, err := lzma.NewWriter(dst)
		if err != nil {
			return nil, fmt.Errorf("create lzma writer: %w", err)
		}
		w.comp = lw
	default:
		return nil, fmt.Errorf("unsupported codec %d", w.header.Codec)
	}

	return w, nil
}

// Write compresses p into the bundle.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.comp.Write(p)
	w.crc.Write(p[:n])
	w.written += uint64(n)
	return n, err
}

// Close finalizes the bundle by updating the header with sizes and checksum.
func (w *Writer) Close() error {
	if err := w.comp.Close(); err != nil {
		return fmt.Errorf("close compressor: %w", err)
	}

	pos, err := w.dst.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("get position: %w", err)
	}

	w.header.Length = w.written
	w.header.CompressedLength = uint64(pos-w.start) - HeaderSize
	w.header.Checksum = w.crc.Sum32()

	if _, err := w.dst.Seek(w.start, io.SeekStart); err != nil {
		return fmt.Errorf("seek to header: %w", err)
	}

	headerBytes, err := w.header.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}

	if _, err := w.dst.Write(headerBytes); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	// Seek back to end
	if _, err := w.dst.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("seek to end: %w", err)
	}

	return nil
}

// Encode compresses data and writes it as a bundle to dst.
func Encode(dst io.WriteSeeker, data []byte, opts ...WriterOption) error {
	w, err := NewWriter(dst, opts...)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write data: %w", err)
	}

	return w.Close()
}
