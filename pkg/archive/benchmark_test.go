package archive

import (
	"bytes"
	"testing"

	"github.com/EchoTools/locresTools/pkg/stream"
)

// BenchmarkEncodeDecode benchmarks full encode/decode cycle per codec.
func BenchmarkEncodeDecode(b *testing.B) {
	data := make([]byte, 256*1024) // 256KB
	for i := range data {
		data[i] = byte(i % 256)
	}

	for _, codec := range []Codec{CodecZstd, CodecLZMA} {
		b.Run("Encode_"+codec.String(), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := Encode(stream.NewBuffer(nil), data, WithCodec(codec)); err != nil {
					b.Fatal(err)
				}
			}
		})

		// Pre-encode for decode benchmark
		buf := stream.NewBuffer(nil)
		_ = Encode(buf, data, WithCodec(codec))
		encoded := buf.Bytes()

		b.Run("Decode_"+codec.String(), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := ReadAll(bytes.NewReader(encoded)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkHeader benchmarks header operations.
func BenchmarkHeader(b *testing.B) {
	header := &Header{
		Magic:            Magic,
		Codec:            CodecZstd,
		Length:           1024 * 1024,
		CompressedLength: 512 * 1024,
	}

	b.Run("EncodeTo", func(b *testing.B) {
		buf := make([]byte, HeaderSize)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			header.EncodeTo(buf)
		}
	})

	data, _ := header.MarshalBinary()

	b.Run("DecodeFrom", func(b *testing.B) {
		h := &Header{}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			h.DecodeFrom(data)
		}
	})
}
