package cityhash

import (
	"fmt"
	"testing"
)

// BenchmarkHash64 benchmarks each length bucket.
func BenchmarkHash64(b *testing.B) {
	for _, n := range []int{3, 7, 16, 32, 64, 256, 4096} {
		data := testData(n)
		b.Run(fmt.Sprintf("Len%d", n), func(b *testing.B) {
			b.SetBytes(int64(n))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Hash64(data)
			}
		})
	}
}

// BenchmarkString32 benchmarks the UTF-16 string entry point.
func BenchmarkString32(b *testing.B) {
	s := "Menu.Options.Audio.MasterVolume"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		String32(s)
	}
}
