// Package cityhash implements the 64-bit CityHash (v1.1) digest used by
// Unreal Engine to identify localization namespaces and keys.
//
// String entry points hash the UTF-16LE encoding of their input, which is
// how the engine stores text in memory when it computes these hashes.
package cityhash

import (
	"encoding/binary"
	"math/bits"

	"github.com/EchoTools/locresTools/pkg/stream"
)

const (
	k0   = uint64(0xC3A5C85C97CB3127)
	k1   = uint64(0xB492B66FBE98F273)
	k2   = uint64(0x9AE16A3B2F90404F)
	kMul = uint64(0x9DDFEA08EB382D69)
)

// Hash64 returns the CityHash64 digest of data. Empty input yields 0.
func Hash64(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	return Sum64(data)
}

// Hash32 returns the folded 32-bit form of Hash64. Empty input yields 0.
func Hash32(data []byte) uint32 {
	if len(data) == 0 {
		return 0
	}
	return Fold(Sum64(data))
}

// String64 hashes the UTF-16LE encoding of s.
func String64(s string) uint64 {
	return Hash64(stream.EncodeUTF16(s))
}

// String32 hashes the UTF-16LE encoding of s and folds the result to 32 bits.
func String32(s string) uint32 {
	return Hash32(stream.EncodeUTF16(s))
}

// Fold reduces a 64-bit digest to 32 bits as low + high*23.
func Fold(h uint64) uint32 {
	return uint32(h) + uint32(h>>32)*23
}

// Sum64 is the unmodified CityHash64 algorithm. Unlike Hash64 it returns
// k2 for empty input.
func Sum64(s []byte) uint64 {
	n := len(s)
	if n <= 32 {
		if n <= 16 {
			return hashLen0to16(s)
		}
		return hashLen17to32(s)
	}
	if n <= 64 {
		return hashLen33to64(s)
	}

	// Seed from the last 64 bytes, then walk every full block except the tail.
	x := fetch64(s, n-40)
	y := fetch64(s, n-16) + fetch64(s, n-56)
	z := hash128to64(fetch64(s, n-48)+uint64(n), fetch64(s, n-24))
	v1, v2 := weakHashLen32WithSeeds(s[n-64:], uint64(n), z)
	w1, w2 := weakHashLen32WithSeeds(s[n-32:], y+k1, x)
	x = x*k1 + fetch64(s, 0)

	remaining := (n - 1) &^ 63
	for p := 0; remaining != 0; p += 64 {
		block := s[p : p+64]
		x = rotate(x+y+v1+fetch64(block, 8), 37) * k1
		y = rotate(y+v2+fetch64(block, 48), 42) * k1
		x ^= w2
		y += v1 + fetch64(block, 40)
		z = rotate(z+w1, 33) * k1
		v1, v2 = weakHashLen32WithSeeds(block, v2*k1, x+w1)
		w1, w2 = weakHashLen32WithSeeds(block[32:], z+w2, y+fetch64(block, 16))
		z, x = x, z
		remaining -= 64
	}

	return hash128to64(
		hash128to64(v1, w1)+shiftMix(y)*k1+z,
		hash128to64(v2, w2)+x,
	)
}

func hashLen0to16(s []byte) uint64 {
	n := len(s)
	if n >= 8 {
		mul := k2 + uint64(n)*2
		a := fetch64(s, 0) + k2
		b := fetch64(s, n-8)
		c := rotate(b, 37)*mul + a
		d := (rotate(a, 25) + b) * mul
		return hashLen16(c, d, mul)
	}
	if n >= 4 {
		mul := k2 + uint64(n)*2
		a := uint64(fetch32(s, 0))
		return hashLen16(uint64(n)+(a<<3), uint64(fetch32(s, n-4)), mul)
	}
	if n > 0 {
		a := s[0]
		b := s[n>>1]
		c := s[n-1]
		y := uint32(a) + uint32(b)<<8
		z := uint32(n) + uint32(c)<<2
		return shiftMix(uint64(y)*k2^uint64(z)*k0) * k2
	}
	return k2
}

func hashLen17to32(s []byte) uint64 {
	n := len(s)
	mul := k2 + uint64(n)*2
	a := fetch64(s, 0) * k1
	b := fetch64(s, 8)
	c := fetch64(s, n-8) * mul
	d := fetch64(s, n-16) * k2
	return hashLen16(rotate(a+b, 43)+rotate(c, 30)+d, a+rotate(b+k2, 18)+c, mul)
}

func hashLen33to64(s []byte) uint64 {
	n := len(s)
	mul := k2 + uint64(n)*2
	a := fetch64(s, 0) * k2
	b := fetch64(s, 8)
	c := fetch64(s, n-24)
	d := fetch64(s, n-32)
	e := fetch64(s, 16) * k2
	f := fetch64(s, 24) * 9
	g := fetch64(s, n-8)
	h := fetch64(s, n-16) * mul
	u := rotate(a+g, 43) + (rotate(b, 30)+c)*9
	v := ((a + g) ^ d) + f + 1
	w := bits.ReverseBytes64((u+v)*mul) + h
	x := rotate(e+f, 42) + c
	y := (bits.ReverseBytes64((v+w)*mul) + g) * mul
	z := e + f + c
	a = bits.ReverseBytes64((x+z)*mul+y) + b
	b = shiftMix((z+a)*mul+d+h) * mul
	return b + x
}

// hashLen16 is the 16-byte combiner.
func hashLen16(u, v, mul uint64) uint64 {
	a := (u ^ v) * mul
	a ^= a >> 47
	b := (v ^ a) * mul
	b ^= b >> 47
	return b * mul
}

func hash128to64(u, v uint64) uint64 {
	return hashLen16(u, v, kMul)
}

// weakHashLen32WithSeeds mixes the four words of a 32-byte block into a
// pair seeded with a and b.
func weakHashLen32WithSeeds(s []byte, a, b uint64) (uint64, uint64) {
	w := fetch64(s, 0)
	x := fetch64(s, 8)
	y := fetch64(s, 16)
	z := fetch64(s, 24)

	a += w
	b = rotate(b+a+z, 21)
	c := a
	a += x
	a += y
	b += rotate(a, 44)
	return a + z, b + c
}

// rotate is a right rotation; a shift of 0 returns v unchanged.
func rotate(v uint64, shift int) uint64 {
	return bits.RotateLeft64(v, -shift)
}

func shiftMix(v uint64) uint64 {
	return v ^ (v >> 47)
}

func fetch64(s []byte, i int) uint64 {
	return binary.LittleEndian.Uint64(s[i : i+8])
}

func fetch32(s []byte, i int) uint32 {
	return binary.LittleEndian.Uint32(s[i : i+4])
}
