package locres

import (
	"hash/crc32"

	"github.com/EchoTools/locresTools/pkg/cityhash"
)

// HashName returns the identity hash of a namespace or key.
func HashName(s string) uint32 {
	return cityhash.String32(s)
}

// HashValue returns the source-string hash stored next to each key.
func HashValue(s string) uint32 {
	return crc32.ChecksumIEEE([]byte(s))
}
