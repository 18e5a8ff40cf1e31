package locres

// DefaultHashCacheSize is the number of namespace/key hashes an encoder
// remembers.
const DefaultHashCacheSize = 4096

type config struct {
	strictReferences bool
	strongDedup      bool
	hashCacheSize    int
}

func newConfig(opts []Option) config {
	cfg := config{
		hashCacheSize: DefaultHashCacheSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures encoding and decoding.
type Option func(*config)

// WithStrictReferences makes the decoder fail with ErrMissingReference when
// a key points past the string table. By default such keys get an empty
// value.
func WithStrictReferences(strict bool) Option {
	return func(c *config) {
		c.strictReferences = strict
	}
}

// WithStrongDedup keys the encoder's value dictionary by a 64-bit xxHash
// instead of CRC-32. The output layout is unchanged.
func WithStrongDedup(strong bool) Option {
	return func(c *config) {
		c.strongDedup = strong
	}
}

// WithHashCache sets how many namespace/key hashes the encoder memoizes.
// Zero disables the cache.
func WithHashCache(size int) Option {
	return func(c *config) {
		c.hashCacheSize = size
	}
}
