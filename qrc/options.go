package qrc

// DefaultMaxInflatedSize bounds the size of a single decompressed payload.
const DefaultMaxInflatedSize = 64 << 20

// Config holds the decoder configuration.
type Config struct {
	// Strict makes any node failure a Decode error
	Strict bool

	// MaxInflatedSize is the largest decompressed payload accepted, in bytes
	MaxInflatedSize int64
}

func defaultConfig() Config {
	return Config{
		MaxInflatedSize: DefaultMaxInflatedSize,
	}
}

// Option is a functional option for Decode.
type Option func(*Config)

// WithStrict makes Decode fail on the first malformed or undecompressable node.
// Duplicate names are still only reported.
func WithStrict(strict bool) Option {
	return func(c *Config) {
		c.Strict = strict
	}
}

// WithMaxInflatedSize limits the decompressed size of a single payload.
// Non-positive sizes are ignored.
func WithMaxInflatedSize(size int64) Option {
	return func(c *Config) {
		if size > 0 {
			c.MaxInflatedSize = size
		}
	}
}
